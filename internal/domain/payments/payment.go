package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// PaymentType distinguishes money received from money returned
type PaymentType string

const (
	PaymentTypePayment PaymentType = "payment"
	PaymentTypeRefund  PaymentType = "refund"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypePayment || t == PaymentTypeRefund
}

// Payment is a ledger entry against a sale. Entries are append-only;
// corrections happen through refund entries, not edits.
type Payment struct {
	shared.BaseEntity
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          PaymentType     `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	PaymentDate   time.Time       `gorm:"not null"`
	Reference     string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment-type ledger entry
func NewPayment(saleID uuid.UUID, amount valueobject.Money, method string, date time.Time, reference, notes string) (*Payment, error) {
	return newEntry(saleID, PaymentTypePayment, amount, method, date, reference, notes)
}

// NewRefund creates a refund-type ledger entry
func NewRefund(saleID uuid.UUID, amount valueobject.Money, method string, date time.Time, reference, notes string) (*Payment, error) {
	return newEntry(saleID, PaymentTypeRefund, amount, method, date, reference, notes)
}

func newEntry(saleID uuid.UUID, entryType PaymentType, amount valueobject.Money, method string, date time.Time, reference, notes string) (*Payment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if method == "" {
		return nil, shared.ErrMissingPaymentMethod
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		SaleID:        saleID,
		Type:          entryType,
		Amount:        amount.Amount(),
		PaymentMethod: method,
		PaymentDate:   date,
		Reference:     reference,
		Notes:         notes,
	}, nil
}

// IsPayment returns true for payment-type entries
func (p *Payment) IsPayment() bool {
	return p.Type == PaymentTypePayment
}

// IsRefund returns true for refund-type entries
func (p *Payment) IsRefund() bool {
	return p.Type == PaymentTypeRefund
}

// GetAmountMoney returns the entry amount as a Money value object
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(p.Amount)
}
