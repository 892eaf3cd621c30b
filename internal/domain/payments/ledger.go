package payments

import (
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// Summary is the derived view of a sale's payment ledger. It is never
// persisted; it is recomputed from the entries on every read.
type Summary struct {
	TotalPayments decimal.Decimal `json:"totalPayments"`
	TotalRefunds  decimal.Decimal `json:"totalRefunds"`
	NetPaid       decimal.Decimal `json:"netPaid"`
	SaleTotal     decimal.Decimal `json:"saleTotal"`
	Balance       decimal.Decimal `json:"balance"`
}

// Summarize computes the ledger summary for a sale total
func Summarize(entries []Payment, saleTotal decimal.Decimal) Summary {
	totalPayments := decimal.Zero
	totalRefunds := decimal.Zero

	for idx := range entries {
		switch entries[idx].Type {
		case PaymentTypePayment:
			totalPayments = totalPayments.Add(entries[idx].Amount)
		case PaymentTypeRefund:
			totalRefunds = totalRefunds.Add(entries[idx].Amount)
		}
	}

	netPaid := totalPayments.Sub(totalRefunds)

	return Summary{
		TotalPayments: totalPayments,
		TotalRefunds:  totalRefunds,
		NetPaid:       netPaid,
		SaleTotal:     saleTotal,
		Balance:       saleTotal.Sub(netPaid),
	}
}

// IsSettled returns true when nothing is owed
func (s Summary) IsSettled() bool {
	return s.Balance.LessThanOrEqual(decimal.Zero)
}

// ValidatePayment checks that a payment amount fits the outstanding
// balance: overpayment is rejected before any entry is written.
func (s Summary) ValidatePayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if amount.Amount().GreaterThan(s.Balance) {
		return shared.ErrExceedsBalance
	}
	return nil
}

// ValidateRefund checks that a refund amount never drives net paid
// below zero.
func (s Summary) ValidateRefund(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if amount.Amount().GreaterThan(s.NetPaid) {
		return shared.ErrExceedsNetPaid
	}
	return nil
}
