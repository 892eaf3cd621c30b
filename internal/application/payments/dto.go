package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/payments"
)

// ==================== Payment DTOs ====================

// AddEntryRequest represents a request to append a payment or refund entry
type AddEntryRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,min=1,max=50"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	Reference     string          `json:"reference" binding:"omitempty,max=100"`
	Notes         string          `json:"notes" binding:"omitempty,max=500"`
}

// PaymentResponse represents a ledger entry in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	SaleID        uuid.UUID       `json:"saleId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SummaryResponse represents the ledger summary in API responses
type SummaryResponse struct {
	TotalPayments decimal.Decimal `json:"totalPayments"`
	TotalRefunds  decimal.Decimal `json:"totalRefunds"`
	NetPaid       decimal.Decimal `json:"netPaid"`
	SaleTotal     decimal.Decimal `json:"saleTotal"`
	Balance       decimal.Decimal `json:"balance"`
	IsSettled     bool            `json:"isSettled"`
}

// ToPaymentResponse converts a domain ledger entry to a response DTO
func ToPaymentResponse(payment *payments.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		SaleID:        payment.SaleID,
		Type:          string(payment.Type),
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		PaymentDate:   payment.PaymentDate,
		Reference:     payment.Reference,
		Notes:         payment.Notes,
		CreatedAt:     payment.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of ledger entries to response DTOs
func ToPaymentResponses(entries []payments.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(entries))
	for i := range entries {
		responses[i] = ToPaymentResponse(&entries[i])
	}
	return responses
}

// ToSummaryResponse converts a domain summary to a response DTO
func ToSummaryResponse(summary payments.Summary) SummaryResponse {
	return SummaryResponse{
		TotalPayments: summary.TotalPayments,
		TotalRefunds:  summary.TotalRefunds,
		NetPaid:       summary.NetPaid,
		SaleTotal:     summary.SaleTotal,
		Balance:       summary.Balance,
		IsSettled:     summary.IsSettled(),
	}
}
