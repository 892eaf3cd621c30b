package payments

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment ledger persistence
type PaymentRepository interface {
	// FindByID finds a ledger entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// ListBySale lists all ledger entries for a sale, oldest first
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]Payment, error)

	// Insert appends a ledger entry
	Insert(ctx context.Context, payment *Payment) error

	// Delete removes a ledger entry
	Delete(ctx context.Context, id uuid.UUID) error
}
