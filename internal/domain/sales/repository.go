package sales

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventas/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its human-readable number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds all sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// FindByStatus finds sales in the given status
	FindByStatus(ctx context.Context, status SaleStatus, filter shared.Filter) ([]Sale, error)

	// FindLinked finds all sales referencing the given parent sale
	FindLinked(ctx context.Context, parentSaleID uuid.UUID) ([]Sale, error)

	// Save creates or updates a sale together with its items
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves with an optimistic version check.
	// A stale version fails with CONCURRENT_MODIFICATION.
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Delete removes a sale and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateSaleNumber generates the next sale number (SV-YYYY-NNNNN)
	GenerateSaleNumber(ctx context.Context) (string, error)
}
