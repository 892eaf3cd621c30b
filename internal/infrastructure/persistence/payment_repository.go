package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ventas/backend/internal/domain/payments"
	"github.com/ventas/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a ledger entry by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payments.Payment, error) {
	var payment payments.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// ListBySale lists all ledger entries for a sale, oldest first
func (r *GormPaymentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]payments.Payment, error) {
	var entries []payments.Payment
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("payment_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert appends a ledger entry. Entries are append-only, Save-style
// upserts are deliberately not offered.
func (r *GormPaymentRepository) Insert(ctx context.Context, payment *payments.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// Delete removes a ledger entry
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&payments.Payment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ payments.PaymentRepository = (*GormPaymentRepository)(nil)
