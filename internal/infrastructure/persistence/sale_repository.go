package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ventas/backend/internal/domain/sales"
	"github.com/ventas/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID, items included
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindBySaleNumber finds a sale by its human-readable number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_number = ?", saleNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindByStatus finds sales in the given status
func (r *GormSaleRepository) FindByStatus(ctx context.Context, status sales.SaleStatus, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindLinked finds all sales referencing the given parent sale
func (r *GormSaleRepository) FindLinked(ctx context.Context, parentSaleID uuid.UUID) ([]sales.Sale, error) {
	var result []sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("parent_sale_id = ?", parentSaleID).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates a sale together with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sale).Error; err != nil {
			return err
		}

		if sale.ID != uuid.Nil {
			if err := r.syncItems(tx, sale); err != nil {
				return err
			}
		}

		return nil
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&sales.Sale{}).
			Where("id = ?", sale.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != sale.Version {
			return shared.ErrConcurrentModification
		}

		sale.Version++
		sale.UpdatedAt = time.Now()

		result := tx.Model(&sales.Sale{}).
			Where("id = ? AND version = ?", sale.ID, currentVersion).
			Updates(map[string]interface{}{
				"customer_name":            sale.Customer.Name,
				"customer_document_type":   sale.Customer.DocumentType,
				"customer_document_number": sale.Customer.DocumentNumber,
				"customer_email":           sale.Customer.Email,
				"customer_phone":           sale.Customer.Phone,
				"customer_address":         sale.Customer.Address,
				"subtotal":                 sale.Subtotal,
				"discount":                 sale.Discount,
				"shipping_cost":            sale.ShippingCost,
				"shipping_method":          sale.ShippingMethod,
				"total":                    sale.Total,
				"tax":                      sale.Tax,
				"status":                   sale.Status,
				"payment_method":           sale.PaymentMethod,
				"valid_until":              sale.ValidUntil,
				"notes":                    sale.Notes,
				"internal_notes":           sale.InternalNotes,
				"paid_at":                  sale.PaidAt,
				"shipped_at":               sale.ShippedAt,
				"delivered_at":             sale.DeliveredAt,
				"cancelled_at":             sale.CancelledAt,
				"cancel_reason":            sale.CancelReason,
				"version":                  sale.Version,
				"updated_at":               sale.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrentModification
		}

		return r.syncItems(tx, sale)
	})
}

// syncItems reconciles the stored item rows with the aggregate's current
// item list: removed items are deleted, the rest upserted.
func (r *GormSaleRepository) syncItems(tx *gorm.DB, sale *sales.Sale) error {
	currentItemIDs := make([]uuid.UUID, len(sale.Items))
	for i, item := range sale.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("sale_id = ? AND id NOT IN ?", sale.ID, currentItemIDs).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sale_id = ?", sale.ID).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	}

	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		if err := tx.Save(&sale.Items[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a sale and its items
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&sales.Sale{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&sales.Sale{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// existsBySaleNumber checks if a sale number is already taken
func (r *GormSaleRepository) existsBySaleNumber(ctx context.Context, saleNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("sale_number = ?", saleNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateSaleNumber generates a unique sale number.
// Format: SV-YYYY-NNNNN (e.g., SV-2026-00001)
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("SV-%d-", year)

	var lastSale sales.Sale
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.SaleNumber != "" {
		parts := strings.Split(lastSale.SaleNumber, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	saleNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.existsBySaleNumber(ctx, saleNumber)
	if err != nil {
		return "", err
	}
	if exists {
		// Another writer took the number, bump until a free one appears
		for i := 0; i < 100; i++ {
			nextNum++
			saleNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.existsBySaleNumber(ctx, saleNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return saleNumber, nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "parent_sale_id":
			query = query.Where("parent_sale_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
