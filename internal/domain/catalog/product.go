package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable item in the catalog
// It is the aggregate root for stock operations: Stock and ReservedStock
// are mutated exclusively through the reservation methods below.
type Product struct {
	shared.BaseAggregateRoot
	SKU           string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string           `gorm:"type:varchar(200);not null"`
	Price         decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"` // Tax-inclusive selling price
	OfferPrice    *decimal.Decimal `gorm:"type:decimal(18,2)"`                    // Optional promotional price
	Stock         int64            `gorm:"not null;default:0"`
	ReservedStock int64            `gorm:"not null;default:0"`
	Active        bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name string, price valueobject.Money, stock int64) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Price:             price.Amount(),
		Stock:             stock,
		ReservedStock:     0,
		Active:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Available returns the stock available for new reservations
func (p *Product) Available() int64 {
	return p.Stock - p.ReservedStock
}

// HasStock returns true if any stock is available
func (p *Product) HasStock() bool {
	return p.Available() > 0
}

// GetPriceMoney returns the regular price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(p.Price)
}

// EffectivePrice returns the offer price when set, otherwise the regular price
func (p *Product) EffectivePrice() valueobject.Money {
	if p.OfferPrice != nil {
		return valueobject.NewMoneyPEN(*p.OfferPrice)
	}
	return valueobject.NewMoneyPEN(p.Price)
}

// UpdatePrice updates the regular selling price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetOfferPrice sets a promotional price
func (p *Product) SetOfferPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Offer price cannot be negative")
	}

	amount := price.Amount()
	p.OfferPrice = &amount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ClearOfferPrice removes the promotional price
func (p *Product) ClearOfferPrice() {
	p.OfferPrice = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Reserve holds a quantity against available stock for a sale in progress
func (p *Product) Reserve(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Reservation quantity must be positive")
	}
	if p.Available() < qty {
		return shared.ErrInsufficientStock
	}

	p.ReservedStock += qty
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockReservedEvent(p, qty))

	return nil
}

// Release returns a held quantity back to available stock.
// The reserved counter is floored at zero; correct callers never release
// more than they reserved.
func (p *Product) Release(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}

	p.ReservedStock -= qty
	if p.ReservedStock < 0 {
		p.ReservedStock = 0
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockReleasedEvent(p, qty))

	return nil
}

// ConfirmDeduction turns a reservation into a final stock deduction
func (p *Product) ConfirmDeduction(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Deduction quantity must be positive")
	}
	if p.Stock < qty {
		return shared.ErrInsufficientStock
	}

	p.Stock -= qty
	p.ReservedStock -= qty
	if p.ReservedStock < 0 {
		p.ReservedStock = 0
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockDeductedEvent(p, qty))

	return nil
}

// Restore returns previously deducted stock when a paid sale is cancelled
func (p *Product) Restore(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Restore quantity must be positive")
	}

	p.Stock += qty
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockRestoredEvent(p, qty))

	return nil
}

// Activate marks the product as sellable
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate removes the product from sale
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
