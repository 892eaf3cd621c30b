package catalog

import (
	"github.com/google/uuid"

	"github.com/ventas/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeStockReserved  = "StockReserved"
	EventTypeStockReleased  = "StockReleased"
	EventTypeStockDeducted  = "StockDeducted"
	EventTypeStockRestored  = "StockRestored"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Stock     int64     `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Stock:           product.Stock,
	}
}

// StockReservedEvent is published when stock is held for a sale
type StockReservedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	Reserved  int64     `json:"reserved"`
	Available int64     `json:"available"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(product *Product, qty int64) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Quantity:        qty,
		Reserved:        product.ReservedStock,
		Available:       product.Available(),
	}
}

// StockReleasedEvent is published when a reservation is returned to available stock
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	Reserved  int64     `json:"reserved"`
	Available int64     `json:"available"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(product *Product, qty int64) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Quantity:        qty,
		Reserved:        product.ReservedStock,
		Available:       product.Available(),
	}
}

// StockDeductedEvent is published when a reservation becomes a final deduction
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	Stock     int64     `json:"stock"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(product *Product, qty int64) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Quantity:        qty,
		Stock:           product.Stock,
	}
}

// StockRestoredEvent is published when deducted stock is returned after a cancellation
type StockRestoredEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	Stock     int64     `json:"stock"`
}

// NewStockRestoredEvent creates a new StockRestoredEvent
func NewStockRestoredEvent(product *Product, qty int64) *StockRestoredEvent {
	return &StockRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestored, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Quantity:        qty,
		Stock:           product.Stock,
	}
}
