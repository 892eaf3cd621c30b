package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleCreated       = "SaleCreated"
	EventTypeSaleStatusChanged = "SaleStatusChanged"
	EventTypeSalePaid          = "SalePaid"
	EventTypeSaleCancelled     = "SaleCancelled"
	EventTypeLinkedSaleCreated = "LinkedSaleCreated"
)

// SaleCreatedEvent is published when a new sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID  `json:"sale_id"`
	SaleNumber   string     `json:"sale_number"`
	Status       SaleStatus `json:"status"`
	CustomerName string     `json:"customer_name"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		Status:          sale.Status,
		CustomerName:    sale.Customer.Name,
	}
}

// SaleStatusChangedEvent is published on every status transition
type SaleStatusChangedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID  `json:"sale_id"`
	SaleNumber string     `json:"sale_number"`
	OldStatus  SaleStatus `json:"old_status"`
	NewStatus  SaleStatus `json:"new_status"`
}

// NewSaleStatusChangedEvent creates a new SaleStatusChangedEvent
func NewSaleStatusChangedEvent(sale *Sale, oldStatus, newStatus SaleStatus) *SaleStatusChangedEvent {
	return &SaleStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleStatusChanged, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// SalePaidEvent is published when a sale reaches paid status
type SalePaidEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
}

// NewSalePaidEvent creates a new SalePaidEvent
func NewSalePaidEvent(sale *Sale) *SalePaidEvent {
	return &SalePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalePaid, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		Total:           sale.Total,
		PaymentMethod:   sale.PaymentMethod,
	}
}

// SaleCancelledEvent is published when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID         uuid.UUID  `json:"sale_id"`
	SaleNumber     string     `json:"sale_number"`
	PreviousStatus SaleStatus `json:"previous_status"`
	Reason         string     `json:"reason,omitempty"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(sale *Sale, previousStatus SaleStatus) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		PreviousStatus:  previousStatus,
		Reason:          sale.CancelReason,
	}
}

// LinkedSaleCreatedEvent is published when an add-on sale is created
// against an already paid parent
type LinkedSaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID           uuid.UUID `json:"sale_id"`
	SaleNumber       string    `json:"sale_number"`
	ParentSaleID     uuid.UUID `json:"parent_sale_id"`
	ParentSaleNumber string    `json:"parent_sale_number"`
}

// NewLinkedSaleCreatedEvent creates a new LinkedSaleCreatedEvent
func NewLinkedSaleCreatedEvent(sale, parent *Sale) *LinkedSaleCreatedEvent {
	return &LinkedSaleCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeLinkedSaleCreated, AggregateTypeSale, sale.ID),
		SaleID:           sale.ID,
		SaleNumber:       sale.SaleNumber,
		ParentSaleID:     parent.ID,
		ParentSaleNumber: parent.SaleNumber,
	}
}
