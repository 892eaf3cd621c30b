package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/sales"
)

// ==================== Sale DTOs ====================

// CustomerInput carries the customer snapshot for a new sale
type CustomerInput struct {
	Name           string `json:"name" binding:"required,min=1,max=200"`
	DocumentType   string `json:"documentType" binding:"omitempty,oneof=dni ruc ce passport"`
	DocumentNumber string `json:"documentNumber" binding:"omitempty,max=30"`
	Email          string `json:"email" binding:"omitempty,email,max=200"`
	Phone          string `json:"phone" binding:"omitempty,max=30"`
	Address        string `json:"address" binding:"omitempty,max=300"`
}

// CreateSaleItemInput represents one line item in a create request.
// SKU, name and unit price are snapshotted from the catalog product.
type CreateSaleItemInput struct {
	ProductID   uuid.UUID        `json:"productId" binding:"required"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	DiscountPct *decimal.Decimal `json:"discountPct"`
}

// CreateSaleRequest represents a request to create a quote or reservation
type CreateSaleRequest struct {
	Customer       CustomerInput         `json:"customer" binding:"required"`
	Items          []CreateSaleItemInput `json:"items"`
	Discount       *decimal.Decimal      `json:"discount"`
	ShippingCost   *decimal.Decimal      `json:"shippingCost"`
	ShippingMethod string                `json:"shippingMethod" binding:"omitempty,max=100"`
	ValidUntil     *time.Time            `json:"validUntil"`
	Notes          string                `json:"notes" binding:"omitempty,max=1000"`
	InternalNotes  string                `json:"internalNotes" binding:"omitempty,max=1000"`
}

// UpdateSaleRequest represents a request to update an editable sale
type UpdateSaleRequest struct {
	Discount       *decimal.Decimal `json:"discount"`
	ShippingCost   *decimal.Decimal `json:"shippingCost"`
	ShippingMethod *string          `json:"shippingMethod" binding:"omitempty,max=100"`
	ValidUntil     *time.Time       `json:"validUntil"`
	Notes          *string          `json:"notes" binding:"omitempty,max=1000"`
	InternalNotes  *string          `json:"internalNotes" binding:"omitempty,max=1000"`
}

// AddSaleItemRequest represents a request to add a line item to a sale
type AddSaleItemRequest struct {
	ProductID   uuid.UUID        `json:"productId" binding:"required"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	DiscountPct *decimal.Decimal `json:"discountPct"`
}

// UpdateSaleItemRequest represents a request to update a line item
type UpdateSaleItemRequest struct {
	Quantity    *int64           `json:"quantity" binding:"omitempty,min=1"`
	DiscountPct *decimal.Decimal `json:"discountPct"`
}

// PayRequest represents a request to mark a sale as paid
type PayRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,min=1,max=50"`
}

// CancelSaleRequest represents a request to cancel a sale
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// RejectSaleRequest represents a request to reject a quote
type RejectSaleRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// CreateLinkedSaleRequest represents a request to create an add-on sale
// against a paid or processing parent
type CreateLinkedSaleRequest struct {
	Items          []CreateSaleItemInput `json:"items" binding:"required,min=1"`
	Discount       *decimal.Decimal      `json:"discount"`
	ShippingCost   *decimal.Decimal      `json:"shippingCost"`
	ShippingMethod string                `json:"shippingMethod" binding:"omitempty,max=100"`
	Notes          string                `json:"notes" binding:"omitempty,max=1000"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Search    string     `form:"search"`
	Status    *string    `form:"status" binding:"omitempty"`
	Statuses  []string   `form:"statuses"`
	StartDate *time.Time `form:"startDate"`
	EndDate   *time.Time `form:"endDate"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"orderBy"`
	OrderDir  string     `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents the customer snapshot in API responses
type CustomerResponse struct {
	Name           string `json:"name"`
	DocumentType   string `json:"documentType,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
}

// SaleItemResponse represents a line item in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	SaleNumber     string             `json:"saleNumber"`
	Customer       CustomerResponse   `json:"customer"`
	Items          []SaleItemResponse `json:"items"`
	ItemCount      int                `json:"itemCount"`
	TotalQuantity  int64              `json:"totalQuantity"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	ShippingCost   decimal.Decimal    `json:"shippingCost"`
	ShippingMethod string             `json:"shippingMethod,omitempty"`
	Total          decimal.Decimal    `json:"total"`
	Tax            decimal.Decimal    `json:"tax"`
	Status         string             `json:"status"`
	PaymentMethod  string             `json:"paymentMethod,omitempty"`
	ValidUntil     *time.Time         `json:"validUntil,omitempty"`
	ParentSaleID   *uuid.UUID         `json:"parentSaleId,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	InternalNotes  string             `json:"internalNotes,omitempty"`
	PaidAt         *time.Time         `json:"paidAt,omitempty"`
	ShippedAt      *time.Time         `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
	CancelledAt    *time.Time         `json:"cancelledAt,omitempty"`
	CancelReason   string             `json:"cancelReason,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	Version        int                `json:"version"`
}

// SaleListItemResponse represents a sale in list responses (less detail)
type SaleListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	SaleNumber   string          `json:"saleNumber"`
	CustomerName string          `json:"customerName"`
	ItemCount    int             `json:"itemCount"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	ParentSaleID *uuid.UUID      `json:"parentSaleId,omitempty"`
	PaidAt       *time.Time      `json:"paidAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// AggregateResponse represents the combined view of a parent sale and
// all of its linked sales
type AggregateResponse struct {
	Items        []SaleItemResponse `json:"items"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discount     decimal.Decimal    `json:"discount"`
	ShippingCost decimal.Decimal    `json:"shippingCost"`
	Total        decimal.Decimal    `json:"total"`
	Tax          decimal.Decimal    `json:"tax"`
	SaleNumbers  []string           `json:"saleNumbers"`
}

// ToCustomer converts the input DTO to the domain customer snapshot
func (c CustomerInput) ToCustomer() sales.Customer {
	return sales.Customer{
		Name:           c.Name,
		DocumentType:   sales.DocumentType(c.DocumentType),
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
	}
}

// ToSaleItemResponse converts a domain SaleItem to a response DTO
func ToSaleItemResponse(item *sales.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		SKU:         item.SKU,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		DiscountPct: item.DiscountPct,
		Subtotal:    item.Subtotal,
	}
}

// ToSaleResponse converts a domain Sale to a response DTO
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i := range sale.Items {
		items[i] = ToSaleItemResponse(&sale.Items[i])
	}

	return SaleResponse{
		ID:         sale.ID,
		SaleNumber: sale.SaleNumber,
		Customer: CustomerResponse{
			Name:           sale.Customer.Name,
			DocumentType:   string(sale.Customer.DocumentType),
			DocumentNumber: sale.Customer.DocumentNumber,
			Email:          sale.Customer.Email,
			Phone:          sale.Customer.Phone,
			Address:        sale.Customer.Address,
		},
		Items:          items,
		ItemCount:      sale.ItemCount(),
		TotalQuantity:  sale.TotalQuantity(),
		Subtotal:       sale.Subtotal,
		Discount:       sale.Discount,
		ShippingCost:   sale.ShippingCost,
		ShippingMethod: sale.ShippingMethod,
		Total:          sale.Total,
		Tax:            sale.Tax,
		Status:         string(sale.Status),
		PaymentMethod:  sale.PaymentMethod,
		ValidUntil:     sale.ValidUntil,
		ParentSaleID:   sale.ParentSaleID,
		Notes:          sale.Notes,
		InternalNotes:  sale.InternalNotes,
		PaidAt:         sale.PaidAt,
		ShippedAt:      sale.ShippedAt,
		DeliveredAt:    sale.DeliveredAt,
		CancelledAt:    sale.CancelledAt,
		CancelReason:   sale.CancelReason,
		CreatedAt:      sale.CreatedAt,
		UpdatedAt:      sale.UpdatedAt,
		Version:        sale.Version,
	}
}

// ToSaleListItemResponse converts a domain Sale to a list item DTO
func ToSaleListItemResponse(sale *sales.Sale) SaleListItemResponse {
	return SaleListItemResponse{
		ID:           sale.ID,
		SaleNumber:   sale.SaleNumber,
		CustomerName: sale.Customer.Name,
		ItemCount:    sale.ItemCount(),
		Total:        sale.Total,
		Status:       string(sale.Status),
		ParentSaleID: sale.ParentSaleID,
		PaidAt:       sale.PaidAt,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
	}
}

// ToSaleListItemResponses converts a slice of domain Sales to list item DTOs
func ToSaleListItemResponses(saleList []sales.Sale) []SaleListItemResponse {
	responses := make([]SaleListItemResponse, len(saleList))
	for i := range saleList {
		responses[i] = ToSaleListItemResponse(&saleList[i])
	}
	return responses
}

// ToAggregateResponse converts a domain AggregatedSale to a response DTO
func ToAggregateResponse(aggregated *sales.AggregatedSale) AggregateResponse {
	items := make([]SaleItemResponse, len(aggregated.Items))
	for i := range aggregated.Items {
		items[i] = ToSaleItemResponse(&aggregated.Items[i])
	}

	return AggregateResponse{
		Items:        items,
		Subtotal:     aggregated.Subtotal,
		Discount:     aggregated.Discount,
		ShippingCost: aggregated.ShippingCost,
		Total:        aggregated.Total,
		Tax:          aggregated.Tax,
		SaleNumbers:  aggregated.SaleNumbers,
	}
}
