package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU   string          `json:"sku" binding:"required,min=1,max=50"`
	Name  string          `json:"name" binding:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int64           `json:"stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Price      *decimal.Decimal `json:"price"`
	OfferPrice *decimal.Decimal `json:"offerPrice"`
	Active     *bool            `json:"active"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Quantity int64  `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"omitempty,max=200"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"activeOnly"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"orderBy"`
	OrderDir   string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// AvailabilityCheckItem is one product-quantity pair in a check request
type AvailabilityCheckItem struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// AvailabilityCheckRequest represents an availability check across products
type AvailabilityCheckRequest struct {
	Items []AvailabilityCheckItem `json:"items" binding:"required,min=1"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID        `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OfferPrice    *decimal.Decimal `json:"offerPrice,omitempty"`
	Stock         int64            `json:"stock"`
	ReservedStock int64            `json:"reservedStock"`
	Available     int64            `json:"available"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Version       int              `json:"version"`
}

// StockResponse represents the stock position of a single product
type StockResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	SKU           string    `json:"sku"`
	Stock         int64     `json:"stock"`
	ReservedStock int64     `json:"reservedStock"`
	Available     int64     `json:"available"`
}

// ToProductResponse converts a domain Product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		SKU:           product.SKU,
		Name:          product.Name,
		Price:         product.Price,
		OfferPrice:    product.OfferPrice,
		Stock:         product.Stock,
		ReservedStock: product.ReservedStock,
		Available:     product.Available(),
		Active:        product.Active,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
		Version:       product.Version,
	}
}

// ToProductResponses converts a slice of domain Products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToStockResponse converts a domain Product to its stock position DTO
func ToStockResponse(product *catalog.Product) StockResponse {
	return StockResponse{
		ProductID:     product.ID,
		SKU:           product.SKU,
		Stock:         product.Stock,
		ReservedStock: product.ReservedStock,
		Available:     product.Available(),
	}
}
