package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/ventas/backend/internal/application/sales"
)

// SaleHandler handles sale lifecycle API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// saleID parses the :id path parameter. A false return means the error
// response has already been written.
func (h *SaleHandler) saleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return uuid.Nil, false
	}
	return id, true
}

// CreateQuote creates a new sale in quote status. Quotes never touch stock.
func (h *SaleHandler) CreateQuote(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.CreateQuote(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// CreateReservation creates a new sale in reservation status, reserving
// stock for every line item.
func (h *SaleHandler) CreateReservation(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID retrieves a sale with its items
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List retrieves sales with filtering and pagination
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	saleList, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, saleList, total, page, pageSize)
}

// Update updates an editable sale's discount, shipping, validity and notes
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Delete removes a quote or a terminal (cancelled/rejected) sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem adds a line item to an editable sale
func (h *SaleHandler) AddItem(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.AddSaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// UpdateItem updates a line item's quantity or discount
func (h *SaleHandler) UpdateItem(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req salesapp.UpdateSaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// RemoveItem removes a line item from an editable sale
func (h *SaleHandler) RemoveItem(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	sale, err := h.saleService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Convert converts a quote into a reservation, reserving stock
func (h *SaleHandler) Convert(c *gin.Context) {
	h.transition(c, h.saleService.Convert)
}

// Confirm confirms a reservation, deducting the reserved stock (paid)
func (h *SaleHandler) Confirm(c *gin.Context) {
	h.transition(c, h.saleService.ConfirmReservation)
}

// Pay marks a pending or quoted sale as paid
func (h *SaleHandler) Pay(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Pay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Process moves a paid sale into fulfillment
func (h *SaleHandler) Process(c *gin.Context) {
	h.transition(c, h.saleService.Process)
}

// Ship marks a processing sale as shipped
func (h *SaleHandler) Ship(c *gin.Context) {
	h.transition(c, h.saleService.Ship)
}

// Deliver marks a shipped sale as delivered
func (h *SaleHandler) Deliver(c *gin.Context) {
	h.transition(c, h.saleService.Deliver)
}

// Cancel cancels a sale, releasing or restoring any held stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Reject marks a quote as rejected by the customer
func (h *SaleHandler) Reject(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.RejectSaleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	sale, err := h.saleService.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// CreateLinked creates an add-on sale against a paid or processing parent
func (h *SaleHandler) CreateLinked(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.CreateLinkedSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.CreateLinked(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetLinked retrieves every sale linked to a parent
func (h *SaleHandler) GetLinked(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	linked, err := h.saleService.GetLinked(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, linked)
}

// Aggregate retrieves the combined view of a parent sale and its linked sales
func (h *SaleHandler) Aggregate(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	aggregate, err := h.saleService.Aggregate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, aggregate)
}

func (h *SaleHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*salesapp.SaleResponse, error)) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	sale, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}
