package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paymentsapp "github.com/ventas/backend/internal/application/payments"
)

// PaymentHandler handles the payment ledger API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentsapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentsapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) saleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return uuid.Nil, false
	}
	return id, true
}

// AddPayment appends a payment entry to a sale's ledger
func (h *PaymentHandler) AddPayment(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req paymentsapp.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.paymentService.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// AddRefund appends a refund entry to a sale's ledger
func (h *PaymentHandler) AddRefund(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req paymentsapp.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.paymentService.AddRefund(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// List retrieves a sale's ledger entries in chronological order
func (h *PaymentHandler) List(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	entries, err := h.paymentService.List(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// Delete removes a ledger entry while the sale is still settling
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id, paymentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary retrieves the ledger summary for a sale
func (h *PaymentHandler) Summary(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	summary, err := h.paymentService.Summary(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
