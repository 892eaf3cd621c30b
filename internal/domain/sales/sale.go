package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// DocumentType identifies the kind of customer identity document
type DocumentType string

const (
	DocumentTypeDNI      DocumentType = "dni"
	DocumentTypeRUC      DocumentType = "ruc"
	DocumentTypeCE       DocumentType = "ce"
	DocumentTypePassport DocumentType = "passport"
)

// IsValid checks if the document type is supported
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeDNI, DocumentTypeRUC, DocumentTypeCE, DocumentTypePassport:
		return true
	}
	return false
}

// Customer is the customer snapshot embedded in a sale.
// Document type and number are separate fields; no combined
// "type:number" string encoding anywhere.
type Customer struct {
	Name           string       `gorm:"column:customer_name;type:varchar(200);not null"`
	DocumentType   DocumentType `gorm:"column:customer_document_type;type:varchar(20)"`
	DocumentNumber string       `gorm:"column:customer_document_number;type:varchar(30)"`
	Email          string       `gorm:"column:customer_email;type:varchar(200)"`
	Phone          string       `gorm:"column:customer_phone;type:varchar(30)"`
	Address        string       `gorm:"column:customer_address;type:varchar(300)"`
}

// Validate checks the customer snapshot
func (c Customer) Validate() error {
	if c.Name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if c.DocumentType != "" && !c.DocumentType.IsValid() {
		return shared.NewDomainError("INVALID_CUSTOMER", "Unsupported document type")
	}
	if c.DocumentType != "" && c.DocumentNumber == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Document number is required when document type is set")
	}
	return nil
}

// SaleItem represents a line item in a sale.
// The subtotal is always recomputed from quantity, unit price and
// discount; it is never stored independently of its inputs.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	SKU         string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal // Tax-inclusive, snapshot at add-time
	DiscountPct decimal.Decimal // Per-item discount percentage [0,100]
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSaleItem creates a new sale line item
func NewSaleItem(saleID, productID uuid.UUID, sku, productName string, quantity int64, unitPrice valueobject.Money, discountPct decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	subtotal, err := LineSubtotal(unitPrice.Amount(), quantity, discountPct)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		SKU:         sku,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		DiscountPct: discountPct,
		Subtotal:    subtotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the item quantity and recomputes the subtotal
func (i *SaleItem) UpdateQuantity(quantity int64) error {
	subtotal, err := LineSubtotal(i.UnitPrice, quantity, i.DiscountPct)
	if err != nil {
		return err
	}

	i.Quantity = quantity
	i.Subtotal = subtotal
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateDiscount updates the per-item discount and recomputes the subtotal
func (i *SaleItem) UpdateDiscount(discountPct decimal.Decimal) error {
	subtotal, err := LineSubtotal(i.UnitPrice, i.Quantity, discountPct)
	if err != nil {
		return err
	}

	i.DiscountPct = discountPct
	i.Subtotal = subtotal
	i.UpdatedAt = time.Now()

	return nil
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (i *SaleItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(i.UnitPrice)
}

// GetSubtotalMoney returns the line subtotal as a Money value object
func (i *SaleItem) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(i.Subtotal)
}

// Sale is the aggregate root for quotes and orders.
// It owns the lifecycle status; stock and payment effects are
// orchestrated by the application layer around its transitions.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber     string
	Customer       Customer `gorm:"embedded"`
	Items          []SaleItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal // Order-level discount, absolute amount
	ShippingCost   decimal.Decimal
	ShippingMethod string
	Total          decimal.Decimal
	Tax            decimal.Decimal // Extracted from the tax-inclusive total, informational
	Status         SaleStatus
	PaymentMethod  string
	ValidUntil     *time.Time // Quote validity date
	ParentSaleID   *uuid.UUID // Set on linked sales
	Notes          string
	InternalNotes  string
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
}

// newSale creates a sale in the given initial status
func newSale(saleNumber string, customer Customer, status SaleStatus) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(saleNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		Customer:          customer,
		Items:             make([]SaleItem, 0),
		Subtotal:          decimal.Zero,
		Discount:          decimal.Zero,
		ShippingCost:      decimal.Zero,
		Total:             decimal.Zero,
		Tax:               decimal.Zero,
		Status:            status,
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// NewQuote creates a sale in quote status. Quotes never touch stock.
func NewQuote(saleNumber string, customer Customer) (*Sale, error) {
	return newSale(saleNumber, customer, SaleStatusQuote)
}

// NewReservation creates a sale in reservation status. The caller is
// responsible for reserving stock for every line item at creation.
func NewReservation(saleNumber string, customer Customer) (*Sale, error) {
	return newSale(saleNumber, customer, SaleStatusReservation)
}

// ItemInput carries the data needed to build one line item at creation
type ItemInput struct {
	ProductID   uuid.UUID
	SKU         string
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
	DiscountPct decimal.Decimal
}

// NewLinkedSale creates an add-on sale already in paid status referencing
// a parent. Only paid or processing parents accept linked sales. Items
// are fixed at creation; a paid sale is not editable afterwards.
func NewLinkedSale(parent *Sale, saleNumber string, items []ItemInput, discount, shippingCost decimal.Decimal, shippingMethod, notes string) (*Sale, error) {
	if parent == nil {
		return nil, shared.ErrNotFound
	}
	if parent.Status != SaleStatusPaid && parent.Status != SaleStatusProcessing {
		return nil, shared.ErrParentNotEligible
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot create a linked sale without items")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if shippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipping cost cannot be negative")
	}

	sale, err := newSale(saleNumber, parent.Customer, SaleStatusPaid)
	if err != nil {
		return nil, err
	}

	for _, input := range items {
		item, err := NewSaleItem(sale.ID, input.ProductID, input.SKU, input.ProductName, input.Quantity, input.UnitPrice, input.DiscountPct)
		if err != nil {
			return nil, err
		}
		sale.Items = append(sale.Items, *item)
	}

	parentID := parent.ID
	now := time.Now()
	sale.ParentSaleID = &parentID
	sale.Discount = discount
	sale.ShippingCost = shippingCost
	sale.ShippingMethod = shippingMethod
	sale.Notes = notes
	sale.PaymentMethod = parent.PaymentMethod
	sale.PaidAt = &now
	sale.recalculateTotals()

	sale.AddDomainEvent(NewLinkedSaleCreatedEvent(sale, parent))

	return sale, nil
}

// IsLinked returns true if this sale references a parent sale
func (s *Sale) IsLinked() bool {
	return s.ParentSaleID != nil
}

// CanModify returns true if line items, discount and shipping can change
func (s *Sale) CanModify() bool {
	return s.Status.IsEditable()
}

// AddItem adds a new line item. Only allowed while the sale is editable.
func (s *Sale) AddItem(productID uuid.UUID, sku, productName string, quantity int64, unitPrice valueobject.Money, discountPct decimal.Decimal) (*SaleItem, error) {
	if !s.CanModify() {
		return nil, shared.NewDomainError("NOT_EDITABLE", fmt.Sprintf("Cannot add items to a sale in %s status", s.Status))
	}

	for _, item := range s.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in sale, update quantity instead")
		}
	}

	item, err := NewSaleItem(s.ID, productID, sku, productName, quantity, unitPrice, discountPct)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing line item
func (s *Sale) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if !s.CanModify() {
		return shared.NewDomainError("NOT_EDITABLE", fmt.Sprintf("Cannot update items of a sale in %s status", s.Status))
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			s.recalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// UpdateItemDiscount updates the per-item discount of an existing line item
func (s *Sale) UpdateItemDiscount(itemID uuid.UUID, discountPct decimal.Decimal) error {
	if !s.CanModify() {
		return shared.NewDomainError("NOT_EDITABLE", fmt.Sprintf("Cannot update items of a sale in %s status", s.Status))
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].UpdateDiscount(discountPct); err != nil {
				return err
			}
			s.recalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// RemoveItem removes a line item from the sale
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if !s.CanModify() {
		return shared.NewDomainError("NOT_EDITABLE", fmt.Sprintf("Cannot remove items from a sale in %s status", s.Status))
	}

	for idx, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.recalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// SetDiscount sets the order-level absolute discount
func (s *Sale) SetDiscount(discount decimal.Decimal) error {
	if !s.CanModify() {
		return shared.NewDomainError("NOT_EDITABLE", fmt.Sprintf("Cannot change discount of a sale in %s status", s.Status))
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}

	s.Discount = discount
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return nil
}

// SetShipping sets the shipping cost and method
func (s *Sale) SetShipping(cost decimal.Decimal, method string) error {
	if !s.CanModify() {
		return shared.NewDomainError("NOT_EDITABLE", fmt.Sprintf("Cannot change shipping of a sale in %s status", s.Status))
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Shipping cost cannot be negative")
	}

	s.ShippingCost = cost
	s.ShippingMethod = method
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return nil
}

// SetValidUntil sets the quote validity date
func (s *Sale) SetValidUntil(validUntil *time.Time) {
	s.ValidUntil = validUntil
	s.UpdatedAt = time.Now()
}

// SetNotes sets the customer-visible and internal notes
func (s *Sale) SetNotes(notes, internalNotes string) {
	s.Notes = notes
	s.InternalNotes = internalNotes
	s.UpdatedAt = time.Now()
}

// ConvertToPending moves a quote to pending.
// The caller must have verified availability and reserved stock for
// every line item before persisting the transition.
func (s *Sale) ConvertToPending() error {
	if s.Status != SaleStatusQuote {
		return s.transitionError(SaleStatusPending)
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot convert a quote without items")
	}

	s.changeStatus(SaleStatusPending)

	return nil
}

// ConfirmReservation resolves a reservation using the outstanding balance:
// a settled balance goes straight to paid, otherwise the sale becomes
// pending. On the paid path the caller must confirm the stock deduction.
func (s *Sale) ConfirmReservation(balance decimal.Decimal) (SaleStatus, error) {
	if s.Status != SaleStatusReservation {
		return "", s.transitionError(SaleStatusPending)
	}

	if balance.LessThanOrEqual(decimal.Zero) {
		now := time.Now()
		s.PaidAt = &now
		s.changeStatus(SaleStatusPaid)
		s.AddDomainEvent(NewSalePaidEvent(s))
		return SaleStatusPaid, nil
	}

	s.changeStatus(SaleStatusPending)
	return SaleStatusPending, nil
}

// MarkAsPaid moves a pending sale to paid.
// The caller must confirm the stock deduction for every line item.
func (s *Sale) MarkAsPaid(paymentMethod string) error {
	if !s.Status.CanTransitionTo(SaleStatusPaid) || s.Status == SaleStatusReservation {
		return s.transitionError(SaleStatusPaid)
	}
	if paymentMethod == "" {
		return shared.ErrMissingPaymentMethod
	}

	now := time.Now()
	s.PaymentMethod = paymentMethod
	s.PaidAt = &now
	s.changeStatus(SaleStatusPaid)

	s.AddDomainEvent(NewSalePaidEvent(s))

	return nil
}

// SetPaymentMethod records the method used to settle the sale
func (s *Sale) SetPaymentMethod(method string) {
	s.PaymentMethod = method
	s.UpdatedAt = time.Now()
}

// StartProcessing moves a paid sale to processing
func (s *Sale) StartProcessing() error {
	if !s.Status.CanTransitionTo(SaleStatusProcessing) {
		return s.transitionError(SaleStatusProcessing)
	}

	s.changeStatus(SaleStatusProcessing)

	return nil
}

// MarkShipped moves a processing sale to shipped
func (s *Sale) MarkShipped() error {
	if !s.Status.CanTransitionTo(SaleStatusShipped) {
		return s.transitionError(SaleStatusShipped)
	}

	now := time.Now()
	s.ShippedAt = &now
	s.changeStatus(SaleStatusShipped)

	return nil
}

// MarkDelivered moves a shipped sale to its terminal delivered state
func (s *Sale) MarkDelivered() error {
	if !s.Status.CanTransitionTo(SaleStatusDelivered) {
		return s.transitionError(SaleStatusDelivered)
	}

	now := time.Now()
	s.DeliveredAt = &now
	s.changeStatus(SaleStatusDelivered)

	return nil
}

// Cancel cancels the sale. The caller releases or restores stock
// depending on whether the previous status held a reservation or a
// deduction.
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return s.transitionError(SaleStatusCancelled)
	}

	previous := s.Status
	now := time.Now()
	s.CancelledAt = &now
	s.CancelReason = reason
	s.changeStatus(SaleStatusCancelled)

	s.AddDomainEvent(NewSaleCancelledEvent(s, previous))

	return nil
}

// Reject marks a quote as rejected by the customer. No stock impact.
func (s *Sale) Reject(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusRejected) {
		return s.transitionError(SaleStatusRejected)
	}

	now := time.Now()
	s.CancelledAt = &now
	s.CancelReason = reason
	s.changeStatus(SaleStatusRejected)

	return nil
}

// CanDelete returns true if the sale can be removed entirely
func (s *Sale) CanDelete() bool {
	return s.Status == SaleStatusQuote || s.Status == SaleStatusCancelled || s.Status == SaleStatusRejected
}

// changeStatus applies a status change and emits the generic event
func (s *Sale) changeStatus(target SaleStatus) {
	previous := s.Status
	s.Status = target
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleStatusChangedEvent(s, previous, target))
}

// transitionError builds the uniform invalid-transition error
func (s *Sale) transitionError(target SaleStatus) error {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot move sale from %s to %s", s.Status, target))
}

// recalculateTotals recomputes subtotal, total and extracted tax.
// The total is not clamped at zero when the discount exceeds
// subtotal plus shipping.
func (s *Sale) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	s.Subtotal = subtotal
	s.Total = subtotal.Sub(s.Discount).Add(s.ShippingCost)
	s.Tax = ExtractTax(s.Total)
}

// GetTotalMoney returns the sale total as a Money value object
func (s *Sale) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(s.Total)
}

// GetSubtotalMoney returns the sale subtotal as a Money value object
func (s *Sale) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(s.Subtotal)
}

// ItemCount returns the number of line items
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// TotalQuantity returns the sum of all item quantities
func (s *Sale) TotalQuantity() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// GetItem returns an item by its ID
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// GetItemByProduct returns an item by product ID
func (s *Sale) GetItemByProduct(productID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			return &s.Items[idx]
		}
	}
	return nil
}
