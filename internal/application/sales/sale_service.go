package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/catalog"
	"github.com/ventas/backend/internal/domain/payments"
	"github.com/ventas/backend/internal/domain/sales"
	"github.com/ventas/backend/internal/domain/shared"
)

// SaleService orchestrates the sale lifecycle. Stock movements and the
// payment ledger are coordinated here, around the aggregate's
// transitions; the aggregate itself never touches other repositories.
type SaleService struct {
	saleRepo       sales.SaleRepository
	productRepo    catalog.ProductRepository
	paymentRepo    payments.PaymentRepository
	eventPublisher shared.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository, productRepo catalog.ProductRepository, paymentRepo payments.PaymentRepository) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateQuote creates a new sale in quote status. Quotes never touch stock.
func (s *SaleService) CreateQuote(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := s.buildSale(ctx, req, sales.NewQuote)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// CreateReservation creates a new sale in reservation status and holds
// stock for every line item. A failed hold rolls back the holds already
// taken and the sale is not persisted.
func (s *SaleService) CreateReservation(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := s.buildSale(ctx, req, sales.NewReservation)
	if err != nil {
		return nil, err
	}

	if err := s.reserveItems(ctx, sale.Items); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		s.releaseItems(ctx, sale.Items)
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// buildSale assembles a new sale from the request, snapshotting SKU,
// name and effective price from the catalog for each line item
func (s *SaleService) buildSale(ctx context.Context, req CreateSaleRequest, newSale func(string, sales.Customer) (*sales.Sale, error)) (*sales.Sale, error) {
	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := newSale(saleNumber, req.Customer.ToCustomer())
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		discountPct := decimal.Zero
		if input.DiscountPct != nil {
			discountPct = *input.DiscountPct
		}

		if _, err := sale.AddItem(product.ID, product.SKU, product.Name, input.Quantity, product.EffectivePrice(), discountPct); err != nil {
			return nil, err
		}
	}

	if req.Discount != nil {
		if err := sale.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.ShippingCost != nil || req.ShippingMethod != "" {
		cost := decimal.Zero
		if req.ShippingCost != nil {
			cost = *req.ShippingCost
		}
		if err := sale.SetShipping(cost, req.ShippingMethod); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		sale.SetValidUntil(req.ValidUntil)
	}
	if req.Notes != "" || req.InternalNotes != "" {
		sale.SetNotes(req.Notes, req.InternalNotes)
	}

	return sale, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetBySaleNumber retrieves a sale by its human-readable number
func (s *SaleService) GetBySaleNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != nil {
		status := sales.SaleStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown sale status")
		}
		domainFilter.Filters["status"] = string(status)
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	saleList, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleListItemResponses(saleList), total, nil
}

// Update updates an editable sale's discount, shipping, validity and notes
func (s *SaleService) Update(ctx context.Context, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if req.Discount != nil {
		if err := sale.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.ShippingCost != nil || req.ShippingMethod != nil {
		cost := sale.ShippingCost
		if req.ShippingCost != nil {
			cost = *req.ShippingCost
		}
		method := sale.ShippingMethod
		if req.ShippingMethod != nil {
			method = *req.ShippingMethod
		}
		if err := sale.SetShipping(cost, method); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		sale.SetValidUntil(req.ValidUntil)
	}
	if req.Notes != nil || req.InternalNotes != nil {
		notes := sale.Notes
		if req.Notes != nil {
			notes = *req.Notes
		}
		internalNotes := sale.InternalNotes
		if req.InternalNotes != nil {
			internalNotes = *req.InternalNotes
		}
		sale.SetNotes(notes, internalNotes)
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// AddItem adds a line item to an editable sale. On a reservation the new
// quantity is held against stock before the item is accepted.
func (s *SaleService) AddItem(ctx context.Context, saleID uuid.UUID, req AddSaleItemRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	discountPct := decimal.Zero
	if req.DiscountPct != nil {
		discountPct = *req.DiscountPct
	}

	holdsStock := sale.Status.HoldsReservation()
	if holdsStock {
		if err := s.productRepo.ReserveStock(ctx, product.ID, req.Quantity); err != nil {
			return nil, err
		}
	}

	if _, err := sale.AddItem(product.ID, product.SKU, product.Name, req.Quantity, product.EffectivePrice(), discountPct); err != nil {
		if holdsStock {
			s.releaseQuantity(ctx, product.ID, req.Quantity)
		}
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		if holdsStock {
			s.releaseQuantity(ctx, product.ID, req.Quantity)
		}
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// UpdateItem updates a line item's quantity and discount. On a
// reservation the stock hold is adjusted by the quantity delta.
func (s *SaleService) UpdateItem(ctx context.Context, saleID, itemID uuid.UUID, req UpdateSaleItemRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	item := sale.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
	}

	holdsStock := sale.Status.HoldsReservation()
	productID := item.ProductID
	previousQty := item.Quantity

	if req.Quantity != nil && *req.Quantity != previousQty {
		delta := *req.Quantity - previousQty
		if holdsStock && delta > 0 {
			if err := s.productRepo.ReserveStock(ctx, productID, delta); err != nil {
				return nil, err
			}
		}
		if err := sale.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			if holdsStock && delta > 0 {
				s.releaseQuantity(ctx, productID, delta)
			}
			return nil, err
		}
		if holdsStock && delta < 0 {
			s.releaseQuantity(ctx, productID, -delta)
		}
	}

	if req.DiscountPct != nil {
		if err := sale.UpdateItemDiscount(itemID, *req.DiscountPct); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// RemoveItem removes a line item from an editable sale and releases its
// stock hold when the sale is a reservation
func (s *SaleService) RemoveItem(ctx context.Context, saleID, itemID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	item := sale.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
	}
	productID := item.ProductID
	quantity := item.Quantity
	holdsStock := sale.Status.HoldsReservation()

	if err := sale.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	if holdsStock {
		s.releaseQuantity(ctx, productID, quantity)
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Convert moves a quote to pending, holding stock for every line item
func (s *SaleService) Convert(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := s.reserveItems(ctx, sale.Items); err != nil {
		return nil, err
	}

	if err := sale.ConvertToPending(); err != nil {
		s.releaseItems(ctx, sale.Items)
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		s.releaseItems(ctx, sale.Items)
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// ConfirmReservation resolves a reservation against the payment ledger.
// A settled balance moves the sale to paid and finalizes the stock
// deduction; an outstanding balance moves it to pending with the holds
// kept in place.
func (s *SaleService) ConfirmReservation(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	entries, err := s.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	summary := payments.Summarize(entries, sale.Total)

	target, err := sale.ConfirmReservation(summary.Balance)
	if err != nil {
		return nil, err
	}

	if target == sales.SaleStatusPaid {
		if sale.PaymentMethod == "" && len(entries) > 0 {
			sale.SetPaymentMethod(entries[len(entries)-1].PaymentMethod)
		}
		deducted, err := s.deductItems(ctx, sale.Items)
		if err != nil {
			s.restoreHolds(ctx, sale.Items[:deducted])
			return nil, err
		}
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		if target == sales.SaleStatusPaid {
			s.restoreHolds(ctx, sale.Items)
		}
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Pay marks a pending sale as paid and finalizes the stock deduction
func (s *SaleService) Pay(ctx context.Context, saleID uuid.UUID, req PayRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.MarkAsPaid(req.PaymentMethod); err != nil {
		return nil, err
	}

	deducted, err := s.deductItems(ctx, sale.Items)
	if err != nil {
		s.restoreHolds(ctx, sale.Items[:deducted])
		return nil, err
	}

	// The deduction must not outlive a failed transition; a retry after
	// CONCURRENT_MODIFICATION would apply it a second time.
	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		s.restoreHolds(ctx, sale.Items)
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Process moves a paid sale to processing
func (s *SaleService) Process(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, saleID, (*sales.Sale).StartProcessing)
}

// Ship moves a processing sale to shipped
func (s *SaleService) Ship(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, saleID, (*sales.Sale).MarkShipped)
}

// Deliver moves a shipped sale to its terminal delivered state
func (s *SaleService) Deliver(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, saleID, (*sales.Sale).MarkDelivered)
}

// transition applies a plain status change with no stock side effects
func (s *SaleService) transition(ctx context.Context, saleID uuid.UUID, apply func(*sales.Sale) error) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := apply(sale); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel cancels a sale. Held stock is released when the previous status
// only reserved it, and restored when it was already deducted.
func (s *SaleService) Cancel(ctx context.Context, saleID uuid.UUID, req CancelSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	previous := sale.Status

	if err := sale.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	switch {
	case previous.HoldsReservation():
		s.releaseItems(ctx, sale.Items)
	case previous.HoldsDeduction():
		s.restoreItems(ctx, sale.Items)
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// Reject marks a quote as rejected by the customer
func (s *SaleService) Reject(ctx context.Context, saleID uuid.UUID, req RejectSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.Reject(req.Reason); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete removes a sale entirely. Only quotes and terminal cancelled or
// rejected sales can be deleted; none of those hold stock.
func (s *SaleService) Delete(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return err
	}

	if !sale.CanDelete() {
		return shared.ErrNotDeletable
	}

	return s.saleRepo.Delete(ctx, saleID)
}

// CreateLinked creates an add-on sale against a paid or processing
// parent. The sale is born paid, so stock follows the same
// reserve-then-deduct path as a directly paid sale.
func (s *SaleService) CreateLinked(ctx context.Context, parentSaleID uuid.UUID, req CreateLinkedSaleRequest) (*SaleResponse, error) {
	parent, err := s.saleRepo.FindByID(ctx, parentSaleID)
	if err != nil {
		return nil, err
	}

	inputs := make([]sales.ItemInput, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		discountPct := decimal.Zero
		if input.DiscountPct != nil {
			discountPct = *input.DiscountPct
		}

		inputs = append(inputs, sales.ItemInput{
			ProductID:   product.ID,
			SKU:         product.SKU,
			ProductName: product.Name,
			Quantity:    input.Quantity,
			UnitPrice:   product.EffectivePrice(),
			DiscountPct: discountPct,
		})
	}

	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	shippingCost := decimal.Zero
	if req.ShippingCost != nil {
		shippingCost = *req.ShippingCost
	}

	sale, err := sales.NewLinkedSale(parent, saleNumber, inputs, discount, shippingCost, req.ShippingMethod, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.reserveItems(ctx, sale.Items); err != nil {
		return nil, err
	}
	deducted, err := s.deductItems(ctx, sale.Items)
	if err != nil {
		// Deducted items consumed their hold, the rest still hold one
		s.restoreItems(ctx, sale.Items[:deducted])
		s.releaseItems(ctx, sale.Items[deducted:])
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		s.restoreItems(ctx, sale.Items)
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetLinked lists all linked sales referencing the given parent
func (s *SaleService) GetLinked(ctx context.Context, parentSaleID uuid.UUID) ([]SaleListItemResponse, error) {
	if _, err := s.saleRepo.FindByID(ctx, parentSaleID); err != nil {
		return nil, err
	}

	linked, err := s.saleRepo.FindLinked(ctx, parentSaleID)
	if err != nil {
		return nil, err
	}

	return ToSaleListItemResponses(linked), nil
}

// Aggregate builds the combined receipt view of a parent and its linked
// sales. Pure read path; nothing is persisted.
func (s *SaleService) Aggregate(ctx context.Context, parentSaleID uuid.UUID) (*AggregateResponse, error) {
	parent, err := s.saleRepo.FindByID(ctx, parentSaleID)
	if err != nil {
		return nil, err
	}

	linked, err := s.saleRepo.FindLinked(ctx, parentSaleID)
	if err != nil {
		return nil, err
	}

	aggregated := sales.Aggregate(parent, linked)
	response := ToAggregateResponse(&aggregated)
	return &response, nil
}

// reserveItems holds stock for every line item, rolling back the holds
// already taken when any single hold fails
func (s *SaleService) reserveItems(ctx context.Context, items []sales.SaleItem) error {
	for idx := range items {
		if err := s.productRepo.ReserveStock(ctx, items[idx].ProductID, items[idx].Quantity); err != nil {
			s.releaseItems(ctx, items[:idx])
			return err
		}
	}
	return nil
}

// releaseItems returns held quantities to available stock, best effort
func (s *SaleService) releaseItems(ctx context.Context, items []sales.SaleItem) {
	for idx := range items {
		s.releaseQuantity(ctx, items[idx].ProductID, items[idx].Quantity)
	}
}

func (s *SaleService) releaseQuantity(ctx context.Context, productID uuid.UUID, qty int64) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return
	}
	expected := product.Version
	if err := product.Release(qty); err != nil {
		return
	}
	_ = s.productRepo.SaveWithLock(ctx, product, expected)
}

// deductItems turns existing holds into final stock deductions.
// Returns how many items were fully deducted so the caller can roll
// back exactly that prefix when a later item fails.
func (s *SaleService) deductItems(ctx context.Context, items []sales.SaleItem) (int, error) {
	for idx := range items {
		product, err := s.productRepo.FindByID(ctx, items[idx].ProductID)
		if err != nil {
			return idx, err
		}
		expected := product.Version
		if err := product.ConfirmDeduction(items[idx].Quantity); err != nil {
			return idx, err
		}
		if err := s.productRepo.SaveWithLock(ctx, product, expected); err != nil {
			return idx, err
		}
	}
	return len(items), nil
}

// restoreHolds undoes finalized deductions back into reservations, best
// effort. Used when a paid transition fails to commit: the sale keeps a
// stock-holding status, so the quantities must come back as holds, not
// as available stock.
func (s *SaleService) restoreHolds(ctx context.Context, items []sales.SaleItem) {
	for idx := range items {
		product, err := s.productRepo.FindByID(ctx, items[idx].ProductID)
		if err != nil {
			continue
		}
		expected := product.Version
		if err := product.Restore(items[idx].Quantity); err != nil {
			continue
		}
		if err := product.Reserve(items[idx].Quantity); err != nil {
			continue
		}
		_ = s.productRepo.SaveWithLock(ctx, product, expected)
	}
}

// restoreItems returns previously deducted quantities to stock, best effort
func (s *SaleService) restoreItems(ctx context.Context, items []sales.SaleItem) {
	for idx := range items {
		product, err := s.productRepo.FindByID(ctx, items[idx].ProductID)
		if err != nil {
			continue
		}
		expected := product.Version
		if err := product.Restore(items[idx].Quantity); err != nil {
			continue
		}
		_ = s.productRepo.SaveWithLock(ctx, product, expected)
	}
}

// publishEvents publishes and clears the aggregate's accumulated events
func (s *SaleService) publishEvents(ctx context.Context, sale *sales.Sale) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range sale.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	sale.ClearDomainEvents()
}
