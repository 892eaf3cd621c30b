package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventas/backend/internal/domain/catalog"
	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// ProductService handles product and stock related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	availability *catalog.AvailabilityService
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		availability: catalog.NewAvailabilityService(),
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, valueobject.NewMoneyPEN(req.Price), req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "sku"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	var products []catalog.Product
	var err error
	if filter.ActiveOnly {
		products, err = s.productRepo.FindActive(ctx, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product's name, prices and active flag
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	expected := product.Version

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyPEN(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.OfferPrice != nil {
		if req.OfferPrice.IsZero() {
			product.ClearOfferPrice()
		} else if err := product.SetOfferPrice(valueobject.NewMoneyPEN(*req.OfferPrice)); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product, expected); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.ReservedStock > 0 {
		return shared.NewDomainError("STOCK_RESERVED", "Cannot delete a product with reserved stock")
	}

	return s.productRepo.Delete(ctx, productID)
}

// AdjustStock applies a manual stock correction. Positive quantities add
// stock, negative quantities remove it down to the reserved floor.
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	expected := product.Version

	if req.Quantity > 0 {
		if err := product.Restore(req.Quantity); err != nil {
			return nil, err
		}
	} else {
		removed := -req.Quantity
		if product.Available() < removed {
			return nil, shared.ErrInsufficientStock
		}
		if err := product.Reserve(removed); err != nil {
			return nil, err
		}
		if err := product.ConfirmDeduction(removed); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product, expected); err != nil {
		return nil, err
	}

	response := ToStockResponse(product)
	return &response, nil
}

// GetStock returns the stock position of a single product
func (s *ProductService) GetStock(ctx context.Context, productID uuid.UUID) (*StockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToStockResponse(product)
	return &response, nil
}

// CheckAvailability evaluates requested quantities against current stock
func (s *ProductService) CheckAvailability(ctx context.Context, req AvailabilityCheckRequest) (*catalog.AvailabilityReport, error) {
	ids := make([]uuid.UUID, 0, len(req.Items))
	requests := make([]catalog.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
		requests = append(requests, catalog.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	report := s.availability.Check(requests, byID)
	return &report, nil
}
