package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventas/backend/internal/domain/catalog"
	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product, expectedVersion int) error {
	args := m.Called(ctx, product, expectedVersion)
	return args.Error(0)
}

func (m *MockProductRepository) ReserveStock(ctx context.Context, id uuid.UUID, qty int64) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func newTestProduct(t *testing.T, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("CAM-001", "Camisa de lino", valueobject.NewMoneyPENFromFloat(59), stock)
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("create product successfully", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()

		repo.On("ExistsBySKU", ctx, "CAM-001").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := service.Create(ctx, CreateProductRequest{
			SKU:   "CAM-001",
			Name:  "Camisa de lino",
			Price: decimal.NewFromInt(59),
			Stock: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "CAM-001", result.SKU)
		assert.Equal(t, int64(10), result.Stock)
		assert.Equal(t, int64(0), result.ReservedStock)
		assert.Equal(t, int64(10), result.Available)
		repo.AssertExpectations(t)
	})

	t.Run("fail on duplicate SKU", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()

		repo.On("ExistsBySKU", ctx, "CAM-001").Return(true, nil)

		result, err := service.Create(ctx, CreateProductRequest{
			SKU:   "CAM-001",
			Name:  "Camisa de lino",
			Price: decimal.NewFromInt(59),
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("set and clear offer price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()
		product := newTestProduct(t, 10)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("SaveWithLock", ctx, product, mock.AnythingOfType("int")).Return(nil)

		offer := decimal.NewFromInt(49)
		result, err := service.Update(ctx, product.ID, UpdateProductRequest{OfferPrice: &offer})

		require.NoError(t, err)
		require.NotNil(t, result.OfferPrice)
		assert.True(t, result.OfferPrice.Equal(offer))

		clear := decimal.Zero
		result, err = service.Update(ctx, product.ID, UpdateProductRequest{OfferPrice: &clear})

		require.NoError(t, err)
		assert.Nil(t, result.OfferPrice)
	})

	t.Run("deactivate product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()
		product := newTestProduct(t, 10)
		inactive := false

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("SaveWithLock", ctx, product, mock.AnythingOfType("int")).Return(nil)

		result, err := service.Update(ctx, product.ID, UpdateProductRequest{Active: &inactive})

		require.NoError(t, err)
		assert.False(t, result.Active)
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("refuse to delete product with reserved stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()
		product := newTestProduct(t, 10)
		require.NoError(t, product.Reserve(2))

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		err := service.Delete(ctx, product.ID)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_AdjustStock(t *testing.T) {
	t.Run("positive adjustment adds stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()
		product := newTestProduct(t, 10)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("SaveWithLock", ctx, product, mock.AnythingOfType("int")).Return(nil)

		result, err := service.AdjustStock(ctx, product.ID, AdjustStockRequest{Quantity: 5, Reason: "Reconteo"})

		require.NoError(t, err)
		assert.Equal(t, int64(15), result.Stock)
	})

	t.Run("negative adjustment respects reserved floor", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()
		product := newTestProduct(t, 10)
		require.NoError(t, product.Reserve(8))

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		result, err := service.AdjustStock(ctx, product.ID, AdjustStockRequest{Quantity: -5})

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_CheckAvailability(t *testing.T) {
	t.Run("reports shortage and missing products", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		ctx := context.Background()
		product := newTestProduct(t, 3)
		missingID := uuid.New()

		repo.On("FindByIDs", ctx, mock.AnythingOfType("[]uuid.UUID")).Return([]catalog.Product{*product}, nil)

		report, err := service.CheckAvailability(ctx, AvailabilityCheckRequest{
			Items: []AvailabilityCheckItem{
				{ProductID: product.ID, Quantity: 5},
				{ProductID: missingID, Quantity: 1},
			},
		})

		require.NoError(t, err)
		assert.False(t, report.Available)
		require.Len(t, report.Items, 2)
		assert.Equal(t, int64(3), report.Items[0].Available)
		assert.False(t, report.Items[0].HasStock)
		assert.False(t, report.Items[1].HasStock)
	})
}
