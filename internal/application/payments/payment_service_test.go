package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventas/backend/internal/domain/payments"
	"github.com/ventas/backend/internal/domain/sales"
	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payments.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]payments.Payment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payments.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *payments.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByStatus(ctx context.Context, status sales.SaleStatus, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindLinked(ctx context.Context, parentSaleID uuid.UUID) ([]sales.Sale, error) {
	args := m.Called(ctx, parentSaleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newTestService() (*PaymentService, *MockPaymentRepository, *MockSaleRepository) {
	paymentRepo := new(MockPaymentRepository)
	saleRepo := new(MockSaleRepository)
	return NewPaymentService(paymentRepo, saleRepo), paymentRepo, saleRepo
}

// newReservationWithTotal builds a reservation-status sale whose total
// equals unitPrice (single item, quantity 1, price tax inclusive)
func newReservationWithTotal(t *testing.T, unitPrice int64) *sales.Sale {
	t.Helper()
	sale, err := sales.NewReservation("SV-2026-00007", sales.Customer{Name: "Maria Flores"})
	require.NoError(t, err)
	_, err = sale.AddItem(uuid.New(), "CAM-001", "Camisa de lino", 1, valueobject.NewMoneyPEN(decimal.NewFromInt(unitPrice)), decimal.Zero)
	require.NoError(t, err)
	return sale
}

func TestPaymentService_AddPayment(t *testing.T) {
	t.Run("add payment within balance", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{}, nil)
		saleRepo.On("SaveWithLock", ctx, sale).Return(nil)
		paymentRepo.On("Insert", ctx, mock.AnythingOfType("*payments.Payment")).Return(nil)

		result, err := service.AddPayment(ctx, sale.ID, AddEntryRequest{
			Amount:        decimal.NewFromInt(150),
			PaymentMethod: "yape",
			Reference:     "OP-778812",
		})

		require.NoError(t, err)
		assert.Equal(t, "payment", result.Type)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, "yape", result.PaymentMethod)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("reject append when the sale changed underneath", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{}, nil)
		saleRepo.On("SaveWithLock", ctx, sale).Return(shared.ErrConcurrentModification)

		result, err := service.AddPayment(ctx, sale.ID, AddEntryRequest{
			Amount:        decimal.NewFromInt(150),
			PaymentMethod: "cash",
		})

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, shared.ErrConcurrentModification))
		paymentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("reject payment exceeding outstanding balance", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		prior, err := payments.NewPayment(sale.ID, valueobject.NewMoneyPEN(decimal.NewFromInt(150)), "cash", sale.CreatedAt, "", "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{*prior}, nil)

		result, err := service.AddPayment(ctx, sale.ID, AddEntryRequest{
			Amount:        decimal.NewFromInt(60),
			PaymentMethod: "cash",
		})

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, shared.ErrExceedsBalance))
		paymentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("reject non-positive amount", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{}, nil)

		_, err := service.AddPayment(ctx, sale.ID, AddEntryRequest{
			Amount:        decimal.Zero,
			PaymentMethod: "cash",
		})

		assert.True(t, errors.Is(err, shared.ErrInvalidAmount))
	})
}

func TestPaymentService_AddRefund(t *testing.T) {
	t.Run("add refund within net paid", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		prior, err := payments.NewPayment(sale.ID, valueobject.NewMoneyPEN(decimal.NewFromInt(150)), "cash", sale.CreatedAt, "", "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{*prior}, nil)
		saleRepo.On("SaveWithLock", ctx, sale).Return(nil)
		paymentRepo.On("Insert", ctx, mock.AnythingOfType("*payments.Payment")).Return(nil)

		result, err := service.AddRefund(ctx, sale.ID, AddEntryRequest{
			Amount:        decimal.NewFromInt(50),
			PaymentMethod: "cash",
		})

		require.NoError(t, err)
		assert.Equal(t, "refund", result.Type)
	})

	t.Run("reject refund beyond net paid", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{}, nil)

		result, err := service.AddRefund(ctx, sale.ID, AddEntryRequest{
			Amount:        decimal.NewFromInt(10),
			PaymentMethod: "cash",
		})

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, shared.ErrExceedsNetPaid))
	})
}

func TestPaymentService_Delete(t *testing.T) {
	t.Run("delete entry while sale is pending", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		entry, err := payments.NewPayment(sale.ID, valueobject.NewMoneyPEN(decimal.NewFromInt(50)), "cash", sale.CreatedAt, "", "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		paymentRepo.On("Delete", ctx, entry.ID).Return(nil)

		err = service.Delete(ctx, sale.ID, entry.ID)

		assert.NoError(t, err)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("reject deletion once the sale is paid", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)
		_, err := sale.ConfirmReservation(decimal.Zero)
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		err = service.Delete(ctx, sale.ID, uuid.New())

		assert.True(t, errors.Is(err, shared.ErrNotDeletable))
		paymentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("reject entry belonging to another sale", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		foreign, err := payments.NewPayment(uuid.New(), valueobject.NewMoneyPEN(decimal.NewFromInt(50)), "cash", sale.CreatedAt, "", "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		err = service.Delete(ctx, sale.ID, foreign.ID)

		assert.True(t, errors.Is(err, shared.ErrNotFound))
		paymentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Summary(t *testing.T) {
	t.Run("summary reflects partial payments", func(t *testing.T) {
		service, paymentRepo, saleRepo := newTestService()
		ctx := context.Background()
		sale := newReservationWithTotal(t, 200)

		prior, err := payments.NewPayment(sale.ID, valueobject.NewMoneyPEN(decimal.NewFromInt(150)), "cash", sale.CreatedAt, "", "")
		require.NoError(t, err)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		paymentRepo.On("ListBySale", ctx, sale.ID).Return([]payments.Payment{*prior}, nil)

		result, err := service.Summary(ctx, sale.ID)

		require.NoError(t, err)
		assert.True(t, result.NetPaid.Equal(decimal.NewFromInt(150)))
		assert.True(t, result.Balance.Equal(decimal.NewFromInt(50)))
		assert.False(t, result.IsSettled)
	})
}
