package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ventas/backend/internal/domain/payments"
	"github.com/ventas/backend/internal/domain/sales"
	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/domain/shared/valueobject"
)

// PaymentService manages the append-only payment ledger of a sale.
// It validates amounts against the derived summary before every append;
// it never mutates the sale itself. The state machine consults the
// ledger, not the other way around.
type PaymentService struct {
	paymentRepo payments.PaymentRepository
	saleRepo    sales.SaleRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo payments.PaymentRepository, saleRepo sales.SaleRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
	}
}

// AddPayment appends a payment-type entry to the sale's ledger
func (s *PaymentService) AddPayment(ctx context.Context, saleID uuid.UUID, req AddEntryRequest) (*PaymentResponse, error) {
	return s.addEntry(ctx, saleID, req, payments.PaymentTypePayment)
}

// AddRefund appends a refund-type entry to the sale's ledger
func (s *PaymentService) AddRefund(ctx context.Context, saleID uuid.UUID, req AddEntryRequest) (*PaymentResponse, error) {
	return s.addEntry(ctx, saleID, req, payments.PaymentTypeRefund)
}

func (s *PaymentService) addEntry(ctx context.Context, saleID uuid.UUID, req AddEntryRequest, entryType payments.PaymentType) (*PaymentResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	entries, err := s.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	summary := payments.Summarize(entries, sale.Total)

	amount := valueobject.NewMoneyPEN(req.Amount)
	if entryType == payments.PaymentTypePayment {
		if err := summary.ValidatePayment(amount); err != nil {
			return nil, err
		}
	} else {
		if err := summary.ValidateRefund(amount); err != nil {
			return nil, err
		}
	}

	date := time.Time{}
	if req.PaymentDate != nil {
		date = *req.PaymentDate
	}

	var entry *payments.Payment
	if entryType == payments.PaymentTypePayment {
		entry, err = payments.NewPayment(saleID, amount, req.PaymentMethod, date, req.Reference, req.Notes)
	} else {
		entry, err = payments.NewRefund(saleID, amount, req.PaymentMethod, date, req.Reference, req.Notes)
	}
	if err != nil {
		return nil, err
	}

	// Bump the sale's version before appending. Two concurrent appends
	// both validate against the same summary otherwise; the loser of the
	// version check gets CONCURRENT_MODIFICATION and retries against the
	// updated ledger.
	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(entry)
	return &response, nil
}

// List returns all ledger entries for a sale, oldest first
func (s *PaymentService) List(ctx context.Context, saleID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.saleRepo.FindByID(ctx, saleID); err != nil {
		return nil, err
	}

	entries, err := s.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return ToPaymentResponses(entries), nil
}

// Delete removes a ledger entry. Entries are only deletable while the
// sale is still in reservation or pending status.
func (s *PaymentService) Delete(ctx context.Context, saleID, paymentID uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return err
	}

	if sale.Status != sales.SaleStatusReservation && sale.Status != sales.SaleStatusPending {
		return shared.ErrNotDeletable
	}

	entry, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if entry.SaleID != saleID {
		return shared.ErrNotFound
	}

	return s.paymentRepo.Delete(ctx, paymentID)
}

// Summary computes the ledger summary for a sale
func (s *PaymentService) Summary(ctx context.Context, saleID uuid.UUID) (*SummaryResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	entries, err := s.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	response := ToSummaryResponse(payments.Summarize(entries, sale.Total))
	return &response, nil
}
