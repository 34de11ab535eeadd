package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/billing"
	"github.com/utilityboard/backend/internal/domain/consumer"
	"github.com/utilityboard/backend/internal/domain/metering"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
	"github.com/utilityboard/backend/internal/domain/tariff"
	"go.uber.org/zap"
)

// LedgerService coordinates the cross-entity lifecycle of readings and
// bills. A reading and its bill are independently stored but form one
// logical unit: this service is the only place that creates or deletes
// them, always atomically, so neither can exist without the other.
type LedgerService struct {
	consumerRepo consumer.Repository
	readingRepo  metering.ReadingRepository
	billRepo     billing.BillRepository
	planRepo     tariff.PlanRepository
	txScope      TransactionScope
	log          *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	consumerRepo consumer.Repository,
	readingRepo metering.ReadingRepository,
	billRepo billing.BillRepository,
	planRepo tariff.PlanRepository,
	txScope TransactionScope,
	log *zap.Logger,
) *LedgerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerService{
		consumerRepo: consumerRepo,
		readingRepo:  readingRepo,
		billRepo:     billRepo,
		planRepo:     planRepo,
		txScope:      txScope,
		log:          log,
	}
}

// PriorReading returns the current reading of the consumer's most recent
// reading, or zero if none exists. Ordering is by recorded time
// descending.
func (s *LedgerService) PriorReading(ctx context.Context, consumerID uuid.UUID) (decimal.Decimal, error) {
	last, err := s.readingRepo.FindLatestByConsumer(ctx, consumerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, err
	}
	return last.CurrentReading, nil
}

// Generate validates a submitted reading against the consumer's history,
// derives a bill from the active tariff, and persists both records in one
// atomic unit. All validation happens before any write; after validation
// any storage failure rolls the whole unit back.
func (s *LedgerService) Generate(ctx context.Context, req GenerateBillRequest, actorID uuid.UUID) (*GenerateBillResponse, error) {
	period, err := valueobject.ParsePeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if req.CurrentReading.IsNegative() {
		return nil, shared.NewValidationError("current reading cannot be negative, got %s", req.CurrentReading)
	}

	cons, err := s.consumerRepo.FindByMeterNumber(ctx, req.MeterNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Consumer with meter number " + req.MeterNumber)
		}
		return nil, err
	}

	previous, err := s.PriorReading(ctx, cons.ID)
	if err != nil {
		return nil, err
	}
	if req.CurrentReading.LessThan(previous) {
		return nil, shared.NewValidationError(
			"Current reading (%s) cannot be less than previous reading (%s)",
			req.CurrentReading, previous)
	}

	// Pre-check for a friendly error; the storage uniqueness constraint on
	// (consumer, period) remains the authority under races.
	if _, err := s.readingRepo.FindByConsumerAndPeriod(ctx, cons.ID, period); err == nil {
		return nil, shared.NewConflictError("Reading already recorded for %s", period)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	plan, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	reading, err := metering.NewReading(cons.ID, period, previous, req.CurrentReading, actorID)
	if err != nil {
		return nil, err
	}
	charges := billing.ComputeCharges(reading.UnitsConsumed, plan)
	bill := billing.NewBill(cons.ID, reading.ID, plan.ID, period, reading.UnitsConsumed, charges, actorID)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Readings().Save(ctx, reading); err != nil {
			return err
		}
		return repos.Bills().Save(ctx, bill)
	})
	if err != nil {
		return nil, s.asLedgerError(err, "generate")
	}

	s.log.Info("bill generated",
		zap.String("bill_id", bill.ID.String()),
		zap.String("consumer_id", cons.ID.String()),
		zap.String("period", period.String()),
		zap.String("total_amount", bill.TotalAmount.String()),
	)

	return &GenerateBillResponse{
		Reading: ToReadingResponse(reading),
		Bill:    ToBillResponse(bill),
	}, nil
}

// UpdateStatus moves a bill through its status machine. Paid stamps
// paid_at; any other target clears it. Paid and overdue are terminal.
func (s *LedgerService) UpdateStatus(ctx context.Context, billID uuid.UUID, status string, actorID uuid.UUID) (*BillResponse, error) {
	target, err := billing.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Bill")
		}
		return nil, err
	}

	if err := bill.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, s.asLedgerError(err, "update status")
	}

	s.log.Info("bill status updated",
		zap.String("bill_id", bill.ID.String()),
		zap.String("status", string(target)),
		zap.String("actor_id", actorID.String()),
	)

	resp := ToBillResponse(bill)
	return &resp, nil
}

// DeleteBill removes a pending bill and its linked reading in one atomic
// unit. Non-pending bills cannot be deleted.
func (s *LedgerService) DeleteBill(ctx context.Context, billID uuid.UUID) error {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("Bill")
		}
		return err
	}
	if err := bill.Deletable(); err != nil {
		return err
	}

	// The pre-check above gives a friendly error, but the conditional
	// delete is the authority: a status change committed after the read is
	// still refused.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Bills().DeletePending(ctx, bill.ID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("Bill")
			}
			return err
		}
		return repos.Readings().Delete(ctx, bill.ReadingID)
	})
	if err != nil {
		return s.asLedgerError(err, "delete bill")
	}

	s.log.Info("bill deleted with its reading",
		zap.String("bill_id", bill.ID.String()),
		zap.String("reading_id", bill.ReadingID.String()),
	)
	return nil
}

// DeleteReading is the reading-side entry point for deletion. It applies
// the same pending-only gate via the owning bill and removes both records
// atomically. A reading with no bill should not exist, but if found it is
// removed on its own.
func (s *LedgerService) DeleteReading(ctx context.Context, readingID uuid.UUID) error {
	reading, err := s.readingRepo.FindByID(ctx, readingID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("Reading")
		}
		return err
	}

	bill, err := s.billRepo.FindByReadingID(ctx, reading.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if bill != nil {
		if bill.Status != billing.StatusPending {
			return shared.NewStateError("Cannot delete reading as the linked bill is already %s", bill.Status)
		}
		return s.DeleteBill(ctx, bill.ID)
	}

	s.log.Warn("deleting reading with no linked bill", zap.String("reading_id", reading.ID.String()))
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Readings().Delete(ctx, reading.ID)
	})
	if err != nil {
		return s.asLedgerError(err, "delete reading")
	}
	return nil
}

// GetReading fetches one reading by ID
func (s *LedgerService) GetReading(ctx context.Context, readingID uuid.UUID) (*ReadingResponse, error) {
	reading, err := s.readingRepo.FindByID(ctx, readingID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Reading")
		}
		return nil, err
	}
	resp := ToReadingResponse(reading)
	return &resp, nil
}

// ListReadings returns readings newest first
func (s *LedgerService) ListReadings(ctx context.Context, page, pageSize int) ([]ReadingResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "recorded_at"

	readings, total, err := s.readingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ReadingResponse, len(readings))
	for i := range readings {
		out[i] = ToReadingResponse(&readings[i])
	}
	return out, total, nil
}

// ConsumerByMeter resolves a meter number to the consumer and their most
// recent reading (nil when the consumer has none yet).
func (s *LedgerService) ConsumerByMeter(ctx context.Context, meterNumber string) (*ConsumerReadingResponse, error) {
	cons, err := s.consumerRepo.FindByMeterNumber(ctx, meterNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Consumer with meter number " + meterNumber)
		}
		return nil, err
	}

	resp := &ConsumerReadingResponse{Consumer: ToConsumerSummary(cons)}
	last, err := s.readingRepo.FindLatestByConsumer(ctx, cons.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return resp, nil
	}
	lastResp := ToReadingResponse(last)
	resp.LastReading = &lastResp
	return resp, nil
}

// ListBills returns bills matching the filter, newest first, with total
func (s *LedgerService) ListBills(ctx context.Context, filter BillListFilter) ([]BillResponse, int64, error) {
	repoFilter := billing.ListFilter{
		Year:        filter.Year,
		GeneratedBy: filter.GeneratedBy,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}
	if filter.Month != "" {
		// Filtering by month alone is allowed; reuse period parsing with a
		// placeholder year.
		period, err := valueobject.ParsePeriod(filter.Month, 2000)
		if err != nil {
			return nil, 0, err
		}
		repoFilter.Month = &period.Month
	}
	if filter.Status != "" {
		status, err := billing.ParseStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		repoFilter.Status = &status
	}

	bills, total, err := s.billRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = ToBillResponse(&bills[i])
	}
	return out, total, nil
}

// GetBill fetches one bill with its reading and consumer context
func (s *LedgerService) GetBill(ctx context.Context, billID uuid.UUID) (*BillDetailResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Bill")
		}
		return nil, err
	}

	detail := &BillDetailResponse{Bill: ToBillResponse(bill)}

	if reading, err := s.readingRepo.FindByID(ctx, bill.ReadingID); err == nil {
		r := ToReadingResponse(reading)
		detail.Reading = &r
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if cons, err := s.consumerRepo.FindByID(ctx, bill.ConsumerID); err == nil {
		c := ToConsumerSummary(cons)
		detail.Consumer = &c
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if plan, err := s.planRepo.FindByID(ctx, bill.TariffPlanID); err == nil {
		t := ToTariffSummary(plan)
		detail.Tariff = &t
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return detail, nil
}

// ConsumerBillHistory returns a consumer's bills, latest period first
func (s *LedgerService) ConsumerBillHistory(ctx context.Context, consumerID uuid.UUID) ([]BillResponse, error) {
	if _, err := s.consumerRepo.FindByID(ctx, consumerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Consumer")
		}
		return nil, err
	}

	bills, err := s.billRepo.FindByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = ToBillResponse(&bills[i])
	}
	return out, nil
}

// asLedgerError passes domain errors through and wraps storage faults as
// transaction errors, so callers see either the precise business failure
// or a retryable abort with no partial effect.
func (s *LedgerService) asLedgerError(err error, op string) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.log.Error("ledger transaction aborted", zap.String("op", op), zap.Error(err))
	return shared.NewTransactionError(err)
}
