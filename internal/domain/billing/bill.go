package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
)

// Status is the closed set of bill states
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// ParseStatus validates a status value against the closed set
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusOverdue:
		return Status(s), nil
	default:
		return "", shared.NewValidationError("invalid status %q: must be pending, paid, or overdue", s)
	}
}

// Bill is the financial record derived from one reading and the tariff
// active at generation time. Charges are computed once at generation and
// never recomputed: later tariff changes must not alter issued bills.
//
// A bill owns exactly one reading; the pair is created and deleted
// atomically by the ledger coordinator.
type Bill struct {
	shared.BaseAggregateRoot
	ConsumerID    uuid.UUID
	ReadingID     uuid.UUID
	TariffPlanID  uuid.UUID
	Period        valueobject.Period
	UnitsConsumed decimal.Decimal
	EnergyCharge  decimal.Decimal
	FixedCharge   decimal.Decimal
	TotalAmount   decimal.Decimal
	DueDate       time.Time
	Status        Status
	PaidAt        *time.Time
	GeneratedBy   uuid.UUID
	GeneratedAt   time.Time
}

// NewBill creates a pending bill from a reading's consumption and the
// charges computed against the active tariff. The generating plan's ID is
// recorded so the bill keeps its tariff context after later plan changes.
func NewBill(consumerID, readingID, tariffPlanID uuid.UUID, period valueobject.Period, unitsConsumed decimal.Decimal, charges Charges, generatedBy uuid.UUID) *Bill {
	now := time.Now()
	return &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ConsumerID:        consumerID,
		ReadingID:         readingID,
		TariffPlanID:      tariffPlanID,
		Period:            period,
		UnitsConsumed:     unitsConsumed,
		EnergyCharge:      charges.EnergyCharge,
		FixedCharge:       charges.FixedCharge,
		TotalAmount:       charges.TotalAmount,
		DueDate:           DueDate(now),
		Status:            StatusPending,
		GeneratedBy:       generatedBy,
		GeneratedAt:       now,
	}
}

// TransitionTo moves the bill to the target status. Allowed transitions:
// pending -> paid and pending -> overdue; paid and overdue are terminal.
// Setting the same status again is a no-op. Paid stamps PaidAt; any other
// target clears it.
func (b *Bill) TransitionTo(target Status) error {
	if _, err := ParseStatus(string(target)); err != nil {
		return err
	}
	if b.Status == target {
		return nil
	}
	if b.Status != StatusPending {
		return shared.NewStateError("cannot change status of a %s bill", b.Status)
	}

	b.Status = target
	if target == StatusPaid {
		now := time.Now()
		b.PaidAt = &now
	} else {
		b.PaidAt = nil
	}
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Deletable reports whether the bill may be deleted. Only pending bills
// may be removed, and removal always cascades to the owned reading.
func (b *Bill) Deletable() error {
	if b.Status != StatusPending {
		return shared.NewStateError("Cannot delete bill as it is already %s", b.Status)
	}
	return nil
}
