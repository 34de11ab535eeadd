package metering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
)

// Reading is a recorded consumption snapshot for a consumer for one
// billing period. At most one reading exists per (consumer, period);
// the storage layer enforces this with a uniqueness constraint.
//
// Readings are only ever persisted together with the bill derived from
// them, and only ever deleted together with that bill.
type Reading struct {
	shared.BaseAggregateRoot
	ConsumerID      uuid.UUID
	Period          valueobject.Period
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	UnitsConsumed   decimal.Decimal
	RecordedBy      uuid.UUID
	RecordedAt      time.Time
}

// NewReading creates a validated reading. previousReading is the current
// reading of the consumer's most recent prior reading (zero if none).
func NewReading(consumerID uuid.UUID, period valueobject.Period, previousReading, currentReading decimal.Decimal, recordedBy uuid.UUID) (*Reading, error) {
	if currentReading.IsNegative() {
		return nil, shared.NewValidationError("current reading cannot be negative, got %s", currentReading)
	}
	if previousReading.IsNegative() {
		return nil, shared.NewValidationError("previous reading cannot be negative, got %s", previousReading)
	}
	if currentReading.LessThan(previousReading) {
		return nil, shared.NewValidationError(
			"Current reading (%s) cannot be less than previous reading (%s)",
			currentReading, previousReading)
	}
	if period.IsZero() {
		return nil, shared.NewValidationError("billing period is required")
	}

	return &Reading{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ConsumerID:        consumerID,
		Period:            period,
		PreviousReading:   previousReading,
		CurrentReading:    currentReading,
		UnitsConsumed:     currentReading.Sub(previousReading),
		RecordedBy:        recordedBy,
		RecordedAt:        time.Now(),
	}, nil
}
