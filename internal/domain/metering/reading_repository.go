package metering

import (
	"context"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
)

// ReadingRepository defines the interface for reading persistence.
//
// Ordering contract: "most recent" always means recorded_at descending,
// with created_at descending as the tie-break.
type ReadingRepository interface {
	// FindByID finds a reading by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Reading, error)

	// FindLatestByConsumer returns the consumer's most recent reading, or
	// shared.ErrNotFound if the consumer has no readings.
	FindLatestByConsumer(ctx context.Context, consumerID uuid.UUID) (*Reading, error)

	// FindByConsumerAndPeriod finds the reading for a (consumer, period)
	// pair, or shared.ErrNotFound.
	FindByConsumerAndPeriod(ctx context.Context, consumerID uuid.UUID, period valueobject.Period) (*Reading, error)

	// FindAll returns readings ordered by recorded_at descending
	FindAll(ctx context.Context, filter shared.Filter) ([]Reading, int64, error)

	// Save persists a reading. A duplicate (consumer, period) surfaces as
	// shared.ErrConflict driven by the storage uniqueness constraint.
	Save(ctx context.Context, reading *Reading) error

	// Delete removes a reading
	Delete(ctx context.Context, id uuid.UUID) error
}
