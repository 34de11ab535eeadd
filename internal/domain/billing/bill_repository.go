package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
)

// ListFilter narrows bill queries
type ListFilter struct {
	Period      *valueobject.Period
	Month       *int
	Year        *int
	Status      *Status
	ConsumerID  *uuid.UUID
	GeneratedBy *uuid.UUID
	Page        int
	PageSize    int
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	// FindByID finds a bill by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// FindByReadingID finds the bill owning a reading, or shared.ErrNotFound
	FindByReadingID(ctx context.Context, readingID uuid.UUID) (*Bill, error)

	// FindAll returns bills matching the filter, newest first, with the
	// total count.
	FindAll(ctx context.Context, filter ListFilter) ([]Bill, int64, error)

	// FindByConsumer returns a consumer's bill history ordered by period
	// year descending then creation time descending.
	FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]Bill, error)

	// Save persists a bill. A duplicate reading link surfaces as
	// shared.ErrConflict driven by the storage uniqueness constraint.
	Save(ctx context.Context, bill *Bill) error

	// Delete removes a bill
	Delete(ctx context.Context, id uuid.UUID) error

	// DeletePending removes a bill only while it is still pending. The
	// status check and the delete are one storage statement, so a
	// concurrent status change cannot slip between them. Returns
	// shared.ErrNotFound if no bill exists, or the state error from
	// Bill.Deletable if the bill is no longer pending.
	DeletePending(ctx context.Context, id uuid.UUID) error
}
