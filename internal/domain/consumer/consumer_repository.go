package consumer

import (
	"context"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/shared"
)

// Repository defines the interface for consumer persistence
type Repository interface {
	// FindByID finds a consumer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Consumer, error)

	// FindByMeterNumber resolves a meter identifier to its consumer
	FindByMeterNumber(ctx context.Context, meterNumber string) (*Consumer, error)

	// FindAll returns consumers matching the filter with the total count
	FindAll(ctx context.Context, filter shared.Filter) ([]Consumer, int64, error)

	// ExistsByMeterNumber checks if a consumer with the meter number exists
	ExistsByMeterNumber(ctx context.Context, meterNumber string) (bool, error)

	// Save creates or updates a consumer
	Save(ctx context.Context, consumer *Consumer) error

	// Delete removes a consumer
	Delete(ctx context.Context, id uuid.UUID) error
}
