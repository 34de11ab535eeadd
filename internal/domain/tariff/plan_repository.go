package tariff

import (
	"context"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/shared"
)

// PlanRepository defines the interface for tariff plan persistence
type PlanRepository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindActive returns the single active plan. If more than one plan is
	// (incorrectly) marked active, the most recently created wins; this is
	// a defensive tie-break, not a substitute for the invariant. Returns
	// shared.ErrNoActiveTariff when no plan is active.
	FindActive(ctx context.Context) (*Plan, error)

	// FindAll returns plans ordered active-first, then by creation time
	// descending, with the total count.
	FindAll(ctx context.Context, filter shared.Filter) ([]Plan, int64, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *Plan) error

	// ActivateExclusive deactivates every other plan and activates the
	// target within a single atomic unit, so that exactly one plan is
	// active afterwards. Returns shared.ErrNotFound if the plan does not
	// exist.
	ActivateExclusive(ctx context.Context, id uuid.UUID) (*Plan, error)
}
