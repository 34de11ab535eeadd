package tariff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/tariff"
	"go.uber.org/zap"
)

// Service handles tariff plan administration
type Service struct {
	planRepo tariff.PlanRepository
	log      *zap.Logger
}

// NewService creates a new tariff Service
func NewService(planRepo tariff.PlanRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{planRepo: planRepo, log: log}
}

// Create creates a new, inactive tariff plan
func (s *Service) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	if req.RatePerUnit == nil || req.FixedCharge == nil {
		return nil, shared.NewValidationError("rate per unit and fixed charge are required")
	}

	plan, err := tariff.NewPlan(*req.RatePerUnit, *req.FixedCharge)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.log.Info("tariff plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("rate_per_unit", plan.RatePerUnit.String()),
		zap.String("fixed_charge", plan.FixedCharge.String()),
	)

	resp := ToPlanResponse(plan)
	return &resp, nil
}

// Activate makes the target plan the single active plan. Deactivating all
// others and activating the target happens in one atomic unit, so two
// concurrent activations still end with exactly one active plan.
func (s *Service) Activate(ctx context.Context, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.ActivateExclusive(ctx, planID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Tariff plan")
		}
		return nil, err
	}

	s.log.Info("tariff plan activated", zap.String("plan_id", plan.ID.String()))

	resp := ToPlanResponse(plan)
	return &resp, nil
}

// Update applies a partial update to an existing plan
func (s *Service) Update(ctx context.Context, planID uuid.UUID, req UpdatePlanRequest) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Tariff plan")
		}
		return nil, err
	}

	if err := plan.Update(req.RatePerUnit, req.FixedCharge); err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	resp := ToPlanResponse(plan)
	return &resp, nil
}

// GetActive returns the currently active plan
func (s *Service) GetActive(ctx context.Context) (*PlanResponse, error) {
	plan, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToPlanResponse(plan)
	return &resp, nil
}

// History lists plans active-first, then newest first, with the total
func (s *Service) History(ctx context.Context, page, pageSize int) ([]PlanResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	plans, total, err := s.planRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PlanResponse, len(plans))
	for i := range plans {
		out[i] = ToPlanResponse(&plans[i])
	}
	return out, total, nil
}
