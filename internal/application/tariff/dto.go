package tariff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/tariff"
)

// CreatePlanRequest represents a request to create a new tariff plan
type CreatePlanRequest struct {
	RatePerUnit *decimal.Decimal `json:"rate_per_unit" binding:"required"`
	FixedCharge *decimal.Decimal `json:"fixed_charge" binding:"required"`
}

// UpdatePlanRequest represents a partial update to a plan's charges
type UpdatePlanRequest struct {
	RatePerUnit *decimal.Decimal `json:"rate_per_unit"`
	FixedCharge *decimal.Decimal `json:"fixed_charge"`
}

// PlanResponse represents a tariff plan in API responses
type PlanResponse struct {
	ID          uuid.UUID       `json:"id"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	FixedCharge decimal.Decimal `json:"fixed_charge"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToPlanResponse maps a domain plan to its API shape
func ToPlanResponse(p *tariff.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		RatePerUnit: p.RatePerUnit,
		FixedCharge: p.FixedCharge,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
