package tariff

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/shared"
)

// Plan represents a versioned rate plan used to compute bills.
// It is the aggregate root for tariff operations. Plans are append-only:
// they are never deleted, so the full rate history stays auditable.
type Plan struct {
	shared.BaseAggregateRoot
	RatePerUnit decimal.Decimal
	FixedCharge decimal.Decimal
	IsActive    bool
}

// NewPlan creates a new tariff plan. New plans are created inactive and
// must be activated explicitly.
func NewPlan(ratePerUnit, fixedCharge decimal.Decimal) (*Plan, error) {
	if ratePerUnit.IsNegative() {
		return nil, shared.NewValidationError("rate per unit cannot be negative, got %s", ratePerUnit)
	}
	if fixedCharge.IsNegative() {
		return nil, shared.NewValidationError("fixed charge cannot be negative, got %s", fixedCharge)
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RatePerUnit:       ratePerUnit,
		FixedCharge:       fixedCharge,
		IsActive:          false,
	}, nil
}

// Update applies a partial update to the plan's charges. At least one
// field must be provided.
func (p *Plan) Update(ratePerUnit, fixedCharge *decimal.Decimal) error {
	if ratePerUnit == nil && fixedCharge == nil {
		return shared.NewValidationError("at least one of rate per unit or fixed charge must be provided")
	}
	if ratePerUnit != nil {
		if ratePerUnit.IsNegative() {
			return shared.NewValidationError("rate per unit cannot be negative, got %s", ratePerUnit)
		}
		p.RatePerUnit = *ratePerUnit
	}
	if fixedCharge != nil {
		if fixedCharge.IsNegative() {
			return shared.NewValidationError("fixed charge cannot be negative, got %s", fixedCharge)
		}
		p.FixedCharge = *fixedCharge
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Activate marks the plan active. Exclusivity against all other plans is
// enforced by the repository inside a single transaction; this method only
// records the local state change.
func (p *Plan) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate marks the plan inactive.
func (p *Plan) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
