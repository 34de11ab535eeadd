package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/tariff"
)

// DueDatePolicyDays is how long after generation a bill falls due. Fixed
// policy, not configurable per plan.
const DueDatePolicyDays = 15

// currencyPlaces is the number of decimal places charges are rounded to
const currencyPlaces = 2

// Charges holds the three derived amounts of a bill. TotalAmount is
// always the sum of the two components.
type Charges struct {
	EnergyCharge decimal.Decimal
	FixedCharge  decimal.Decimal
	TotalAmount  decimal.Decimal
}

// ComputeCharges derives bill charges from consumption and a tariff plan.
// Pure function: energy = units x rate, total = energy + fixed, each
// rounded half-up to two places so totals stay reconcilable.
func ComputeCharges(unitsConsumed decimal.Decimal, plan *tariff.Plan) Charges {
	energy := unitsConsumed.Mul(plan.RatePerUnit).Round(currencyPlaces)
	fixed := plan.FixedCharge.Round(currencyPlaces)
	return Charges{
		EnergyCharge: energy,
		FixedCharge:  fixed,
		TotalAmount:  energy.Add(fixed),
	}
}

// DueDate returns the payment deadline for a bill generated at the given
// time.
func DueDate(generatedAt time.Time) time.Time {
	return generatedAt.AddDate(0, 0, DueDatePolicyDays)
}
