package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utilityboard/backend/internal/domain/tariff"
)

func newTestPlan(t *testing.T, rate, fixed string) *tariff.Plan {
	t.Helper()
	plan, err := tariff.NewPlan(decimal.RequireFromString(rate), decimal.RequireFromString(fixed))
	require.NoError(t, err)
	return plan
}

func TestComputeCharges(t *testing.T) {
	t.Run("computes energy plus fixed", func(t *testing.T) {
		plan := newTestPlan(t, "8.5", "500")

		charges := ComputeCharges(decimal.NewFromInt(150), plan)

		assert.Equal(t, "1275", charges.EnergyCharge.String())
		assert.Equal(t, "500", charges.FixedCharge.String())
		assert.Equal(t, "1775", charges.TotalAmount.String())
	})

	t.Run("rounds half up to two places", func(t *testing.T) {
		// 100.5 * 0.125 = 12.5625 -> 12.56; 10.005 has an exact half and rounds up
		plan := newTestPlan(t, "0.125", "10.005")

		charges := ComputeCharges(decimal.RequireFromString("100.5"), plan)

		assert.Equal(t, "12.56", charges.EnergyCharge.String())
		assert.Equal(t, "10.01", charges.FixedCharge.String())
		assert.Equal(t, "22.57", charges.TotalAmount.String())
	})

	t.Run("total is exact sum of rounded components", func(t *testing.T) {
		plan := newTestPlan(t, "0.333", "0.333")

		charges := ComputeCharges(decimal.NewFromInt(10), plan)

		assert.True(t, charges.TotalAmount.Equal(charges.EnergyCharge.Add(charges.FixedCharge)))
	})

	t.Run("zero consumption still carries the fixed charge", func(t *testing.T) {
		plan := newTestPlan(t, "8.5", "500")

		charges := ComputeCharges(decimal.Zero, plan)

		assert.True(t, charges.EnergyCharge.IsZero())
		assert.Equal(t, "500", charges.TotalAmount.String())
	})
}

func TestDueDate(t *testing.T) {
	generatedAt := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

	due := DueDate(generatedAt)

	assert.Equal(t, time.Date(2024, 4, 4, 10, 0, 0, 0, time.UTC), due)
}
