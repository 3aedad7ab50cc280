package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roikit/roi-calculator/internal/domain"
)

func sumValues(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

func assertDecimal(t *testing.T, want float64, got decimal.Decimal, delta float64) {
	t.Helper()
	assert.InDelta(t, want, got.InexactFloat64(), delta)
}

func TestCompare_NoInflationNoHidden(t *testing.T) {
	e := NewTCOEngine(domain.DefaultAssumptions().HiddenCosts, 0)
	res, err := e.Compare(
		domain.CurrentState{AnnualOperations: 300_000, AnnualMaintenance: 100_000},
		domain.FutureState{Implementation: 100_000, AnnualLicense: 150_000},
		5, false)
	require.NoError(t, err)

	assert.True(t, res.CurrentStateTCO.Equal(decimal.NewFromInt(2_000_000)), res.CurrentStateTCO.String())
	assert.True(t, res.FutureStateTCO.Equal(decimal.NewFromInt(850_000)), res.FutureStateTCO.String())
	assert.True(t, res.TCOSavings.Equal(decimal.NewFromInt(1_150_000)))
	assert.True(t, res.SavingsPercent.Equal(decimal.RequireFromString("57.5")), res.SavingsPercent.String())
	assert.Empty(t, res.HiddenCostsIdentified)

	require.Len(t, res.YearlyComparison, 6)
	first := res.YearlyComparison[0]
	assert.Equal(t, 0, first.Year)
	assert.True(t, first.CurrentCumulative.IsZero())
	assert.True(t, first.FutureCumulative.Equal(decimal.NewFromInt(100_000)))
	assert.True(t, first.CumulativeSavings.Equal(decimal.NewFromInt(-100_000)))

	last := res.YearlyComparison[5]
	assert.Equal(t, 5, last.Year)
	assert.True(t, last.CurrentCumulative.Equal(res.CurrentStateTCO))
	assert.True(t, last.FutureCumulative.Equal(res.FutureStateTCO))
	assert.True(t, last.CumulativeSavings.Equal(res.TCOSavings))

	assert.Len(t, res.CurrentProjection, 5)
	assert.Len(t, res.FutureProjection, 6)
	assert.True(t, res.CurrentStateTCO.Equal(sumValues(res.CurrentBreakdown)))
	assert.True(t, res.FutureStateTCO.Equal(sumValues(res.FutureBreakdown)))
}

func TestCompare_HiddenCostsWithInflation(t *testing.T) {
	e := NewTCOEngine(domain.DefaultAssumptions().HiddenCosts, 0.03)
	res, err := e.Compare(
		domain.CurrentState{AnnualOperations: 300_000, AnnualMaintenance: 100_000, AnnualLabor: 200_000},
		domain.FutureState{Implementation: 100_000, AnnualLicense: 150_000},
		5, true)
	require.NoError(t, err)

	// Base 600,000 plus hidden 181,000 a year, compounded at 3%.
	assertDecimal(t, 4_146_435.07, res.CurrentStateTCO, 0.01)
	// 100,000 + 60,000 one-time, license compounded, 19,500 a year recurring hidden.
	assertDecimal(t, 1_053_870.37, res.FutureStateTCO, 0.01)

	assertDecimal(t, 382_257.78, res.HiddenCostsIdentified["current_hidden_unplanned_maintenance"], 0.01)
	assert.True(t, res.HiddenCostsIdentified["future_training_initial"].Equal(decimal.NewFromInt(15_000)))
	assert.True(t, res.HiddenCostsIdentified["future_training_ongoing"].Equal(decimal.NewFromInt(37_500)))
	assert.True(t, res.HiddenCostsIdentified["future_integration_maintenance"].Equal(decimal.NewFromInt(60_000)))

	// Inflated breakdown entries add up to the projected total without drift.
	assert.True(t, res.CurrentStateTCO.Equal(sumValues(res.CurrentBreakdown)),
		"%s != %s", res.CurrentStateTCO, sumValues(res.CurrentBreakdown))
	assert.True(t, res.FutureStateTCO.Equal(sumValues(res.FutureBreakdown)),
		"%s != %s", res.FutureStateTCO, sumValues(res.FutureBreakdown))
	assertDecimal(t, 300_000*(1+1.03+1.0609+1.092727+1.12550881), res.CurrentBreakdown["operations"], 1e-6)

	y0 := res.FutureProjection[0]
	assert.True(t, y0.HiddenCost.Equal(decimal.NewFromInt(60_000)))
	assert.True(t, y0.Total.Equal(decimal.NewFromInt(160_000)))

	y2 := res.CurrentProjection[1]
	assert.True(t, y2.BaseCost.Equal(decimal.NewFromInt(618_000)), y2.BaseCost.String())
	assert.True(t, y2.HiddenCost.Equal(decimal.NewFromInt(186_430)), y2.HiddenCost.String())
}

func TestCompare_EfficiencySavingsOffset(t *testing.T) {
	e := NewTCOEngine(domain.HiddenCostFactors{}, 0)
	res, err := e.Compare(
		domain.CurrentState{AnnualOperations: 400_000},
		domain.FutureState{Implementation: 100_000, AnnualLicense: 150_000, EfficiencySavings: 50_000},
		5, true)
	require.NoError(t, err)
	assert.True(t, res.FutureStateTCO.Equal(decimal.NewFromInt(600_000)))
	assert.True(t, res.FutureBreakdown["efficiency_savings"].Equal(decimal.NewFromInt(-250_000)))
	assert.True(t, res.FutureProjection[3].Savings.Equal(decimal.NewFromInt(50_000)))
	assert.True(t, res.FutureStateTCO.Equal(sumValues(res.FutureBreakdown)))
}

func TestCompare_ZeroCurrentGuardsPercent(t *testing.T) {
	e := NewTCOEngine(domain.DefaultAssumptions().HiddenCosts, 0.03)
	res, err := e.Compare(domain.CurrentState{}, domain.FutureState{AnnualLicense: 10_000}, 3, true)
	require.NoError(t, err)
	assert.True(t, res.CurrentStateTCO.IsZero())
	assert.True(t, res.SavingsPercent.IsZero())
	assert.True(t, res.TCOSavings.IsNegative())
}

func TestCompare_RejectsInvalidInput(t *testing.T) {
	e := NewTCOEngine(domain.DefaultAssumptions().HiddenCosts, 0.03)
	_, err := e.Compare(domain.CurrentState{AnnualOperations: 1}, domain.FutureState{}, 0, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.Compare(domain.CurrentState{AnnualLabor: -1}, domain.FutureState{}, 3, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHiddenCostSummary(t *testing.T) {
	e := NewTCOEngine(domain.DefaultAssumptions().HiddenCosts, 0.03)
	summary := e.HiddenCostSummary(true)
	assert.Len(t, summary, 9)
	assert.Contains(t, summary["compliance_risk"], "regulatory")
	assert.Empty(t, e.HiddenCostSummary(false))
}
