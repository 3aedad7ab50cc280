package calculation

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roikit/roi-calculator/internal/domain"
)

func newTestSensitivityEngine() *SensitivityEngine {
	return NewSensitivityEngine(newTestROIEngine())
}

func TestTornadoAnalysis_SortedByImpact(t *testing.T) {
	e := newTestSensitivityEngine()
	in := exampleInputs().WithImplementationCost(240_000)

	rows, err := e.TornadoAnalysis(in, nil, DefaultRangePct)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.True(t, sort.SliceIsSorted(rows, func(i, j int) bool {
		return rows[i].ImpactRange > rows[j].ImpactRange
	}))

	resorted := append([]domain.SensitivityResult(nil), rows...)
	sort.SliceStable(resorted, func(i, j int) bool { return resorted[i].ImpactRange > resorted[j].ImpactRange })
	assert.Equal(t, rows, resorted)

	for _, r := range rows {
		assert.InDelta(t, -28.660714, r.BaseROI, 1e-5)
		assert.InDelta(t, math.Abs(r.HighROI-r.LowROI), r.ImpactRange, 1e-12)
		assert.InDelta(t, r.BaseValue*0.8, r.LowValue, 1e-6)
		assert.InDelta(t, r.BaseValue*1.2, r.HighValue, 1e-6)
		assert.Equal(t, r.Variable.Label(), r.Label)
	}
	// Efficiency and current cost scale savings identically.
	assert.Contains(t, []domain.Variable{domain.EfficiencyGain, domain.CurrentAnnualCost}, rows[0].Variable)
}

func TestTornadoAnalysis_SkipsAbsentAndZeroBase(t *testing.T) {
	e := newTestSensitivityEngine()

	rows, err := e.TornadoAnalysis(exampleInputs(), nil, 0.2)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "implementation cost was not supplied")

	zeroLicense := exampleInputs().WithImplementationCost(100_000)
	zeroLicense.AnnualLicense = 0
	rows, err = e.TornadoAnalysis(zeroLicense, []domain.Variable{domain.AnnualLicense, domain.EfficiencyGain}, 0.2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EfficiencyGain, rows[0].Variable)
}

func TestTornadoAnalysis_RejectsBadArguments(t *testing.T) {
	e := newTestSensitivityEngine()
	_, err := e.TornadoAnalysis(exampleInputs(), []domain.Variable{"headcount"}, 0.2)
	assert.ErrorIs(t, err, domain.ErrUnknownVariable)

	_, err = e.TornadoAnalysis(exampleInputs(), nil, 1.5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTornadoAnalysis_UsesInputScenario(t *testing.T) {
	e := newTestSensitivityEngine()
	in := exampleInputs()
	in.Scenario = domain.Aggressive
	rows, err := e.TornadoAnalysis(in, []domain.Variable{domain.EfficiencyGain}, 0.2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, -3.7234375, rows[0].BaseROI, 1e-6)
}

func TestOneWayAnalysis(t *testing.T) {
	e := newTestSensitivityEngine()
	points, err := e.OneWayAnalysis(exampleInputs(), domain.EfficiencyGain, 0.2, 5)
	require.NoError(t, err)
	require.Len(t, points, 5)

	wantMult := []float64{0.8, 0.9, 1.0, 1.1, 1.2}
	for i, p := range points {
		assert.InDelta(t, wantMult[i], p.Multiplier, 1e-12)
		assert.InDelta(t, 0.30*wantMult[i], p.Value, 1e-12)
		if i > 0 {
			assert.Greater(t, p.ROIPercent, points[i-1].ROIPercent)
		}
	}
	assert.InDelta(t, -28.660714, points[2].ROIPercent, 1e-5)
	assert.InDelta(t, -20.0, points[0].PercentChange(), 1e-9)
	assert.Equal(t, 89.0, points[2].PaybackMonths)
}

func TestOneWayAnalysis_ZeroBaseIsEmpty(t *testing.T) {
	e := newTestSensitivityEngine()
	in := exampleInputs()
	in.EfficiencyGain = 0
	points, err := e.OneWayAnalysis(in, domain.EfficiencyGain, 0.2, 5)
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = e.OneWayAnalysis(exampleInputs(), domain.EfficiencyGain, 0.2, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBreakEvenAnalysis_BenefitVariable(t *testing.T) {
	e := newTestSensitivityEngine()
	be, err := e.BreakEvenAnalysis(exampleInputs(), domain.EfficiencyGain)
	require.NoError(t, err)
	require.True(t, be.Converged)
	assert.InDelta(t, 1.4017, be.Multiplier, 0.01)
	assert.InDelta(t, 0.30*be.Multiplier, be.BreakEvenValue, 1e-12)
	assert.InDelta(t, 40.2, be.MarginOfSafety(), 1.0)
	assert.LessOrEqual(t, be.Iterations, BreakEvenMaxIterations)

	r, err := newTestROIEngine().Calculate(exampleInputs().With(domain.EfficiencyGain, be.BreakEvenValue))
	require.NoError(t, err)
	assert.Less(t, math.Abs(r.ROIPercent), BreakEvenTolerance)
}

func TestBreakEvenAnalysis_CostVariable(t *testing.T) {
	e := newTestSensitivityEngine()
	be, err := e.BreakEvenAnalysis(exampleInputs(), domain.AnnualLicense)
	require.NoError(t, err)
	require.True(t, be.Converged)
	assert.InDelta(t, 0.713, be.Multiplier, 0.01)

	r, err := newTestROIEngine().Calculate(exampleInputs().With(domain.AnnualLicense, be.BreakEvenValue))
	require.NoError(t, err)
	assert.Less(t, math.Abs(r.ROIPercent), BreakEvenTolerance)
	assert.Less(t, math.Abs(r.ROIPercent-be.ROIAtBreakEven), 1e-9)
}

func TestBreakEvenAnalysis_NoCrossing(t *testing.T) {
	e := newTestSensitivityEngine()
	// Profitable even at twice the implementation cost.
	in := domain.NewROIInputs(1_000_000, 0.30, 100_000).WithImplementationCost(50_000)
	be, err := e.BreakEvenAnalysis(in, domain.ImplementationCost)
	require.NoError(t, err)
	assert.False(t, be.Converged)
	assert.Equal(t, BreakEvenMaxIterations, be.Iterations)
	assert.InDelta(t, 2.0, be.Multiplier, 1e-9)
	assert.Greater(t, be.ROIAtBreakEven, BreakEvenTolerance)
}

func TestBreakEvenAnalysis_DegenerateBase(t *testing.T) {
	e := newTestSensitivityEngine()
	_, err := e.BreakEvenAnalysis(exampleInputs(), domain.ImplementationCost)
	assert.ErrorIs(t, err, domain.ErrDegenerateBase)

	in := exampleInputs()
	in.CurrentAnnualCost = 0
	_, err = e.BreakEvenAnalysis(in, domain.CurrentAnnualCost)
	assert.ErrorIs(t, err, domain.ErrDegenerateBase)
}
