package calculation

import (
	"context"
	"fmt"

	"github.com/roikit/roi-calculator/internal/domain"
)

// CalculationEngine wires the four engines from one assumption table.
type CalculationEngine struct {
	Assumptions *domain.Assumptions
	ROI         *ROIEngine
	TCO         *TCOEngine
	Sensitivity *SensitivityEngine
	MonteCarlo  *MonteCarloEngine
	Logger      Logger
}

// NewCalculationEngine creates an engine over the built-in default assumptions.
func NewCalculationEngine() *CalculationEngine {
	ce, err := NewCalculationEngineWithAssumptions(domain.DefaultAssumptions())
	if err != nil {
		// The defaults are validated by tests; reaching this is a programming error.
		panic(err)
	}
	return ce
}

// NewCalculationEngineWithAssumptions validates the assumption table and builds
// the engines from it.
func NewCalculationEngineWithAssumptions(a *domain.Assumptions, opts ...ROIOption) (*CalculationEngine, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: assumptions are required", domain.ErrInvalidInput)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	roi := NewROIEngine(a.Scenarios, opts...)
	return &CalculationEngine{
		Assumptions: a,
		ROI:         roi,
		TCO:         NewTCOEngine(a.HiddenCosts, a.InflationRate),
		Sensitivity: NewSensitivityEngine(roi),
		MonteCarlo:  NewMonteCarloEngine(roi),
		Logger:      NopLogger{},
	}, nil
}

// SetLogger sets the logger for the engine and every sub-engine. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	l = loggerOrNop(l)
	ce.Logger = l
	ce.ROI.SetLogger(l)
	ce.TCO.SetLogger(l)
	ce.Sensitivity.SetLogger(l)
	ce.MonteCarlo.SetLogger(l)
}

// IndustryMultiplier resolves an industry name against the assumption table.
func (ce *CalculationEngine) IndustryMultiplier(industry string) float64 {
	return ce.Assumptions.IndustryMultiplier(industry)
}

// MonteCarloConfig returns a simulation config seeded from the assumption defaults.
func (ce *CalculationEngine) MonteCarloConfig() MonteCarloConfig {
	return DefaultMonteCarloConfig(ce.Assumptions.MonteCarlo)
}

// Analysis bundles every analysis of one set of ROI inputs.
type Analysis struct {
	Inputs     domain.ROIInputs
	Scenarios  map[domain.ScenarioName]*domain.ROIResult
	Tornado    []domain.SensitivityResult
	BreakEven  []*domain.BreakEvenResult
	MonteCarlo *domain.MonteCarloResult
	Confidence *domain.ConfidenceInterval
}

// RunFullAnalysis runs every scenario, the tornado and break-even analyses and,
// when mc is not nil, a Monte Carlo simulation.
func (ce *CalculationEngine) RunFullAnalysis(ctx context.Context, in domain.ROIInputs, mc *MonteCarloConfig) (*Analysis, error) {
	scenarios, err := ce.ROI.CalculateAllScenarios(in)
	if err != nil {
		return nil, err
	}
	tornado, err := ce.Sensitivity.TornadoAnalysis(in, nil, DefaultRangePct)
	if err != nil {
		return nil, fmt.Errorf("tornado analysis: %w", err)
	}

	a := &Analysis{Inputs: in, Scenarios: scenarios, Tornado: tornado}
	for _, v := range []domain.Variable{domain.EfficiencyGain, domain.AnnualLicense} {
		be, err := ce.Sensitivity.BreakEvenAnalysis(in, v)
		if err != nil {
			ce.Logger.Debugf("break-even for %s skipped: %v", v, err)
			continue
		}
		a.BreakEven = append(a.BreakEven, be)
	}

	if mc != nil {
		res, err := ce.MonteCarlo.Simulate(ctx, in, *mc)
		if err != nil {
			return nil, fmt.Errorf("monte carlo: %w", err)
		}
		ci, err := ConfidenceInterval(res, 0.90)
		if err != nil {
			return nil, err
		}
		a.MonteCarlo = res
		a.Confidence = &ci
	}
	return a, nil
}
