package calculation

import (
	"fmt"
	"math"

	"github.com/roikit/roi-calculator/internal/domain"
)

// IRR search bracket.
const (
	IRRLowerBound = -0.99
	IRRUpperBound = 10.0
)

// ROIEngine computes the cash-flow projection and return metrics of one
// scenario. It holds only read-only configuration and is safe for concurrent use.
type ROIEngine struct {
	scenarios map[domain.ScenarioName]domain.ScenarioConfig
	solver    RootFinder
	logger    Logger
}

// ROIOption configures an ROIEngine.
type ROIOption func(*ROIEngine)

// WithRootFinder replaces the IRR solver. A nil solver disables IRR, which is
// then reported as absent.
func WithRootFinder(rf RootFinder) ROIOption {
	return func(e *ROIEngine) { e.solver = rf }
}

// WithROILogger sets the engine logger.
func WithROILogger(l Logger) ROIOption {
	return func(e *ROIEngine) { e.logger = loggerOrNop(l) }
}

// NewROIEngine creates an engine over the given scenario table, solving IRR
// with Brent's method unless told otherwise.
func NewROIEngine(scenarios []domain.ScenarioConfig, opts ...ROIOption) *ROIEngine {
	e := &ROIEngine{
		scenarios: make(map[domain.ScenarioName]domain.ScenarioConfig, len(scenarios)),
		solver:    NewBrentSolver(),
		logger:    NopLogger{},
	}
	for _, s := range scenarios {
		e.scenarios[s.Name] = s
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *ROIEngine) SetLogger(l Logger) { e.logger = loggerOrNop(l) }

// Scenario returns the configuration of a named scenario.
func (e *ROIEngine) Scenario(name domain.ScenarioName) (domain.ScenarioConfig, error) {
	s, ok := e.scenarios[name]
	if !ok {
		return domain.ScenarioConfig{}, fmt.Errorf("%w: %q", domain.ErrUnknownScenario, name)
	}
	return s, nil
}

// Calculate runs one scenario over the inputs' horizon.
func (e *ROIEngine) Calculate(in domain.ROIInputs) (*domain.ROIResult, error) {
	if err := checkROIInputs(in); err != nil {
		return nil, err
	}
	sc, err := e.Scenario(in.Scenario)
	if err != nil {
		return nil, err
	}

	implementation := in.AnnualLicense * sc.ImplementationMultiplier
	if in.ImplementationCost != nil {
		implementation = *in.ImplementationCost
	}

	adjustedEfficiency := in.EfficiencyGain * sc.EfficiencyMultiplier * in.IndustryMultiplier
	annualSavings := in.CurrentAnnualCost * adjustedEfficiency * sc.AdoptionRate
	netAnnual := annualSavings - in.AnnualLicense
	totalInvestment := implementation + in.AnnualLicense*float64(in.Years)

	cashFlows := make([]float64, in.Years+1)
	benefits := make([]float64, in.Years+1)
	costs := make([]float64, in.Years+1)
	cashFlows[0] = -implementation
	costs[0] = implementation
	sumBenefits, sumCosts := 0.0, implementation
	for y := 1; y <= in.Years; y++ {
		benefits[y] = annualSavings * sc.Realization(y)
		costs[y] = in.AnnualLicense
		cashFlows[y] = benefits[y] - costs[y]
		sumBenefits += benefits[y]
		sumCosts += costs[y]
	}

	netBenefit := sumBenefits - sumCosts
	roi := 0.0
	if totalInvestment > 0 {
		roi = netBenefit / totalInvestment * 100
	}

	result := &domain.ROIResult{
		ScenarioName:       sc.Name,
		Years:              in.Years,
		TotalInvestment:    totalInvestment,
		ImplementationCost: implementation,
		AnnualLicense:      in.AnnualLicense,
		AnnualSavings:      annualSavings,
		NetAnnualBenefit:   netAnnual,
		NetBenefit:         netBenefit,
		YearlyCashFlows:    cashFlows,
		YearlyBenefits:     benefits,
		YearlyCosts:        costs,
		ROIPercent:         roi,
		PaybackMonths:      PaybackMonths(annualSavings, in.AnnualLicense, implementation, sc),
		NPV:                NPV(cashFlows, sc.DiscountRate),
		IRR:                e.irr(cashFlows),
	}
	return result, nil
}

// CalculateAllScenarios runs Calculate once per known scenario.
func (e *ROIEngine) CalculateAllScenarios(in domain.ROIInputs) (map[domain.ScenarioName]*domain.ROIResult, error) {
	out := make(map[domain.ScenarioName]*domain.ROIResult, len(domain.ScenarioNames()))
	for _, name := range domain.ScenarioNames() {
		in.Scenario = name
		r, err := e.Calculate(in)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", name, err)
		}
		out[name] = r
	}
	return out, nil
}

func (e *ROIEngine) irr(cashFlows []float64) *float64 {
	r := IRR(cashFlows, e.solver)
	if r == nil {
		e.logger.Debugf("IRR not computable on (%g, %g) for cash flows %v", IRRLowerBound, IRRUpperBound, cashFlows)
	}
	return r
}

// NPV discounts cashFlows[t] by (1+rate)^t, t starting at 0.
func NPV(cashFlows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR solves NPV(r) = 0 on (IRRLowerBound, IRRUpperBound). It returns nil when
// the solver is nil, the flows never change sign, the bracket holds no root or
// the solver fails.
func IRR(cashFlows []float64, solver RootFinder) *float64 {
	if solver == nil || !changesSign(cashFlows) {
		return nil
	}
	r, ok := solver.Solve(func(rate float64) float64 { return NPV(cashFlows, rate) }, IRRLowerBound, IRRUpperBound)
	if !ok || !isFinite(r) {
		return nil
	}
	return &r
}

func changesSign(cashFlows []float64) bool {
	var pos, neg bool
	for _, cf := range cashFlows {
		pos = pos || cf > 0
		neg = neg || cf < 0
	}
	return pos && neg
}

// PaybackMonths walks month by month up to PaybackHorizonMonths, accruing a
// twelfth of each year's realized savings against the implementation outlay
// plus pro-rated license. It returns the first month where savings cover
// cost, or +Inf when that never happens.
func PaybackMonths(annualSavings, annualLicense, implementation float64, sc domain.ScenarioConfig) float64 {
	if annualSavings <= annualLicense {
		return math.Inf(1)
	}
	saved := 0.0
	for month := 1; month <= domain.PaybackHorizonMonths; month++ {
		year := (month-1)/12 + 1
		saved += annualSavings * sc.Realization(year) / 12
		cost := implementation + annualLicense/12*float64(month)
		if saved >= cost {
			return float64(month)
		}
	}
	return math.Inf(1)
}

func checkROIInputs(in domain.ROIInputs) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"current_annual_cost", in.CurrentAnnualCost},
		{"efficiency_gain", in.EfficiencyGain},
		{"annual_license", in.AnnualLicense},
		{"industry_multiplier", in.IndustryMultiplier},
	}
	if in.ImplementationCost != nil {
		fields = append(fields, struct {
			name  string
			value float64
		}{"implementation_cost", *in.ImplementationCost})
	}
	for _, f := range fields {
		if err := checkAmount(f.name, f.value); err != nil {
			return err
		}
	}
	if in.Years < 1 {
		return fmt.Errorf("%w: years must be at least 1, got %d", domain.ErrInvalidInput, in.Years)
	}
	return nil
}

func checkAmount(name string, v float64) error {
	if !isFinite(v) {
		return fmt.Errorf("%w: %s must be finite, got %v", domain.ErrInvalidInput, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %v", domain.ErrInvalidInput, name, v)
	}
	return nil
}
