package domain

import (
	"fmt"
	"math"
	"strings"
)

// CostBasis names the base figure a hidden cost is computed from.
type CostBasis string

const (
	BasisBaseAnnual     CostBasis = "base_annual"
	BasisOperations     CostBasis = "operations"
	BasisMaintenance    CostBasis = "maintenance"
	BasisLabor          CostBasis = "labor"
	BasisInfrastructure CostBasis = "infrastructure"
	BasisImplementation CostBasis = "implementation"
	BasisLicense        CostBasis = "license"
	BasisSupport        CostBasis = "support"
)

// HiddenCostFactor is one often-overlooked cost category, expressed as a rate of a base figure.
type HiddenCostFactor struct {
	Name        string    `yaml:"name" toml:"name" json:"name"`
	Basis       CostBasis `yaml:"basis" toml:"basis" json:"basis"`
	Rate        float64   `yaml:"rate" toml:"rate" json:"rate"`
	Description string    `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
}

// HiddenCostFactors groups hidden costs by when and where they apply.
type HiddenCostFactors struct {
	// Current are recurring annual costs of the current state.
	Current []HiddenCostFactor `yaml:"current" toml:"current" json:"current"`

	// FutureOneTime are incurred once, in year 0, as a rate of implementation cost.
	FutureOneTime []HiddenCostFactor `yaml:"future_one_time" toml:"future_one_time" json:"future_one_time"`

	// FutureRecurring are annual rates of license or support cost, amortized evenly.
	FutureRecurring []HiddenCostFactor `yaml:"future_recurring" toml:"future_recurring" json:"future_recurring"`
}

// Range bounds a triangular distribution of multipliers whose mode is 1.0.
type Range struct {
	Low  float64 `yaml:"low" toml:"low" json:"low"`
	High float64 `yaml:"high" toml:"high" json:"high"`
}

// MonteCarloDefaults holds simulation settings used when a caller supplies none.
type MonteCarloDefaults struct {
	Iterations     int                `yaml:"iterations" toml:"iterations" json:"iterations"`
	HurdleRate     float64            `yaml:"hurdle_rate" toml:"hurdle_rate" json:"hurdle_rate"`
	VariableRanges map[Variable]Range `yaml:"variable_ranges" toml:"variable_ranges" json:"variable_ranges"`
}

// EfficiencyBenchmark is the observed spread of efficiency gains for one
// process category, as fractions of current cost.
type EfficiencyBenchmark struct {
	Low     float64 `yaml:"low" toml:"low" json:"low"`
	Typical float64 `yaml:"typical" toml:"typical" json:"typical"`
	High    float64 `yaml:"high" toml:"high" json:"high"`
}

func (b EfficiencyBenchmark) scale(m float64) EfficiencyBenchmark {
	return EfficiencyBenchmark{
		Low:     math.Min(b.Low*m, 1),
		Typical: math.Min(b.Typical*m, 1),
		High:    math.Min(b.High*m, 1),
	}
}

// Assumptions is the externally supplied assumption table for a deployment.
type Assumptions struct {
	Scenarios           []ScenarioConfig               `yaml:"scenarios" toml:"scenarios" json:"scenarios"`
	IndustryMultipliers map[string]float64             `yaml:"industry_multipliers" toml:"industry_multipliers" json:"industry_multipliers"`
	EfficiencyGains     map[string]EfficiencyBenchmark `yaml:"efficiency_gains" toml:"efficiency_gains" json:"efficiency_gains"`
	HiddenCosts         HiddenCostFactors              `yaml:"hidden_costs" toml:"hidden_costs" json:"hidden_costs"`
	InflationRate       float64                        `yaml:"inflation_rate" toml:"inflation_rate" json:"inflation_rate"`
	MonteCarlo          MonteCarloDefaults             `yaml:"monte_carlo" toml:"monte_carlo" json:"monte_carlo"`
}

// Scenario looks up a scenario by name.
func (a *Assumptions) Scenario(name ScenarioName) (ScenarioConfig, error) {
	for _, s := range a.Scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return ScenarioConfig{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// IndustryMultiplier resolves an industry name; unknown or empty industries return 1.0.
func (a *Assumptions) IndustryMultiplier(industry string) float64 {
	if m, ok := a.IndustryMultipliers[strings.ToLower(strings.TrimSpace(industry))]; ok {
		return m
	}
	return 1.0
}

// EfficiencyBenchmarks returns every efficiency benchmark scaled by the
// industry's multiplier. Scaled values are capped at 1.0.
func (a *Assumptions) EfficiencyBenchmarks(industry string) map[string]EfficiencyBenchmark {
	m := a.IndustryMultiplier(industry)
	out := make(map[string]EfficiencyBenchmark, len(a.EfficiencyGains))
	for category, b := range a.EfficiencyGains {
		out[category] = b.scale(m)
	}
	return out
}

// Validate checks the whole assumption table.
func (a *Assumptions) Validate() error {
	seen := make(map[ScenarioName]bool)
	for _, s := range a.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: scenario %s defined more than once", ErrInvalidInput, s.Name)
		}
		seen[s.Name] = true
	}
	for _, name := range ScenarioNames() {
		if !seen[name] {
			return fmt.Errorf("%w: scenario %s is missing", ErrInvalidInput, name)
		}
	}

	for industry, m := range a.IndustryMultipliers {
		if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
			return fmt.Errorf("%w: industry multiplier for %s must be finite and non-negative", ErrInvalidInput, industry)
		}
	}

	for category, b := range a.EfficiencyGains {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("efficiency gains %s: %w", category, err)
		}
	}

	if math.IsNaN(a.InflationRate) || math.IsInf(a.InflationRate, 0) || a.InflationRate < 0 {
		return fmt.Errorf("%w: inflation rate must be finite and non-negative", ErrInvalidInput)
	}

	groups := []struct {
		name    string
		factors []HiddenCostFactor
		allowed []CostBasis
	}{
		{"current", a.HiddenCosts.Current, []CostBasis{BasisBaseAnnual, BasisOperations, BasisMaintenance, BasisLabor, BasisInfrastructure}},
		{"future_one_time", a.HiddenCosts.FutureOneTime, []CostBasis{BasisImplementation}},
		{"future_recurring", a.HiddenCosts.FutureRecurring, []CostBasis{BasisLicense, BasisSupport}},
	}
	for _, g := range groups {
		for _, f := range g.factors {
			if f.Name == "" {
				return fmt.Errorf("%w: hidden cost in %s has no name", ErrInvalidInput, g.name)
			}
			if math.IsNaN(f.Rate) || math.IsInf(f.Rate, 0) || f.Rate < 0 {
				return fmt.Errorf("%w: hidden cost %s rate must be finite and non-negative", ErrInvalidInput, f.Name)
			}
			if !containsBasis(g.allowed, f.Basis) {
				return fmt.Errorf("%w: hidden cost %s has basis %q, not valid for %s", ErrInvalidInput, f.Name, f.Basis, g.name)
			}
		}
	}

	if a.MonteCarlo.Iterations < 0 {
		return fmt.Errorf("%w: monte carlo iterations cannot be negative", ErrInvalidInput)
	}
	for v, r := range a.MonteCarlo.VariableRanges {
		if _, err := ParseVariable(string(v)); err != nil {
			return err
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("variable %s: %w", v, err)
		}
	}
	return nil
}

// Validate checks that the range brackets the mode of 1.0.
func (r Range) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) || math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return fmt.Errorf("%w: range bounds must be finite", ErrInvalidInput)
	}
	if r.Low < 0 || r.Low > 1 || r.High < 1 {
		return fmt.Errorf("%w: range (%g, %g) must satisfy 0 <= low <= 1 <= high", ErrInvalidInput, r.Low, r.High)
	}
	return nil
}

// Validate checks that the benchmark is ordered and within [0,1].
func (b EfficiencyBenchmark) Validate() error {
	for _, v := range []float64{b.Low, b.Typical, b.High} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: benchmark values must be between 0 and 1, got %v", ErrInvalidInput, v)
		}
	}
	if b.Low > b.Typical || b.Typical > b.High {
		return fmt.Errorf("%w: benchmark must satisfy low <= typical <= high", ErrInvalidInput)
	}
	return nil
}

func containsBasis(list []CostBasis, b CostBasis) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}

// DefaultAssumptions returns the built-in assumption table.
func DefaultAssumptions() *Assumptions {
	realization := func() []float64 { return []float64{0.50, 0.85, 1.00} }
	return &Assumptions{
		Scenarios: []ScenarioConfig{
			{
				Name:                     Conservative,
				ImplementationMultiplier: 1.5,
				EfficiencyMultiplier:     0.8,
				DiscountRate:             0.12,
				AdoptionRate:             0.70,
				BenefitRealization:       realization(),
			},
			{
				Name:                     Moderate,
				ImplementationMultiplier: 1.2,
				EfficiencyMultiplier:     1.0,
				DiscountRate:             0.10,
				AdoptionRate:             0.85,
				BenefitRealization:       realization(),
			},
			{
				Name:                     Aggressive,
				ImplementationMultiplier: 1.0,
				EfficiencyMultiplier:     1.15,
				DiscountRate:             0.08,
				AdoptionRate:             0.95,
				BenefitRealization:       realization(),
			},
		},
		IndustryMultipliers: map[string]float64{
			"banking":          1.15,
			"insurance":        1.10,
			"asset_management": 1.20,
			"payments":         1.05,
		},
		EfficiencyGains: map[string]EfficiencyBenchmark{
			"reconciliation":       {Low: 0.30, Typical: 0.45, High: 0.60},
			"regulatory_reporting": {Low: 0.20, Typical: 0.35, High: 0.50},
			"client_onboarding":    {Low: 0.25, Typical: 0.40, High: 0.55},
			"trade_processing":     {Low: 0.15, Typical: 0.30, High: 0.45},
		},
		HiddenCosts: HiddenCostFactors{
			Current: []HiddenCostFactor{
				{Name: "unplanned_maintenance", Basis: BasisBaseAnnual, Rate: 0.12, Description: "Emergency fixes, unscheduled downtime costs"},
				{Name: "productivity_overhead", Basis: BasisLabor, Rate: 0.20, Description: "Time lost to inefficient processes and context switching"},
				{Name: "manual_workarounds", Basis: BasisOperations, Rate: 0.15, Description: "Spreadsheets and manual steps compensating for system gaps"},
				{Name: "compliance_risk", Basis: BasisOperations, Rate: 0.08, Description: "Potential audit findings, regulatory penalties"},
			},
			FutureOneTime: []HiddenCostFactor{
				{Name: "training_initial", Basis: BasisImplementation, Rate: 0.15, Description: "Initial user training, certification costs"},
				{Name: "change_management", Basis: BasisImplementation, Rate: 0.20, Description: "Communication, stakeholder management, adoption programs"},
				{Name: "data_migration", Basis: BasisImplementation, Rate: 0.25, Description: "Data cleansing, transformation, validation, historical load"},
			},
			FutureRecurring: []HiddenCostFactor{
				{Name: "training_ongoing", Basis: BasisLicense, Rate: 0.05, Description: "Ongoing user training for new staff and releases"},
				{Name: "integration_maintenance", Basis: BasisLicense, Rate: 0.08, Description: "Ongoing integration updates and compatibility"},
			},
		},
		InflationRate: 0.03,
		MonteCarlo: MonteCarloDefaults{
			Iterations:     10000,
			HurdleRate:     100.0,
			VariableRanges: DefaultVariableRanges(),
		},
	}
}

// DefaultVariableRanges returns the default triangular ranges for Monte Carlo sampling.
func DefaultVariableRanges() map[Variable]Range {
	return map[Variable]Range{
		EfficiencyGain:     {Low: 0.7, High: 1.3},
		ImplementationCost: {Low: 0.8, High: 1.4},
		AnnualLicense:      {Low: 0.9, High: 1.1},
		CurrentAnnualCost:  {Low: 0.9, High: 1.1},
	}
}
