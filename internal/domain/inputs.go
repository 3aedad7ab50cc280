package domain

import "fmt"

// Variable names an ROI input that sensitivity and simulation can vary.
type Variable string

const (
	EfficiencyGain     Variable = "efficiency_gain"
	AnnualLicense      Variable = "annual_license"
	ImplementationCost Variable = "implementation_cost"
	CurrentAnnualCost  Variable = "current_annual_cost"
)

// DefaultVariables is the default tornado and Monte Carlo variable set, in draw order.
func DefaultVariables() []Variable {
	return []Variable{EfficiencyGain, AnnualLicense, ImplementationCost, CurrentAnnualCost}
}

var variableLabels = map[Variable]string{
	EfficiencyGain:     "Efficiency Gain",
	AnnualLicense:      "Annual License Cost",
	ImplementationCost: "Implementation Cost",
	CurrentAnnualCost:  "Current Annual Cost",
}

// Label returns the human readable name of a variable.
func (v Variable) Label() string {
	if l, ok := variableLabels[v]; ok {
		return l
	}
	return string(v)
}

// ParseVariable resolves a variable name.
func ParseVariable(name string) (Variable, error) {
	v := Variable(name)
	if _, ok := variableLabels[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return v, nil
}

// ROIInputs are the raw inputs to one ROI calculation.
type ROIInputs struct {
	CurrentAnnualCost float64 `yaml:"current_annual_cost" toml:"current_annual_cost" json:"current_annual_cost"`
	EfficiencyGain    float64 `yaml:"efficiency_gain" toml:"efficiency_gain" json:"efficiency_gain"`
	AnnualLicense     float64 `yaml:"annual_license" toml:"annual_license" json:"annual_license"`

	// ImplementationCost is derived from the scenario when nil.
	ImplementationCost *float64 `yaml:"implementation_cost,omitempty" toml:"implementation_cost,omitempty" json:"implementation_cost,omitempty"`

	Years              int          `yaml:"years" toml:"years" json:"years"`
	Scenario           ScenarioName `yaml:"scenario" toml:"scenario" json:"scenario"`
	IndustryMultiplier float64      `yaml:"industry_multiplier" toml:"industry_multiplier" json:"industry_multiplier"`
}

// NewROIInputs returns inputs with the documented defaults: 3 years, moderate
// scenario, industry multiplier 1.0 and a derived implementation cost.
func NewROIInputs(currentAnnualCost, efficiencyGain, annualLicense float64) ROIInputs {
	return ROIInputs{
		CurrentAnnualCost:  currentAnnualCost,
		EfficiencyGain:     efficiencyGain,
		AnnualLicense:      annualLicense,
		Years:              3,
		Scenario:           Moderate,
		IndustryMultiplier: 1.0,
	}
}

// WithImplementationCost returns a copy with an explicit implementation cost.
func (in ROIInputs) WithImplementationCost(cost float64) ROIInputs {
	in.ImplementationCost = &cost
	return in
}

// Value returns the base value of a variable. An implementation cost that was not
// supplied reports (0, false).
func (in ROIInputs) Value(v Variable) (float64, bool) {
	switch v {
	case EfficiencyGain:
		return in.EfficiencyGain, true
	case AnnualLicense:
		return in.AnnualLicense, true
	case CurrentAnnualCost:
		return in.CurrentAnnualCost, true
	case ImplementationCost:
		if in.ImplementationCost == nil {
			return 0, false
		}
		return *in.ImplementationCost, true
	}
	return 0, false
}

// With returns a copy of the inputs with one variable replaced.
func (in ROIInputs) With(v Variable, value float64) ROIInputs {
	switch v {
	case EfficiencyGain:
		in.EfficiencyGain = value
	case AnnualLicense:
		in.AnnualLicense = value
	case CurrentAnnualCost:
		in.CurrentAnnualCost = value
	case ImplementationCost:
		in.ImplementationCost = &value
	}
	return in
}

// CurrentState holds the annual cost figures of the status quo.
type CurrentState struct {
	AnnualOperations     float64 `yaml:"annual_operations" toml:"annual_operations" json:"annual_operations"`
	AnnualMaintenance    float64 `yaml:"annual_maintenance" toml:"annual_maintenance" json:"annual_maintenance"`
	AnnualLabor          float64 `yaml:"annual_labor" toml:"annual_labor" json:"annual_labor"`
	AnnualInfrastructure float64 `yaml:"annual_infrastructure" toml:"annual_infrastructure" json:"annual_infrastructure"`
}

// BaseAnnual is the sum of all recurring current-state figures.
func (c CurrentState) BaseAnnual() float64 {
	return c.AnnualOperations + c.AnnualMaintenance + c.AnnualLabor + c.AnnualInfrastructure
}

// Basis returns the named base figure for a hidden cost.
func (c CurrentState) Basis(b CostBasis) float64 {
	switch b {
	case BasisBaseAnnual:
		return c.BaseAnnual()
	case BasisOperations:
		return c.AnnualOperations
	case BasisMaintenance:
		return c.AnnualMaintenance
	case BasisLabor:
		return c.AnnualLabor
	case BasisInfrastructure:
		return c.AnnualInfrastructure
	}
	return 0
}

// FutureState holds the cost figures of the proposed solution.
type FutureState struct {
	Implementation float64 `yaml:"implementation" toml:"implementation" json:"implementation"`
	AnnualLicense  float64 `yaml:"annual_license" toml:"annual_license" json:"annual_license"`
	AnnualSupport  float64 `yaml:"annual_support" toml:"annual_support" json:"annual_support"`

	// EfficiencySavings offsets future-state cost each year, inflated like other recurring amounts.
	EfficiencySavings float64 `yaml:"efficiency_savings" toml:"efficiency_savings" json:"efficiency_savings"`
}

// Basis returns the named base figure for a hidden cost.
func (f FutureState) Basis(b CostBasis) float64 {
	switch b {
	case BasisImplementation:
		return f.Implementation
	case BasisLicense:
		return f.AnnualLicense
	case BasisSupport:
		return f.AnnualSupport
	}
	return 0
}
