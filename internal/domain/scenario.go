package domain

import (
	"fmt"
	"math"
)

// ScenarioName identifies a risk posture.
type ScenarioName string

const (
	Conservative ScenarioName = "conservative"
	Moderate     ScenarioName = "moderate"
	Aggressive   ScenarioName = "aggressive"
)

// ScenarioNames returns the known scenarios ordered from most to least cautious.
func ScenarioNames() []ScenarioName {
	return []ScenarioName{Conservative, Moderate, Aggressive}
}

// ParseScenarioName resolves a user supplied name to a known scenario.
func ParseScenarioName(name string) (ScenarioName, error) {
	for _, s := range ScenarioNames() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// ScenarioConfig bundles the multipliers and rates that describe one risk posture.
type ScenarioConfig struct {
	Name ScenarioName `yaml:"name" toml:"name" json:"name"`

	// ImplementationMultiplier scales the annual license into an implied one-time
	// implementation cost when none is supplied.
	ImplementationMultiplier float64 `yaml:"implementation_multiplier" toml:"implementation_multiplier" json:"implementation_multiplier"`

	// EfficiencyMultiplier dampens or amplifies the raw efficiency gain.
	EfficiencyMultiplier float64 `yaml:"efficiency_multiplier" toml:"efficiency_multiplier" json:"efficiency_multiplier"`

	DiscountRate float64 `yaml:"discount_rate" toml:"discount_rate" json:"discount_rate"`

	// AdoptionRate is the fraction of theoretical savings actually realized.
	AdoptionRate float64 `yaml:"adoption_rate" toml:"adoption_rate" json:"adoption_rate"`

	// BenefitRealization[i] is the fraction of savings recognized in year i+1.
	// Years beyond the table realize 100%.
	BenefitRealization []float64 `yaml:"benefit_realization" toml:"benefit_realization" json:"benefit_realization"`
}

// Realization returns the benefit realization fraction for a 1-based year.
func (s ScenarioConfig) Realization(year int) float64 {
	if year < 1 || year > len(s.BenefitRealization) {
		return 1.0
	}
	return s.BenefitRealization[year-1]
}

// Validate checks the scenario invariants: finite non-negative rates and a
// non-decreasing realization curve bounded by [0,1].
func (s ScenarioConfig) Validate() error {
	if _, err := ParseScenarioName(string(s.Name)); err != nil {
		return err
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"implementation_multiplier", s.ImplementationMultiplier},
		{"efficiency_multiplier", s.EfficiencyMultiplier},
		{"discount_rate", s.DiscountRate},
		{"adoption_rate", s.AdoptionRate},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: scenario %s: %s must be finite", ErrInvalidInput, s.Name, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: scenario %s: %s cannot be negative", ErrInvalidInput, s.Name, f.name)
		}
	}
	prev := 0.0
	for i, r := range s.BenefitRealization {
		if math.IsNaN(r) || r < 0 || r > 1 {
			return fmt.Errorf("%w: scenario %s: benefit realization for year %d must be between 0 and 1", ErrInvalidInput, s.Name, i+1)
		}
		if r < prev {
			return fmt.Errorf("%w: scenario %s: benefit realization must not decrease (year %d)", ErrInvalidInput, s.Name, i+1)
		}
		prev = r
	}
	return nil
}
