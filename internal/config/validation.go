package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/roikit/roi-calculator/internal/domain"
)

// Input bounds accepted from users.
const (
	MinYears = 1
	MaxYears = 10

	// HighEfficiencyThreshold is the gain above which a warning is raised.
	HighEfficiencyThreshold = 0.5
)

// GeneralIndustries are accepted without an industry multiplier of their own.
var GeneralIndustries = []string{"general", "healthcare", "manufacturing", "retail", "technology"}

// FieldError reports which user input failed validation and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

// Unwrap lets callers match FieldError with errors.Is(err, domain.ErrInvalidInput).
func (e *FieldError) Unwrap() error { return domain.ErrInvalidInput }

// Warnings are non-fatal observations about otherwise valid input.
type Warnings []string

// ValidateROIInputs checks user supplied ROI inputs before any calculation.
// It returns the first failing field; warnings are collected for valid input.
func ValidateROIInputs(in domain.ROIInputs) (Warnings, error) {
	if err := positive("current_annual_cost", in.CurrentAnnualCost); err != nil {
		return nil, err
	}
	if err := positive("efficiency_gain", in.EfficiencyGain); err != nil {
		return nil, err
	}
	if in.EfficiencyGain > 1 {
		return nil, &FieldError{Field: "efficiency_gain", Reason: fmt.Sprintf("must be a fraction no greater than 1, got %g", in.EfficiencyGain)}
	}
	if err := positive("annual_license", in.AnnualLicense); err != nil {
		return nil, err
	}
	if in.ImplementationCost != nil {
		if err := nonNegative("implementation_cost", *in.ImplementationCost); err != nil {
			return nil, err
		}
	}
	if in.Years < MinYears || in.Years > MaxYears {
		return nil, &FieldError{Field: "years", Reason: fmt.Sprintf("must be between %d and %d, got %d", MinYears, MaxYears, in.Years)}
	}
	if _, err := domain.ParseScenarioName(string(in.Scenario)); err != nil {
		return nil, &FieldError{Field: "scenario", Reason: fmt.Sprintf("must be one of conservative, moderate, aggressive, got %q", in.Scenario)}
	}
	if err := positive("industry_multiplier", in.IndustryMultiplier); err != nil {
		return nil, err
	}

	var warnings Warnings
	if in.EfficiencyGain > HighEfficiencyThreshold {
		warnings = append(warnings, fmt.Sprintf("efficiency gain of %.0f%% is above 50%% and may be optimistic", in.EfficiencyGain*100))
	}
	return warnings, nil
}

// ValidateIndustry accepts industries with a configured multiplier and the
// general industries.
func ValidateIndustry(a *domain.Assumptions, industry string) error {
	name := strings.ToLower(strings.TrimSpace(industry))
	if name == "" {
		return nil
	}
	if _, ok := a.IndustryMultipliers[name]; ok {
		return nil
	}
	for _, g := range GeneralIndustries {
		if g == name {
			return nil
		}
	}
	return &FieldError{Field: "industry", Reason: fmt.Sprintf("unknown industry %q", industry)}
}

// ValidateTCOInputs checks the two states and horizon of a TCO comparison.
func ValidateTCOInputs(current domain.CurrentState, future domain.FutureState, years int) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"annual_operations", current.AnnualOperations},
		{"annual_maintenance", current.AnnualMaintenance},
		{"annual_labor", current.AnnualLabor},
		{"annual_infrastructure", current.AnnualInfrastructure},
		{"implementation", future.Implementation},
		{"annual_license", future.AnnualLicense},
		{"annual_support", future.AnnualSupport},
		{"efficiency_savings", future.EfficiencySavings},
	}
	for _, f := range fields {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if current.BaseAnnual() <= 0 {
		return &FieldError{Field: "current_state", Reason: "at least one annual cost must be greater than 0"}
	}
	if years < MinYears || years > MaxYears {
		return &FieldError{Field: "years", Reason: fmt.Sprintf("must be between %d and %d, got %d", MinYears, MaxYears, years)}
	}
	return nil
}

// ValidateMonteCarlo checks simulation settings.
func ValidateMonteCarlo(iterations int, hurdleRate float64, ranges map[domain.Variable]domain.Range) error {
	if iterations < 1 {
		return &FieldError{Field: "iterations", Reason: fmt.Sprintf("must be at least 1, got %d", iterations)}
	}
	if math.IsNaN(hurdleRate) || math.IsInf(hurdleRate, 0) {
		return &FieldError{Field: "hurdle_rate", Reason: "must be finite"}
	}
	for v, r := range ranges {
		if _, err := domain.ParseVariable(string(v)); err != nil {
			return &FieldError{Field: "variable_ranges", Reason: fmt.Sprintf("unknown variable %q", v)}
		}
		if err := r.Validate(); err != nil {
			return &FieldError{Field: "variable_ranges." + string(v), Reason: fmt.Sprintf("range (%g, %g) must satisfy 0 <= low <= 1 <= high", r.Low, r.High)}
		}
	}
	return nil
}

// ValidateRangePct checks a sensitivity swing fraction.
func ValidateRangePct(p float64) error {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return &FieldError{Field: "range", Reason: fmt.Sprintf("must be between 0 and 1 exclusive, got %g", p)}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &FieldError{Field: field, Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be greater than 0, got %g", v)}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &FieldError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &FieldError{Field: field, Reason: fmt.Sprintf("cannot be negative, got %g", v)}
	}
	return nil
}
