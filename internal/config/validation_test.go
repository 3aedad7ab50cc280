package config

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roikit/roi-calculator/internal/domain"
)

func TestValidateROIInputs_Success(t *testing.T) {
	warnings, err := ValidateROIInputs(domain.NewROIInputs(1_000_000, 0.3, 200_000))
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateROIInputs_HighEfficiencyWarns(t *testing.T) {
	warnings, err := ValidateROIInputs(domain.NewROIInputs(1_000_000, 0.6, 200_000))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "60%")
}

func TestValidateROIInputs_Failures(t *testing.T) {
	base := domain.NewROIInputs(1_000_000, 0.3, 200_000)
	cases := []struct {
		field  string
		mutate func(*domain.ROIInputs)
	}{
		{"current_annual_cost", func(in *domain.ROIInputs) { in.CurrentAnnualCost = 0 }},
		{"efficiency_gain", func(in *domain.ROIInputs) { in.EfficiencyGain = 0 }},
		{"efficiency_gain", func(in *domain.ROIInputs) { in.EfficiencyGain = 1.2 }},
		{"efficiency_gain", func(in *domain.ROIInputs) { in.EfficiencyGain = math.NaN() }},
		{"annual_license", func(in *domain.ROIInputs) { in.AnnualLicense = -1 }},
		{"implementation_cost", func(in *domain.ROIInputs) { *in = in.WithImplementationCost(-10) }},
		{"years", func(in *domain.ROIInputs) { in.Years = 0 }},
		{"years", func(in *domain.ROIInputs) { in.Years = 11 }},
		{"scenario", func(in *domain.ROIInputs) { in.Scenario = "bold" }},
		{"industry_multiplier", func(in *domain.ROIInputs) { in.IndustryMultiplier = 0 }},
	}
	for _, c := range cases {
		in := base
		c.mutate(&in)
		_, err := ValidateROIInputs(in)
		require.Error(t, err, c.field)

		var fe *FieldError
		require.True(t, errors.As(err, &fe), c.field)
		assert.Equal(t, c.field, fe.Field)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestValidateROIInputs_ZeroImplementationAllowed(t *testing.T) {
	_, err := ValidateROIInputs(domain.NewROIInputs(1_000_000, 0.3, 200_000).WithImplementationCost(0))
	assert.NoError(t, err)
}

func TestFieldErrorMessage(t *testing.T) {
	err := &FieldError{Field: "years", Reason: "must be between 1 and 10, got 12"}
	assert.Equal(t, "years: must be between 1 and 10, got 12", err.Error())
}

func TestValidateIndustry(t *testing.T) {
	a := domain.DefaultAssumptions()
	assert.NoError(t, ValidateIndustry(a, "Banking"))
	assert.NoError(t, ValidateIndustry(a, "retail"))
	assert.NoError(t, ValidateIndustry(a, ""))
	assert.ErrorIs(t, ValidateIndustry(a, "crypto"), domain.ErrInvalidInput)
}

func TestValidateTCOInputs(t *testing.T) {
	current := domain.CurrentState{AnnualOperations: 300_000, AnnualMaintenance: 100_000}
	future := domain.FutureState{Implementation: 100_000, AnnualLicense: 150_000}
	require.NoError(t, ValidateTCOInputs(current, future, 5))

	var fe *FieldError
	err := ValidateTCOInputs(domain.CurrentState{}, future, 5)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "current_state", fe.Field)

	err = ValidateTCOInputs(current, domain.FutureState{AnnualSupport: -1}, 5)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "annual_support", fe.Field)

	err = ValidateTCOInputs(current, future, 12)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "years", fe.Field)
}

func TestValidateMonteCarlo(t *testing.T) {
	require.NoError(t, ValidateMonteCarlo(1000, 100, domain.DefaultVariableRanges()))
	require.NoError(t, ValidateMonteCarlo(1, -50, nil))

	var fe *FieldError
	require.True(t, errors.As(ValidateMonteCarlo(0, 100, nil), &fe))
	assert.Equal(t, "iterations", fe.Field)

	require.True(t, errors.As(ValidateMonteCarlo(10, math.Inf(1), nil), &fe))
	assert.Equal(t, "hurdle_rate", fe.Field)

	bad := map[domain.Variable]domain.Range{domain.AnnualLicense: {Low: 1.1, High: 1.2}}
	require.True(t, errors.As(ValidateMonteCarlo(10, 100, bad), &fe))
	assert.Equal(t, "variable_ranges.annual_license", fe.Field)
}

func TestValidateRangePct(t *testing.T) {
	assert.NoError(t, ValidateRangePct(0.2))
	assert.Error(t, ValidateRangePct(0))
	assert.Error(t, ValidateRangePct(1))
}
