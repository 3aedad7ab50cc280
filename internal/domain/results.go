package domain

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	dec "github.com/roikit/roi-calculator/pkg/decimal"
)

// PaybackHorizonMonths is the longest payback period the engine searches.
const PaybackHorizonMonths = 120

// PaybackNotAvailable is the flat-map rendering of an unbounded payback period.
const PaybackNotAvailable = "N/A"

// ROIResult is the outcome of one scenario calculation. It is never mutated after construction.
type ROIResult struct {
	ScenarioName       ScenarioName
	Years              int
	TotalInvestment    float64
	ImplementationCost float64
	AnnualLicense      float64
	AnnualSavings      float64
	NetAnnualBenefit   float64

	// NetBenefit is sum(YearlyBenefits) - sum(YearlyCosts) over the horizon.
	NetBenefit float64

	// Yearly sequences have Years+1 entries; index 0 is the upfront implementation outlay.
	YearlyCashFlows []float64
	YearlyBenefits  []float64
	YearlyCosts     []float64

	ROIPercent float64

	// PaybackMonths is +Inf when payback is not reached within PaybackHorizonMonths.
	PaybackMonths float64

	NPV float64

	// IRR is nil when the rate could not be computed.
	IRR *float64
}

// PaybackReached reports whether a finite payback month was found.
func (r *ROIResult) PaybackReached() bool {
	return !math.IsInf(r.PaybackMonths, 1) && r.PaybackMonths <= PaybackHorizonMonths
}

// ToMap flattens the record for JSON, spreadsheet and narrative consumers.
func (r *ROIResult) ToMap() map[string]any {
	var payback any = PaybackNotAvailable
	if r.PaybackReached() {
		payback = dec.RoundPercent(r.PaybackMonths)
	}
	var irr any
	if r.IRR != nil {
		irr = dec.RoundPercent(*r.IRR * 100)
	}
	return map[string]any{
		"scenario_name":       string(r.ScenarioName),
		"years":               r.Years,
		"total_investment":    dec.RoundMoney(r.TotalInvestment),
		"implementation_cost": dec.RoundMoney(r.ImplementationCost),
		"annual_license":      dec.RoundMoney(r.AnnualLicense),
		"annual_savings":      dec.RoundMoney(r.AnnualSavings),
		"net_annual_benefit":  dec.RoundMoney(r.NetAnnualBenefit),
		"net_benefit":         dec.RoundMoney(r.NetBenefit),
		"roi_percent":         dec.RoundPercent(r.ROIPercent),
		"payback_months":      payback,
		"npv":                 dec.RoundMoney(r.NPV),
		"irr":                 irr,
		"yearly_cash_flows":   dec.RoundMoneySlice(r.YearlyCashFlows),
		"yearly_benefits":     dec.RoundMoneySlice(r.YearlyBenefits),
		"yearly_costs":        dec.RoundMoneySlice(r.YearlyCosts),
	}
}

func (r *ROIResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.ToMap()) }

// TCOYear is one row of a single state's TCO projection.
type TCOYear struct {
	Year       int
	BaseCost   decimal.Decimal
	HiddenCost decimal.Decimal
	Savings    decimal.Decimal
	Total      decimal.Decimal
	Cumulative decimal.Decimal
}

func (y TCOYear) ToMap() map[string]any {
	return map[string]any{
		"year":        y.Year,
		"base_cost":   dec.RoundMoneyDecimal(y.BaseCost),
		"hidden_cost": dec.RoundMoneyDecimal(y.HiddenCost),
		"savings":     dec.RoundMoneyDecimal(y.Savings),
		"total":       dec.RoundMoneyDecimal(y.Total),
		"cumulative":  dec.RoundMoneyDecimal(y.Cumulative),
	}
}

// YearComparison pairs cumulative current and future TCO at one year index.
type YearComparison struct {
	Year              int
	CurrentCumulative decimal.Decimal
	FutureCumulative  decimal.Decimal
	CumulativeSavings decimal.Decimal
}

func (y YearComparison) ToMap() map[string]any {
	return map[string]any{
		"year":               y.Year,
		"current_cumulative": dec.RoundMoneyDecimal(y.CurrentCumulative),
		"future_cumulative":  dec.RoundMoneyDecimal(y.FutureCumulative),
		"cumulative_savings": dec.RoundMoneyDecimal(y.CumulativeSavings),
	}
}

// TCOResult compares current and future state total cost of ownership.
// Amounts are exact sums of the projected rows.
type TCOResult struct {
	CurrentStateTCO decimal.Decimal
	FutureStateTCO  decimal.Decimal
	TCOSavings      decimal.Decimal
	SavingsPercent  decimal.Decimal
	Years           int
	IncludeHidden   bool

	CurrentBreakdown map[string]decimal.Decimal
	FutureBreakdown  map[string]decimal.Decimal

	CurrentProjection []TCOYear
	FutureProjection  []TCOYear

	// YearlyComparison has Years+1 rows; year 0 carries only the future upfront outlay.
	YearlyComparison []YearComparison

	HiddenCostsIdentified map[string]decimal.Decimal
}

func (r *TCOResult) ToMap() map[string]any {
	rows := make([]map[string]any, len(r.YearlyComparison))
	for i, y := range r.YearlyComparison {
		rows[i] = y.ToMap()
	}
	return map[string]any{
		"current_state_tco":       dec.RoundMoneyDecimal(r.CurrentStateTCO),
		"future_state_tco":        dec.RoundMoneyDecimal(r.FutureStateTCO),
		"tco_savings":             dec.RoundMoneyDecimal(r.TCOSavings),
		"savings_percent":         dec.RoundPercentDecimal(r.SavingsPercent),
		"years":                   r.Years,
		"include_hidden":          r.IncludeHidden,
		"current_breakdown":       roundMoneyMap(r.CurrentBreakdown),
		"future_breakdown":        roundMoneyMap(r.FutureBreakdown),
		"yearly_comparison":       rows,
		"hidden_costs_identified": roundMoneyMap(r.HiddenCostsIdentified),
	}
}

func (r *TCOResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.ToMap()) }

// SensitivityResult is one tornado row.
type SensitivityResult struct {
	Variable    Variable
	Label       string
	BaseValue   float64
	LowValue    float64
	HighValue   float64
	BaseROI     float64
	LowROI      float64
	HighROI     float64
	ImpactRange float64
}

func (r SensitivityResult) ToMap() map[string]any {
	return map[string]any{
		"variable":       string(r.Variable),
		"variable_label": r.Label,
		"base_value":     dec.RoundMoney(r.BaseValue),
		"low_value":      dec.RoundMoney(r.LowValue),
		"high_value":     dec.RoundMoney(r.HighValue),
		"base_roi":       dec.RoundPercent(r.BaseROI),
		"low_roi":        dec.RoundPercent(r.LowROI),
		"high_roi":       dec.RoundPercent(r.HighROI),
		"impact_range":   dec.RoundPercent(r.ImpactRange),
	}
}

func (r SensitivityResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.ToMap()) }

// OneWayPoint is one step of a one-way sensitivity sweep.
type OneWayPoint struct {
	Variable      Variable
	Multiplier    float64
	Value         float64
	ROIPercent    float64
	NPV           float64
	PaybackMonths float64
}

// PercentChange is the step's deviation from base, in percent.
func (p OneWayPoint) PercentChange() float64 {
	return (p.Multiplier - 1) * 100
}

func (p OneWayPoint) ToMap() map[string]any {
	var payback any = PaybackNotAvailable
	if !math.IsInf(p.PaybackMonths, 1) && p.PaybackMonths <= PaybackHorizonMonths {
		payback = dec.RoundPercent(p.PaybackMonths)
	}
	return map[string]any{
		"variable":       string(p.Variable),
		"variable_label": p.Variable.Label(),
		"multiplier":     dec.Round(p.Multiplier, 2),
		"percentage":     dec.Round(p.PercentChange(), 0),
		"value":          dec.RoundMoney(p.Value),
		"roi_percent":    dec.RoundPercent(p.ROIPercent),
		"npv":            dec.RoundMoney(p.NPV),
		"payback_months": payback,
	}
}

func (p OneWayPoint) MarshalJSON() ([]byte, error) { return json.Marshal(p.ToMap()) }

// BreakEvenResult reports the value of a variable at which ROI is zero.
type BreakEvenResult struct {
	Variable       Variable
	BaseValue      float64
	BreakEvenValue float64
	Multiplier     float64
	ROIAtBreakEven float64
	Iterations     int

	// Converged is false when ROI never came within tolerance of zero on the search range.
	Converged bool
}

// MarginOfSafety is the distance of the break-even multiplier from 1.0, in percent.
func (r *BreakEvenResult) MarginOfSafety() float64 {
	return math.Abs(1-r.Multiplier) * 100
}

func (r *BreakEvenResult) ToMap() map[string]any {
	return map[string]any{
		"variable":              string(r.Variable),
		"variable_label":        r.Variable.Label(),
		"base_value":            dec.RoundMoney(r.BaseValue),
		"break_even_value":      dec.RoundMoney(r.BreakEvenValue),
		"break_even_multiplier": dec.Round(r.Multiplier, 3),
		"margin_of_safety":      dec.RoundPercent(r.MarginOfSafety()),
		"roi_at_break_even":     dec.RoundPercent(r.ROIAtBreakEven),
		"iterations":            r.Iterations,
		"converged":             r.Converged,
	}
}

func (r *BreakEvenResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.ToMap()) }

// MonteCarloResult summarizes a simulated ROI distribution.
type MonteCarloResult struct {
	Iterations int
	HurdleRate float64
	Mean       float64
	StdDev     float64
	Median     float64
	P10        float64
	P50        float64
	P90        float64

	// Probabilities are fractions in [0,1].
	ProbabilityPositiveROI float64
	ProbabilityAboveHurdle float64
	BreakEvenProbability   float64

	// Distribution holds the raw simulated ROI values in iteration order.
	Distribution []float64
}

func (r *MonteCarloResult) ToMap() map[string]any {
	return map[string]any{
		"iterations":               r.Iterations,
		"hurdle_rate":              dec.RoundPercent(r.HurdleRate),
		"roi_mean":                 dec.RoundPercent(r.Mean),
		"roi_std":                  dec.RoundPercent(r.StdDev),
		"roi_median":               dec.RoundPercent(r.Median),
		"roi_p10":                  dec.RoundPercent(r.P10),
		"roi_p50":                  dec.RoundPercent(r.P50),
		"roi_p90":                  dec.RoundPercent(r.P90),
		"probability_positive_roi": dec.RoundPercent(r.ProbabilityPositiveROI * 100),
		"probability_above_hurdle": dec.RoundPercent(r.ProbabilityAboveHurdle * 100),
		"break_even_probability":   dec.RoundPercent(r.BreakEvenProbability * 100),
	}
}

func (r *MonteCarloResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.ToMap()) }

// ConfidenceInterval bounds the simulated ROI at a confidence level.
type ConfidenceInterval struct {
	Confidence float64
	Lower      float64
	Upper      float64
	Median     float64
	Mean       float64
}

func (c ConfidenceInterval) ToMap() map[string]any {
	return map[string]any{
		"confidence_level": c.Confidence,
		"lower_bound":      dec.RoundPercent(c.Lower),
		"upper_bound":      dec.RoundPercent(c.Upper),
		"median":           dec.RoundPercent(c.Median),
		"mean":             dec.RoundPercent(c.Mean),
	}
}

func roundMoneyMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = dec.RoundMoneyDecimal(v)
	}
	return out
}
