package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roikit/roi-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED ROI & BUSINESS CASE ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if r.Client != "" {
		fmt.Fprintf(&buf, "Client:    %s\n", r.Client)
	}
	if r.Industry != "" {
		fmt.Fprintf(&buf, "Industry:  %s\n", r.Industry)
	}
	fmt.Fprintf(&buf, "Report ID: %s\n", r.ID)
	fmt.Fprintf(&buf, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := r.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if r.Inputs.Years > 0 {
		writeInputs(&buf, r.Inputs)
	}
	if len(r.Scenarios) > 0 {
		writeScenarioComparison(&buf, r)
	}
	if len(r.Tornado) > 0 {
		writeTornado(&buf, r.Tornado)
	}
	if len(r.OneWay) > 0 {
		writeOneWay(&buf, r.OneWay)
	}
	if len(r.BreakEven) > 0 {
		writeBreakEven(&buf, r.BreakEven)
	}
	if r.MonteCarlo != nil {
		writeMonteCarlo(&buf, r.MonteCarlo, r.Confidence)
	}
	if r.TCO != nil {
		writeTCO(&buf, r.TCO)
	}
	if len(r.HiddenCostDescriptions) > 0 {
		writeHiddenCosts(&buf, r.HiddenCostDescriptions)
	}
	if len(r.EfficiencyBenchmarks) > 0 {
		writeBenchmarks(&buf, r.Industry, r.EfficiencyBenchmarks)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, "========")
		for _, w := range r.Warnings {
			fmt.Fprintf(&buf, "! %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeScenarios(r)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "NPV: %s  ROI: %s  Payback: %s\n", FormatCurrency(rec.NPV), FormatPercentage(rec.ROIPercent), FormatPayback(rec.PaybackMonths))
		if rec.Viable {
			fmt.Fprintln(&buf, "The investment pays back within the horizon with a positive NPV.")
		} else {
			fmt.Fprintln(&buf, "The investment does not pay back with a positive NPV under these inputs.")
		}
	}

	return buf.Bytes(), nil
}

func writeInputs(buf *bytes.Buffer, in domain.ROIInputs) {
	fmt.Fprintln(buf, "INPUTS")
	fmt.Fprintln(buf, "======")
	fmt.Fprintf(buf, "Current Annual Cost:  %s\n", FormatCurrency(in.CurrentAnnualCost))
	fmt.Fprintf(buf, "Efficiency Gain:      %s\n", FormatPercentage(in.EfficiencyGain*100))
	fmt.Fprintf(buf, "Annual License:       %s\n", FormatCurrency(in.AnnualLicense))
	if in.ImplementationCost != nil {
		fmt.Fprintf(buf, "Implementation Cost:  %s\n", FormatCurrency(*in.ImplementationCost))
	} else {
		fmt.Fprintln(buf, "Implementation Cost:  derived from scenario")
	}
	fmt.Fprintf(buf, "Horizon:              %d years\n", in.Years)
	fmt.Fprintf(buf, "Industry Multiplier:  %.2f\n", in.IndustryMultiplier)
	fmt.Fprintln(buf)
}

func writeScenarioComparison(buf *bytes.Buffer, r *Report) {
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, "===================")
	fmt.Fprintf(buf, "%-14s %16s %16s %9s %12s %16s %9s\n", "SCENARIO", "INVESTMENT", "ANNUAL SAVINGS", "ROI", "PAYBACK", "NPV", "IRR")
	fmt.Fprintln(buf, strings.Repeat("-", 98))
	for _, sc := range r.OrderedScenarios() {
		fmt.Fprintf(buf, "%-14s %16s %16s %9s %12s %16s %9s\n",
			titleCase(string(sc.ScenarioName)),
			FormatCurrency(sc.TotalInvestment),
			FormatCurrency(sc.AnnualSavings),
			FormatPercentage(sc.ROIPercent),
			FormatPayback(sc.PaybackMonths),
			FormatCurrency(sc.NPV),
			FormatIRR(sc.IRR),
		)
	}
	fmt.Fprintln(buf)

	for i, sc := range r.OrderedScenarios() {
		fmt.Fprintf(buf, "SCENARIO %d: %s\n", i+1, strings.ToUpper(string(sc.ScenarioName)))
		fmt.Fprintln(buf, strings.Repeat("=", 50))
		fmt.Fprintf(buf, "  Implementation Cost:   %s\n", FormatCurrency(sc.ImplementationCost))
		fmt.Fprintf(buf, "  Net Annual Benefit:    %s\n", FormatCurrency(sc.NetAnnualBenefit))
		fmt.Fprintf(buf, "  Net Benefit (horizon): %s\n", FormatCurrency(sc.NetBenefit))
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "  %-6s %16s %16s %16s %16s\n", "YEAR", "BENEFIT", "COST", "CASH FLOW", "CUMULATIVE")
		cumulative := 0.0
		for year, cf := range sc.YearlyCashFlows {
			cumulative += cf
			fmt.Fprintf(buf, "  %-6d %16s %16s %16s %16s\n", year, FormatCurrency(sc.YearlyBenefits[year]), FormatCurrency(sc.YearlyCosts[year]), FormatCurrency(cf), FormatCurrency(cumulative))
		}
		fmt.Fprintln(buf)
	}
}

func writeTornado(buf *bytes.Buffer, rows []domain.SensitivityResult) {
	fmt.Fprintln(buf, "SENSITIVITY (TORNADO)")
	fmt.Fprintln(buf, "=====================")
	fmt.Fprintf(buf, "%-22s %16s %16s %10s %10s %10s\n", "VARIABLE", "LOW VALUE", "HIGH VALUE", "LOW ROI", "HIGH ROI", "IMPACT")
	fmt.Fprintln(buf, strings.Repeat("-", 89))
	for _, t := range rows {
		fmt.Fprintf(buf, "%-22s %16s %16s %10s %10s %10s\n", t.Label, variableValue(t.Variable, t.LowValue), variableValue(t.Variable, t.HighValue), FormatPercentage(t.LowROI), FormatPercentage(t.HighROI), FormatPercentage(t.ImpactRange))
	}
	fmt.Fprintln(buf)
}

func writeOneWay(buf *bytes.Buffer, points []domain.OneWayPoint) {
	fmt.Fprintf(buf, "ONE-WAY SENSITIVITY: %s\n", strings.ToUpper(points[0].Variable.Label()))
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%8s %16s %10s %16s %12s\n", "CHANGE", "VALUE", "ROI", "NPV", "PAYBACK")
	for _, p := range points {
		fmt.Fprintf(buf, "%7.0f%% %16s %10s %16s %12s\n", p.PercentChange(), variableValue(p.Variable, p.Value), FormatPercentage(p.ROIPercent), FormatCurrency(p.NPV), FormatPayback(p.PaybackMonths))
	}
	fmt.Fprintln(buf)
}

func writeBreakEven(buf *bytes.Buffer, rows []*domain.BreakEvenResult) {
	fmt.Fprintln(buf, "BREAK-EVEN ANALYSIS")
	fmt.Fprintln(buf, "===================")
	for _, b := range rows {
		if !b.Converged {
			fmt.Fprintf(buf, "%-22s no break-even between 0%% and 200%% of base (%d iterations)\n", b.Variable.Label(), b.Iterations)
			continue
		}
		fmt.Fprintf(buf, "%-22s break-even at %s (%.1f%% of base, margin of safety %s)\n", b.Variable.Label(), variableValue(b.Variable, b.BreakEvenValue), b.Multiplier*100, FormatPercentage(b.MarginOfSafety()))
	}
	fmt.Fprintln(buf)
}

func writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloResult, ci *domain.ConfidenceInterval) {
	fmt.Fprintln(buf, "MONTE CARLO SIMULATION")
	fmt.Fprintln(buf, "======================")
	fmt.Fprintf(buf, "Iterations:               %d\n", mc.Iterations)
	fmt.Fprintf(buf, "Mean ROI:                 %s (std dev %s)\n", FormatPercentage(mc.Mean), FormatPercentage(mc.StdDev))
	fmt.Fprintf(buf, "P10 / P50 / P90 ROI:      %s / %s / %s\n", FormatPercentage(mc.P10), FormatPercentage(mc.P50), FormatPercentage(mc.P90))
	fmt.Fprintf(buf, "Probability ROI > 0:      %s\n", FormatPercentage(mc.ProbabilityPositiveROI*100))
	fmt.Fprintf(buf, "Probability ROI > %s: %s\n", FormatPercentage(mc.HurdleRate), FormatPercentage(mc.ProbabilityAboveHurdle*100))
	fmt.Fprintf(buf, "Break-even probability:   %s\n", FormatPercentage(mc.BreakEvenProbability*100))
	if ci != nil {
		fmt.Fprintf(buf, "%.0f%% confidence interval: %s to %s\n", ci.Confidence*100, FormatPercentage(ci.Lower), FormatPercentage(ci.Upper))
	}
	fmt.Fprintln(buf)
}

func writeTCO(buf *bytes.Buffer, t *domain.TCOResult) {
	fmt.Fprintf(buf, "TOTAL COST OF OWNERSHIP (%d YEARS)\n", t.Years)
	fmt.Fprintln(buf, strings.Repeat("=", 33))
	fmt.Fprintf(buf, "Current State TCO: %s\n", FormatAmount(t.CurrentStateTCO))
	fmt.Fprintf(buf, "Future State TCO:  %s\n", FormatAmount(t.FutureStateTCO))
	fmt.Fprintf(buf, "TCO Savings:       %s (%s)\n", FormatAmount(t.TCOSavings), FormatRate(t.SavingsPercent))
	fmt.Fprintln(buf)
	writeBreakdown(buf, "Current state breakdown:", t.CurrentBreakdown)
	writeBreakdown(buf, "Future state breakdown:", t.FutureBreakdown)
	fmt.Fprintf(buf, "  %-6s %18s %18s %18s\n", "YEAR", "CURRENT CUM.", "FUTURE CUM.", "SAVINGS")
	for _, y := range t.YearlyComparison {
		fmt.Fprintf(buf, "  %-6d %18s %18s %18s\n", y.Year, FormatAmount(y.CurrentCumulative), FormatAmount(y.FutureCumulative), FormatAmount(y.CumulativeSavings))
	}
	fmt.Fprintln(buf)
}

func writeBreakdown(buf *bytes.Buffer, title string, m map[string]decimal.Decimal) {
	fmt.Fprintln(buf, title)
	for _, k := range sortedKeys(m) {
		fmt.Fprintf(buf, "  %-32s %18s\n", k, FormatAmount(m[k]))
	}
	fmt.Fprintln(buf)
}

func writeHiddenCosts(buf *bytes.Buffer, descriptions map[string]string) {
	fmt.Fprintln(buf, "HIDDEN COST CATEGORIES")
	fmt.Fprintln(buf, strings.Repeat("=", 22))
	for _, k := range sortedKeys(descriptions) {
		fmt.Fprintf(buf, "  %-26s %s\n", k, descriptions[k])
	}
	fmt.Fprintln(buf)
}

func writeBenchmarks(buf *bytes.Buffer, industry string, bench map[string]domain.EfficiencyBenchmark) {
	fmt.Fprintf(buf, "EFFICIENCY BENCHMARKS (%s)\n", titleCase(industry))
	fmt.Fprintln(buf, strings.Repeat("=", 34))
	fmt.Fprintf(buf, "  %-24s %8s %8s %8s\n", "CATEGORY", "LOW", "TYPICAL", "HIGH")
	for _, k := range sortedKeys(bench) {
		b := bench[k]
		fmt.Fprintf(buf, "  %-24s %8s %8s %8s\n", k,
			FormatPercentage(b.Low*100), FormatPercentage(b.Typical*100), FormatPercentage(b.High*100))
	}
	fmt.Fprintln(buf)
}

// variableValue renders efficiency as a percentage and everything else as money.
func variableValue(v domain.Variable, value float64) string {
	if v == domain.EfficiencyGain {
		return FormatPercentage(value * 100)
	}
	return FormatCurrency(value)
}
