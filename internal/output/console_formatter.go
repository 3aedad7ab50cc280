package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "ROI SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if r.Client != "" {
		fmt.Fprintf(&buf, "Client: %s\n", r.Client)
	}
	if r.Inputs.Years > 0 {
		fmt.Fprintf(&buf, "Current Annual Cost: %s\n", FormatCurrency(r.Inputs.CurrentAnnualCost))
	}
	fmt.Fprintln(&buf)
	for _, sc := range r.OrderedScenarios() {
		fmt.Fprintf(&buf, "%s: ROI=%s NPV=%s Payback=%s IRR=%s\n",
			titleCase(string(sc.ScenarioName)),
			FormatPercentage(sc.ROIPercent),
			FormatCurrency(sc.NPV),
			FormatPayback(sc.PaybackMonths),
			FormatIRR(sc.IRR),
		)
		fmt.Fprintf(&buf, "  Investment=%s AnnualSavings=%s\n", FormatCurrency(sc.TotalInvestment), FormatCurrency(sc.AnnualSavings))
	}
	if r.MonteCarlo != nil {
		fmt.Fprintf(&buf, "Monte Carlo: mean ROI=%s P10=%s P90=%s P(ROI>0)=%s\n",
			FormatPercentage(r.MonteCarlo.Mean),
			FormatPercentage(r.MonteCarlo.P10),
			FormatPercentage(r.MonteCarlo.P90),
			FormatPercentage(r.MonteCarlo.ProbabilityPositiveROI*100),
		)
	}
	if r.TCO != nil {
		fmt.Fprintf(&buf, "TCO (%d years): current=%s future=%s savings=%s (%s)\n",
			r.TCO.Years,
			FormatAmount(r.TCO.CurrentStateTCO),
			FormatAmount(r.TCO.FutureStateTCO),
			FormatAmount(r.TCO.TCOSavings),
			FormatRate(r.TCO.SavingsPercent),
		)
	}
	rec := AnalyzeScenarios(r)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (NPV %s / ROI %s)\n", rec.ScenarioName, FormatCurrency(rec.NPV), FormatPercentage(rec.ROIPercent))
	}
	return buf.Bytes(), nil
}
