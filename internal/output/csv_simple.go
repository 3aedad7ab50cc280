package output

import (
	"bytes"
	"encoding/csv"

	"github.com/roikit/roi-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Years", "TotalInvestment", "ImplementationCost", "AnnualLicense", "AnnualSavings", "NetAnnualBenefit", "NetBenefit", "ROIPercent", "PaybackMonths", "NPV", "IRRPercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range r.OrderedScenarios() {
		payback := domain.PaybackNotAvailable
		if sc.PaybackReached() {
			payback = percentString(sc.PaybackMonths)
		}
		irr := ""
		if sc.IRR != nil {
			irr = percentString(*sc.IRR * 100)
		}
		row := []string{
			string(sc.ScenarioName),
			intToString(sc.Years),
			moneyString(sc.TotalInvestment),
			moneyString(sc.ImplementationCost),
			moneyString(sc.AnnualLicense),
			moneyString(sc.AnnualSavings),
			moneyString(sc.NetAnnualBenefit),
			moneyString(sc.NetBenefit),
			percentString(sc.ROIPercent),
			payback,
			moneyString(sc.NPV),
			irr,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
