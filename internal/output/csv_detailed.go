package output

import (
	"bytes"
	"encoding/csv"
)

// CSVDetailedExporter provides the raw yearly cash flows per scenario/year.
// Year 0 is the upfront implementation outlay.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Benefit", "Cost", "CashFlow", "CumulativeCashFlow", "PaybackReached"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range r.OrderedScenarios() {
		cumulative := 0.0
		for year, cf := range sc.YearlyCashFlows {
			cumulative += cf
			var benefit, cost float64
			if year < len(sc.YearlyBenefits) {
				benefit = sc.YearlyBenefits[year]
			}
			if year < len(sc.YearlyCosts) {
				cost = sc.YearlyCosts[year]
			}
			row := []string{
				string(sc.ScenarioName),
				intToString(year),
				moneyString(benefit),
				moneyString(cost),
				moneyString(cf),
				moneyString(cumulative),
				boolToString(cumulative >= 0),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
