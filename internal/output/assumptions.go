package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roikit/roi-calculator/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when a report carries none of its own.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultAssumptions())

// GenerateAssumptions creates the assumptions list from an assumption table.
func GenerateAssumptions(a *domain.Assumptions) []string {
	var lines []string
	for _, name := range domain.ScenarioNames() {
		s, err := a.Scenario(name)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: implementation %.2fx license, efficiency x%.2f, adoption %.0f%%, discount rate %.1f%%, realization %s",
			titleCase(string(s.Name)), s.ImplementationMultiplier, s.EfficiencyMultiplier, s.AdoptionRate*100, s.DiscountRate*100, realizationString(s.BenefitRealization)))
	}
	lines = append(lines,
		fmt.Sprintf("Recurring TCO costs inflate at %.1f%% annually", a.InflationRate*100),
		fmt.Sprintf("Monte Carlo: %d iterations, hurdle ROI %.1f%%", a.MonteCarlo.Iterations, a.MonteCarlo.HurdleRate),
	)
	return lines
}

func realizationString(r []float64) string {
	if len(r) == 0 {
		return "100% from year 1"
	}
	parts := make([]string, len(r))
	for i, f := range r {
		parts[i] = fmt.Sprintf("%.0f%%", f*100)
	}
	return strings.Join(parts, " / ")
}

// titleCase capitalizes a scenario or section name for display.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
