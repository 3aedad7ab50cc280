package output

import (
	"github.com/roikit/roi-calculator/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName  domain.ScenarioName
	ROIPercent    float64
	NPV           float64
	PaybackMonths float64

	// Viable is true when the recommended scenario has a positive NPV and reaches payback.
	Viable bool
}

// AnalyzeScenarios picks the scenario with the highest NPV. Ties go to the more
// cautious scenario.
func AnalyzeScenarios(r *Report) Recommendation {
	var best *domain.ROIResult
	for _, res := range r.OrderedScenarios() {
		if best == nil || res.NPV > best.NPV {
			best = res
		}
	}
	if best == nil {
		return Recommendation{}
	}
	return Recommendation{
		ScenarioName:  best.ScenarioName,
		ROIPercent:    best.ROIPercent,
		NPV:           best.NPV,
		PaybackMonths: best.PaybackMonths,
		Viable:        best.NPV > 0 && best.PaybackReached(),
	}
}
