package calculation

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roikit/roi-calculator/internal/domain"
)

// Triangular maps a uniform draw u in [0,1) onto a triangular distribution
// with minimum low, mode and maximum high, by inverting the CDF. A collapsed
// range returns low; a mode outside the range is clamped onto it.
func Triangular(u, low, mode, high float64) float64 {
	if high <= low {
		return low
	}
	mode = min(max(mode, low), high)
	return distuv.NewTriangle(low, high, mode, nil).Quantile(u)
}

// sampleMultiplier draws one multiplier from r with its mode at 1.0.
func sampleMultiplier(src RandomSource, r domain.Range) float64 {
	return Triangular(src.Float64(), r.Low, 1.0, r.High)
}
