package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/roikit/roi-calculator/internal/domain"
)

const (
	DefaultRangePct = 0.2
	DefaultSteps    = 5

	// Break-even search settings.
	BreakEvenMaxIterations = 50
	BreakEvenTolerance     = 0.5
	breakEvenLowerBound    = 0.0
	breakEvenUpperBound    = 2.0
)

// SensitivityEngine measures how ROI moves as single inputs vary.
type SensitivityEngine struct {
	roi    *ROIEngine
	logger Logger
}

// NewSensitivityEngine wraps an ROI engine.
func NewSensitivityEngine(roi *ROIEngine) *SensitivityEngine {
	return &SensitivityEngine{roi: roi, logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *SensitivityEngine) SetLogger(l Logger) { e.logger = loggerOrNop(l) }

// OneWayAnalysis evaluates ROI at steps evenly spaced multipliers across
// [1-rangePct, 1+rangePct]. A variable with a zero or absent base value yields
// no rows.
func (e *SensitivityEngine) OneWayAnalysis(base domain.ROIInputs, v domain.Variable, rangePct float64, steps int) ([]domain.OneWayPoint, error) {
	if _, err := domain.ParseVariable(string(v)); err != nil {
		return nil, err
	}
	if err := checkRangePct(rangePct); err != nil {
		return nil, err
	}
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be at least 1, got %d", domain.ErrInvalidInput, steps)
	}

	value, ok := base.Value(v)
	if !ok || value == 0 {
		e.logger.Debugf("one-way analysis: %s has no base value, skipping", v)
		return []domain.OneWayPoint{}, nil
	}

	points := make([]domain.OneWayPoint, 0, steps)
	for _, m := range linspace(1-rangePct, 1+rangePct, steps) {
		r, err := e.roi.Calculate(base.With(v, value*m))
		if err != nil {
			return nil, fmt.Errorf("one-way %s at %.2fx: %w", v, m, err)
		}
		points = append(points, domain.OneWayPoint{
			Variable:      v,
			Multiplier:    m,
			Value:         value * m,
			ROIPercent:    r.ROIPercent,
			NPV:           r.NPV,
			PaybackMonths: r.PaybackMonths,
		})
	}
	return points, nil
}

// TornadoAnalysis swings each variable to base*(1-rangePct) and
// base*(1+rangePct) and ranks the variables by the resulting ROI spread,
// widest first. Variables with a zero or absent base value are skipped.
func (e *SensitivityEngine) TornadoAnalysis(base domain.ROIInputs, variables []domain.Variable, rangePct float64) ([]domain.SensitivityResult, error) {
	if len(variables) == 0 {
		variables = domain.DefaultVariables()
	}
	if err := checkRangePct(rangePct); err != nil {
		return nil, err
	}
	for _, v := range variables {
		if _, err := domain.ParseVariable(string(v)); err != nil {
			return nil, err
		}
	}

	baseResult, err := e.roi.Calculate(base)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SensitivityResult, 0, len(variables))
	for _, v := range variables {
		value, ok := base.Value(v)
		if !ok || value == 0 {
			e.logger.Debugf("tornado: %s has no base value, skipping", v)
			continue
		}
		lowValue, highValue := value*(1-rangePct), value*(1+rangePct)
		low, err := e.roi.Calculate(base.With(v, lowValue))
		if err != nil {
			return nil, fmt.Errorf("tornado %s low: %w", v, err)
		}
		high, err := e.roi.Calculate(base.With(v, highValue))
		if err != nil {
			return nil, fmt.Errorf("tornado %s high: %w", v, err)
		}
		results = append(results, domain.SensitivityResult{
			Variable:    v,
			Label:       v.Label(),
			BaseValue:   value,
			LowValue:    lowValue,
			HighValue:   highValue,
			BaseROI:     baseResult.ROIPercent,
			LowROI:      low.ROIPercent,
			HighROI:     high.ROIPercent,
			ImpactRange: math.Abs(high.ROIPercent - low.ROIPercent),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ImpactRange > results[j].ImpactRange
	})
	return results, nil
}

// BreakEvenAnalysis bisects a multiplier of v on [0, 2] until ROI is within
// BreakEvenTolerance points of zero. The direction in which ROI moves with v is
// probed first, so cost variables converge as well as benefit variables.
// A zero or absent base value returns ErrDegenerateBase.
func (e *SensitivityEngine) BreakEvenAnalysis(base domain.ROIInputs, v domain.Variable) (*domain.BreakEvenResult, error) {
	if _, err := domain.ParseVariable(string(v)); err != nil {
		return nil, err
	}
	value, ok := base.Value(v)
	if !ok || value == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrDegenerateBase, v)
	}

	roiAt := func(m float64) (float64, error) {
		r, err := e.roi.Calculate(base.With(v, value*m))
		if err != nil {
			return 0, fmt.Errorf("break-even %s at %.3fx: %w", v, m, err)
		}
		return r.ROIPercent, nil
	}

	below, err := roiAt(0.5)
	if err != nil {
		return nil, err
	}
	above, err := roiAt(1.5)
	if err != nil {
		return nil, err
	}
	increasing := above >= below

	lo, hi := breakEvenLowerBound, breakEvenUpperBound
	var mid, roi float64
	iterations := 0
	converged := false
	for iterations < BreakEvenMaxIterations {
		iterations++
		mid = (lo + hi) / 2
		roi, err = roiAt(mid)
		if err != nil {
			return nil, err
		}
		if math.Abs(roi) < BreakEvenTolerance {
			converged = true
			break
		}
		if (roi > 0) == increasing {
			hi = mid
		} else {
			lo = mid
		}
	}
	if !converged {
		e.logger.Debugf("break-even for %s did not converge: ROI %.2f at %.4fx", v, roi, mid)
	}

	return &domain.BreakEvenResult{
		Variable:       v,
		BaseValue:      value,
		BreakEvenValue: value * mid,
		Multiplier:     mid,
		ROIAtBreakEven: roi,
		Iterations:     iterations,
		Converged:      converged,
	}, nil
}

func checkRangePct(p float64) error {
	if !isFinite(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: range percentage must be between 0 and 1, got %v", domain.ErrInvalidInput, p)
	}
	return nil
}
