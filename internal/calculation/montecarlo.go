package calculation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roikit/roi-calculator/internal/domain"
)

// MonteCarloConfig holds the settings of one simulation run.
type MonteCarloConfig struct {
	Iterations int
	HurdleRate float64

	// VariableRanges bounds the triangular multiplier of each varied input.
	// Variables without a range are held at base. Nil means the default ranges.
	VariableRanges map[domain.Variable]domain.Range

	// Seed feeds the default random source; zero draws a seed from seedFunc.
	Seed int64

	// Source overrides the seeded source when set.
	Source RandomSource

	// Workers caps concurrent ROI evaluations; zero means GOMAXPROCS.
	Workers int
}

// DefaultMonteCarloConfig builds a config from assumption defaults.
func DefaultMonteCarloConfig(d domain.MonteCarloDefaults) MonteCarloConfig {
	ranges := make(map[domain.Variable]domain.Range, len(d.VariableRanges))
	for k, v := range d.VariableRanges {
		ranges[k] = v
	}
	return MonteCarloConfig{
		Iterations:     d.Iterations,
		HurdleRate:     d.HurdleRate,
		VariableRanges: ranges,
	}
}

// MonteCarloEngine simulates the ROI distribution under input uncertainty.
type MonteCarloEngine struct {
	roi    *ROIEngine
	logger Logger
}

// NewMonteCarloEngine wraps an ROI engine.
func NewMonteCarloEngine(roi *ROIEngine) *MonteCarloEngine {
	return &MonteCarloEngine{roi: roi, logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *MonteCarloEngine) SetLogger(l Logger) { e.logger = loggerOrNop(l) }

// Simulate draws every multiplier up front from one source, in iteration and
// DefaultVariables order, then evaluates the iterations concurrently. Results
// are stored by iteration index and aggregated once all have finished, so a
// fixed seed gives the same result for any worker count.
func (e *MonteCarloEngine) Simulate(ctx context.Context, base domain.ROIInputs, cfg MonteCarloConfig) (*domain.MonteCarloResult, error) {
	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be at least 1, got %d", domain.ErrInvalidInput, cfg.Iterations)
	}
	if !isFinite(cfg.HurdleRate) {
		return nil, fmt.Errorf("%w: hurdle rate must be finite", domain.ErrInvalidInput)
	}
	ranges := cfg.VariableRanges
	if ranges == nil {
		ranges = domain.DefaultVariableRanges()
	}
	for v, r := range ranges {
		if _, err := domain.ParseVariable(string(v)); err != nil {
			return nil, err
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("variable %s: %w", v, err)
		}
	}
	// Validate the base once so worker errors can only come from cancellation.
	if _, err := e.roi.Calculate(base); err != nil {
		return nil, err
	}

	src := cfg.Source
	if src == nil {
		src = NewSeededSource(cfg.Seed)
	}
	trials := e.draw(base, ranges, cfg.Iterations, src)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(trials) {
		workers = len(trials)
	}

	rois := make([]float64, len(trials))
	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(trials) + workers - 1) / workers
	for start := 0; start < len(trials); start += chunk {
		start, end := start, min(start+chunk, len(trials))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := e.roi.Calculate(trials[i])
				if err != nil {
					return fmt.Errorf("iteration %d: %w", i, err)
				}
				rois[i] = r.ROIPercent
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sorted := sortedCopy(rois)
	result := &domain.MonteCarloResult{
		Iterations:             len(rois),
		HurdleRate:             cfg.HurdleRate,
		Mean:                   Mean(rois),
		StdDev:                 StdDev(rois),
		Median:                 Median(sorted),
		P10:                    Percentile(sorted, 10),
		P50:                    Percentile(sorted, 50),
		P90:                    Percentile(sorted, 90),
		ProbabilityPositiveROI: fractionWhere(rois, func(r float64) bool { return r > 0 }),
		ProbabilityAboveHurdle: fractionWhere(rois, func(r float64) bool { return r > cfg.HurdleRate }),
		BreakEvenProbability:   fractionWhere(rois, func(r float64) bool { return r >= 0 }),
		Distribution:           rois,
	}
	e.logger.Debugf("monte carlo: %d iterations on %d workers, mean ROI %.2f", result.Iterations, workers, result.Mean)
	return result, nil
}

// draw builds the perturbed inputs of every iteration. Variables with no range
// or no base value are held at base and consume no draws.
func (e *MonteCarloEngine) draw(base domain.ROIInputs, ranges map[domain.Variable]domain.Range, iterations int, src RandomSource) []domain.ROIInputs {
	type varied struct {
		v     domain.Variable
		value float64
		r     domain.Range
	}
	var vars []varied
	for _, v := range domain.DefaultVariables() {
		r, ok := ranges[v]
		if !ok {
			continue
		}
		value, present := base.Value(v)
		if !present {
			continue
		}
		vars = append(vars, varied{v: v, value: value, r: r})
	}

	trials := make([]domain.ROIInputs, iterations)
	for i := range trials {
		in := base
		for _, x := range vars {
			in = in.With(x.v, x.value*sampleMultiplier(src, x.r))
		}
		trials[i] = in
	}
	return trials
}

// ConfidenceInterval bounds the central confidence share of a simulated
// distribution, e.g. 0.90 gives the 5th and 95th percentiles.
func ConfidenceInterval(result *domain.MonteCarloResult, confidence float64) (domain.ConfidenceInterval, error) {
	if result == nil || len(result.Distribution) == 0 {
		return domain.ConfidenceInterval{}, fmt.Errorf("%w: empty distribution", domain.ErrInvalidInput)
	}
	if !isFinite(confidence) || confidence <= 0 || confidence >= 1 {
		return domain.ConfidenceInterval{}, fmt.Errorf("%w: confidence must be in (0, 1), got %v", domain.ErrInvalidInput, confidence)
	}
	sorted := sortedCopy(result.Distribution)
	alpha := (1 - confidence) / 2 * 100
	return domain.ConfidenceInterval{
		Confidence: confidence,
		Lower:      Percentile(sorted, alpha),
		Upper:      Percentile(sorted, 100-alpha),
		Median:     Median(sorted),
		Mean:       Mean(result.Distribution),
	}, nil
}
