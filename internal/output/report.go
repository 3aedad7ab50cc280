package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/domain"
	dec "github.com/roikit/roi-calculator/pkg/decimal"
)

// ErrUnsupportedFormat is returned for report formats with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Test hooks for deterministic report envelopes.
var (
	newReportID = uuid.NewString
	nowFunc     = time.Now
)

// Report is the envelope every formatter renders: one client's inputs and the
// results of each analysis that was run. Absent analyses are nil.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Client      string
	Industry    string

	Inputs      domain.ROIInputs
	Assumptions []string
	Warnings    []string

	Scenarios  map[domain.ScenarioName]*domain.ROIResult
	Tornado    []domain.SensitivityResult
	OneWay     []domain.OneWayPoint
	BreakEven  []*domain.BreakEvenResult
	MonteCarlo *domain.MonteCarloResult
	Confidence *domain.ConfidenceInterval
	TCO        *domain.TCOResult

	// HiddenCostDescriptions explains each hidden-cost category applied to TCO.
	HiddenCostDescriptions map[string]string

	// EfficiencyBenchmarks are industry-scaled reference gains per process category.
	EfficiencyBenchmarks map[string]domain.EfficiencyBenchmark
}

// NewReport wraps an analysis in a fresh envelope with a new run ID.
func NewReport(a *calculation.Analysis) *Report {
	r := &Report{ID: newReportID(), GeneratedAt: nowFunc().UTC()}
	if a == nil {
		return r
	}
	r.Inputs = a.Inputs
	r.Scenarios = a.Scenarios
	r.Tornado = a.Tornado
	r.BreakEven = a.BreakEven
	r.MonteCarlo = a.MonteCarlo
	r.Confidence = a.Confidence
	return r
}

// OrderedScenarios returns the scenario results from most to least cautious.
func (r *Report) OrderedScenarios() []*domain.ROIResult {
	out := make([]*domain.ROIResult, 0, len(r.Scenarios))
	for _, name := range domain.ScenarioNames() {
		if res, ok := r.Scenarios[name]; ok && res != nil {
			out = append(out, res)
		}
	}
	return out
}

// ToMap flattens the envelope and every result it carries.
func (r *Report) ToMap() map[string]any {
	m := map[string]any{
		"id":           r.ID,
		"generated_at": r.GeneratedAt.Format(time.RFC3339),
		"client":       r.Client,
		"industry":     r.Industry,
		"inputs":       inputsMap(r.Inputs),
		"assumptions":  r.Assumptions,
		"warnings":     r.Warnings,
	}

	scenarios := make(map[string]any, len(r.Scenarios))
	for _, res := range r.OrderedScenarios() {
		scenarios[string(res.ScenarioName)] = res.ToMap()
	}
	m["scenarios"] = scenarios

	if len(r.Tornado) > 0 {
		rows := make([]map[string]any, len(r.Tornado))
		for i, t := range r.Tornado {
			rows[i] = t.ToMap()
		}
		m["tornado"] = rows
	}
	if len(r.OneWay) > 0 {
		rows := make([]map[string]any, len(r.OneWay))
		for i, p := range r.OneWay {
			rows[i] = p.ToMap()
		}
		m["one_way"] = rows
	}
	if len(r.BreakEven) > 0 {
		rows := make([]map[string]any, len(r.BreakEven))
		for i, b := range r.BreakEven {
			rows[i] = b.ToMap()
		}
		m["break_even"] = rows
	}
	if r.MonteCarlo != nil {
		m["monte_carlo"] = r.MonteCarlo.ToMap()
	}
	if r.Confidence != nil {
		m["confidence_interval"] = r.Confidence.ToMap()
	}
	if r.TCO != nil {
		m["tco"] = r.TCO.ToMap()
	}
	if len(r.HiddenCostDescriptions) > 0 {
		m["hidden_cost_descriptions"] = r.HiddenCostDescriptions
	}
	if len(r.EfficiencyBenchmarks) > 0 {
		bench := make(map[string]any, len(r.EfficiencyBenchmarks))
		for category, b := range r.EfficiencyBenchmarks {
			bench[category] = map[string]any{
				"low":     dec.Round(b.Low, 4),
				"typical": dec.Round(b.Typical, 4),
				"high":    dec.Round(b.High, 4),
			}
		}
		m["efficiency_benchmarks"] = bench
	}
	return m
}

func inputsMap(in domain.ROIInputs) map[string]any {
	var impl any
	if in.ImplementationCost != nil {
		impl = dec.RoundMoney(*in.ImplementationCost)
	}
	return map[string]any{
		"current_annual_cost": dec.RoundMoney(in.CurrentAnnualCost),
		"efficiency_gain":     in.EfficiencyGain,
		"annual_license":      dec.RoundMoney(in.AnnualLicense),
		"implementation_cost": impl,
		"years":               in.Years,
		"scenario":            string(in.Scenario),
		"industry_multiplier": in.IndustryMultiplier,
	}
}

// GenerateReport renders the report with the named formatter (or "all") and
// writes timestamped files into dir. It returns the written paths.
func GenerateReport(r *Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "json", "detailed-csv"} {
			f := GetFormatterByName(name)
			p, err := WriteFormatted(f, r, dir, ExtensionFor(name))
			if err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	p, err := WriteFormatted(f, r, dir, ExtensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}

// ExtensionFor maps a formatter name to the file extension it is written with.
func ExtensionFor(name string) string {
	switch n := NormalizeFormatName(name); {
	case strings.Contains(n, "csv"):
		return "csv"
	case n == "json":
		return "json"
	default:
		return "txt"
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func reportPath(dir, ext string) string {
	name := fmt.Sprintf("roi_report_%s.%s", nowFunc().Format("20060102_150405"), ext)
	return filepath.Join(dir, name)
}
