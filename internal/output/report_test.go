package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roikit/roi-calculator/internal/domain"
)

func TestNewReportEnvelope(t *testing.T) {
	r := buildTestReport(t)
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", r.ID)
	assert.Equal(t, 2025, r.GeneratedAt.Year())
	assert.Len(t, r.OrderedScenarios(), 3)
	assert.Equal(t, domain.Conservative, r.OrderedScenarios()[0].ScenarioName)
	assert.Len(t, r.Tornado, 3, "implementation cost has no base value and is skipped")
	assert.NotEmpty(t, r.BreakEven)
	assert.Nil(t, r.MonteCarlo)
}

func TestNewReportWithoutAnalysis(t *testing.T) {
	fixReportHooks(t)
	r := NewReport(nil)
	assert.NotEmpty(t, r.ID)
	assert.Empty(t, r.OrderedScenarios())
	assert.Equal(t, Recommendation{}, AnalyzeScenarios(r))
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", doc["id"])
	assert.Equal(t, "2025-03-01T09:30:00Z", doc["generated_at"])
	assert.Equal(t, "Acme Bank", doc["client"])

	scenarios := doc["scenarios"].(map[string]any)
	moderate := scenarios["moderate"].(map[string]any)
	assert.Equal(t, -28.7, moderate["roi_percent"])
	assert.Equal(t, -250743.8, moderate["npv"])
	assert.Equal(t, 89.0, moderate["payback_months"])
	conservative := scenarios["conservative"].(map[string]any)
	assert.Equal(t, "N/A", conservative["payback_months"])
	assert.Nil(t, conservative["irr"])

	inputs := doc["inputs"].(map[string]any)
	assert.Nil(t, inputs["implementation_cost"])
	assert.Equal(t, 1000000.0, inputs["current_annual_cost"])

	assert.Len(t, doc["tornado"], 3)
	assert.NotContains(t, doc, "monte_carlo")
	assert.NotContains(t, doc, "tco")
}

func TestGenerateReportWritesFiles(t *testing.T) {
	r := buildTestReport(t)
	dir := filepath.Join(t.TempDir(), "reports")

	paths, err := GenerateReport(r, "json", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "roi_report_20250301_093000.json"), paths[0])
	_, err = os.Stat(paths[0])
	require.NoError(t, err)

	paths, err = GenerateReport(r, "all", dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.True(t, strings.HasSuffix(paths[0], ".txt"))
	assert.True(t, strings.HasSuffix(paths[2], ".csv"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(&Report{}, "definitely-not-a-format", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
	if !strings.Contains(msg, "aliases: console-verbose, csv-detailed") {
		t.Fatalf("error message missing sorted aliases: %s", msg)
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "csv", ExtensionFor("detailed-csv"))
	assert.Equal(t, "csv", ExtensionFor("csv-summary"))
	assert.Equal(t, "json", ExtensionFor("json-pretty"))
	assert.Equal(t, "txt", ExtensionFor("console-lite"))
}

func TestAnalyzeScenarios_SelectsHighestNPV(t *testing.T) {
	r := &Report{Scenarios: map[domain.ScenarioName]*domain.ROIResult{
		domain.Conservative: {ScenarioName: domain.Conservative, NPV: 1000, PaybackMonths: 30},
		domain.Moderate:     {ScenarioName: domain.Moderate, NPV: 5000, PaybackMonths: 20},
		domain.Aggressive:   {ScenarioName: domain.Aggressive, NPV: 5000, PaybackMonths: 15},
	}}
	rec := AnalyzeScenarios(r)
	assert.Equal(t, domain.Moderate, rec.ScenarioName, "ties go to the more cautious scenario")
	assert.True(t, rec.Viable)

	rec = AnalyzeScenarios(buildTestReport(t))
	assert.Equal(t, domain.Aggressive, rec.ScenarioName)
	assert.False(t, rec.Viable)
}

func TestGenerateAssumptions(t *testing.T) {
	lines := GenerateAssumptions(domain.DefaultAssumptions())
	require.Len(t, lines, 5)
	assert.Equal(t, "Conservative: implementation 1.50x license, efficiency x0.80, adoption 70%, discount rate 12.0%, realization 50% / 85% / 100%", lines[0])
	assert.Equal(t, "Recurring TCO costs inflate at 3.0% annually", lines[3])
	assert.Equal(t, "Monte Carlo: 10000 iterations, hurdle ROI 100.0%", lines[4])
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Moderate", titleCase("moderate"))
	assert.Equal(t, "Asset Management", titleCase("asset_management"))
	assert.Equal(t, "", titleCase(""))
}

func TestReportToMapOptionalSections(t *testing.T) {
	r := NewReport(nil)
	m := r.ToMap()
	assert.NotContains(t, m, "hidden_cost_descriptions")
	assert.NotContains(t, m, "efficiency_benchmarks")

	a := domain.DefaultAssumptions()
	r.Industry = "banking"
	r.HiddenCostDescriptions = map[string]string{"compliance_risk": "Potential audit findings, regulatory penalties"}
	r.EfficiencyBenchmarks = a.EfficiencyBenchmarks(r.Industry)

	b, err := json.Marshal(r.ToMap())
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))

	hidden, ok := doc["hidden_cost_descriptions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Potential audit findings, regulatory penalties", hidden["compliance_risk"])

	bench, ok := doc["efficiency_benchmarks"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, bench, len(a.EfficiencyGains))
	rec := bench["reconciliation"].(map[string]any)
	assert.Equal(t, 0.345, rec["low"])
	assert.Equal(t, 0.5175, rec["typical"])
	assert.Equal(t, 0.69, rec["high"])
}
