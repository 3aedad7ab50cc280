package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestMonteCarloCSVReport(t *testing.T) {
	report := &MonteCarloCSVReport{
		Result: &domain.MonteCarloResult{
			Iterations:             5,
			HurdleRate:             100,
			Mean:                   30,
			Median:                 30,
			P10:                    14,
			P50:                    30,
			P90:                    46,
			ProbabilityPositiveROI: 1,
			BreakEvenProbability:   1,
			Distribution:           []float64{50, 10, 40, 20, 30},
		},
		Config:     calculation.MonteCarloConfig{Iterations: 5, Seed: 42},
		Confidence: &domain.ConfidenceInterval{Confidence: 0.9, Lower: 12, Upper: 48},
	}

	dir := filepath.Join(t.TempDir(), "mc")
	paths, err := report.GenerateAllCSVReports(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	summary := readCSV(t, paths[0])
	assert.Equal(t, []string{"Metric", "Value", "Description"}, summary[0])
	assert.Equal(t, []string{"Iterations", "5", "Number of simulated ROI outcomes"}, summary[1])
	assert.Len(t, summary, 1+10+2)
	assert.Equal(t, "42", summary[10][1])

	percentiles := readCSV(t, paths[1])
	require.Len(t, percentiles, 1+len(percentileSteps))
	assert.Equal(t, []string{"50", "30.0"}, percentiles[4])
	assert.Equal(t, []string{"10", "14.0"}, percentiles[2])

	dist := readCSV(t, paths[2])
	require.Len(t, dist, 6)
	assert.Equal(t, []string{"1", "50.0000"}, dist[1])
}
