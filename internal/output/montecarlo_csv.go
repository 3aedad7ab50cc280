package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/domain"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo ROI results
type MonteCarloCSVReport struct {
	Result     *domain.MonteCarloResult
	Config     calculation.MonteCarloConfig
	Confidence *domain.ConfidenceInterval
}

// percentileSteps are the rows of the percentile export.
var percentileSteps = []float64{5, 10, 25, 50, 75, 90, 95}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	rows := [][]string{
		{"Iterations", strconv.Itoa(m.Result.Iterations), "Number of simulated ROI outcomes"},
		{"Mean ROI", FormatPercentage(m.Result.Mean), "Average simulated ROI"},
		{"Median ROI", FormatPercentage(m.Result.Median), "Middle simulated ROI"},
		{"ROI Std Dev", FormatPercentage(m.Result.StdDev), "Population standard deviation of ROI"},
		{"P10 ROI", FormatPercentage(m.Result.P10), "10% of outcomes fall below this ROI"},
		{"P90 ROI", FormatPercentage(m.Result.P90), "90% of outcomes fall below this ROI"},
		{"Probability Positive ROI", FormatPercentage(m.Result.ProbabilityPositiveROI * 100), "Share of outcomes with ROI above 0%"},
		{"Probability Above Hurdle", FormatPercentage(m.Result.ProbabilityAboveHurdle * 100), fmt.Sprintf("Share of outcomes with ROI above %s", FormatPercentage(m.Result.HurdleRate))},
		{"Break-even Probability", FormatPercentage(m.Result.BreakEvenProbability * 100), "Share of outcomes with ROI of at least 0%"},
		{"Seed", strconv.FormatInt(m.Config.Seed, 10), "Random seed (0 means drawn at run time)"},
	}
	if m.Confidence != nil {
		rows = append(rows,
			[]string{"CI Lower", FormatPercentage(m.Confidence.Lower), fmt.Sprintf("Lower bound of the %.0f%% confidence interval", m.Confidence.Confidence*100)},
			[]string{"CI Upper", FormatPercentage(m.Confidence.Upper), fmt.Sprintf("Upper bound of the %.0f%% confidence interval", m.Confidence.Confidence*100)},
		)
	}
	return writeCSV(outputPath, []string{"Metric", "Value", "Description"}, rows)
}

// GeneratePercentileCSV creates a CSV of ROI percentiles of the simulated distribution
func (m *MonteCarloCSVReport) GeneratePercentileCSV(outputPath string) error {
	sorted := append([]float64(nil), m.Result.Distribution...)
	sort.Float64s(sorted)

	rows := make([][]string, 0, len(percentileSteps))
	for _, p := range percentileSteps {
		rows = append(rows, []string{
			strconv.FormatFloat(p, 'f', 0, 64),
			percentString(calculation.Percentile(sorted, p)),
		})
	}
	return writeCSV(outputPath, []string{"Percentile", "ROIPercent"}, rows)
}

// GenerateDistributionCSV creates a CSV with the ROI of every iteration
func (m *MonteCarloCSVReport) GenerateDistributionCSV(outputPath string) error {
	rows := make([][]string, len(m.Result.Distribution))
	for i, roi := range m.Result.Distribution {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.FormatFloat(roi, 'f', 4, 64)}
	}
	return writeCSV(outputPath, []string{"Iteration", "ROIPercent"}, rows)
}

// GenerateAllCSVReports creates all CSV reports in a single directory and
// returns their paths.
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) ([]string, error) {
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	exports := []struct {
		name string
		gen  func(string) error
	}{
		{"monte_carlo_summary.csv", m.GenerateSummaryCSV},
		{"monte_carlo_percentiles.csv", m.GeneratePercentileCSV},
		{"monte_carlo_distribution.csv", m.GenerateDistributionCSV},
	}
	paths := make([]string, 0, len(exports))
	for _, e := range exports {
		p := filepath.Join(outputDir, e.name)
		if err := e.gen(p); err != nil {
			return paths, fmt.Errorf("failed to generate %s: %w", e.name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeCSV(outputPath string, header []string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}
