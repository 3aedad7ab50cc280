package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/config"
	"github.com/roikit/roi-calculator/internal/output"
)

func newMonteCarloCmd(a *app) *cobra.Command {
	var (
		flags      roiFlags
		iterations int
		hurdle     float64
		confidence float64
		exportDir  string
	)
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Simulate the ROI distribution under input uncertainty",
		Long: `Draws triangular multipliers for the uncertain inputs and summarizes the
resulting ROI distribution. A fixed --seed reproduces a run exactly.

Examples:
  roikit montecarlo --client acme.yaml --iterations 20000 --seed 42
  roikit montecarlo --client acme.yaml --hurdle 50 --export-dir out/mc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if confidence <= 0 || confidence >= 1 {
				return &config.FieldError{Field: "confidence", Reason: fmt.Sprintf("must be in (0, 1), got %g", confidence)}
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ri, err := flags.resolve(cmd, a, eng.Assumptions, "montecarlo")
			if err != nil {
				return err
			}
			cfg, err := a.monteCarloConfig(cmd, eng, iterations, hurdle)
			if err != nil {
				return err
			}

			res, err := eng.MonteCarlo.Simulate(cmd.Context(), ri.Inputs, cfg)
			if err != nil {
				return err
			}
			ci, err := calculation.ConfidenceInterval(res, confidence)
			if err != nil {
				return err
			}
			a.logger.Info("simulation complete",
				zap.String("op", "montecarlo"),
				zap.Int("iterations", res.Iterations),
				zap.Float64("probability_positive_roi", res.ProbabilityPositiveROI),
			)

			if exportDir != "" {
				csvReport := &output.MonteCarloCSVReport{Result: res, Config: cfg, Confidence: &ci}
				paths, err := csvReport.GenerateAllCSVReports(exportDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					abs, _ := filepath.Abs(p)
					fmt.Fprintf(cmd.OutOrStdout(), "CSV written to %s\n", abs)
				}
			}

			r := a.newReport(&calculation.Analysis{Inputs: ri.Inputs, MonteCarlo: res, Confidence: &ci}, ri, eng)
			return a.render(cmd, "montecarlo", r)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&iterations, "iterations", 0, "number of simulations (default from assumptions)")
	cmd.Flags().Float64Var(&hurdle, "hurdle", 0, "hurdle ROI percentage (default from assumptions)")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.90, "confidence level of the reported interval")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "also write summary, percentile and distribution CSVs here")
	return cmd
}
