package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roikit/roi-calculator/internal/calculation"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		flags        roiFlags
		iterations   int
		hurdle       float64
		noMonteCarlo bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run every analysis and produce one report",
		Long: `Runs all scenarios, the tornado and break-even analyses, a Monte Carlo
simulation and, when the client profile carries current and future states, a
TCO comparison.

Examples:
  roikit report --client acme.yaml --format all --output-dir reports
  roikit report --client acme.yaml --no-montecarlo --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ri, err := flags.resolve(cmd, a, eng.Assumptions, "report")
			if err != nil {
				return err
			}

			var mc *calculation.MonteCarloConfig
			if !noMonteCarlo {
				cfg, err := a.monteCarloConfig(cmd, eng, iterations, hurdle)
				if err != nil {
					return err
				}
				mc = &cfg
			}
			an, err := eng.RunFullAnalysis(cmd.Context(), ri.Inputs, mc)
			if err != nil {
				return err
			}

			r := a.newReport(an, ri, eng)
			if p := ri.Profile; p.CurrentState != nil && p.FutureState != nil {
				tco, err := eng.TCO.Compare(*p.CurrentState, *p.FutureState, calculation.DefaultTCOYears, true)
				if err != nil {
					return err
				}
				r.TCO = tco
				r.HiddenCostDescriptions = eng.TCO.HiddenCostSummary(true)
			}
			a.logger.Info("analysis complete",
				zap.String("op", "report"),
				zap.String("report_id", r.ID),
				zap.Bool("monte_carlo", r.MonteCarlo != nil),
				zap.Bool("tco", r.TCO != nil),
			)
			return a.render(cmd, "report", r)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&iterations, "iterations", 0, "number of Monte Carlo simulations (default from assumptions)")
	cmd.Flags().Float64Var(&hurdle, "hurdle", 0, "hurdle ROI percentage (default from assumptions)")
	cmd.Flags().BoolVar(&noMonteCarlo, "no-montecarlo", false, "skip the Monte Carlo simulation")
	return cmd
}
