package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/domain"
)

func newCalculateCmd(a *app) *cobra.Command {
	var (
		flags  roiFlags
		single bool
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate ROI, NPV, IRR and payback",
		Long: `Calculates ROI, NPV, IRR and payback for every risk scenario.

Examples:
  roikit calculate --current-cost 1000000 --efficiency 0.3 --license 200000
  roikit calculate --client acme.yaml --years 5 --format csv
  roikit calculate --client acme.yaml --scenario aggressive --single`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ri, err := flags.resolve(cmd, a, eng.Assumptions, "calculate")
			if err != nil {
				return err
			}

			var scenarios map[domain.ScenarioName]*domain.ROIResult
			if single {
				res, err := eng.ROI.Calculate(ri.Inputs)
				if err != nil {
					return err
				}
				scenarios = map[domain.ScenarioName]*domain.ROIResult{res.ScenarioName: res}
			} else {
				scenarios, err = eng.ROI.CalculateAllScenarios(ri.Inputs)
				if err != nil {
					return err
				}
			}
			a.logger.Info("roi calculated", zap.String("op", "calculate"), zap.Int("scenarios", len(scenarios)))

			r := a.newReport(&calculation.Analysis{Inputs: ri.Inputs, Scenarios: scenarios}, ri, eng)
			return a.render(cmd, "calculate", r)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&single, "single", false, "calculate only the --scenario scenario")
	return cmd
}
