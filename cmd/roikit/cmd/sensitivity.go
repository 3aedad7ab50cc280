package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/config"
	"github.com/roikit/roi-calculator/internal/domain"
)

func newSensitivityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Tornado, one-way and break-even analysis",
		Long: `Shows how ROI moves when one input changes.

Subcommands:
  tornado     - rank variables by their ROI impact
  one-way     - sweep one variable across a range
  break-even  - find the value of a variable at which ROI is zero`,
	}
	cmd.AddCommand(newTornadoCmd(a), newOneWayCmd(a), newBreakEvenCmd(a))
	return cmd
}

func newTornadoCmd(a *app) *cobra.Command {
	var (
		flags     roiFlags
		rangePct  float64
		variables []string
	)
	cmd := &cobra.Command{
		Use:   "tornado",
		Short: "Rank input variables by their impact on ROI",
		Long: `Varies each input by ±range and ranks the variables by the ROI swing.

Examples:
  roikit sensitivity tornado --client acme.yaml
  roikit sensitivity tornado --client acme.yaml --range 0.3 --variables efficiency_gain,annual_license`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateRangePct(rangePct); err != nil {
				return err
			}
			vars, err := parseVariables(variables)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ri, err := flags.resolve(cmd, a, eng.Assumptions, "tornado")
			if err != nil {
				return err
			}
			rows, err := eng.Sensitivity.TornadoAnalysis(ri.Inputs, vars, rangePct)
			if err != nil {
				return err
			}
			a.logger.Info("tornado analysed", zap.String("op", "tornado"), zap.Int("variables", len(rows)))

			r := a.newReport(&calculation.Analysis{Inputs: ri.Inputs, Tornado: rows}, ri, eng)
			return a.render(cmd, "tornado", r)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&rangePct, "range", calculation.DefaultRangePct, "swing as a fraction of each base value")
	cmd.Flags().StringSliceVar(&variables, "variables", nil, "variables to vary (default: all)")
	return cmd
}

func newOneWayCmd(a *app) *cobra.Command {
	var (
		flags    roiFlags
		variable string
		rangePct float64
		steps    int
	)
	cmd := &cobra.Command{
		Use:   "one-way",
		Short: "Sweep one variable across a range",
		Long: `Evaluates ROI, NPV and payback at evenly spaced values of one variable.

Examples:
  roikit sensitivity one-way --client acme.yaml --variable annual_license --steps 9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateRangePct(rangePct); err != nil {
				return err
			}
			v, err := domain.ParseVariable(variable)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ri, err := flags.resolve(cmd, a, eng.Assumptions, "one-way")
			if err != nil {
				return err
			}
			points, err := eng.Sensitivity.OneWayAnalysis(ri.Inputs, v, rangePct, steps)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				a.logger.Warn("variable has no base value, nothing to sweep", zap.String("op", "one-way"), zap.String("variable", variable))
			}

			r := a.newReport(&calculation.Analysis{Inputs: ri.Inputs}, ri, eng)
			r.OneWay = points
			return a.render(cmd, "one-way", r)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&variable, "variable", string(domain.EfficiencyGain), "variable to sweep")
	cmd.Flags().Float64Var(&rangePct, "range", calculation.DefaultRangePct, "swing as a fraction of the base value")
	cmd.Flags().IntVar(&steps, "steps", calculation.DefaultSteps, "number of evaluation points")
	return cmd
}

func newBreakEvenCmd(a *app) *cobra.Command {
	var (
		flags     roiFlags
		variables []string
	)
	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Find the value of a variable at which ROI is zero",
		Long: `Searches 0% to 200% of each variable's base value for zero ROI.

Examples:
  roikit sensitivity break-even --client acme.yaml
  roikit sensitivity break-even --client acme.yaml --variables annual_license`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := parseVariables(variables)
			if err != nil {
				return err
			}
			if vars == nil {
				vars = []domain.Variable{domain.EfficiencyGain, domain.AnnualLicense}
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			ri, err := flags.resolve(cmd, a, eng.Assumptions, "break-even")
			if err != nil {
				return err
			}

			an := &calculation.Analysis{Inputs: ri.Inputs}
			for _, v := range vars {
				be, err := eng.Sensitivity.BreakEvenAnalysis(ri.Inputs, v)
				if err != nil {
					return err
				}
				if !be.Converged {
					a.logger.Warn("break-even not found", zap.String("op", "break-even"), zap.String("variable", string(v)))
				}
				an.BreakEven = append(an.BreakEven, be)
			}
			return a.render(cmd, "break-even", a.newReport(an, ri, eng))
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&variables, "variables", nil, "variables to search (default: efficiency_gain,annual_license)")
	return cmd
}

func parseVariables(names []string) ([]domain.Variable, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]domain.Variable, 0, len(names))
	for _, n := range names {
		v, err := domain.ParseVariable(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
