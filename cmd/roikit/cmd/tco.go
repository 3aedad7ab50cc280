package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/config"
	"github.com/roikit/roi-calculator/internal/domain"
)

func newTCOCmd(a *app) *cobra.Command {
	var (
		client   string
		company  string
		current  domain.CurrentState
		future   domain.FutureState
		years    int
		noHidden bool
	)
	cmd := &cobra.Command{
		Use:   "tco",
		Short: "Compare current and future total cost of ownership",
		Long: `Compares the total cost of ownership of the current state with the
proposed solution, including hidden costs unless --no-hidden is given.

Examples:
  roikit tco --operations 300000 --maintenance 100000 --implementation 100000 --tco-license 150000
  roikit tco --client acme.yaml --years 7 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			if client != "" {
				p, err := a.parser.LoadProfile(client)
				if err != nil {
					return err
				}
				fs := cmd.Flags()
				if p.CurrentState != nil && !anyChanged(fs.Changed, "operations", "maintenance", "labor", "infrastructure") {
					current = *p.CurrentState
				}
				if p.FutureState != nil && !anyChanged(fs.Changed, "implementation", "tco-license", "support", "efficiency-savings") {
					future = *p.FutureState
				}
				if company == "" {
					company = p.Company
				}
			}
			if err := config.ValidateTCOInputs(current, future, years); err != nil {
				return err
			}

			res, err := eng.TCO.Compare(current, future, years, !noHidden)
			if err != nil {
				return err
			}
			a.logger.Info("tco compared",
				zap.String("op", "tco"),
				zap.Int("years", years),
				zap.String("savings_percent", res.SavingsPercent.StringFixed(1)),
			)

			r := a.newReport(&calculation.Analysis{}, nil, eng)
			r.Client = company
			r.TCO = res
			r.HiddenCostDescriptions = eng.TCO.HiddenCostSummary(!noHidden)
			return a.render(cmd, "tco", r)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&client, "client", "", "client profile file with current_state and future_state")
	fs.StringVar(&company, "company", "", "client company name")
	fs.Float64Var(&current.AnnualOperations, "operations", 0, "current annual operations cost")
	fs.Float64Var(&current.AnnualMaintenance, "maintenance", 0, "current annual maintenance cost")
	fs.Float64Var(&current.AnnualLabor, "labor", 0, "current annual labor cost")
	fs.Float64Var(&current.AnnualInfrastructure, "infrastructure", 0, "current annual infrastructure cost")
	fs.Float64Var(&future.Implementation, "implementation", 0, "future one-time implementation cost")
	fs.Float64Var(&future.AnnualLicense, "tco-license", 0, "future annual license cost")
	fs.Float64Var(&future.AnnualSupport, "support", 0, "future annual support cost")
	fs.Float64Var(&future.EfficiencySavings, "efficiency-savings", 0, "future annual efficiency savings offset")
	fs.IntVar(&years, "years", calculation.DefaultTCOYears, "comparison horizon in years")
	fs.BoolVar(&noHidden, "no-hidden", false, "exclude hidden cost factors")
	return cmd
}

func anyChanged(changed func(string) bool, names ...string) bool {
	for _, n := range names {
		if changed(n) {
			return true
		}
	}
	return false
}
