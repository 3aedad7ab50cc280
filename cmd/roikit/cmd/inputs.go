package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/config"
	"github.com/roikit/roi-calculator/internal/domain"
	"github.com/roikit/roi-calculator/internal/output"
)

// roiFlags are the ROI input flags shared by every ROI based command.
type roiFlags struct {
	client         string
	company        string
	industry       string
	currentCost    float64
	efficiency     float64
	license        float64
	implementation float64
	years          int
	scenario       string
}

func (f *roiFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.client, "client", "", "client profile file (yaml, json or toml)")
	fs.StringVar(&f.company, "company", "", "client company name")
	fs.StringVar(&f.industry, "industry", "", "client industry (banking, insurance, asset_management, payments, ...)")
	fs.Float64Var(&f.currentCost, "current-cost", 0, "current annual cost of the process")
	fs.Float64Var(&f.efficiency, "efficiency", 0, "expected efficiency gain as a fraction (0.3 = 30%)")
	fs.Float64Var(&f.license, "license", 0, "annual license cost")
	fs.Float64Var(&f.implementation, "implementation-cost", 0, "one-time implementation cost (derived from the scenario when omitted)")
	fs.IntVar(&f.years, "years", 3, "analysis horizon in years")
	fs.StringVar(&f.scenario, "scenario", string(domain.Moderate), "scenario (conservative, moderate, aggressive)")
}

// resolvedInputs are validated ROI inputs plus the profile they came from.
type resolvedInputs struct {
	Inputs   domain.ROIInputs
	Profile  *config.ClientProfile
	Warnings config.Warnings
}

// resolve builds ROI inputs from the client profile, if any, with explicitly
// set flags taking precedence, and validates them.
func (f *roiFlags) resolve(cmd *cobra.Command, a *app, assumptions *domain.Assumptions, op string) (*resolvedInputs, error) {
	p := &config.ClientProfile{Years: f.years, Scenario: f.scenario}
	if f.client != "" {
		loaded, err := a.parser.LoadProfile(f.client)
		if err != nil {
			return nil, err
		}
		p = loaded
		a.logger.Debug("client profile loaded", zap.String("op", op), zap.String("path", f.client))
	}

	fs := cmd.Flags()
	override := func(name string) bool { return f.client == "" || fs.Changed(name) }
	if override("company") {
		p.Company = f.company
	}
	if override("industry") {
		p.Industry = f.industry
	}
	if override("current-cost") {
		p.CurrentAnnualCost = f.currentCost
	}
	if override("efficiency") {
		p.EfficiencyGain = f.efficiency
	}
	if override("license") {
		p.AnnualLicense = f.license
	}
	if override("years") {
		p.Years = f.years
	}
	if override("scenario") {
		p.Scenario = f.scenario
	}
	if fs.Changed("implementation-cost") {
		impl := f.implementation
		p.ImplementationCost = &impl
	}

	if err := config.ValidateIndustry(assumptions, p.Industry); err != nil {
		return nil, err
	}
	in := p.ROIInputs(assumptions)
	warnings, err := config.ValidateROIInputs(in)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.logger.Warn("input warning: "+w, zap.String("op", op))
	}
	return &resolvedInputs{Inputs: in, Profile: p, Warnings: warnings}, nil
}

// newReport wraps an analysis with the client details and assumption summary.
func (a *app) newReport(an *calculation.Analysis, ri *resolvedInputs, eng *calculation.CalculationEngine) *output.Report {
	r := output.NewReport(an)
	if ri != nil {
		r.Client = ri.Profile.Company
		if r.Client == "" {
			r.Client = ri.Profile.Name
		}
		r.Industry = ri.Profile.Industry
		r.Warnings = ri.Warnings
		if r.Industry != "" {
			r.EfficiencyBenchmarks = eng.Assumptions.EfficiencyBenchmarks(r.Industry)
		}
	}
	r.Assumptions = output.GenerateAssumptions(eng.Assumptions)
	return r
}

// monteCarloConfig starts from the assumption defaults and applies flag and settings overrides.
func (a *app) monteCarloConfig(cmd *cobra.Command, eng *calculation.CalculationEngine, iterations int, hurdle float64) (calculation.MonteCarloConfig, error) {
	cfg := eng.MonteCarloConfig()
	if iterations > 0 {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("hurdle") {
		cfg.HurdleRate = hurdle
	}
	cfg.Seed = a.settings.Seed
	cfg.Workers = a.settings.Workers
	if err := config.ValidateMonteCarlo(cfg.Iterations, cfg.HurdleRate, cfg.VariableRanges); err != nil {
		return calculation.MonteCarloConfig{}, err
	}
	return cfg, nil
}
