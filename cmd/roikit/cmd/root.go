package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roikit/roi-calculator/internal/calculation"
	"github.com/roikit/roi-calculator/internal/config"
	"github.com/roikit/roi-calculator/internal/domain"
	"github.com/roikit/roi-calculator/internal/output"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v            *viper.Viper
	settingsFile string
	settings     *config.Settings
	logger       *zap.Logger
	parser       *config.InputParser
}

// Execute runs the roikit command tree. An interrupt cancels a running simulation.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree with fresh flag and settings state.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), parser: config.NewInputParser(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "roikit",
		Short: "ROI, TCO and risk analysis for software business cases",
		Long: `roikit builds the financial justification for a software investment.

Commands:
  calculate    - ROI, NPV, IRR and payback for each risk scenario
  tco          - current vs future total cost of ownership
  sensitivity  - tornado, one-way and break-even analysis
  montecarlo   - simulated ROI distribution under input uncertainty
  report       - every analysis in one report
  init         - write an example assumptions file`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.settingsFile, "config", "", "settings file (yaml, json or toml)")
	pf.String("assumptions", "", "assumptions file overlaying the built-in defaults")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.StringP("format", "f", "console", fmt.Sprintf("report format (%s, all)", strings.Join(output.AvailableFormatterNames(), ", ")))
	pf.StringP("output-dir", "o", "", "write timestamped report files here instead of stdout")
	pf.Int64("seed", 0, "Monte Carlo seed (0 draws one at run time)")
	pf.Int("workers", 0, "Monte Carlo workers (0 uses every CPU)")
	for key, flag := range map[string]string{
		"assumptions": "assumptions",
		"log_level":   "log-level",
		"log_format":  "log-format",
		"format":      "format",
		"output_dir":  "output-dir",
		"seed":        "seed",
		"workers":     "workers",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(
		newCalculateCmd(a),
		newTCOCmd(a),
		newSensitivityCmd(a),
		newMonteCarloCmd(a),
		newReportCmd(a),
		newInitCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	settings, err := config.LoadSettings(a.v, a.settingsFile)
	if err != nil {
		return err
	}
	logger, err := initializeLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	a.logger.Debug("settings resolved",
		zap.String("op", "setup"),
		zap.String("format", settings.Format),
		zap.String("assumptions", settings.Assumptions),
	)
	return nil
}

// initializeLogger builds a zap logger writing to stderr so reports on stdout stay clean.
func initializeLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// engine loads the assumption table named in the settings and wires the engines to the logger.
func (a *app) engine() (*calculation.CalculationEngine, error) {
	assumptions := domain.DefaultAssumptions()
	if path := a.settings.Assumptions; path != "" {
		loaded, err := a.parser.LoadAssumptions(path)
		if err != nil {
			return nil, err
		}
		assumptions = loaded
		a.logger.Info("assumptions loaded", zap.String("op", "engine"), zap.String("path", path))
	}
	eng, err := calculation.NewCalculationEngineWithAssumptions(assumptions)
	if err != nil {
		return nil, err
	}
	eng.SetLogger(calculation.NewZapLogger(a.logger))
	return eng, nil
}

// render prints the report with the configured formatter, or writes report
// files when an output directory or the "all" format is requested.
func (a *app) render(cmd *cobra.Command, op string, r *output.Report) error {
	format := a.settings.Format
	if a.settings.OutputDir != "" || output.NormalizeFormatName(format) == "all" {
		dir := a.settings.OutputDir
		if dir == "" {
			dir = "."
		}
		paths, err := output.GenerateReport(r, format, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			abs, _ := filepath.Abs(p)
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", abs)
		}
		a.logger.Info("report written", zap.String("op", op), zap.String("report_id", r.ID), zap.Strings("paths", paths))
		return nil
	}

	f := output.GetFormatterByName(format)
	if f == nil {
		return output.UnsupportedFormatError(format)
	}
	data, err := f.Format(r)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}
	a.logger.Debug("report rendered", zap.String("op", op), zap.String("report_id", r.ID), zap.String("format", f.Name()))
	return nil
}
