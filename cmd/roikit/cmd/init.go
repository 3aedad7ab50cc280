package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example assumptions file",
		Long: `Writes the built-in assumption table to a file that can be edited and
passed back with --assumptions. The format follows the extension (yaml, json, toml).

Examples:
  roikit init
  roikit init assumptions.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "assumptions.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := a.parser.SaveAssumptions(a.parser.CreateExampleAssumptions(), path); err != nil {
				return err
			}
			a.logger.Info("assumptions written", zap.String("op", "init"), zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Example assumptions written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
