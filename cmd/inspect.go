// =============================================================================
// Book Review Stats - Inspect Command
// =============================================================================
//
// COMMAND USAGE:
//   bookstats inspect <file> [--max-unique N] [--cleaned]
//
// Prints dimensions, column types, missing counts and unique values. With
// --cleaned the summary describes the dataset after cleaning and scoring,
// including the derived review_num and is_high_review columns.
//
// =============================================================================

package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/inspect"
	"github.com/ginjaninja78/bookstats/internal/loader"
	"github.com/ginjaninja78/bookstats/internal/pipeline"
)

var (
	inspectMaxUnique int
	inspectCleaned   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe the columns of a review file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxUnique := cfg.Inspect.MaxUnique
		if cmd.Flags().Changed("max-unique") {
			maxUnique = inspectMaxUnique
		}
		return runInspect(cmd.OutOrStdout(), cfg, logger, args[0], maxUnique, inspectCleaned)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVar(&inspectMaxUnique, "max-unique", 20, "Unique values listed per column (negative lists all)")
	inspectCmd.Flags().BoolVar(&inspectCleaned, "cleaned", false, "Describe the cleaned dataset instead of the raw one")
}

func runInspect(w io.Writer, runCfg *config.Config, log *zap.Logger, path string, maxUnique int, cleaned bool) error {
	if !cleaned {
		table, err := loader.Load(path, runCfg.Input)
		if err != nil {
			return err
		}
		return inspect.Describe(table, maxUnique).Write(w)
	}

	run := *runCfg
	run.Inspect.MaxUnique = maxUnique

	result, err := pipeline.New(&run, log).Run(path)
	if result == nil {
		return err
	}
	if err != nil && !errors.Is(err, pipeline.ErrValidationFailed) {
		return err
	}
	return result.Cleaned.Write(w)
}
