// =============================================================================
// Book Review Stats - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the full pipeline on
// one file and prints (or writes) the purchases-per-book report.
//
// COMMAND USAGE:
//   bookstats analyze <file> [flags]
//
// FLAGS:
//   --format      : Report format: text, csv, xml, xlsx
//   --output-dir  : Write the report (and any issue log) to this directory
//   --top         : Only list the N best-selling books
//   --max-unique  : Unique values listed per column in the diagnostics
//   --strict      : Fail the run on validation warnings
//   --quiet       : Print only the report
//
// OUTPUT:
//   1. Diagnostic summary of the raw dataset
//   2. Cleaning statistics
//   3. Validation issues, if any
//   4. The report
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/pipeline"
	"github.com/ginjaninja78/bookstats/internal/report"
	"github.com/ginjaninja78/bookstats/internal/validation"
	"github.com/ginjaninja78/bookstats/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	analyzeFormat    string
	analyzeOutputDir string
	analyzeTop       int
	analyzeMaxUnique int
	analyzeStrict    bool
	analyzeQuiet     bool
)

// issueDisplayLimit caps the issues printed to the terminal. The issue log
// written with --output-dir always holds all of them.
const issueDisplayLimit = 10

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Clean a review file and report purchases per book",
	Long: `The analyze command loads a CSV or XLSX review export, drops rows with
a missing review, normalises state names, scores the reviews and counts
purchases per book.

Without --output-dir the report is printed to stdout. With --output-dir the
report is written to a new file there, together with an issue log when
validation found anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.Report
		maxUnique := cfg.Inspect.MaxUnique

		flags := cmd.Flags()
		if flags.Changed("format") {
			opts.Format = analyzeFormat
		}
		if flags.Changed("output-dir") {
			opts.OutputDir = analyzeOutputDir
		}
		if flags.Changed("top") {
			opts.Top = analyzeTop
		}
		if flags.Changed("max-unique") {
			maxUnique = analyzeMaxUnique
		}

		run := *cfg
		run.Report = opts
		run.Inspect.MaxUnique = maxUnique

		return runAnalyze(cmd.OutOrStdout(), &run, logger, args[0], analyzeStrict, analyzeQuiet)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Report format: text, csv, xml, xlsx")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "Directory to write the report to (default: stdout)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "Only list the N best-selling books (0 lists all)")
	analyzeCmd.Flags().IntVar(&analyzeMaxUnique, "max-unique", 20, "Unique values listed per column (negative lists all)")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Fail on validation warnings such as unrecognized states")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "Print only the report")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runAnalyze runs the pipeline and emits the report.
func runAnalyze(w io.Writer, runCfg *config.Config, log *zap.Logger, path string, strict, quiet bool) error {
	format, err := report.ParseFormat(runCfg.Report.Format)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && runCfg.Report.OutputDir == "" {
		return fmt.Errorf("the %s format needs --output-dir", format)
	}

	// =========================================================================
	// STEP 1: RUN PIPELINE
	// =========================================================================

	p := pipeline.New(runCfg, log)
	p.Strict = strict

	result, err := p.Run(path)
	if result == nil {
		return err
	}
	failed := errors.Is(err, pipeline.ErrValidationFailed)

	// =========================================================================
	// STEP 2: DIAGNOSTICS
	// =========================================================================

	if !quiet || failed {
		if err := writeDiagnostics(w, result); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 3: ISSUE LOG
	// =========================================================================

	if runCfg.Report.OutputDir != "" && len(result.Validation.Issues) > 0 {
		if err := utils.EnsureDir(runCfg.Report.OutputDir); err != nil {
			return err
		}
		logPath, err := utils.WriteIssueLog(issueLogEntries(result.Validation.Issues), path, runCfg.Report.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Issue log written to: %s\n", logPath)
	}

	if failed {
		return err
	}

	// =========================================================================
	// STEP 4: REPORT
	// =========================================================================

	rep := report.New(utils.DatasetName(path), result.RunID, result.Counts, runCfg.Report.Top)

	if runCfg.Report.OutputDir == "" {
		return report.Write(w, format, rep)
	}

	out, err := report.WriteFile(runCfg.Report.OutputDir, runCfg.Report.FileNameFormat, format, rep)
	if err != nil {
		return err
	}

	log.Info("Report written", zap.String("run_id", result.RunID), zap.String("output", out))
	fmt.Fprintf(w, "Report written to: %s\n", out)

	return nil
}

// writeDiagnostics prints the raw dataset summary, the cleaning counters and
// any validation issues.
func writeDiagnostics(w io.Writer, result *pipeline.Result) error {
	if err := result.Raw.Write(w); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if err := result.WriteStats(w); err != nil {
		return err
	}
	if len(result.Stats.UnrecognizedStates) > 0 {
		fmt.Fprintf(w, "  Unrecognized values:  %v\n", result.Stats.UnrecognizedStates)
	}
	fmt.Fprintln(w)

	if len(result.Validation.Issues) > 0 {
		fmt.Fprintln(w, validation.FormatIssues(result.Validation.Issues, issueDisplayLimit))
	}

	return nil
}

// issueLogEntries converts validation issues for utils.WriteIssueLog.
func issueLogEntries(issues []*validation.Issue) []utils.IssueLogEntry {
	entries := make([]utils.IssueLogEntry, len(issues))
	for i, issue := range issues {
		entries[i] = utils.IssueLogEntry{
			Severity:  string(issue.Severity),
			Rule:      issue.Rule,
			Message:   issue.Message,
			RowNumber: issue.Row,
			Field:     issue.Field,
			Value:     issue.Value,
		}
	}
	return entries
}
