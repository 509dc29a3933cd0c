// =============================================================================
// Book Review Stats - Query Command
// =============================================================================
//
// COMMAND USAGE:
//   bookstats query <file> <sql>
//
// Cleans the file, loads the cleaned records into an in-memory SQLite table
// named "reviews" and prints the query result as CSV.
//
// TABLE:
//   reviews(row, book, state, price, review, review_num, is_high_review)
//
// =============================================================================

package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/pipeline"
	"github.com/ginjaninja78/bookstats/internal/sqlview"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <sql>",
	Short: "Run SQL over the cleaned reviews",
	Long: `Run a SQL statement over the cleaned reviews. The records are held in an
in-memory SQLite table:

  reviews(row, book, state, price, review, review_num, is_high_review)

Example:
  bookstats query book_reviews.csv "SELECT state, COUNT(*) AS n FROM reviews GROUP BY state ORDER BY n DESC"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), cmd.OutOrStdout(), cfg, logger, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(ctx context.Context, w io.Writer, runCfg *config.Config, log *zap.Logger, path, query string) error {
	result, err := pipeline.New(runCfg, log).Run(path)
	if result == nil {
		return err
	}
	if err != nil && !errors.Is(err, pipeline.ErrValidationFailed) {
		return err
	}

	view, err := sqlview.Open(ctx, result.Reviews)
	if err != nil {
		return err
	}
	defer view.Close()

	rows, err := view.Query(ctx, query)
	if err != nil {
		return err
	}

	out := csv.NewWriter(w)
	if err := out.Write(rows.Columns); err != nil {
		return err
	}
	if err := out.WriteAll(rows.Values); err != nil {
		return err
	}
	return out.Error()
}
