// =============================================================================
// Book Review Stats - Report Writer
// =============================================================================
//
// This module renders the aggregated purchase counts in one of four formats:
//
//   text  aligned table for the terminal, preceded by the best seller
//   csv   book,purchases
//   xml   <report><book name=".." purchases=".."/></report>
//   xlsx  one "Report" sheet with a header row
//
// Every format writes the same rows in the same order: purchases
// descending, then book name ascending.
//
// =============================================================================

package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/bookstats/internal/aggregate"
	"github.com/ginjaninja78/bookstats/internal/types"
	"github.com/ginjaninja78/bookstats/pkg/utils"
)

// ErrUnknownFormat is returned for a format name that has no writer.
var ErrUnknownFormat = errors.New("unknown report format")

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
	FormatXLSX Format = "xlsx"
)

// Column headers shared by the tabular formats.
const (
	headerBook      = "book"
	headerPurchases = "purchases"
)

// ParseFormat converts a format name (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatCSV, FormatXML, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Extension returns the file extension for the format, with its dot.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the final output of a run.
type Report struct {
	// Dataset is the name of the input the report was built from.
	Dataset string

	// RunID identifies the pipeline run.
	RunID string

	GeneratedAt time.Time

	// Books holds the rows to print, already ordered and limited.
	Books []types.BookCount

	// BestSeller is the top book over all groups, not only the printed ones.
	BestSeller types.BookCount

	// HasBestSeller is false when there were no cleaned records.
	HasBestSeller bool

	// TotalPurchases is the sum over all groups.
	TotalPurchases int

	// TotalBooks is the number of groups before limiting.
	TotalBooks int
}

// New builds a Report from ordered counts. top <= 0 keeps every book.
func New(dataset, runID string, counts []types.BookCount, top int) *Report {
	best, ok := aggregate.BestSeller(counts)
	return &Report{
		Dataset:        dataset,
		RunID:          runID,
		GeneratedAt:    time.Now(),
		Books:          aggregate.Top(counts, top),
		BestSeller:     best,
		HasBestSeller:  ok,
		TotalPurchases: aggregate.Total(counts),
		TotalBooks:     len(counts),
	}
}

// =============================================================================
// WRITING
// =============================================================================

// Write renders rep to w in the given format.
func Write(w io.Writer, format Format, rep *Report) error {
	switch format {
	case FormatText:
		return writeText(w, rep)
	case FormatCSV:
		return writeCSV(w, rep)
	case FormatXML:
		return writeXML(w, rep)
	case FormatXLSX:
		return writeXLSX(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile renders rep into a new file in dir.
//
// PARAMETERS:
//   - dir: The output directory. It is created if missing.
//   - nameFormat: The file name format, see utils.GenerateOutputFileName.
//     {dataset} is replaced by rep.Dataset.
//   - format: The output format. It also picks the file extension.
//   - rep: The report.
//
// RETURNS:
//   - The path of the written file.
//   - An error if the directory or file cannot be written.
func WriteFile(dir, nameFormat string, format Format, rep *Report) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}

	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}

	name := utils.GenerateOutputFileName(nameFormat, format.Extension(), map[string]string{
		"dataset": rep.Dataset,
	})
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Write(file, format, rep); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}

	return path, nil
}
