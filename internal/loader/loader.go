// =============================================================================
// Book Review Stats - Loader Module
// =============================================================================
//
// This module reads the source dataset into an in-memory table. Raw records
// come from the CSV or XLSX parser; column types are inferred by the
// dataframe library (gota). No validation is performed beyond type
// inference, apart from rejecting input that has no header at all.
//
// LOADING PROCESS:
//   1. Choose the parser from the configured format or the file extension
//   2. Read raw records (header first)
//   3. Pad or trim every row to the header width
//   4. Build a typed DataFrame; configured NA values load as missing
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/csvparser"
	"github.com/ginjaninja78/bookstats/internal/types"
	"github.com/ginjaninja78/bookstats/internal/xlsxparser"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrEmptyInput is returned when the source has no header row.
	ErrEmptyInput = errors.New("input has no header row")

	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrUnsupportedFormat is returned for file types the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Column names used for the derived fields when a table is rebuilt from
// cleaned records.
const (
	ColumnRow          = "row"
	ColumnReviewNum    = "review_num"
	ColumnIsHighReview = "is_high_review"
)

// naMarker is the cell value the dataframe library reads as missing.
const naMarker = "NaN"

// =============================================================================
// TABLE
// =============================================================================

// Table is an in-memory dataset with inferred column types.
type Table struct {
	// Source is the path the table was read from ("" for derived tables).
	Source string

	// Frame holds the typed columns.
	Frame dataframe.DataFrame
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return t.Frame.Nrow()
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.Frame.Ncol()
}

// Names returns the column names in source order.
func (t *Table) Names() []string {
	return t.Frame.Names()
}

// Types returns the inferred type of each column, in source order.
func (t *Table) Types() []series.Type {
	return t.Frame.Types()
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.Frame.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a CSV or XLSX file into a Table.
//
// PARAMETERS:
//   - path: The path to the source file.
//   - settings: The input settings from the configuration.
//
// RETURNS:
//   - The loaded Table.
//   - An error if the file cannot be read or holds no header row.
func Load(path string, settings config.InputSettings) (*Table, error) {
	format := strings.ToLower(settings.Format)
	if format == "" {
		format = formatFromExtension(path)
	}

	var (
		records [][]string
		err     error
	)

	switch format {
	case "csv":
		records, err = csvparser.ParseFile(path, settings)
	case "xlsx":
		records, err = xlsxparser.ParseFile(path, settings.Sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table, err := FromRecords(records, settings.NAValues)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	table.Source = path

	return table, nil
}

// formatFromExtension maps a file extension to an input format.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return "csv"
	case ".xlsx", ".xlsm":
		return "xlsx"
	default:
		return ""
	}
}

// FromRecords builds a Table from raw records whose first record is the
// header. Cells listed in naValues load as missing.
func FromRecords(records [][]string, naValues []string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
		if header[i] == "" {
			header[i] = fmt.Sprintf("Column_%d", i+1)
		}
	}

	// A header without data rows is an empty, all-string table.
	if len(records) == 1 {
		columns := make([]series.Series, len(header))
		for i, name := range header {
			columns[i] = series.New([]string{}, series.String, name)
		}
		return &Table{Frame: dataframe.New(columns...)}, nil
	}

	normalized := make([][]string, len(records))
	normalized[0] = header
	for i, row := range records[1:] {
		normalized[i+1] = fitRow(row, len(header))
	}

	frame := dataframe.LoadRecords(
		normalized,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to build table: %w", frame.Err)
	}

	return &Table{Frame: frame}, nil
}

// fitRow pads a short row with empty cells and drops cells beyond width.
func fitRow(row []string, width int) []string {
	fitted := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		fitted[i] = strings.TrimSpace(row[i])
	}
	return fitted
}

// =============================================================================
// RECORD PROJECTION
// =============================================================================

// Reviews projects the table into typed review records.
//
// PARAMETERS:
//   - columns: The header names of the required columns.
//
// RETURNS:
//   - One Review per table row, in table order. Missing reviews are "",
//     missing prices are NaN.
//   - ErrMissingColumn if a required column is not in the table.
func (t *Table) Reviews(columns config.Columns) ([]types.Review, error) {
	for _, name := range []string{columns.Book, columns.Review, columns.State, columns.Price} {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	books := t.Frame.Col(columns.Book)
	reviewCol := t.Frame.Col(columns.Review)
	states := t.Frame.Col(columns.State)
	prices := t.Frame.Col(columns.Price)

	reviews := make([]types.Review, t.Frame.Nrow())
	for i := range reviews {
		reviews[i] = types.Review{
			Row:    i + 1,
			Book:   stringValue(books.Elem(i)),
			State:  stringValue(states.Elem(i)),
			Price:  floatValue(prices.Elem(i)),
			Review: stringValue(reviewCol.Elem(i)),
		}
	}

	return reviews, nil
}

// stringValue returns the cell as text, "" when missing.
func stringValue(el series.Element) string {
	if el.IsNA() {
		return ""
	}
	return el.String()
}

// floatValue returns the cell as a number, NaN when missing or not numeric.
func floatValue(el series.Element) float64 {
	return el.Float()
}

// FromReviews rebuilds a Table from (cleaned) review records, including the
// derived review_num and is_high_review columns.
func FromReviews(reviews []types.Review, columns config.Columns) *Table {
	n := len(reviews)
	rows := make([]int, n)
	books := make([]string, n)
	states := make([]string, n)
	prices := make([]string, n)
	texts := make([]string, n)
	nums := make([]int, n)
	highs := make([]bool, n)

	for i, r := range reviews {
		rows[i] = r.Row
		books[i] = orNA(r.Book)
		states[i] = orNA(r.State)
		texts[i] = orNA(r.Review)
		if r.HasPrice() {
			prices[i] = strconv.FormatFloat(r.Price, 'f', -1, 64)
		} else {
			prices[i] = naMarker
		}
		nums[i] = r.ReviewNum
		highs[i] = r.IsHighReview
	}

	frame := dataframe.New(
		series.New(rows, series.Int, ColumnRow),
		series.New(books, series.String, columns.Book),
		series.New(texts, series.String, columns.Review),
		series.New(states, series.String, columns.State),
		series.New(prices, series.Float, columns.Price),
		series.New(nums, series.Int, ColumnReviewNum),
		series.New(highs, series.Bool, ColumnIsHighReview),
	)

	return &Table{Frame: frame}
}

func orNA(s string) string {
	if s == "" {
		return naMarker
	}
	return s
}
