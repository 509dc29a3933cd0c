// Package inspect produces the diagnostic summary of a loaded table: its
// dimensions, the inferred type of each column, how many cells are missing
// and which distinct values occur. Inspection never modifies the table.
package inspect

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/bookstats/internal/loader"
	"github.com/go-gota/gota/series"
)

// Summary describes a table.
type Summary struct {
	Source  string
	Rows    int
	Cols    int
	Columns []Column
}

// Column describes one column of a table.
type Column struct {
	Name    string
	Type    series.Type
	Missing int

	// Unique holds the distinct non-missing values in first-seen order,
	// truncated to the requested limit.
	Unique []string

	// UniqueCount is the number of distinct non-missing values before
	// truncation.
	UniqueCount int
}

// Truncated reports whether Unique lists fewer values than exist.
func (c Column) Truncated() bool {
	return len(c.Unique) < c.UniqueCount
}

// Describe summarises t. maxUnique limits the values listed per column;
// zero or a negative value lists all of them.
func Describe(t *loader.Table, maxUnique int) Summary {
	summary := Summary{
		Source: t.Source,
		Rows:   t.Rows(),
		Cols:   t.Cols(),
	}

	names := t.Names()
	kinds := t.Types()
	for i, name := range names {
		summary.Columns = append(summary.Columns, describeColumn(t.Frame.Col(name), kinds[i], maxUnique))
	}

	return summary
}

func describeColumn(s series.Series, kind series.Type, maxUnique int) Column {
	col := Column{Name: s.Name, Type: kind}

	seen := make(map[string]struct{})
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if isMissing(el, kind) {
			col.Missing++
			continue
		}

		value := format(el, kind)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		col.UniqueCount++
		if maxUnique <= 0 || len(col.Unique) < maxUnique {
			col.Unique = append(col.Unique, value)
		}
	}

	return col
}

func isMissing(el series.Element, kind series.Type) bool {
	if el.IsNA() {
		return true
	}
	return kind == series.Float && math.IsNaN(el.Float())
}

// format renders floats without the library's fixed six decimals.
func format(el series.Element, kind series.Type) string {
	if kind == series.Float {
		return strconv.FormatFloat(el.Float(), 'f', -1, 64)
	}
	return el.String()
}

// Missing returns the total number of missing cells.
func (s Summary) Missing() int {
	total := 0
	for _, c := range s.Columns {
		total += c.Missing
	}
	return total
}

// Column returns the summary of the named column.
func (s Summary) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Write prints the summary in a human-readable layout.
func (s Summary) Write(w io.Writer) error {
	var b strings.Builder

	if s.Source != "" {
		fmt.Fprintf(&b, "Dataset:  %s\n", s.Source)
	}
	fmt.Fprintf(&b, "Rows:     %d\n", s.Rows)
	fmt.Fprintf(&b, "Columns:  %d\n", s.Cols)
	fmt.Fprintf(&b, "Missing:  %d\n", s.Missing())

	for _, c := range s.Columns {
		fmt.Fprintf(&b, "\n  %s <%s>  missing=%d unique=%d\n", c.Name, c.Type, c.Missing, c.UniqueCount)
		if len(c.Unique) > 0 {
			values := strings.Join(c.Unique, ", ")
			if c.Truncated() {
				values += fmt.Sprintf(", ... (%d more)", c.UniqueCount-len(c.Unique))
			}
			fmt.Fprintf(&b, "    %s\n", values)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
