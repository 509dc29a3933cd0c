package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sepStyle    = lipgloss.NewStyle().Faint(true)
)

// writeText renders the report as a two-column table.
func writeText(w io.Writer, rep *Report) error {
	var sb strings.Builder

	if rep.HasBestSeller {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("Best seller: %s (%d purchases)",
			rep.BestSeller.Book, rep.BestSeller.Count)))
	} else {
		sb.WriteString(titleStyle.Render("Best seller: none (no reviews left after cleaning)"))
	}
	sb.WriteString("\n\n")

	headers := []string{headerBook, headerPurchases}
	rows := make([][]string, len(rep.Books))
	for i, b := range rep.Books {
		rows[i] = []string{b.Book, strconv.Itoa(b.Count)}
	}

	// Width includes the padding on both sides.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	aligns := []lipgloss.Position{lipgloss.Left, lipgloss.Right}

	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i]).Align(aligns[i]).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(sepStyle.Render(strings.Repeat("-", widths[0]+widths[1]+1)))
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(cellStyle.Width(widths[i]).Align(aligns[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	if len(rep.Books) < rep.TotalBooks {
		fmt.Fprintf(&sb, "... (%d more books)\n", rep.TotalBooks-len(rep.Books))
	}
	fmt.Fprintf(&sb, "\nTotal purchases: %d across %d books\n", rep.TotalPurchases, rep.TotalBooks)

	_, err := io.WriteString(w, sb.String())
	return err
}
