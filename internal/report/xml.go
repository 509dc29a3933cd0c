package report

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

const xmlIndent = "  "

// writeXML writes the report as a flat XML document:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<report dataset="book_reviews" generated="2024-01-15T14:30:22Z" total="12">
//	  <book name="R Basics" purchases="7"/>
//	  <book name="Fundamentals of R" purchases="5"/>
//	</report>
func writeXML(w io.Writer, rep *Report) error {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	fmt.Fprintf(&buffer, `<report dataset="%s" generated="%s" total="%d"`,
		escapeXML(rep.Dataset),
		rep.GeneratedAt.UTC().Format(time.RFC3339),
		rep.TotalPurchases)
	if rep.RunID != "" {
		fmt.Fprintf(&buffer, ` run_id="%s"`, escapeXML(rep.RunID))
	}

	if len(rep.Books) == 0 {
		buffer.WriteString("/>\n")
		_, err := w.Write(buffer.Bytes())
		return err
	}

	buffer.WriteString(">\n")

	for _, b := range rep.Books {
		fmt.Fprintf(&buffer, "%s<book name=\"%s\" purchases=\"%d\"/>\n",
			xmlIndent, escapeXML(b.Book), b.Count)
	}

	buffer.WriteString("</report>\n")

	_, err := w.Write(buffer.Bytes())
	return err
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
