package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// writeCSV writes a header row followed by one row per book.
func writeCSV(w io.Writer, rep *Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{headerBook, headerPurchases}); err != nil {
		return err
	}

	for _, b := range rep.Books {
		if err := writer.Write([]string{b.Book, strconv.Itoa(b.Count)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
