// =============================================================================
// Book Review Stats - XLSX Parser Module
// =============================================================================
//
// This module reads a worksheet from an XLSX workbook into raw records, the
// same shape the CSV parser produces, so that review exports saved from a
// spreadsheet can be analysed without converting them first.
//
// SHEET LAYOUT:
//   Row 1     : column headers (book, review, state, price)
//   Row 2..N  : one purchase review per row
//
// Cells are read as their formatted string values. Trailing empty cells are
// not returned by the workbook reader, so rows may be shorter than the
// header; the loader pads them.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseFile reads all non-empty rows of a worksheet.
//
// PARAMETERS:
//   - filePath: The path to the XLSX workbook.
//   - sheetName: The worksheet to read. Empty selects the first sheet.
//
// RETURNS:
//   - The records, with the header as the first record.
//   - An error if the workbook or the sheet cannot be read.
func ParseFile(filePath, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		records = append(records, cells)
	}

	return records, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
