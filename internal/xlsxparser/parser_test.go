package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into a new workbook with a single named sheet.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "reviews.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFile_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Reviews", [][]interface{}{
		{"book", "review", "state", "price"},
		{"R Basics", "Excellent", "California", 19.99},
		{},
		{"R for Dummies", " Good ", "NY", 25},
	})

	records, err := ParseFile(path, "")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"book", "review", "state", "price"}, records[0])
	assert.Equal(t, []string{"R Basics", "Excellent", "California", "19.99"}, records[1])
	assert.Equal(t, "Good", records[2][1])
}

func TestParseFile_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Reviews", [][]interface{}{
		{"book"},
		{"R Basics"},
	})

	records, err := ParseFile(path, "Reviews")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = ParseFile(path, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}

func TestParseFile_NotAWorkbook(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
}
