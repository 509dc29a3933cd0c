package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))

	// Existing directories are fine.
	require.NoError(t, EnsureDir(dir))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
}

func TestDatasetName(t *testing.T) {
	assert.Equal(t, "book_reviews", DatasetName("data/book_reviews.csv"))
	assert.Equal(t, "reviews.2024", DatasetName("/tmp/reviews.2024.xlsx"))
	assert.Equal(t, "plain", DatasetName("plain"))
}

func TestGenerateOutputFileName(t *testing.T) {
	t.Run("dataset and timestamp", func(t *testing.T) {
		got := GenerateOutputFileName("{dataset}_report_{timestamp}", ".csv", map[string]string{"dataset": "book_reviews"})
		assert.Regexp(t, regexp.MustCompile(`^book_reviews_report_\d{8}_\d{6}\.csv$`), got)
	})

	t.Run("uuid", func(t *testing.T) {
		got := GenerateOutputFileName("{uuid}", ".xml", nil)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.xml$`), got)
		assert.NotEqual(t, got, GenerateOutputFileName("{uuid}", ".xml", nil))
	})

	t.Run("extension already present", func(t *testing.T) {
		assert.Equal(t, "report.XLSX", GenerateOutputFileName("report.XLSX", ".xlsx", nil))
	})

	t.Run("no extension", func(t *testing.T) {
		assert.Equal(t, "report", GenerateOutputFileName("report", "", nil))
	})
}

func TestWriteIssueLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteIssueLog(nil, "reviews.csv", dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = WriteIssueLog([]IssueLogEntry{
		{Severity: "warning", Rule: "postal_code", Message: "State is not a two-letter postal code", RowNumber: 4, Field: "state", Value: "Oregon"},
		{Severity: "error", Rule: "review_required", Message: "Review is missing"},
	}, "data/reviews.csv", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, regexp.MustCompile(`reviews_issues_\d{8}_\d{6}\.txt$`), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "Total Issues: 2")
	assert.Contains(t, out, "Issue #1")
	assert.Contains(t, out, "  Row Number: 4")
	assert.Contains(t, out, "  Value:      Oregon")
	assert.Contains(t, out, "Issue #2")
	assert.Contains(t, out, "End of Issue Log")
}
