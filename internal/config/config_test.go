package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.Equal(t, "UTF-8", cfg.Input.Encoding)
	assert.Equal(t, []string{"", "NA"}, cfg.Input.NAValues)
	assert.Equal(t, Columns{Book: "book", Review: "review", State: "state", Price: "price"}, cfg.Columns)
	assert.Equal(t, "CA", cfg.States["California"])
	assert.Equal(t, "FL", cfg.States["Florida"])
	assert.Equal(t, 5, cfg.Reviews.Scale["Excellent"])
	assert.Equal(t, 4, cfg.Reviews.HighThreshold)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.Equal(t, 20, cfg.Inspect.MaxUnique)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookstats.yaml")
	doc := `
input:
  delimiter: ";"
  na_values: ["NA", "n/a"]
columns:
  book: title
states:
  Oregon: OR
reviews:
  high_threshold: 5
report:
  format: csv
  top: 3
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Input.Delimiter)
	assert.Equal(t, []string{"NA", "n/a"}, cfg.Input.NAValues)
	assert.Equal(t, "title", cfg.Columns.Book)
	assert.Equal(t, "review", cfg.Columns.Review, "unset columns keep their defaults")
	assert.Equal(t, map[string]string{"Oregon": "OR"}, cfg.States)
	assert.Equal(t, DefaultScale(), cfg.Reviews.Scale)
	assert.Equal(t, 5, cfg.Reviews.HighThreshold)
	assert.Equal(t, "csv", cfg.Report.Format)
	assert.Equal(t, 3, cfg.Report.Top)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad state code", "states:\n  California: Calif\n"},
		{"lower-case state code", "states:\n  California: ca\n"},
		{"score out of range", "reviews:\n  scale:\n    Superb: 6\n"},
		{"threshold out of range", "reviews:\n  high_threshold: 9\n"},
		{"unknown report format", "report:\n  format: pdf\n"},
		{"unknown input format", "input:\n  format: parquet\n"},
		{"negative top", "report:\n  top: -1\n"},
		{"unknown log level", "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("states: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestIsPostalCode(t *testing.T) {
	assert.True(t, IsPostalCode("CA"))
	assert.True(t, IsPostalCode("NY"))
	assert.False(t, IsPostalCode("ca"))
	assert.False(t, IsPostalCode("California"))
	assert.False(t, IsPostalCode("C"))
	assert.False(t, IsPostalCode(""))
}
