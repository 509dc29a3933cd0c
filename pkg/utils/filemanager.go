// =============================================================================
// Book Review Stats - File Manager Utility
// =============================================================================
//
// This module provides file utilities for writing run outputs:
//   - Directory management
//   - Output file naming
//   - Issue log generation
//
// Reports and issue logs are written next to each other in the output
// directory. Input files are never moved or modified.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// DatasetName returns the base name of path without its extension.
//
// EXAMPLE:
//
//	"data/book_reviews.csv" -> "book_reviews"
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     Any key of params, e.g. {dataset}.
//   - extension: The extension to ensure, with its dot (".csv").
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//
//	format:    "{dataset}_report_{timestamp}"
//	extension: ".xlsx"
//	params:    {"dataset": "book_reviews"}
//	output:    "book_reviews_report_20240115_143022.xlsx"
func GenerateOutputFileName(format, extension string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	// Only draw a UUID when the format asks for one.
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if extension != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// =============================================================================
// ISSUE LOG GENERATION
// =============================================================================

// IssueLogEntry represents a single issue log entry.
type IssueLogEntry struct {
	Severity  string
	Rule      string
	Message   string
	RowNumber int
	Field     string
	Value     string
}

// WriteIssueLog writes issue entries to a text file in outputDir.
//
// PARAMETERS:
//   - entries: The entries to write.
//   - fileName: The input file the entries refer to.
//   - outputDir: The directory to write the log file.
//
// RETURNS:
//   - The path to the log file, or "" when there was nothing to write.
//   - An error if writing fails.
func WriteIssueLog(entries []IssueLogEntry, fileName, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	now := time.Now()
	logFileName := fmt.Sprintf("%s_issues_%s.txt", DatasetName(fileName), now.Format("20060102_150405"))
	logPath := filepath.Join(outputDir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create issue log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Book Review Stats - Issue Log\n"+
		"File:         %s\n"+
		"Generated:    %s\n"+
		"Total Issues: %d\n"+
		"================================================================================\n\n",
		fileName,
		now.Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Issue #%d\n"+
			"  Severity:   %s\n"+
			"  Rule:       %s\n"+
			"  Message:    %s\n",
			i+1,
			entry.Severity,
			entry.Rule,
			entry.Message)

		if entry.RowNumber > 0 {
			fmt.Fprintf(writer, "  Row Number: %d\n", entry.RowNumber)
		}
		if entry.Field != "" {
			fmt.Fprintf(writer, "  Field:      %s\n", entry.Field)
		}
		if entry.Value != "" {
			fmt.Fprintf(writer, "  Value:      %s\n", entry.Value)
		}

		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Issue Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush issue log: %w", err)
	}

	return logPath, nil
}
