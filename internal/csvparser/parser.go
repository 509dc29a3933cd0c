// =============================================================================
// Book Review Stats - CSV Parser Module
// =============================================================================
//
// This module reads CSV files into raw records. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Different encodings (UTF-8 with or without BOM, ISO-8859-1, Windows-1252)
//   - Quoted fields and ragged rows
//
// Type inference is NOT done here: the loader hands the records to the
// dataframe library, which detects column types.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/bookstats/internal/config"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile reads a CSV file and returns all of its records, header included.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The input settings from the configuration.
//
// RETURNS:
//   - The records, with the header as the first record.
//   - An error if the file cannot be opened, decoded, or parsed.
func ParseFile(filePath string, settings config.InputSettings) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file, settings)
}

// Parse reads CSV records from r.
//
// PARSING PROCESS:
//   1. Wrap the reader with the decoder for the configured encoding
//   2. Configure the CSV reader with the configured delimiter
//   3. Read all rows
//   4. Drop rows where every cell is blank
func Parse(r io.Reader, settings config.InputSettings) ([][]string, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(transform.NewReader(r, decoder.NewDecoder()))

	csvReader := csv.NewReader(reader)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	records := make([][]string, 0, len(allRows))
	for _, row := range allRows {
		if isRowEmpty(row) {
			continue
		}
		records = append(records, row)
	}

	return records, nil
}

// decoderFor returns the text decoder for a configured encoding name.
// UTF-8 input may carry a byte order mark; it is stripped.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(name, "_", "-")) {
	case "", "UTF-8", "UTF8":
		return unicode.UTF8BOM, nil
	case "ISO-8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.InputSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Allow variable number of fields per row; short rows are padded by the loader.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true

	reader.TrimLeadingSpace = true
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
