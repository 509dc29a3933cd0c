// =============================================================================
// Book Review Stats - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. Every
// setting has a built-in default, so a configuration file is optional: the
// defaults reproduce the standard book review analysis exactly.
//
// CONFIGURATION SECTIONS:
//   input    : how the source table is read (format, delimiter, encoding)
//   columns  : which header names hold book, review, state and price
//   states   : full state name -> postal code lookup table
//   reviews  : review category -> score scale and the high-review threshold
//   report   : output format and destination
//   inspect  : diagnostic output limits
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the whole application configuration.
type Config struct {
	// Input controls how the source dataset is read.
	Input InputSettings `yaml:"input"`

	// Columns names the header of each required column.
	Columns Columns `yaml:"columns"`

	// States maps full state names to two-letter postal codes.
	// Matching is exact: "california" does not match "California".
	States map[string]string `yaml:"states"`

	// Reviews defines the review score scale.
	Reviews ReviewSettings `yaml:"reviews"`

	// Report controls the final report output.
	Report ReportSettings `yaml:"report"`

	// Inspect controls the diagnostic summary.
	Inspect InspectSettings `yaml:"inspect"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// InputSettings contains settings for reading the source table.
type InputSettings struct {
	// Format forces the input format: "csv" or "xlsx".
	// Default: "" (detected from the file extension)
	Format string `yaml:"format"`

	// Delimiter is the CSV field separator.
	// Common values: "," (comma), "|" (pipe), "\t" or "tab", ";"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of a CSV file.
	// Supported values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// Sheet is the XLSX sheet to read.
	// Default: "" (the first sheet)
	Sheet string `yaml:"sheet"`

	// NAValues lists the cell values that load as missing.
	// Default: ["", "NA"]
	NAValues []string `yaml:"na_values"`
}

// Columns names the header of each column the pipeline needs.
type Columns struct {
	Book   string `yaml:"book"`
	Review string `yaml:"review"`
	State  string `yaml:"state"`
	Price  string `yaml:"price"`
}

// ReviewSettings defines how review categories become scores.
type ReviewSettings struct {
	// Scale maps each review category to its ordinal score.
	// Default: Poor=1, Fair=2, Good=3, Great=4, Excellent=5
	Scale map[string]int `yaml:"scale"`

	// HighThreshold is the minimum score counted as a high review.
	// Default: 4
	HighThreshold int `yaml:"high_threshold"`
}

// ReportSettings controls the final report.
type ReportSettings struct {
	// Format is one of "text", "csv", "xml", "xlsx".
	// Default: "text"
	Format string `yaml:"format"`

	// OutputDir is where report files are written.
	// Default: "" (the report is printed to stdout)
	OutputDir string `yaml:"output_dir"`

	// FileNameFormat names report files written to OutputDir.
	// Placeholders:
	//   {dataset}   - base name of the input file without extension
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "{dataset}_report_{timestamp}"
	FileNameFormat string `yaml:"file_name_format"`

	// Top limits the report to the N best-selling books.
	// Default: 0 (all books)
	Top int `yaml:"top"`
}

// InspectSettings controls the diagnostic summary.
type InspectSettings struct {
	// MaxUnique limits how many unique values are listed per column.
	// Default: 20. Set a negative value to list all of them.
	MaxUnique int `yaml:"max_unique"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Review score bounds and the default high-review threshold.
const (
	MinReviewScore       = 1
	MaxReviewScore       = 5
	DefaultHighThreshold = 4
)

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// DefaultStates is the full-name lookup used when no states are configured.
func DefaultStates() map[string]string {
	return map[string]string{
		"California": "CA",
		"New York":   "NY",
		"Texas":      "TX",
		"Florida":    "FL",
	}
}

// DefaultScale is the review scale used when no scale is configured.
func DefaultScale() map[string]int {
	return map[string]int{
		"Poor":      1,
		"Fair":      2,
		"Good":      3,
		"Great":     4,
		"Excellent": 5,
	}
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Input.Delimiter == "" {
		cfg.Input.Delimiter = ","
	}
	if cfg.Input.Encoding == "" {
		cfg.Input.Encoding = "UTF-8"
	}
	if cfg.Input.NAValues == nil {
		cfg.Input.NAValues = []string{"", "NA"}
	}

	if cfg.Columns.Book == "" {
		cfg.Columns.Book = "book"
	}
	if cfg.Columns.Review == "" {
		cfg.Columns.Review = "review"
	}
	if cfg.Columns.State == "" {
		cfg.Columns.State = "state"
	}
	if cfg.Columns.Price == "" {
		cfg.Columns.Price = "price"
	}

	if len(cfg.States) == 0 {
		cfg.States = DefaultStates()
	}

	if len(cfg.Reviews.Scale) == 0 {
		cfg.Reviews.Scale = DefaultScale()
	}
	if cfg.Reviews.HighThreshold == 0 {
		cfg.Reviews.HighThreshold = DefaultHighThreshold
	}

	if cfg.Report.Format == "" {
		cfg.Report.Format = "text"
	}
	if cfg.Report.FileNameFormat == "" {
		cfg.Report.FileNameFormat = "{dataset}_report_{timestamp}"
	}

	if cfg.Inspect.MaxUnique == 0 {
		cfg.Inspect.MaxUnique = 20
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file. An empty path returns the
//     built-in defaults.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document into a Config, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

var postalCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// IsPostalCode reports whether s is shaped like a two-letter postal code.
func IsPostalCode(s string) bool {
	return postalCodePattern.MatchString(s)
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Input.Format) {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("%w: unsupported input format %q", ErrInvalidConfig, c.Input.Format)
	}

	for name, code := range c.States {
		if !IsPostalCode(code) {
			return fmt.Errorf("%w: state %q maps to %q, which is not a two-letter code", ErrInvalidConfig, name, code)
		}
	}

	for category, score := range c.Reviews.Scale {
		if score < MinReviewScore || score > MaxReviewScore {
			return fmt.Errorf("%w: review %q has score %d outside 1-5", ErrInvalidConfig, category, score)
		}
	}

	if c.Reviews.HighThreshold < MinReviewScore || c.Reviews.HighThreshold > MaxReviewScore {
		return fmt.Errorf("%w: high_threshold %d outside 1-5", ErrInvalidConfig, c.Reviews.HighThreshold)
	}

	switch c.Report.Format {
	case "text", "csv", "xml", "xlsx":
	default:
		return fmt.Errorf("%w: unsupported report format %q", ErrInvalidConfig, c.Report.Format)
	}

	if c.Report.Top < 0 {
		return fmt.Errorf("%w: report top must not be negative", ErrInvalidConfig)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}
