// =============================================================================
// Book Review Stats - Validation Engine
// =============================================================================
//
// This module checks the cleaned records before they are aggregated. The
// checks restate what the cleaning stages promise:
//   - every record has a review
//   - every state is a two-letter postal code
//   - every review was scored (review_num in 1..5)
//   - is_high_review agrees with review_num and the threshold
//
// ERROR HANDLING:
//   - Issues are collected, not returned one at a time
//   - Each issue carries the source row, field and offending value
//   - Issues are either errors (the record is wrong) or warnings (the record
//     is usable but something was not recognised)
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/types"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Severity classifies an Issue.
type Severity string

const (
	// SeverityError marks a record that breaks a cleaning guarantee.
	SeverityError Severity = "error"

	// SeverityWarning marks a record that is usable but was not fully
	// normalised.
	SeverityWarning Severity = "warning"
)

// Rule names, as reported in Issue.Rule.
const (
	RuleReviewRequired = "review_required"
	RulePostalCode     = "postal_code"
	RuleReviewScored   = "review_scored"
	RuleReviewRange    = "review_range"
	RuleHighReview     = "high_review"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity

	// Rule is the check that produced the issue.
	Rule string

	// Field is the record field the check looked at.
	Field string

	// Value is the offending value, as text.
	Value string

	// Message is a human-readable description.
	Message string

	// Row is the 1-based data row of the record in the input file.
	Row int
}

// Error implements the error interface.
func (i *Issue) Error() string {
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(string(i.Severity)),
		i.Row,
		i.Field,
		i.Message,
		i.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the results of validation.
type Result struct {
	// IsValid is false if any error was found, or if any warning was found
	// and warnings are treated as errors.
	IsValid bool

	// Issues contains every finding, errors and warnings, in row order.
	Issues []*Issue

	ErrorCount   int
	WarningCount int

	// RecordsValidated is the number of records checked.
	RecordsValidated int
}

// Errors returns only the issues with SeverityError.
func (r *Result) Errors() []*Issue {
	return r.filter(SeverityError)
}

// Warnings returns only the issues with SeverityWarning.
func (r *Result) Warnings() []*Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(severity Severity) []*Issue {
	var out []*Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options contains options for validation.
type Options struct {
	// HighThreshold is the lowest review_num that counts as a high review.
	// Default: 4
	HighThreshold int

	// StopOnFirstError stops validation after the first error.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors makes any warning fail the result.
	// Default: false
	TreatWarningsAsErrors bool
}

// DefaultOptions returns the default validation options.
func DefaultOptions() Options {
	return Options{
		HighThreshold: config.DefaultHighThreshold,
	}
}

// Validator checks cleaned records.
type Validator struct {
	options Options
}

// NewValidator creates a new Validator. A zero HighThreshold falls back to
// the default.
func NewValidator(options Options) *Validator {
	if options.HighThreshold == 0 {
		options.HighThreshold = config.DefaultHighThreshold
	}
	return &Validator{options: options}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks every record and returns the collected issues.
func (v *Validator) Validate(reviews []types.Review) *Result {
	result := &Result{
		IsValid:          true,
		RecordsValidated: len(reviews),
	}

	for i := range reviews {
		for _, issue := range v.ValidateReview(&reviews[i]) {
			result.Issues = append(result.Issues, issue)

			if issue.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false

				if v.options.StopOnFirstError {
					return result
				}
			} else {
				result.WarningCount++

				if v.options.TreatWarningsAsErrors {
					result.IsValid = false
				}
			}
		}
	}

	return result
}

// ValidateReview checks a single record.
func (v *Validator) ValidateReview(r *types.Review) []*Issue {
	var issues []*Issue

	// =========================================================================
	// REQUIRED REVIEW
	// =========================================================================
	// Missing reviews must have been dropped; nothing else is checked for a
	// record without one.

	if !r.HasReview() {
		return append(issues, &Issue{
			Severity: SeverityError,
			Rule:     RuleReviewRequired,
			Field:    "review",
			Message:  "Review is missing",
			Row:      r.Row,
		})
	}

	// =========================================================================
	// STATE CODE
	// =========================================================================

	if !config.IsPostalCode(r.State) {
		issues = append(issues, &Issue{
			Severity: SeverityWarning,
			Rule:     RulePostalCode,
			Field:    "state",
			Value:    r.State,
			Message:  "State is not a two-letter postal code",
			Row:      r.Row,
		})
	}

	// =========================================================================
	// REVIEW SCORE
	// =========================================================================

	switch {
	case r.ReviewNum == 0:
		issues = append(issues, &Issue{
			Severity: SeverityWarning,
			Rule:     RuleReviewScored,
			Field:    "review",
			Value:    r.Review,
			Message:  "Review category has no score",
			Row:      r.Row,
		})
	case r.ReviewNum < config.MinReviewScore || r.ReviewNum > config.MaxReviewScore:
		issues = append(issues, &Issue{
			Severity: SeverityError,
			Rule:     RuleReviewRange,
			Field:    "review_num",
			Value:    strconv.Itoa(r.ReviewNum),
			Message: fmt.Sprintf("Review score must be between %d and %d",
				config.MinReviewScore, config.MaxReviewScore),
			Row: r.Row,
		})
	}

	// =========================================================================
	// HIGH REVIEW FLAG
	// =========================================================================

	if want := r.ReviewNum >= v.options.HighThreshold; r.IsHighReview != want {
		issues = append(issues, &Issue{
			Severity: SeverityError,
			Rule:     RuleHighReview,
			Field:    "is_high_review",
			Value:    strconv.FormatBool(r.IsHighReview),
			Message: fmt.Sprintf("is_high_review must be %t for review score %d (threshold %d)",
				want, r.ReviewNum, v.options.HighThreshold),
			Row: r.Row,
		})
	}

	return issues
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FormatIssues formats issues for display.
//
// PARAMETERS:
//   - issues: The issues to format.
//   - limit: The maximum number of issues listed (<= 0 lists all).
//
// RETURNS:
//   - A formatted string containing the issues.
func FormatIssues(issues []*Issue, limit int) string {
	if len(issues) == 0 {
		return "No validation issues."
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "Validation completed with %d issue(s):\n", len(issues))

	for i, issue := range issues {
		if limit > 0 && i == limit {
			fmt.Fprintf(&builder, "... (%d more)\n", len(issues)-limit)
			break
		}
		fmt.Fprintf(&builder, "%d. %s\n", i+1, issue.Error())
	}

	return builder.String()
}
