package validation

import (
	"testing"

	"github.com/ginjaninja78/bookstats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clean(row int, state, review string, num int) types.Review {
	return types.Review{
		Row:          row,
		Book:         "R Basics",
		State:        state,
		Review:       review,
		ReviewNum:    num,
		IsHighReview: num >= 4,
	}
}

func TestValidate_CleanRecords(t *testing.T) {
	reviews := []types.Review{
		clean(1, "CA", "Excellent", 5),
		clean(2, "TX", "Poor", 1),
		clean(3, "NY", "Great", 4),
	}

	result := NewValidator(DefaultOptions()).Validate(reviews)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 3, result.RecordsValidated)
}

func TestValidateReview(t *testing.T) {
	v := NewValidator(DefaultOptions())

	tests := []struct {
		name     string
		review   types.Review
		rules    []string
		severity Severity
	}{
		{
			name:     "missing review",
			review:   types.Review{Row: 7, State: "CA"},
			rules:    []string{RuleReviewRequired},
			severity: SeverityError,
		},
		{
			name:     "unrecognised state",
			review:   clean(2, "Oregon", "Good", 3),
			rules:    []string{RulePostalCode},
			severity: SeverityWarning,
		},
		{
			name:     "unscored review",
			review:   clean(3, "CA", "Superb", 0),
			rules:    []string{RuleReviewScored},
			severity: SeverityWarning,
		},
		{
			name:     "score out of range",
			review:   types.Review{Row: 4, State: "CA", Review: "Good", ReviewNum: 9, IsHighReview: true},
			rules:    []string{RuleReviewRange},
			severity: SeverityError,
		},
		{
			name:     "flag disagrees with score",
			review:   types.Review{Row: 5, State: "CA", Review: "Good", ReviewNum: 3, IsHighReview: true},
			rules:    []string{RuleHighReview},
			severity: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.ValidateReview(&tt.review)

			require.Len(t, issues, len(tt.rules))
			for i, rule := range tt.rules {
				assert.Equal(t, rule, issues[i].Rule)
				assert.Equal(t, tt.severity, issues[i].Severity)
				assert.Equal(t, tt.review.Row, issues[i].Row)
			}
		})
	}
}

func TestValidate_WarningsKeepResultValid(t *testing.T) {
	reviews := []types.Review{
		clean(1, "CA", "Excellent", 5),
		clean(2, "Oregon", "Good", 3),
	}

	result := NewValidator(DefaultOptions()).Validate(reviews)

	assert.True(t, result.IsValid)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	require.Len(t, result.Warnings(), 1)
	assert.Equal(t, "Oregon", result.Warnings()[0].Value)
	assert.Empty(t, result.Errors())
}

func TestValidate_TreatWarningsAsErrors(t *testing.T) {
	reviews := []types.Review{clean(1, "Oregon", "Good", 3)}

	opts := DefaultOptions()
	opts.TreatWarningsAsErrors = true
	result := NewValidator(opts).Validate(reviews)

	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, 0, result.ErrorCount)
}

func TestValidate_StopOnFirstError(t *testing.T) {
	reviews := []types.Review{
		{Row: 1},
		{Row: 2},
		clean(3, "CA", "Good", 3),
	}

	opts := DefaultOptions()
	opts.StopOnFirstError = true
	result := NewValidator(opts).Validate(reviews)

	assert.False(t, result.IsValid)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, 1, result.Issues[0].Row)
}

func TestNewValidator_ThresholdFallsBackToDefault(t *testing.T) {
	v := NewValidator(Options{})

	issues := v.ValidateReview(&types.Review{Row: 1, State: "CA", Review: "Great", ReviewNum: 4, IsHighReview: true})

	assert.Empty(t, issues)
}

func TestValidate_CustomThreshold(t *testing.T) {
	v := NewValidator(Options{HighThreshold: 5})

	issues := v.ValidateReview(&types.Review{Row: 1, State: "CA", Review: "Great", ReviewNum: 4, IsHighReview: true})

	require.Len(t, issues, 1)
	assert.Equal(t, RuleHighReview, issues[0].Rule)
}

func TestIssue_Error(t *testing.T) {
	issue := &Issue{
		Severity: SeverityWarning,
		Field:    "state",
		Value:    "Oregon",
		Message:  "State is not a two-letter postal code",
		Row:      12,
	}

	assert.Equal(t,
		"[WARNING] Row 12, Field 'state': State is not a two-letter postal code (value: 'Oregon')",
		issue.Error())
}

func TestFormatIssues(t *testing.T) {
	assert.Equal(t, "No validation issues.", FormatIssues(nil, 0))

	issues := []*Issue{
		{Severity: SeverityError, Row: 1, Field: "review", Message: "Review is missing"},
		{Severity: SeverityWarning, Row: 2, Field: "state", Value: "Oregon", Message: "x"},
		{Severity: SeverityWarning, Row: 3, Field: "state", Value: "Utah", Message: "x"},
	}

	all := FormatIssues(issues, 0)
	assert.Contains(t, all, "Validation completed with 3 issue(s):")
	assert.Contains(t, all, "3. [WARNING] Row 3")

	limited := FormatIssues(issues, 2)
	assert.Contains(t, limited, "2. [WARNING] Row 2")
	assert.NotContains(t, limited, "Row 3")
	assert.Contains(t, limited, "... (1 more)")
}
