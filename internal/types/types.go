// =============================================================================
// Book Review Stats - Shared Types
// =============================================================================
//
// This package contains the record types shared by the pipeline stages so
// that cleaning, aggregation, validation and reporting can exchange data
// without importing each other. Types defined here are used by:
//   - loader
//   - cleaning
//   - aggregate
//   - validation
//   - report
//   - sqlview
//
// =============================================================================

package types

import "math"

// =============================================================================
// REVIEW RECORD
// =============================================================================

// Review is a single purchase review read from the source dataset.
// The derived fields are zero until the review transformer has run.
type Review struct {
	// Row is the 1-based data row number in the source file (header excluded).
	// Useful for diagnostics and validation messages.
	Row int

	// Book is the purchased textbook title.
	Book string

	// State is the purchaser's US state. Before normalization it may be a full
	// name ("California") or a postal code ("CA").
	State string

	// Price is the purchase price. NaN when the source cell was missing.
	Price float64

	// Review is the qualitative rating ("Poor" .. "Excellent").
	// An empty string means the review was missing in the source.
	Review string

	// ReviewNum is the ordinal score 1-5 derived from Review.
	// 0 means the review category was not recognised.
	ReviewNum int

	// IsHighReview is true when ReviewNum reaches the high-review threshold.
	IsHighReview bool
}

// HasReview reports whether the review field is present.
func (r Review) HasReview() bool {
	return r.Review != ""
}

// HasPrice reports whether the price field is present.
func (r Review) HasPrice() bool {
	return !math.IsNaN(r.Price)
}

// =============================================================================
// AGGREGATED VIEW
// =============================================================================

// BookCount is one line of the final report: a book and its purchase count.
type BookCount struct {
	Book  string
	Count int
}
