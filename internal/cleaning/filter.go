// =============================================================================
// Book Review Stats - Cleaning Stages
// =============================================================================
//
// This package holds the record-level cleaning stages of the pipeline:
//   - filter.go     : drops rows with a missing review
//   - normalizer.go : maps full state names to postal codes
//   - scorer.go     : derives review_num and is_high_review
//
// Stages work on a []types.Review in place (or return a filtered slice) and
// report what they changed as plain counters, so the pipeline can log and
// summarise each step.
//
// =============================================================================

package cleaning

import "github.com/ginjaninja78/bookstats/internal/types"

// DropMissingReviews removes records whose review is missing.
//
// RETURNS:
//   - The kept records, in their original order.
//   - The number of records removed (0 when nothing was missing).
//
// Missing reviews are dropped, never imputed.
func DropMissingReviews(reviews []types.Review) ([]types.Review, int) {
	kept := make([]types.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.HasReview() {
			kept = append(kept, r)
		}
	}
	return kept, len(reviews) - len(kept)
}
