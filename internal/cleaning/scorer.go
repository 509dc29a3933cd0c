package cleaning

import "github.com/ginjaninja78/bookstats/internal/types"

// ReviewScorer turns review categories into ordinal scores and flags high
// reviews.
type ReviewScorer struct {
	scale     map[string]int
	threshold int
}

// NewReviewScorer creates a ReviewScorer.
//
// PARAMETERS:
//   - scale: category -> score, matched exactly ("Excellent" -> 5).
//   - threshold: the lowest score that counts as a high review.
func NewReviewScorer(scale map[string]int, threshold int) *ReviewScorer {
	table := make(map[string]int, len(scale))
	for category, score := range scale {
		table[category] = score
	}
	return &ReviewScorer{scale: table, threshold: threshold}
}

// Score returns the score for a review category. Unknown categories return
// (0, false).
func (s *ReviewScorer) Score(review string) (int, bool) {
	score, ok := s.scale[review]
	return score, ok
}

// IsHigh reports whether a score reaches the high-review threshold.
func (s *ReviewScorer) IsHigh(reviewNum int) bool {
	return reviewNum >= s.threshold
}

// Threshold returns the high-review threshold.
func (s *ReviewScorer) Threshold() int {
	return s.threshold
}

// ScoreStats counts what Apply did.
type ScoreStats struct {
	High     int
	Low      int
	Unmapped int

	// UnmappedValues lists distinct unknown categories in first-seen order.
	UnmappedValues []string
}

// Apply sets ReviewNum and IsHighReview on every record in place.
// A record with an unknown category gets ReviewNum 0 and is not high.
func (s *ReviewScorer) Apply(reviews []types.Review) ScoreStats {
	var stats ScoreStats
	seen := make(map[string]struct{})

	for i := range reviews {
		num, ok := s.Score(reviews[i].Review)
		reviews[i].ReviewNum = num
		reviews[i].IsHighReview = ok && s.IsHigh(num)

		switch {
		case !ok:
			stats.Unmapped++
			if _, dup := seen[reviews[i].Review]; !dup {
				seen[reviews[i].Review] = struct{}{}
				stats.UnmappedValues = append(stats.UnmappedValues, reviews[i].Review)
			}
		case reviews[i].IsHighReview:
			stats.High++
		default:
			stats.Low++
		}
	}

	return stats
}
