package cleaning

import (
	"github.com/ginjaninja78/bookstats/internal/config"
	"github.com/ginjaninja78/bookstats/internal/types"
)

// StateNormalizer rewrites full US state names as two-letter postal codes.
//
// Matching is an exact lookup: a value that is not a key of the table is
// returned unchanged. That covers values which are already postal codes as
// well as anything unrecognised; neither is an error.
type StateNormalizer struct {
	lookup map[string]string
}

// NewStateNormalizer creates a StateNormalizer from a name -> code table.
func NewStateNormalizer(lookup map[string]string) *StateNormalizer {
	table := make(map[string]string, len(lookup))
	for name, code := range lookup {
		table[name] = code
	}
	return &StateNormalizer{lookup: table}
}

// Normalize returns the postal code for state, or state itself when it is not
// in the lookup table. The bool reports whether a mapping was applied.
func (n *StateNormalizer) Normalize(state string) (string, bool) {
	if code, ok := n.lookup[state]; ok {
		return code, true
	}
	return state, false
}

// NormalizeStats counts what Apply did.
type NormalizeStats struct {
	// Mapped is the number of full names replaced by a code.
	Mapped int

	// AlreadyCoded is the number of values left as they were because they
	// already look like a postal code.
	AlreadyCoded int

	// Unrecognized lists, in first-seen order, the distinct values that were
	// neither in the lookup table nor shaped like a postal code.
	Unrecognized []string

	// UnrecognizedRows is the number of records carrying such a value.
	UnrecognizedRows int
}

// Apply normalizes the state of every record in place.
func (n *StateNormalizer) Apply(reviews []types.Review) NormalizeStats {
	var stats NormalizeStats
	seen := make(map[string]struct{})

	for i := range reviews {
		code, mapped := n.Normalize(reviews[i].State)
		reviews[i].State = code

		switch {
		case mapped:
			stats.Mapped++
		case config.IsPostalCode(code):
			stats.AlreadyCoded++
		default:
			stats.UnrecognizedRows++
			if _, ok := seen[code]; !ok {
				seen[code] = struct{}{}
				stats.Unrecognized = append(stats.Unrecognized, code)
			}
		}
	}

	return stats
}
