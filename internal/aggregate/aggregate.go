// Package aggregate groups cleaned reviews by book and ranks the groups.
//
// Each cleaned record stands for one purchase, so the number of records for
// a book is its purchase count.
package aggregate

import (
	"sort"

	"github.com/ginjaninja78/bookstats/internal/types"
)

// CountByBook counts records per book.
//
// The result is ordered by count descending, then by book name ascending, so
// the same input always produces the same order.
func CountByBook(reviews []types.Review) []types.BookCount {
	index := make(map[string]int)
	var counts []types.BookCount

	for _, r := range reviews {
		i, ok := index[r.Book]
		if !ok {
			i = len(counts)
			index[r.Book] = i
			counts = append(counts, types.BookCount{Book: r.Book})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(a, b int) bool {
		if counts[a].Count != counts[b].Count {
			return counts[a].Count > counts[b].Count
		}
		return counts[a].Book < counts[b].Book
	})

	return counts
}

// Total sums the group counts. For the output of CountByBook it equals the
// number of records that were grouped.
func Total(counts []types.BookCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// Top returns the first n groups. n <= 0 returns all of them.
func Top(counts []types.BookCount, n int) []types.BookCount {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

// BestSeller returns the first group, or false when there are none.
func BestSeller(counts []types.BookCount) (types.BookCount, bool) {
	if len(counts) == 0 {
		return types.BookCount{}, false
	}
	return counts[0], true
}
