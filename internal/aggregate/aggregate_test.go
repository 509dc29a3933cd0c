package aggregate

import (
	"testing"

	"github.com/ginjaninja78/bookstats/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func reviewsFor(books ...string) []types.Review {
	reviews := make([]types.Review, len(books))
	for i, b := range books {
		reviews[i] = types.Review{Row: i + 1, Book: b, Review: "Good"}
	}
	return reviews
}

func TestCountByBook(t *testing.T) {
	reviews := reviewsFor(
		"Fundamentals of R", "R Basics", "R Basics",
		"Secrets Of R For Advanced Students", "R Basics", "Fundamentals of R",
	)

	got := CountByBook(reviews)

	want := []types.BookCount{
		{Book: "R Basics", Count: 3},
		{Book: "Fundamentals of R", Count: 2},
		{Book: "Secrets Of R For Advanced Students", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CountByBook() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(reviews), Total(got))
}

func TestCountByBook_TiesOrderedByName(t *testing.T) {
	got := CountByBook(reviewsFor("Zeta", "Alpha", "Mid", "Zeta", "Alpha", "Mid"))

	want := []types.BookCount{
		{Book: "Alpha", Count: 2},
		{Book: "Mid", Count: 2},
		{Book: "Zeta", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CountByBook() mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByBook_Empty(t *testing.T) {
	got := CountByBook(nil)

	assert.Empty(t, got)
	assert.Equal(t, 0, Total(got))

	_, ok := BestSeller(got)
	assert.False(t, ok)
}

func TestTop(t *testing.T) {
	counts := []types.BookCount{{Book: "A", Count: 3}, {Book: "B", Count: 2}, {Book: "C", Count: 1}}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero means all", 0, 3},
		{"negative means all", -1, 3},
		{"fewer", 2, 2},
		{"more than available", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Top(counts, tt.n)
			assert.Len(t, got, tt.want)
			assert.Equal(t, counts[:tt.want], got)
		})
	}
}

func TestBestSeller(t *testing.T) {
	best, ok := BestSeller(CountByBook(reviewsFor("B", "A", "B")))

	assert.True(t, ok)
	assert.Equal(t, types.BookCount{Book: "B", Count: 2}, best)
}
