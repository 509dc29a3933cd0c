package sqlview

import (
	"context"
	"math"
	"testing"

	"github.com/ginjaninja78/bookstats/internal/aggregate"
	"github.com/ginjaninja78/bookstats/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReviews() []types.Review {
	return []types.Review{
		{Row: 1, Book: "R Basics", State: "CA", Price: 19.99, Review: "Excellent", ReviewNum: 5, IsHighReview: true},
		{Row: 3, Book: "Fundamentals of R", State: "TX", Price: 25.5, Review: "Good", ReviewNum: 3},
		{Row: 4, Book: "R Basics", State: "NY", Price: math.NaN(), Review: "Great", ReviewNum: 4, IsHighReview: true},
		{Row: 5, Book: "Zen of R", State: "FL", Price: 10, Review: "Poor", ReviewNum: 1},
		{Row: 6, Book: "Fundamentals of R", State: "Oregon", Price: 25.5, Review: "Fair", ReviewNum: 2},
	}
}

func openView(t *testing.T, reviews []types.Review) *View {
	t.Helper()
	v, err := Open(context.Background(), reviews)
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })
	return v
}

func TestCountByBook_MatchesAggregate(t *testing.T) {
	reviews := sampleReviews()
	v := openView(t, reviews)

	got, err := v.CountByBook(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(aggregate.CountByBook(reviews), got); diff != "" {
		t.Errorf("CountByBook() mismatch (-aggregate +sql):\n%s", diff)
	}
}

func TestCountByBook_Empty(t *testing.T) {
	v := openView(t, nil)

	got, err := v.CountByBook(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery(t *testing.T) {
	v := openView(t, sampleReviews())

	rows, err := v.Query(context.Background(),
		`SELECT "row", book, price, is_high_review FROM reviews WHERE state = ? ORDER BY "row"`, "NY")
	require.NoError(t, err)

	assert.Equal(t, []string{"row", "book", "price", "is_high_review"}, rows.Columns)
	assert.Equal(t, [][]string{{"4", "R Basics", NullValue, "1"}}, rows.Values)
}

func TestQuery_Aggregates(t *testing.T) {
	v := openView(t, sampleReviews())

	rows, err := v.Query(context.Background(),
		`SELECT COUNT(*) AS n, SUM(is_high_review) AS high, AVG(review_num) AS avg_score FROM reviews`)
	require.NoError(t, err)

	require.Len(t, rows.Values, 1)
	assert.Equal(t, []string{"5", "2", "3"}, rows.Values[0])
}

func TestQuery_InvalidSQL(t *testing.T) {
	v := openView(t, sampleReviews())

	_, err := v.Query(context.Background(), `SELECT nope FROM missing`)
	assert.Error(t, err)
}

func TestOpen_DuplicateRowFails(t *testing.T) {
	reviews := []types.Review{
		{Row: 1, Book: "A", State: "CA", Review: "Good", ReviewNum: 3},
		{Row: 1, Book: "B", State: "CA", Review: "Good", ReviewNum: 3},
	}

	_, err := Open(context.Background(), reviews)
	assert.Error(t, err)
}
