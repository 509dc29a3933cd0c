// Package sqlview exposes cleaned reviews to ad-hoc SQL.
//
// The records are loaded into a private in-memory SQLite database that lives
// as long as the View. Nothing is written to disk.
package sqlview

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ginjaninja78/bookstats/internal/types"

	_ "modernc.org/sqlite"
)

// TableName is the name of the table holding the reviews.
const TableName = "reviews"

// NullValue is how SQL NULL is rendered in Rows.
const NullValue = "NULL"

const createTable = `CREATE TABLE reviews (
	"row"          INTEGER PRIMARY KEY,
	book           TEXT NOT NULL,
	state          TEXT NOT NULL,
	price          REAL,
	review         TEXT NOT NULL,
	review_num     INTEGER NOT NULL,
	is_high_review INTEGER NOT NULL
)`

const insertReview = `INSERT INTO reviews
	("row", book, state, price, review, review_num, is_high_review)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// View is an in-memory SQL database over a set of reviews.
type View struct {
	db *sql.DB
}

// Open creates the database and loads reviews into it.
func Open(ctx context.Context, reviews []types.Review) (*View, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Each connection to ":memory:" gets its own database.
	db.SetMaxOpenConns(1)

	v := &View{db: db}
	if err := v.load(ctx, reviews); err != nil {
		db.Close()
		return nil, err
	}
	return v, nil
}

func (v *View) load(ctx context.Context, reviews []types.Review) error {
	if _, err := v.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertReview)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reviews {
		var price any
		if r.HasPrice() {
			price = r.Price
		}

		high := 0
		if r.IsHighReview {
			high = 1
		}

		if _, err := stmt.ExecContext(ctx, r.Row, r.Book, r.State, price, r.Review, r.ReviewNum, high); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", r.Row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

// Close discards the database.
func (v *View) Close() error {
	return v.db.Close()
}

// Rows is a fully read query result.
type Rows struct {
	Columns []string
	Values  [][]string
}

// Query runs a statement and reads every row, rendering each cell as text.
func (v *View) Query(ctx context.Context, query string, args ...any) (*Rows, error) {
	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &Rows{Columns: cols}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		cells := make([]string, len(cols))
		for i, val := range values {
			cells[i] = formatValue(val)
		}
		result.Values = append(result.Values, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return result, nil
}

// CountByBook runs the book aggregation in SQL. The order matches
// aggregate.CountByBook.
func (v *View) CountByBook(ctx context.Context) ([]types.BookCount, error) {
	rows, err := v.db.QueryContext(ctx, `SELECT book, COUNT(*) AS purchases
		FROM reviews
		GROUP BY book
		ORDER BY purchases DESC, book ASC`)
	if err != nil {
		return nil, fmt.Errorf("count by book failed: %w", err)
	}
	defer rows.Close()

	var counts []types.BookCount
	for rows.Next() {
		var c types.BookCount
		if err := rows.Scan(&c.Book, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return NullValue
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
