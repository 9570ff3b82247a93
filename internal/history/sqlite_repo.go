package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dates are stored as fixed width UTC text so that string comparison in SQL
// orders the same way as time.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepo stores history in SQLite. The handle must be limited to a single
// open connection so that the conditional insert cannot interleave.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

func (r *SQLiteRepo) Insert(ctx context.Context, author string, now time.Time, window time.Duration) (bool, error) {
	const query = `
		INSERT INTO search_history (author_searched, search_date, created_at)
		SELECT ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM search_history
			WHERE author_searched = ? AND search_date > ?
		)`

	stamp := formatTime(now)
	res, err := r.db.ExecContext(ctx, query, author, stamp, stamp, author, formatTime(now.Add(-window)))
	if err != nil {
		return false, fmt.Errorf("insert search history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert search history: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepo) List(ctx context.Context) ([]Record, error) {
	const query = `
		SELECT id, author_searched, search_date, created_at
		FROM search_history
		ORDER BY search_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []Record{}
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read search history: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM search_history").Scan(&count)
	return count, err
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (Record, error) {
	const query = `
		SELECT id, author_searched, search_date, created_at
		FROM search_history
		WHERE id = ?`

	rec, err := scanSQLiteRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (Record, error) {
	var (
		rec                   Record
		searchDate, createdAt string
	)
	if err := row.Scan(&rec.ID, &rec.AuthorSearched, &searchDate, &createdAt); err != nil {
		return Record{}, err
	}

	var err error
	if rec.SearchDate, err = parseTime(searchDate); err != nil {
		return Record{}, fmt.Errorf("parse search_date of record %d: %w", rec.ID, err)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return Record{}, fmt.Errorf("parse created_at of record %d: %w", rec.ID, err)
	}
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
