package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

const defaultQueryTimeout = 5 * time.Second

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Insert delegates to insert_search_history, which serialises concurrent
// callers for the same author with a transaction scoped advisory lock.
func (r *PostgresRepo) Insert(ctx context.Context, author string, now time.Time, window time.Duration) (bool, error) {
	const query = `SELECT insert_search_history($1, $2, $3)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var inserted bool
	if err := r.db.QueryRow(timeoutCtx, query, author, now.UTC(), int(window/time.Second)).Scan(&inserted); err != nil {
		return false, fmt.Errorf("insert search history: %w", err)
	}
	return inserted, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Record, error) {
	const query = `
		SELECT id, author_searched, search_date, created_at
		FROM search_history
		ORDER BY search_date DESC, id DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.AuthorSearched, &rec.SearchDate, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search history: %w", err)
		}
		out = append(out, normalize(rec))
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM search_history").Scan(&count)
	return count, err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Record, error) {
	const query = `
		SELECT id, author_searched, search_date, created_at
		FROM search_history
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec Record
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&rec.ID, &rec.AuthorSearched, &rec.SearchDate, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return normalize(rec), nil
}

func normalize(rec Record) Record {
	rec.SearchDate = rec.SearchDate.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec
}
