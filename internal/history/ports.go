package history

import (
	"context"
	"time"
)

// Repository defines the contract for search history storage.
type Repository interface {
	// Insert atomically creates a record for author dated now, unless a record
	// for the same author has a search date within window before now. It
	// reports whether a record was created.
	Insert(ctx context.Context, author string, now time.Time, window time.Duration) (bool, error)
	// List returns every record, most recent search first.
	List(ctx context.Context) ([]Record, error)
	Count(ctx context.Context) (int, error)
	// GetByID returns ErrNotFound when no record has the given id.
	GetByID(ctx context.Context, id int64) (Record, error)
}
