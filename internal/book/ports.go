package book

import (
	"context"

	"booksearch/internal/platform/openlibrary"
)

// CatalogClient is the raw search client the lookup service maps from.
type CatalogClient interface {
	SearchByAuthor(ctx context.Context, author string) (*openlibrary.SearchResponse, error)
}
