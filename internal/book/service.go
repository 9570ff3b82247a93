package book

import (
	"context"
	"errors"
	"strings"

	"booksearch/internal/platform/openlibrary"

	"go.uber.org/zap"
)

const DefaultMaxResults = 100

// LookupService finds books by author in the external catalog.
type LookupService struct {
	client     CatalogClient
	maxResults int
	logger     *zap.Logger
}

// NewLookupService creates a lookup service. A non-positive maxResults falls
// back to DefaultMaxResults.
func NewLookupService(client CatalogClient, maxResults int, logger *zap.Logger) *LookupService {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &LookupService{
		client:     client,
		maxResults: maxResults,
		logger:     logger.Named("lookup"),
	}
}

// SearchByAuthor returns the valid books of the first maxResults catalog
// documents, in catalog order. A blank author yields no books and no request.
// Failures are reported as *LookupError.
func (s *LookupService) SearchByAuthor(ctx context.Context, author string) ([]Book, error) {
	if strings.TrimSpace(author) == "" {
		s.logger.Warn("lookup skipped for blank author")
		return []Book{}, nil
	}

	res, err := s.client.SearchByAuthor(ctx, author)
	if err != nil {
		lookupErr := &LookupError{Kind: classify(err), Author: author, Err: err}
		s.logger.Error("catalog lookup failed",
			zap.String("author", author),
			zap.Stringer("kind", lookupErr.Kind),
			zap.Error(err),
		)
		return nil, lookupErr
	}

	docs := res.Docs
	if len(docs) > s.maxResults {
		docs = docs[:s.maxResults]
	}

	books := make([]Book, 0, len(docs))
	for _, doc := range docs {
		b := fromDoc(doc)
		if !b.Valid() {
			continue
		}
		books = append(books, b)
	}

	s.logger.Info("catalog lookup completed",
		zap.String("author", author),
		zap.Int("docs", len(res.Docs)),
		zap.Int("books", len(books)),
	)
	return books, nil
}

func fromDoc(doc openlibrary.Doc) Book {
	b := Book{
		Title:            doc.Title,
		Authors:          doc.AuthorName,
		FirstPublishYear: doc.FirstPublishYear,
		Publishers:       doc.Publisher,
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}
	if b.Publishers == nil {
		b.Publishers = []string{}
	}
	return b
}

func classify(err error) ErrorKind {
	if errors.Is(err, openlibrary.ErrDecode) {
		return KindMalformed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return KindTimeout
	}
	return KindUnavailable
}
