package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"booksearch/internal/book"

	"go.uber.org/zap"
)

const msgUnexpected = "unexpected error during search, try again"

type BookLookup interface {
	SearchByAuthor(ctx context.Context, author string) ([]book.Book, error)
}

type HistoryRecorder interface {
	Insert(ctx context.Context, author string) bool
}

// Service runs one search: validate, record the attempt, then look up books.
type Service struct {
	books   BookLookup
	history HistoryRecorder
	logger  *zap.Logger
}

func NewService(books BookLookup, history HistoryRecorder, logger *zap.Logger) *Service {
	return &Service{
		books:   books,
		history: history,
		logger:  logger.Named("search"),
	}
}

// Execute never returns an error; every outcome is described by the Response.
func (s *Service) Execute(ctx context.Context, req Request) Response {
	author := strings.TrimSpace(req.Author)
	if msg := validateRequest(Request{Author: author}); msg != "" {
		s.logger.Info("rejected search request", zap.String("reason", msg))
		return failed(FailureValidation, msg, author)
	}

	s.logger.Info("searching books", zap.String("author", author))

	if s.record(ctx, author) {
		s.logger.Debug("search recorded in history", zap.String("author", author))
	} else {
		s.logger.Debug("search not recorded in history", zap.String("author", author))
	}

	books, err := s.lookup(ctx, author)
	if err != nil {
		var lookupErr *book.LookupError
		if errors.As(err, &lookupErr) {
			s.logger.Warn("book lookup failed",
				zap.String("author", author),
				zap.Stringer("kind", lookupErr.Kind),
				zap.Error(err),
			)
			return failed(FailureLookup, lookupErr.Message(), author)
		}
		s.logger.Error("unexpected search failure", zap.String("author", author), zap.Error(err))
		return failed(FailureInternal, msgUnexpected, author)
	}

	message := fmt.Sprintf("no books found for author '%s'", author)
	if len(books) > 0 {
		message = fmt.Sprintf("found %d books for author '%s'", len(books), author)
	}

	return Response{
		Success:        true,
		Message:        message,
		Books:          book.ToViews(books),
		TotalResults:   len(books),
		SearchedAuthor: author,
	}
}

// record stores the attempt. History is best effort: a panic in the store is
// logged and reported as not recorded.
func (s *Service) record(ctx context.Context, author string) (inserted bool) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("panic while recording search", zap.String("author", author), zap.Any("panic", p))
			inserted = false
		}
	}()
	return s.history.Insert(ctx, author)
}

func (s *Service) lookup(ctx context.Context, author string) (books []book.Book, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during book lookup: %v", p)
		}
	}()
	return s.books.SearchByAuthor(ctx, author)
}
