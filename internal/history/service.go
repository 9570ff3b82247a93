package history

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Service records and reads search history. Storage failures never reach the
// caller: they are logged and degrade to "not recorded", "empty" or "not found".
type Service struct {
	repo   Repository
	clock  Clock
	logger *zap.Logger
}

func NewService(repo Repository, clock Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = UTCClock{}
	}
	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger.Named("history"),
	}
}

// Insert records a search for author. It returns false when the search was
// suppressed by the dedup window, when author is blank, or when storage failed.
func (s *Service) Insert(ctx context.Context, author string) bool {
	author = strings.TrimSpace(author)
	if author == "" {
		s.logger.Warn("refusing to record blank author")
		return false
	}

	now := s.clock.Now().UTC()
	inserted, err := s.repo.Insert(ctx, author, now, DedupWindow)
	if err != nil {
		s.logger.Error("insert search history", zap.String("author", author), zap.Error(err))
		return false
	}
	if !inserted {
		s.logger.Debug("search history insert suppressed by dedup window", zap.String("author", author))
	}
	return inserted
}

// ListAll returns every record, most recent first. It never returns nil.
func (s *Service) ListAll(ctx context.Context) []Record {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list search history", zap.Error(err))
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

func (s *Service) Count(ctx context.Context) int {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("count search history", zap.Error(err))
		return 0
	}
	return n
}

// GetByID looks up a single record. Non-positive ids are never looked up.
func (s *Service) GetByID(ctx context.Context, id int64) (Record, bool) {
	if id <= 0 {
		s.logger.Warn("invalid search history id", zap.Int64("id", id))
		return Record{}, false
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("search history record not found", zap.Int64("id", id))
		} else {
			s.logger.Error("get search history", zap.Int64("id", id), zap.Error(err))
		}
		return Record{}, false
	}
	return rec, true
}
