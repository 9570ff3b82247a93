package history

import (
	"errors"
	"time"
)

// DedupWindow is how long a search for the same author is suppressed after it
// has been recorded.
const DedupWindow = 60 * time.Second

// MaxAuthorLength bounds AuthorSearched, in characters.
const MaxAuthorLength = 255

const displayDateLayout = "02/01/2006 15:04:05"

var ErrNotFound = errors.New("search history record not found")

// Record is one persisted search. Records are append-only.
type Record struct {
	ID             int64
	AuthorSearched string
	SearchDate     time.Time
	CreatedAt      time.Time
}

// View is the client facing form of a Record.
type View struct {
	ID                  int64     `json:"id"`
	AuthorSearched      string    `json:"author_searched"`
	SearchDate          time.Time `json:"search_date"`
	FormattedSearchDate string    `json:"formatted_search_date"`
}

func ToView(r Record) View {
	return View{
		ID:                  r.ID,
		AuthorSearched:      r.AuthorSearched,
		SearchDate:          r.SearchDate,
		FormattedSearchDate: r.SearchDate.UTC().Format(displayDateLayout),
	}
}

func ToViews(records []Record) []View {
	out := make([]View, 0, len(records))
	for _, r := range records {
		out = append(out, ToView(r))
	}
	return out
}
