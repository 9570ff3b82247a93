package book

import (
	"fmt"
	"strconv"
	"strings"
)

// Display fallbacks used when a field is absent.
const (
	NoTitle       = "no title on record"
	NoAuthor      = "no author on record"
	NoPublishYear = "no publish year on record"
	NoPublisher   = "no publisher on record"
)

const listSeparator = ", "

// Book is a catalog entry built for a single lookup. It is never persisted.
type Book struct {
	Title            string
	Authors          []string
	FirstPublishYear *int
	Publishers       []string
}

// Valid reports whether the book carries a non-blank title or at least one author.
func (b Book) Valid() bool {
	return strings.TrimSpace(b.Title) != "" || len(b.Authors) > 0
}

func (b Book) DisplayTitle() string {
	if strings.TrimSpace(b.Title) == "" {
		return NoTitle
	}
	return b.Title
}

func (b Book) DisplayAuthors() string {
	if len(b.Authors) == 0 {
		return NoAuthor
	}
	return strings.Join(b.Authors, listSeparator)
}

func (b Book) DisplayFirstPublishYear() string {
	if b.FirstPublishYear == nil {
		return NoPublishYear
	}
	return strconv.Itoa(*b.FirstPublishYear)
}

func (b Book) DisplayPublishers() string {
	if len(b.Publishers) == 0 {
		return NoPublisher
	}
	return strings.Join(b.Publishers, listSeparator)
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%s)", b.DisplayTitle(), b.DisplayAuthors(), b.DisplayFirstPublishYear())
}

// View is the display form of a Book returned to clients.
type View struct {
	Title            string `json:"title"`
	Authors          string `json:"authors"`
	FirstPublishYear string `json:"first_publish_year"`
	Publishers       string `json:"publishers"`
}

func ToView(b Book) View {
	return View{
		Title:            b.DisplayTitle(),
		Authors:          b.DisplayAuthors(),
		FirstPublishYear: b.DisplayFirstPublishYear(),
		Publishers:       b.DisplayPublishers(),
	}
}

// ToViews never returns nil so an empty result encodes as [].
func ToViews(books []Book) []View {
	out := make([]View, 0, len(books))
	for _, b := range books {
		out = append(out, ToView(b))
	}
	return out
}

// FromView rebuilds a Book from its display form. Placeholders map back to
// empty values and list fields are split on commas.
func FromView(v View) Book {
	var b Book

	if v.Title != NoTitle {
		b.Title = v.Title
	}
	if v.Authors != NoAuthor {
		b.Authors = splitList(v.Authors)
	}
	if v.Publishers != NoPublisher {
		b.Publishers = splitList(v.Publishers)
	}
	if year, err := strconv.Atoi(strings.TrimSpace(v.FirstPublishYear)); err == nil {
		b.FirstPublishYear = &year
	}
	return b
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
