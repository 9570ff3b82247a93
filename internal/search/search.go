package search

import "booksearch/internal/book"

// Failure tells the transport layer why a search did not succeed.
type Failure int

const (
	FailureNone Failure = iota
	FailureValidation
	FailureLookup
	FailureInternal
)

type Request struct {
	Author string `json:"author" validate:"required,min=1,max=255"`
}

// Response is returned for every search, successful or not.
type Response struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message"`
	Books          []book.View `json:"books"`
	TotalResults   int         `json:"total_results"`
	SearchedAuthor string      `json:"searched_author"`

	Failure Failure `json:"-"`
}

func failed(kind Failure, message, author string) Response {
	return Response{
		Message:        message,
		Books:          []book.View{},
		SearchedAuthor: author,
		Failure:        kind,
	}
}
