package search

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booksearch/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(books *mockBookLookup, hist *mockHistory) *HTTPHandler {
	return NewHTTPHandler(NewService(books, hist, zap.NewNop()))
}

func TestHTTPHandler_Search(t *testing.T) {
	books := new(mockBookLookup)
	hist := new(mockHistory)
	handler := newTestHandler(books, hist)

	hist.On("Insert", mock.Anything, mock.Anything).Return(true)
	books.On("SearchByAuthor", mock.Anything, "Herbert").
		Return([]book.Book{{Title: "Dune", Authors: []string{"Frank Herbert"}}}, nil)
	books.On("SearchByAuthor", mock.Anything, "Offline").
		Return(nil, &book.LookupError{Kind: book.KindUnavailable, Author: "Offline", Err: errors.New("dial tcp")})
	books.On("SearchByAuthor", mock.Anything, "Broken").
		Return(nil, errors.New("boom"))

	tests := []struct {
		name    string
		body    string
		status  int
		success bool
		message string
	}{
		{"success", `{"author":"Herbert"}`, http.StatusOK, true, "found 1 books for author 'Herbert'"},
		{"blank author", `{"author":"   "}`, http.StatusUnprocessableEntity, false, "author is required"},
		{"lookup failure", `{"author":"Offline"}`, http.StatusBadGateway, false, "could not reach book catalog"},
		{"unexpected failure", `{"author":"Broken"}`, http.StatusInternalServerError, false, "unexpected error during search, try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Search(w, httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.success, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotNil(t, resp.Books)
		})
	}
}

func TestHTTPHandler_SearchMalformedBody(t *testing.T) {
	books := new(mockBookLookup)
	hist := new(mockHistory)
	handler := newTestHandler(books, hist)

	for _, body := range []string{"", "{not json", `{"author": 42}`} {
		w := httptest.NewRecorder()
		handler.Search(w, httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	}
	hist.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestHTTPHandler_SearchQuery(t *testing.T) {
	books := new(mockBookLookup)
	hist := new(mockHistory)
	handler := newTestHandler(books, hist)

	hist.On("Insert", mock.Anything, "Ursula K. Le Guin").Return(true).Once()
	books.On("SearchByAuthor", mock.Anything, "Ursula K. Le Guin").Return([]book.Book{}, nil).Once()

	w := httptest.NewRecorder()
	handler.SearchQuery(w, httptest.NewRequest(http.MethodGet, "/v1/search?author=Ursula+K.+Le+Guin", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "no books found for author 'Ursula K. Le Guin'", resp.Message)
	assert.Equal(t, "Ursula K. Le Guin", resp.SearchedAuthor)
}
