package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// TolkienResponse is a catalog answer with one complete document and one
// empty document that lookups must drop.
const TolkienResponse = `{"numFound":2,"start":0,"numFoundExact":true,"docs":[
	{"title":"The Hobbit","author_name":["J.R.R. Tolkien"],"first_publish_year":1937,"publisher":["Allen & Unwin"]},
	{}
]}`

// EmptyResponse is a catalog answer without documents.
const EmptyResponse = `{"numFound":0,"start":0,"numFoundExact":true,"docs":[]}`

// Catalog is a fake Open Library search endpoint.
type Catalog struct {
	*httptest.Server
	calls atomic.Int32
}

// NewCatalog serves responses keyed by the author query parameter. Unknown
// authors get EmptyResponse. The server is closed when the test ends.
func NewCatalog(t testing.TB, responses map[string]string) *Catalog {
	t.Helper()
	c := &Catalog{}
	c.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.calls.Add(1)
		body, ok := responses[r.URL.Query().Get("author")]
		if !ok {
			body = EmptyResponse
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(c.Server.Close)
	return c
}

// BaseURL is the prefix the escaped author is appended to.
func (c *Catalog) BaseURL() string {
	return c.URL + "/search.json?author="
}

// Calls reports how many requests reached the catalog.
func (c *Catalog) Calls() int {
	return int(c.calls.Load())
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
	Raw    string
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
		Raw:    string(bodyBytes),
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

// AssertResponseBody checks if the response body contains expected field
func AssertResponseBody(t interface {
	Errorf(format string, args ...any)
}, body map[string]interface{}, key string, expectedValue interface{}) {
	value, ok := body[key]
	if !ok {
		t.Errorf("response body missing key %q", key)
		return
	}
	if value != expectedValue {
		t.Errorf("got %v for key %q, want %v", value, key, expectedValue)
	}
}
