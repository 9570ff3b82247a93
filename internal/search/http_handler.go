package search

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"booksearch/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles POST /v1/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return
		}
		if errors.Is(err, io.EOF) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Request body is required", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	h.respond(w, r, req)
}

// SearchQuery handles GET /v1/search?author=
func (h *HTTPHandler) SearchQuery(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, Request{Author: r.URL.Query().Get("author")})
}

func (h *HTTPHandler) respond(w http.ResponseWriter, r *http.Request, req Request) {
	resp := h.service.Execute(r.Context(), req)
	httpx.WriteJSON(w, statusFor(resp), resp)
}

func statusFor(resp Response) int {
	switch resp.Failure {
	case FailureValidation:
		return http.StatusUnprocessableEntity
	case FailureLookup:
		return http.StatusBadGateway
	case FailureInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
