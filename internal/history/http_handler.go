package history

import (
	"fmt"
	"net/http"
	"strconv"

	"booksearch/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /v1/history
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	records := h.service.ListAll(r.Context())
	total := h.service.Count(r.Context())
	// Count reads as 0 when storage fails.
	if total < len(records) {
		total = len(records)
	}

	message := "no searches in history"
	if len(records) > 0 {
		message = fmt.Sprintf("found %d searches in history", len(records))
	}

	httpx.JSONSuccess(w, r, ToViews(records), map[string]interface{}{
		"total":   total,
		"message": message,
	})
}

// GetByID handles GET /v1/history/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "id must be a number", nil)
		return
	}

	rec, ok := h.service.GetByID(r.Context(), id)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "search history record not found", nil)
		return
	}
	httpx.JSONSuccess(w, r, ToView(rec), nil)
}
