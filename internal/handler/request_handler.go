package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"zero-waste-meals/internal/model"
	"zero-waste-meals/internal/service"
)

// RequestHandler handles food-request HTTP requests.
type RequestHandler struct {
	service service.RequestService
	logger  zerolog.Logger
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(service service.RequestService, logger zerolog.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		logger:  logger.With().Str("handler", "request").Logger(),
	}
}

// ListByRequester handles GET /requests requests. Ownership of the email
// parameter has already been enforced by the middleware chain.
func (h *RequestHandler) ListByRequester(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email := r.URL.Query().Get("email")

	requests, err := h.service.ListForRequester(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// Create handles POST /requested requests. The insert also triggers the
// referenced item's status transition to requested.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var params model.CreateRequestParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	outcome, err := h.service.Create(r.Context(), &params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, outcome)
}
