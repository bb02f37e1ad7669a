package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"zero-waste-meals/internal/model"
	"zero-waste-meals/internal/service"
)

// FoodHandler handles food-item HTTP requests.
type FoodHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(service service.FoodService, logger zerolog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger.With().Str("handler", "food").Logger(),
	}
}

// createFoodResponse mirrors the platform's historical insert response.
type createFoodResponse struct {
	Message string               `json:"message"`
	Data    *model.InsertOutcome `json:"data"`
}

// TopByQuantity handles GET /getFoodLargeQuantity requests.
func (h *FoodHandler) TopByQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	foods, err := h.service.ListTopAvailable(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

// Search handles GET /getFoodStatus requests. An absent search parameter
// matches every available item.
func (h *FoodHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	term := r.URL.Query().Get("search")

	foods, err := h.service.SearchAvailable(r.Context(), term)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

// GetByID handles GET /food/{id} requests. A missing item yields a null
// body rather than a 404.
func (h *FoodHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.foodID(w, r, "/food/")
	if !ok {
		return
	}

	food, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, food)
}

// ListByDonor handles GET /foodsByEmail requests. Ownership of the email
// parameter has already been enforced by the middleware chain.
func (h *FoodHandler) ListByDonor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	email := r.URL.Query().Get("email")

	foods, err := h.service.ListByDonor(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

// Create handles POST /foods requests.
func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var params model.CreateFoodParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	outcome, err := h.service.Create(r.Context(), &params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, createFoodResponse{
		Message: "food added successfully",
		Data:    outcome,
	})
}

// Update handles PUT /foodUpdate/{id} requests with upsert semantics.
func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.foodID(w, r, "/foodUpdate/")
	if !ok {
		return
	}

	var params model.UpdateFoodParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	outcome, err := h.service.Update(r.Context(), id, &params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// Delete handles DELETE /food/{id} requests.
func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.foodID(w, r, "/food/")
	if !ok {
		return
	}

	outcome, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// foodID extracts and parses the item id that follows prefix in the URL
// path, writing a 400 response on malformed input.
func (h *FoodHandler) foodID(w http.ResponseWriter, r *http.Request, prefix string) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusBadRequest, "food id is required", h.logger)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid food id", h.logger)
		return uuid.Nil, false
	}

	return id, true
}
