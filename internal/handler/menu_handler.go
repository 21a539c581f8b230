package handler

import (
	"net/http"

	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/service"

	"github.com/rs/zerolog"
)

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu requests.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, err, requestLogger(r, h.logger))
		return
	}

	WriteJSON(w, http.StatusOK, model.MenuResponse{MenuItems: items})
}

// GetByID handles GET /api/menu/{id} requests.
func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, err, requestLogger(r, h.logger))
		return
	}

	WriteJSON(w, http.StatusOK, model.MenuItemResponse{MenuItem: item})
}

// Create handles POST /api/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, h.logger)

	var req model.CreateMenuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err, logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusCreated, model.MenuItemResponse{MenuItem: item})
}

// Update handles PATCH /api/menu/{id} requests.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, h.logger)

	var req model.UpdateMenuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err, logger)
		return
	}

	item, err := h.service.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusOK, model.MenuItemResponse{MenuItem: item})
}

// Delete handles DELETE /api/menu/{id} requests.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, err, requestLogger(r, h.logger))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
