package handler

import (
	"net/http"

	"restaurant-ordering/internal/identity"
	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests. Every route expects the
// resolved user in the request context.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, h.logger)

	user, ok := identity.UserFrom(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated, logger)
		return
	}

	var req model.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err, logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), user.ID, &req)
	if err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusCreated, model.OrderResponse{Order: order})
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, h.logger)

	user, ok := identity.UserFrom(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated, logger)
		return
	}

	orders, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusOK, model.OrderListResponse{Orders: orders})
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, h.logger)

	user, ok := identity.UserFrom(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated, logger)
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		WriteError(w, model.NewInvalidInput("invalid order ID format"), logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), user.ID, orderID)
	if err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusOK, model.OrderResponse{Order: order})
}
