package router

import (
	"net/http"

	"restaurant-ordering/internal/handler"
	"restaurant-ordering/internal/middleware"
	"restaurant-ordering/internal/model"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	verifier middleware.TokenVerifier,
	resolver middleware.UserResolver,
	adminAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Menu browsing is public; writes require the admin key.
	admin := middleware.APIKeyAuth(adminAPIKey, logger)
	mux.HandleFunc("GET /api/menu", menuHandler.List)
	mux.HandleFunc("GET /api/menu/{id}", menuHandler.GetByID)
	mux.Handle("POST /api/menu", admin(http.HandlerFunc(menuHandler.Create)))
	mux.Handle("PATCH /api/menu/{id}", admin(http.HandlerFunc(menuHandler.Update)))
	mux.Handle("DELETE /api/menu/{id}", admin(http.HandlerFunc(menuHandler.Delete)))

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.Authenticate(verifier, logger)(middleware.EnsureUser(resolver, logger)(h))
	}
	mux.Handle("POST /api/orders", authed(orderHandler.Create))
	mux.Handle("GET /api/orders", authed(orderHandler.List))
	mux.Handle("GET /api/orders/{id}", authed(orderHandler.GetByID))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "Not found"})
	})

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
