package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-ordering/internal/handler"
	"restaurant-ordering/internal/identity"
	"restaurant-ordering/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "router-test-secret-0123456789abc"
	testAPIKey = "admin-key"
)

type stubMenuService struct{}

func (stubMenuService) List(context.Context) ([]model.MenuItem, error) {
	return []model.MenuItem{{ID: "65f1c0a1b2c3d4e5f6a7b801", Name: "Soup", Price: 4.5}}, nil
}

func (stubMenuService) GetByID(_ context.Context, id string) (*model.MenuItem, error) {
	return &model.MenuItem{ID: id, Name: "Soup"}, nil
}

func (stubMenuService) Create(_ context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	return &model.MenuItem{ID: "65f1c0a1b2c3d4e5f6a7b802", Name: req.Name}, nil
}

func (stubMenuService) Update(_ context.Context, id string, _ *model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	return &model.MenuItem{ID: id}, nil
}

func (stubMenuService) Delete(context.Context, string) error { return nil }

type stubOrderService struct{}

func (stubOrderService) CreateOrder(_ context.Context, userID string, _ *model.CreateOrderRequest) (*model.Order, error) {
	return &model.Order{ID: uuid.New(), UserID: userID, OrderItems: []model.OrderItem{}}, nil
}

func (stubOrderService) GetByID(_ context.Context, userID string, id uuid.UUID) (*model.Order, error) {
	return &model.Order{ID: id, UserID: userID, OrderItems: []model.OrderItem{}}, nil
}

func (stubOrderService) List(context.Context, string) ([]model.Order, error) {
	return []model.Order{}, nil
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, p *model.Principal) (*model.User, error) {
	return &model.User{ID: p.ID, Name: p.Name}, nil
}

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	verifier := identity.NewVerifier(testSecret, "")
	token, err := verifier.Issue(model.Principal{ID: "user_1", Name: "Ann"}, time.Hour)
	require.NoError(t, err)

	logger := zerolog.Nop()
	h := New(
		handler.NewMenuHandler(stubMenuService{}, logger),
		handler.NewOrderHandler(stubOrderService{}, logger),
		verifier,
		stubResolver{},
		testAPIKey,
		logger,
	)
	return h, token
}

func TestRouter(t *testing.T) {
	h, token := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		token          string
		apiKey         string
		expectedStatus int
	}{
		{name: "Health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "Menu is public", method: http.MethodGet, path: "/api/menu", expectedStatus: http.StatusOK},
		{name: "Menu item is public", method: http.MethodGet, path: "/api/menu/65f1c0a1b2c3d4e5f6a7b801", expectedStatus: http.StatusOK},
		{name: "Menu create needs key", method: http.MethodPost, path: "/api/menu", body: `{"name":"Tea"}`, expectedStatus: http.StatusUnauthorized},
		{name: "Menu create with key", method: http.MethodPost, path: "/api/menu", body: `{"name":"Tea"}`, apiKey: testAPIKey, expectedStatus: http.StatusCreated},
		{name: "Menu update with key", method: http.MethodPatch, path: "/api/menu/65f1c0a1b2c3d4e5f6a7b801", body: `{"price":3}`, apiKey: testAPIKey, expectedStatus: http.StatusOK},
		{name: "Menu delete with key", method: http.MethodDelete, path: "/api/menu/65f1c0a1b2c3d4e5f6a7b801", apiKey: testAPIKey, expectedStatus: http.StatusNoContent},
		{name: "Bearer token is not an admin key", method: http.MethodDelete, path: "/api/menu/65f1c0a1b2c3d4e5f6a7b801", token: token, expectedStatus: http.StatusUnauthorized},
		{name: "Orders need a token", method: http.MethodGet, path: "/api/orders", expectedStatus: http.StatusUnauthorized},
		{name: "Orders reject a bad token", method: http.MethodGet, path: "/api/orders", token: "garbage", expectedStatus: http.StatusUnauthorized},
		{name: "Orders list", method: http.MethodGet, path: "/api/orders", token: token, expectedStatus: http.StatusOK},
		{name: "Order create", method: http.MethodPost, path: "/api/orders", body: `{}`, token: token, expectedStatus: http.StatusCreated},
		{name: "Order by id", method: http.MethodGet, path: "/api/orders/" + uuid.NewString(), token: token, expectedStatus: http.StatusOK},
		{name: "Order bad id", method: http.MethodGet, path: "/api/orders/nope", token: token, expectedStatus: http.StatusBadRequest},
		{name: "Unknown route", method: http.MethodGet, path: "/api/products", expectedStatus: http.StatusNotFound},
		{name: "Preflight", method: http.MethodOptions, path: "/api/orders", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if w.Code >= http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}
