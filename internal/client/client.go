// Package client is a Go client for the ordering API. It drives a cart.Cart
// through menu browsing and order placement.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"restaurant-ordering/internal/cart"
	"restaurant-ordering/internal/model"

	"github.com/google/uuid"
)

// ErrEmptyCart is returned by PlaceOrder when the cart has no lines.
var ErrEmptyCart = errors.New("cart is empty")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client calls the ordering API on behalf of one authenticated user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL. token is sent as a bearer
// token on order requests and may be empty for menu-only use.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Menu returns the full menu.
func (c *Client) Menu(ctx context.Context) ([]model.MenuItem, error) {
	var resp model.MenuResponse
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &resp); err != nil {
		return nil, err
	}
	return resp.MenuItems, nil
}

// PlaceOrder submits the cart as an order for pickup by the named recipient.
// Only identifiers and quantities are sent. The cart is cleared once the
// order has been created and left untouched on any failure.
func (c *Client) PlaceOrder(ctx context.Context, crt *cart.Cart, recipientName, recipientPhone string) (*model.Order, error) {
	if crt == nil || crt.IsEmpty() {
		return nil, ErrEmptyCart
	}

	req := model.CreateOrderRequest{
		MenuItems:      crt.OrderLines(),
		RecipientName:  recipientName,
		RecipientPhone: recipientPhone,
	}

	var resp model.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}

	crt.Clear()
	return resp.Order, nil
}

// Orders returns the caller's orders, newest first.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var resp model.OrderListResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// Order returns one of the caller's orders.
func (c *Client) Order(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var resp model.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id.String()), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body model.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
