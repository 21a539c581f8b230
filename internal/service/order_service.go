package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-ordering/internal/catalog"
	"restaurant-ordering/internal/events"
	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/repository"
	"restaurant-ordering/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	menu      catalog.Store
	validator *validation.Validator
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menu catalog.Store,
	validator *validation.Validator,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		menu:      menu,
		validator: validator,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
		now:       time.Now,
	}
}

// CreateOrder validates the request, snapshots catalog prices and names, and
// writes the order and all its items in one transaction. The catalog read and
// the ledger write are not atomic with each other: an item deleted or
// repriced in between is recorded as it was read.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error) {
	if userID == "" {
		return nil, model.ErrUnauthenticated
	}

	draft, err := s.validator.CreateOrder(req)
	if err != nil {
		s.logger.Debug().Err(err).Str("user_id", userID).Msg("order request rejected")
		return nil, err
	}

	ids := draft.MenuItemIDs()
	found, err := s.menu.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("menu_item_count", len(ids)).Msg("failed to look up menu items")
		return nil, fmt.Errorf("failed to look up menu items: %w", err)
	}

	byID := make(map[string]model.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	order := &model.Order{
		ID:             uuid.New(),
		UserID:         userID,
		RecipientName:  draft.RecipientName,
		RecipientPhone: draft.RecipientPhone,
		CreatedAt:      s.now().UTC().Truncate(time.Microsecond),
		OrderItems:     make([]model.OrderItem, 0, len(draft.Lines)),
	}

	for _, line := range draft.Lines {
		item, ok := byID[strings.ToLower(line.MenuItemID)]
		if !ok {
			s.logger.Warn().
				Str("menu_item_id", line.MenuItemID).
				Int("requested", len(ids)).
				Int("found", len(found)).
				Msg("order references unknown menu item")
			return nil, model.ErrMenuItemsNotFound
		}

		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      decimal.NewFromFloat(item.Price).Round(2).InexactFloat64(),
			Quantity:   line.Quantity,
		})
	}

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("item_count", len(order.OrderItems)).
		Str("total", order.Total().StringFixed(2)).
		Msg("order created successfully")

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish order placed event")
	}

	return order, nil
}

// persist writes the order header and items atomically.
func (s *orderService) persist(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.OrderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.OrderItems)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID retrieves an order owned by userID. Orders of other users are
// reported as not found.
func (s *orderService) GetByID(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error) {
	if userID == "" {
		return nil, model.ErrUnauthenticated
	}

	order, err := s.orderRepo.GetByID(ctx, userID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Str("user_id", userID).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// List retrieves all orders of userID, newest first.
func (s *orderService) List(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, model.ErrUnauthenticated
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
