package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"restaurant-ordering/internal/catalog"
	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/validation"

	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	store     catalog.Store
	cache     catalog.Cache
	validator *validation.Validator
	logger    zerolog.Logger

	// writes counts successful menu writes made through this service.
	writes atomic.Uint64
}

// NewMenuService creates a new menu service. Cache failures are logged and
// never fail a request.
func NewMenuService(store catalog.Store, cache catalog.Cache, validator *validation.Validator, logger zerolog.Logger) MenuService {
	return &menuService{
		store:     store,
		cache:     cache,
		validator: validator,
		logger:    logger.With().Str("service", "menu").Logger(),
	}
}

func (s *menuService) List(ctx context.Context) ([]model.MenuItem, error) {
	items, ok, err := s.cache.GetMenu(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("menu cache read failed")
	}
	if ok {
		s.logger.Debug().Int("count", len(items)).Msg("menu served from cache")
		return items, nil
	}

	gen := s.writes.Load()
	items, err = s.store.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu items")
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	// A write that landed during the read may not be in items.
	if s.writes.Load() != gen {
		s.logger.Debug().Msg("menu changed while listing, not caching")
		return items, nil
	}

	if err := s.cache.SetMenu(ctx, items); err != nil {
		s.logger.Warn().Err(err).Msg("menu cache write failed")
	}

	return items, nil
}

func (s *menuService) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}
	return item, nil
}

func (s *menuService) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	in, err := s.validator.CreateMenuItem(req)
	if err != nil {
		return nil, err
	}

	item, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info().Str("menu_item_id", item.ID).Str("name", item.Name).Msg("menu item created")

	return item, nil
}

func (s *menuService) Update(ctx context.Context, id string, req *model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if err := s.validator.UpdateMenuItem(req); err != nil {
		return nil, err
	}

	item, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}

	s.invalidate(ctx)
	s.logger.Info().Str("menu_item_id", id).Msg("menu item updated")

	return item, nil
}

func (s *menuService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if !deleted {
		return model.ErrMenuItemNotFound
	}

	s.invalidate(ctx)
	s.logger.Info().Str("menu_item_id", id).Msg("menu item deleted")

	return nil
}

func (s *menuService) invalidate(ctx context.Context) {
	s.writes.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}
