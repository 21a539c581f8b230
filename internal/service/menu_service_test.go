package service

import (
	"context"
	"errors"
	"testing"

	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMenuService() (MenuService, *MockMenuStore, *MockMenuCache) {
	store := new(MockMenuStore)
	cache := new(MockMenuCache)
	return NewMenuService(store, cache, validation.New(), zerolog.Nop()), store, cache
}

func TestMenuService_List_CacheHit(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	cache.On("GetMenu", ctx).Return(testMenu, true, nil)

	items, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, testMenu, items)
	store.AssertNotCalled(t, "List", mock.Anything)
}

func TestMenuService_List_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	cache.On("GetMenu", ctx).Return(nil, false, nil)
	store.On("List", ctx).Return(testMenu, nil)
	cache.On("SetMenu", ctx, testMenu).Return(nil)

	items, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, testMenu, items)
	cache.AssertExpectations(t)
}

func TestMenuService_List_SkipsCacheAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	cache.On("GetMenu", ctx).Return(nil, false, nil)
	store.On("Delete", ctx, breadID).Return(true, nil)
	cache.On("Invalidate", ctx).Return(nil)
	store.On("List", ctx).Run(func(mock.Arguments) {
		require.NoError(t, svc.Delete(ctx, breadID))
	}).Return(testMenu, nil)

	items, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, testMenu, items)
	cache.AssertNotCalled(t, "SetMenu", mock.Anything, mock.Anything)
	cache.AssertCalled(t, "Invalidate", ctx)
}

func TestMenuService_List_CacheFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	cache.On("GetMenu", ctx).Return(nil, false, errors.New("redis down"))
	store.On("List", ctx).Return(testMenu, nil)
	cache.On("SetMenu", ctx, testMenu).Return(errors.New("redis down"))

	items, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, testMenu, items)
}

func TestMenuService_List_StoreError(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	cache.On("GetMenu", ctx).Return(nil, false, nil)
	store.On("List", ctx).Return(nil, errors.New("mongo down"))

	_, err := svc.List(ctx)

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeInternalError, model.CodeOf(err))
	cache.AssertNotCalled(t, "SetMenu", mock.Anything, mock.Anything)
}

func TestMenuService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestMenuService()

	store.On("FindByID", ctx, soupID).Return(&testMenu[0], nil)
	store.On("FindByID", ctx, "missing").Return(nil, nil)

	item, err := svc.GetByID(ctx, soupID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", item.Name)

	_, err = svc.GetByID(ctx, "missing")
	assert.Equal(t, model.ErrMenuItemNotFound, err)
}

func TestMenuService_Create(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	price := 9.5
	req := &model.CreateMenuItemRequest{Name: " Lasagne ", Category: "Main", Price: &price}

	store.On("Create", ctx, &model.MenuItemInput{Name: "Lasagne", Category: "Main", Price: 9.5}).
		Return(&model.MenuItem{ID: soupID, Name: "Lasagne", Category: "Main", Price: 9.5}, nil)
	cache.On("Invalidate", ctx).Return(nil)

	item, err := svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "Lasagne", item.Name)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestMenuService_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	negative := -1.0
	_, err := svc.Create(ctx, &model.CreateMenuItemRequest{Name: "X", Category: "Y", Price: &negative})

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeInvalidInput, model.CodeOf(err))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestMenuService_Update(t *testing.T) {
	ctx := context.Background()

	price := 5.0
	tests := []struct {
		name       string
		req        *model.UpdateMenuItemRequest
		storeItem  *model.MenuItem
		wantErr    error
		wantCode   string
		invalidate bool
	}{
		{
			name:       "Updated",
			req:        &model.UpdateMenuItemRequest{Price: &price},
			storeItem:  &model.MenuItem{ID: soupID, Price: 5},
			invalidate: true,
		},
		{
			name:     "Not found",
			req:      &model.UpdateMenuItemRequest{Price: &price},
			wantErr:  model.ErrMenuItemNotFound,
			wantCode: model.ErrCodeMenuItemNotFound,
		},
		{
			name:     "Empty update",
			req:      &model.UpdateMenuItemRequest{},
			wantCode: model.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, cache := newTestMenuService()
			store.On("Update", ctx, soupID, tt.req).Return(tt.storeItem, nil).Maybe()
			cache.On("Invalidate", ctx).Return(nil).Maybe()

			item, err := svc.Update(ctx, soupID, tt.req)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, model.CodeOf(err))
				if tt.wantErr != nil {
					assert.Equal(t, tt.wantErr, err)
				}
				cache.AssertNotCalled(t, "Invalidate", mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.storeItem, item)
			cache.AssertCalled(t, "Invalidate", ctx)
		})
	}
}

func TestMenuService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, store, cache := newTestMenuService()

	store.On("Delete", ctx, soupID).Return(true, nil)
	store.On("Delete", ctx, breadID).Return(false, nil)
	store.On("Delete", ctx, "broken").Return(false, errors.New("mongo down"))
	cache.On("Invalidate", ctx).Return(errors.New("redis down"))

	assert.NoError(t, svc.Delete(ctx, soupID), "cache failure does not fail the delete")
	assert.Equal(t, model.ErrMenuItemNotFound, svc.Delete(ctx, breadID))

	err := svc.Delete(ctx, "broken")
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeInternalError, model.CodeOf(err))

	cache.AssertNumberOfCalls(t, "Invalidate", 1)
}
