package service_test

import (
	"context"
	"errors"
	"testing"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddMergesAndTotals(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "alice", models.RoleCustomer)
	chair := mkProduct(t, repo, "chair", 350, 5)
	lamp := mkProduct(t, repo, "lamp", 40, 10)
	carts := service.NewCartService(repo)
	ctx := asUser(u)

	_, err := carts.Add(ctx, chair.ID, 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, chair.ID, 1)
	require.NoError(t, err)
	cart, err := carts.Add(ctx, lamp.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	qty := map[uuid.UUID]int64{}
	for _, it := range cart.Items {
		qty[it.ProductID] = it.Quantity
	}
	assert.Equal(t, int64(2), qty[chair.ID])
	assert.Equal(t, int64(3), qty[lamp.ID])
	assert.Equal(t, int64(350*2+40*3), cart.Total)
}

func TestCartService_AddRejects(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "bob", models.RoleCustomer)
	chair := mkProduct(t, repo, "chair", 350, 2)
	carts := service.NewCartService(repo)
	ctx := asUser(u)

	_, err := carts.Add(ctx, chair.ID, 0)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = carts.Add(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, service.ErrProductNotFound)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = carts.Add(ctx, chair.ID, 2)
	require.NoError(t, err)
	_, err = carts.Add(ctx, chair.ID, 1)
	var se *service.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, chair.ID, se.ProductID)
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = carts.Add(context.Background(), chair.ID, 1)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestCartService_UpdateBeyondStockLeavesItem(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "carol", models.RoleCustomer)
	chair := mkProduct(t, repo, "chair", 100, 3)
	carts := service.NewCartService(repo)
	ctx := asUser(u)

	cart, err := carts.Add(ctx, chair.ID, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = carts.Update(ctx, itemID, 4)
	assert.ErrorIs(t, err, service.ErrInsufficientStock)

	cart, err = carts.List(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Quantity)

	cart, err = carts.Update(ctx, itemID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)
	assert.Equal(t, int64(300), cart.Total)

	_, err = carts.Update(ctx, itemID, -1)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	cart, err = carts.Update(ctx, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.Total)
}

func TestCartService_ForeignItemIsNotFound(t *testing.T) {
	repo := setupRepo(t)
	owner := mkUser(t, repo, "owner", models.RoleCustomer)
	other := mkUser(t, repo, "other", models.RoleCustomer)
	chair := mkProduct(t, repo, "chair", 100, 3)
	carts := service.NewCartService(repo)

	cart, err := carts.Add(asUser(owner), chair.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = carts.Update(asUser(other), itemID, 2)
	assert.ErrorIs(t, err, service.ErrCartItemNotFound)
	_, err = carts.Remove(asUser(other), itemID)
	assert.ErrorIs(t, err, service.ErrCartItemNotFound)

	cart, err = carts.Remove(asUser(owner), itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = carts.Remove(asUser(owner), itemID)
	assert.ErrorIs(t, err, service.ErrCartItemNotFound)
}

func TestCartService_ListEmpty(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "dave", models.RoleCustomer)

	cart, err := service.NewCartService(repo).List(asUser(u))
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.Total)
}
