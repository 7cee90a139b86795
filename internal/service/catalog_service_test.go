package service_test

import (
	"context"
	"testing"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService_CreateProductAdminOnly(t *testing.T) {
	repo := setupRepo(t)
	admin := mkUser(t, repo, "root", models.RoleAdmin)
	u := mkUser(t, repo, "alice", models.RoleCustomer)
	catalog := service.NewCatalogService(repo, zap.NewNop())

	in := service.CreateProductInput{Name: "Sofa", Category: "furniture", Price: 1200}

	_, err := catalog.CreateProduct(asUser(u), in)
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = catalog.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	p, err := catalog.CreateProduct(asUser(admin), in)
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.Stock)
	assert.Equal(t, int64(0), p.Sold)

	zero := int64(0)
	p2, err := catalog.CreateProduct(asUser(admin), service.CreateProductInput{Name: "Lamp", Category: "decor", Price: 0, Stock: &zero})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p2.Stock)
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	repo := setupRepo(t)
	admin := mkUser(t, repo, "root", models.RoleAdmin)
	catalog := service.NewCatalogService(repo, zap.NewNop())
	neg := int64(-1)

	cases := []service.CreateProductInput{
		{Category: "furniture", Price: 1},
		{Name: "   ", Category: "furniture", Price: 1},
		{Name: "Sofa", Price: 1},
		{Name: "Sofa", Category: "furniture", Price: -5},
		{Name: "Sofa", Category: "furniture", Price: 5, Stock: &neg},
	}
	for i, in := range cases {
		_, err := catalog.CreateProduct(asUser(admin), in)
		assert.ErrorIs(t, err, service.ErrValidation, "case %d", i)
	}
}

func TestCatalogService_ListGetAndStock(t *testing.T) {
	repo := setupRepo(t)
	admin := mkUser(t, repo, "root", models.RoleAdmin)
	u := mkUser(t, repo, "alice", models.RoleCustomer)
	catalog := service.NewCatalogService(repo, zap.NewNop())
	ctx := context.Background()

	chair := mkProduct(t, repo, "chair", 100, 5)
	require.NoError(t, repo.Products.Create(ctx, &models.Product{Name: "vase", Category: "decor", Price: 30, Stock: 2}))

	all, err := catalog.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	decor, err := catalog.ListProducts(ctx, "decor")
	require.NoError(t, err)
	require.Len(t, decor, 1)
	assert.Equal(t, "vase", decor[0].Name)

	none, err := catalog.ListProducts(ctx, "garden")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = catalog.GetProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrProductNotFound)

	info, err := catalog.StockInfo(ctx, chair.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Stock)

	_, err = catalog.SetStock(asUser(u), chair.ID, 50)
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = catalog.SetStock(asUser(admin), chair.ID, -1)
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = catalog.SetStock(asUser(admin), uuid.New(), 1)
	assert.ErrorIs(t, err, service.ErrProductNotFound)

	info, err = catalog.SetStock(asUser(admin), chair.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), info.Stock)
	assert.Equal(t, int64(0), info.Sold)
}

func TestCatalogService_Services(t *testing.T) {
	repo := setupRepo(t)
	admin := mkUser(t, repo, "root", models.RoleAdmin)
	catalog := service.NewCatalogService(repo, zap.NewNop())
	ctx := context.Background()

	svc, err := catalog.CreateService(asUser(admin), service.CreateServiceInput{Name: "Interior design", Category: "design", Price: 5000})
	require.NoError(t, err)

	_, err = catalog.CreateService(asUser(admin), service.CreateServiceInput{Name: "Interior design", Category: "design", Price: 1})
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = catalog.CreateService(asUser(admin), service.CreateServiceInput{Name: "Repair", Price: 1})
	assert.ErrorIs(t, err, service.ErrValidation)

	got, err := catalog.GetService(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Interior design", got.Name)

	_, err = catalog.GetService(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrServiceNotFound)

	list, err := catalog.ListServices(ctx, "design")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = catalog.ListServices(ctx, "repair")
	require.NoError(t, err)
	assert.Empty(t, list)
}
