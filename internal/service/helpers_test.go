package service_test

import (
	"context"
	"sync"
	"testing"

	"shop-service/internal/migrate"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/service"
	"shop-service/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestSQLite(t)
	require.NoError(t, migrate.MigrateShopDB(context.Background(), db, zap.NewNop(), migrate.TablesOnlyOptions()))
	return repository.New(db)
}

func mkUser(t *testing.T, repo *repository.Repository, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Username: name, Password: "hash", Role: role}
	require.NoError(t, repo.Users.Create(context.Background(), u))
	return u
}

func mkProduct(t *testing.T, repo *repository.Repository, name string, price, stock int64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Category: "furniture", Price: price, Stock: stock}
	require.NoError(t, repo.Products.Create(context.Background(), p))
	return p
}

func asUser(u *models.User) context.Context {
	return service.WithIdentity(context.Background(), u.ID, u.Role)
}

func reloadProduct(t *testing.T, repo *repository.Repository, p *models.Product) *models.Product {
	t.Helper()
	got, err := repo.Products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	return got
}

// recordingBus собирает опубликованные события заказов.
type recordingBus struct {
	mu        sync.Mutex
	created   []service.OrderCreatedEvent
	cancelled []service.OrderCancelledEvent
	err       error
}

func (b *recordingBus) PublishOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, e)
	return b.err
}

func (b *recordingBus) PublishOrderCancelled(_ context.Context, e service.OrderCancelledEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelled = append(b.cancelled, e)
	return b.err
}

// placeOrder кладёт товары в корзину и оформляет заказ.
func placeOrder(t *testing.T, repo *repository.Repository, u *models.User, lines map[*models.Product]int64) *models.Order {
	t.Helper()
	ctx := asUser(u)
	carts := service.NewCartService(repo)
	for p, q := range lines {
		_, err := carts.Add(ctx, p.ID, q)
		require.NoError(t, err)
	}
	ord, err := service.NewOrderService(repo, nil, zap.NewNop()).Checkout(ctx)
	require.NoError(t, err)
	return ord
}

// completeOrder проводит заказ по цепочке статусов до completed.
func completeOrder(t *testing.T, repo *repository.Repository, admin *models.User, ord *models.Order) {
	t.Helper()
	orders := service.NewOrderService(repo, nil, zap.NewNop())
	for _, st := range []models.OrderStatus{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusCompleted,
	} {
		_, err := orders.SetStatus(asUser(admin), ord.ID, string(st))
		require.NoError(t, err)
	}
}
