//go:build integration

package repository_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"shop-service/internal/migrate"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/testutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	ctx := context.Background()
	// второй прогон проверяет идемпотентность SQL-шагов
	for i := 0; i < 2; i++ {
		if err := migrate.MigrateShopDB(ctx, db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
			t.Fatalf("migrate #%d: %v", i+1, err)
		}
	}
	return db
}

func TestPostgres_ConcurrentDecrementNeverOversells(t *testing.T) {
	db := setupPostgres(t)
	repo := repository.New(db)
	p := mkProduct(t, repo, "last-units", 100, 3)

	var (
		wg      sync.WaitGroup
		applied atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Products.DecrementStock(context.Background(), p.ID, 1)
			if err != nil {
				t.Errorf("DecrementStock: %v", err)
				return
			}
			if ok {
				applied.Add(1)
			}
		}()
	}
	wg.Wait()

	if applied.Load() != 3 {
		t.Fatalf("expected exactly 3 successful decrements, got %d", applied.Load())
	}
	got, _ := repo.Products.GetByID(context.Background(), p.ID)
	if got.Stock != 0 || got.Sold != 3 {
		t.Fatalf("unexpected ledger: stock=%d sold=%d", got.Stock, got.Sold)
	}
}

func TestPostgres_CheckConstraintRejectsNegativeStock(t *testing.T) {
	db := setupPostgres(t)
	repo := repository.New(db)
	p := mkProduct(t, repo, "chair", 100, 1)

	err := db.Exec("UPDATE products SET stock = -1 WHERE id = ?", p.ID).Error
	if err == nil {
		t.Fatal("expected CHECK violation for negative stock")
	}
}

func TestPostgres_UniqueEmailIsClassified(t *testing.T) {
	db := setupPostgres(t)
	repo := repository.New(db)
	mkUser(t, repo, "anna")

	dup := &models.User{Email: "anna@example.com", Username: "anna2", Password: "hash", Role: models.RoleCustomer}
	err := repo.Users.Create(context.Background(), dup)
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !repository.IsUniqueViolation(err) {
		t.Fatalf("expected IsUniqueViolation, got %v", err)
	}
	if repository.IsRetryable(err) {
		t.Fatalf("unique violation must not be retryable")
	}
}
