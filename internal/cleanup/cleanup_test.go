package cleanup

import (
	"context"
	"testing"
	"time"

	"shop-service/internal/migrate"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanupResetTokens(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestSQLite(t)
	require.NoError(t, migrate.MigrateShopDB(ctx, db, zap.NewNop(), migrate.TablesOnlyOptions()))
	repo := repository.New(db)

	u := &models.User{Email: "a@example.com", Username: "a", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, repo.Users.Create(ctx, u))

	now := time.Now()
	tokens := []*models.PasswordResetToken{
		{UserID: u.ID, Email: u.Email, CodeHash: "expired", ExpiresAt: now.Add(-time.Minute)},
		{UserID: u.ID, Email: u.Email, CodeHash: "consumed", ExpiresAt: now.Add(time.Hour), Consumed: true},
		{UserID: u.ID, Email: u.Email, CodeHash: "live", ExpiresAt: now.Add(time.Hour)},
	}
	for _, tok := range tokens {
		require.NoError(t, repo.PasswordResets.Create(ctx, tok))
	}

	svc := NewCleanupService(repo, zap.NewNop())
	svc.now = func() time.Time { return now }

	n, err := svc.CleanupResetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	live, err := repo.PasswordResets.GetValidByHash(ctx, u.ID, "live", now)
	require.NoError(t, err)
	assert.NotNil(t, live)

	sched := NewScheduler(svc, time.Hour, zap.NewNop())
	require.NoError(t, sched.RunOnceNow(ctx))
	sched.Start(ctx)
	sched.Stop()
	sched.Stop()
}
