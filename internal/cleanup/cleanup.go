package cleanup

import (
	"context"
	"time"

	"shop-service/internal/repository"

	"go.uber.org/zap"
)

type CleanupService struct {
	resets repository.PasswordResetRepo
	now    func() time.Time
	log    *zap.Logger
}

func NewCleanupService(repo *repository.Repository, log *zap.Logger) *CleanupService {
	return &CleanupService{
		resets: repo.PasswordResets,
		now:    time.Now,
		log:    log,
	}
}

// CleanupResetTokens удаляет истёкшие и использованные коды сброса пароля
func (c *CleanupService) CleanupResetTokens(ctx context.Context) (int64, error) {
	n, err := c.resets.DeleteStale(ctx, c.now())
	if err != nil {
		c.log.Error("failed to cleanup password reset tokens", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		c.log.Info("cleaned up password reset tokens", zap.Int64("count", n))
	}
	return n, nil
}
