package cleanup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultInterval = 30 * time.Minute

type Scheduler struct {
	cleanup  *CleanupService
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(cleanup *CleanupService, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		cleanup:  cleanup,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start запускает планировщик задач
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting cleanup scheduler", zap.Duration("interval", s.interval))
	s.wg.Add(1)
	go s.runResetTokensCleanup(ctx)
}

// Stop останавливает планировщик и ждёт завершения горутины
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.log.Info("stopping cleanup scheduler")
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Scheduler) runResetTokensCleanup(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Выполняем сразу при старте
	if _, err := s.cleanup.CleanupResetTokens(ctx); err != nil {
		s.log.Error("initial reset tokens cleanup failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if _, err := s.cleanup.CleanupResetTokens(ctx); err != nil {
				s.log.Error("reset tokens cleanup failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("reset tokens cleanup stopped")
			return
		case <-ctx.Done():
			s.log.Info("reset tokens cleanup cancelled")
			return
		}
	}
}

// RunOnceNow выполняет очистку немедленно
func (s *Scheduler) RunOnceNow(ctx context.Context) error {
	_, err := s.cleanup.CleanupResetTokens(ctx)
	return err
}
