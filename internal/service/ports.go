package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID uuid.UUID
	Role   string
	Exp    time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// RateLimiter: отметки «уже запрашивал» с TTL (redis). nil отключает ограничение.
type RateLimiter interface {
	SetRateLimit(ctx context.Context, key string, ttl time.Duration) error
	CheckRateLimit(ctx context.Context, key string) (bool, error)
}
