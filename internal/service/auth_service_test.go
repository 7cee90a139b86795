package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shop-service/internal/hashing"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/service"
	"shop-service/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockMailer
type MockMailer struct {
	mu           sync.Mutex
	Sent         []service.EmailMessage
	SendEmailErr error
}

func (m *MockMailer) SendEmail(_ context.Context, _ string, msg service.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return m.SendEmailErr
}

func (m *MockMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Sent)
	code, ok := m.Sent[len(m.Sent)-1].Data["Code"].(string)
	require.True(t, ok)
	return code
}

// MockRateLimiter
type MockRateLimiter struct {
	SetRateLimitFunc   func(ctx context.Context, key string, ttl time.Duration) error
	CheckRateLimitFunc func(ctx context.Context, key string) (bool, error)
}

func (m *MockRateLimiter) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error {
	if m.SetRateLimitFunc != nil {
		return m.SetRateLimitFunc(ctx, key, ttl)
	}
	return nil
}

func (m *MockRateLimiter) CheckRateLimit(ctx context.Context, key string) (bool, error) {
	if m.CheckRateLimitFunc != nil {
		return m.CheckRateLimitFunc(ctx, key)
	}
	return false, nil
}

func newAuth(repo *repository.Repository, limiter service.RateLimiter, mailer service.Mailer) service.AuthService {
	return service.NewAuthService(
		repo,
		hashing.NewBcrypt(bcrypt.MinCost),
		token.NewHSProvider("test-secret", "shop-service", "shop-clients"),
		limiter,
		mailer,
		time.Hour,
		zap.NewNop(),
	)
}

func register(t *testing.T, auth service.AuthService, email, username, password string) *models.User {
	t.Helper()
	u, err := auth.Register(context.Background(), service.RegisterInput{
		Email: email, Username: username, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
	return u
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := setupRepo(t)
	auth := newAuth(repo, nil, nil)
	ctx := context.Background()

	u := register(t, auth, "Alice@Example.com", "alice", "secret1")
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.NotEqual(t, "secret1", u.Password)

	res, err := auth.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, u.ID, res.User.ID)

	res, err = auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	claims, err := auth.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, string(models.RoleCustomer), claims.Role)

	_, err = auth.Login(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = auth.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	repo := setupRepo(t)
	auth := newAuth(repo, nil, nil)
	ctx := context.Background()
	register(t, auth, "bob@example.com", "bob", "secret1")

	cases := []struct {
		name string
		in   service.RegisterInput
		want error
	}{
		{"no email", service.RegisterInput{Username: "x", Password: "secret1", ConfirmPassword: "secret1"}, service.ErrValidation},
		{"no username", service.RegisterInput{Email: "x@example.com", Password: "secret1", ConfirmPassword: "secret1"}, service.ErrValidation},
		{"short password", service.RegisterInput{Email: "x@example.com", Username: "x", Password: "123", ConfirmPassword: "123"}, service.ErrValidation},
		{"mismatch", service.RegisterInput{Email: "x@example.com", Username: "x", Password: "secret1", ConfirmPassword: "secret2"}, service.ErrPasswordsDiffer},
		{"email taken", service.RegisterInput{Email: "BOB@example.com", Username: "x", Password: "secret1", ConfirmPassword: "secret1"}, service.ErrEmailExists},
		{"username taken", service.RegisterInput{Email: "x@example.com", Username: "bob", Password: "secret1", ConfirmPassword: "secret1"}, service.ErrUsernameExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	repo := setupRepo(t)
	mailer := &MockMailer{}
	auth := newAuth(repo, nil, mailer)
	ctx := context.Background()
	register(t, auth, "carol@example.com", "carol", "secret1")

	require.NoError(t, auth.ForgotPassword(ctx, "Carol@example.com"))
	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, "password_reset", mailer.Sent[0].Template)
	assert.Equal(t, "carol@example.com", mailer.Sent[0].To)
	code := mailer.lastCode(t)
	assert.Len(t, code, 4)

	// без redis работает cooldown по последнему коду
	err := auth.ForgotPassword(ctx, "carol@example.com")
	assert.ErrorIs(t, err, service.ErrTooManyRequests)

	err = auth.ResetPassword(ctx, service.ResetPasswordInput{Email: "carol@example.com", Pin: code, NewPassword: "newpass1", ConfirmPassword: "other1"})
	assert.ErrorIs(t, err, service.ErrPasswordsDiffer)

	wrong := "0000"
	if code == wrong {
		wrong = "1111"
	}
	err = auth.ResetPassword(ctx, service.ResetPasswordInput{Email: "carol@example.com", Pin: wrong, NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	assert.ErrorIs(t, err, service.ErrInvalidCode)

	require.NoError(t, auth.ResetPassword(ctx, service.ResetPasswordInput{
		Email: "carol@example.com", Pin: code, NewPassword: "newpass1", ConfirmPassword: "newpass1",
	}))

	_, err = auth.Login(ctx, "carol", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = auth.Login(ctx, "carol", "newpass1")
	require.NoError(t, err)

	// код одноразовый
	err = auth.ResetPassword(ctx, service.ResetPasswordInput{Email: "carol@example.com", Pin: code, NewPassword: "again11", ConfirmPassword: "again11"})
	assert.ErrorIs(t, err, service.ErrInvalidCode)
}

func TestAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	repo := setupRepo(t)
	auth := newAuth(repo, nil, &MockMailer{})

	err := auth.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAuthService_ForgotPasswordRateLimitedByRedis(t *testing.T) {
	repo := setupRepo(t)
	limited := map[string]bool{}
	limiter := &MockRateLimiter{
		SetRateLimitFunc: func(_ context.Context, key string, ttl time.Duration) error {
			assert.Equal(t, time.Minute, ttl)
			limited[key] = true
			return nil
		},
		CheckRateLimitFunc: func(_ context.Context, key string) (bool, error) {
			return limited[key], nil
		},
	}
	mailer := &MockMailer{}
	auth := newAuth(repo, limiter, mailer)
	ctx := context.Background()
	register(t, auth, "dave@example.com", "dave", "secret1")

	require.NoError(t, auth.ForgotPassword(ctx, "dave@example.com"))
	assert.True(t, limited["reset:dave@example.com"])

	err := auth.ForgotPassword(ctx, "dave@example.com")
	assert.ErrorIs(t, err, service.ErrTooManyRequests)
	assert.Len(t, mailer.Sent, 1)
}

func TestAuthService_ForgotPasswordMailerFailure(t *testing.T) {
	repo := setupRepo(t)
	mailer := &MockMailer{SendEmailErr: errors.New("kafka down")}
	auth := newAuth(repo, nil, mailer)
	register(t, auth, "erin@example.com", "erin", "secret1")

	err := auth.ForgotPassword(context.Background(), "erin@example.com")
	assert.EqualError(t, err, "kafka down")
}

func TestAuthService_ForgotPasswordWithoutMailerLogsCode(t *testing.T) {
	repo := setupRepo(t)
	auth := newAuth(repo, nil, nil)
	u := register(t, auth, "frank@example.com", "frank", "secret1")

	require.NoError(t, auth.ForgotPassword(context.Background(), "frank@example.com"))

	tok, err := repo.PasswordResets.FindLatestByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.False(t, tok.Consumed)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.ExpiresAt, time.Minute)
	assert.Len(t, tok.CodeHash, 43)
}
