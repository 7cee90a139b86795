package service

import (
	"context"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/util"
	"strings"
	"time"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

const (
	minPasswordLength = 6
	resetPinLength    = 4
	resetCodeTTL      = 15 * time.Minute
	resetCooldown     = time.Minute
)

type authService struct {
	repo    *repository.Repository
	hasher  PasswordHasher
	tokens  TokenProvider
	limiter RateLimiter // может быть nil
	mailer  Mailer      // может быть nil

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	hasher PasswordHasher,
	tokens TokenProvider,
	limiter RateLimiter,
	mailer Mailer,
	accessTTL time.Duration,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		limiter:   limiter,
		mailer:    mailer,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	switch {
	case email == "":
		return nil, invalid("email is required")
	case username == "":
		return nil, invalid("username is required")
	case in.Password == "":
		return nil, invalid("password is required")
	case len(in.Password) < minPasswordLength:
		return nil, invalid("password must be at least %d characters", minPasswordLength)
	case in.Password != in.ConfirmPassword:
		return nil, ErrPasswordsDiffer
	}
	if !strings.Contains(email, "@") {
		return nil, invalid("email is invalid")
	}

	exists, err := s.repo.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}
	exists, err = s.repo.Users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:    email,
		Username: username,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		// гонка двух регистраций с одинаковыми данными
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.log.Info("Пользователь зарегистрирован", zap.String("user_id", u.ID.String()), zap.String("email", u.Email))
	return u, nil
}

func (s *authService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, invalid("login and password are required")
	}

	user, err := s.repo.Users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	access, exp, err := s.tokens.SignAccess(ctx, user.ID, string(user.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: access, ExpiresAt: exp, User: user}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return invalid("email is required")
	}

	u, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	limitKey := "reset:" + email
	if s.limiter != nil {
		limited, err := s.limiter.CheckRateLimit(ctx, limitKey)
		if err != nil {
			s.log.Warn("Не удалось проверить rate limit в Redis", zap.Error(err))
		} else if limited {
			return ErrTooManyRequests
		}
	} else {
		latest, err := s.repo.PasswordResets.FindLatestByUser(ctx, u.ID)
		if err != nil {
			return err
		}
		if latest != nil && s.now().Sub(latest.CreatedAt) < resetCooldown {
			return ErrTooManyRequests
		}
	}

	pin, err := nanorand.Gen(resetPinLength)
	if err != nil {
		return err
	}

	now := s.now()
	token := &models.PasswordResetToken{
		UserID:    u.ID,
		Email:     email,
		CodeHash:  util.Sha256Base64URL(pin),
		ExpiresAt: now.Add(resetCodeTTL),
		CreatedAt: now,
	}
	if err := s.repo.PasswordResets.Create(ctx, token); err != nil {
		return err
	}

	if s.limiter != nil {
		if err := s.limiter.SetRateLimit(ctx, limitKey, resetCooldown); err != nil {
			s.log.Warn("Не удалось установить rate limit в Redis", zap.Error(err))
		}
	}

	if s.mailer == nil {
		s.log.Info("Код сброса пароля", zap.String("email", email), zap.String("code", pin))
		return nil
	}

	msg := EmailMessage{
		To:       email,
		Subject:  "Сброс пароля",
		Template: "password_reset",
		Data: map[string]any{
			"Username":  u.Username,
			"Code":      pin,
			"ExpiresIn": int(resetCodeTTL.Minutes()),
		},
	}
	if err := s.mailer.SendEmail(ctx, u.ID.String(), msg); err != nil {
		s.log.Error("Не удалось поставить письмо в очередь", zap.String("email", email), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	pin := strings.TrimSpace(in.Pin)

	switch {
	case email == "":
		return invalid("email is required")
	case pin == "":
		return invalid("pin is required")
	case len(in.NewPassword) < minPasswordLength:
		return invalid("password must be at least %d characters", minPasswordLength)
	case in.NewPassword != in.ConfirmPassword:
		return ErrPasswordsDiffer
	}

	u, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidCode
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		token, err := tx.PasswordResets.GetValidByHash(ctx, u.ID, util.Sha256Base64URL(pin), s.now())
		if err != nil {
			return err
		}
		if token == nil {
			return ErrInvalidCode
		}

		ok, err := tx.PasswordResets.Consume(ctx, token.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidCode
		}

		if err := tx.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
			return err
		}
		_, err = tx.PasswordResets.DeleteAllForUser(ctx, u.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.log.Info("Пароль сброшен", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
