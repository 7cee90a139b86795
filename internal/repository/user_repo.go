package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByLogin ищет по email или username
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "lower(email) = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("lower(email) = ? OR username = ?", strings.ToLower(login), login).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("lower(email) = ?", strings.ToLower(email)).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash).Error
}
