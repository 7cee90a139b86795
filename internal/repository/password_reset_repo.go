package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PasswordResetRepo interface {
	Create(ctx context.Context, t *models.PasswordResetToken) error
	GetValidByHash(ctx context.Context, userID uuid.UUID, codeHash string, now time.Time) (*models.PasswordResetToken, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.PasswordResetToken, error)
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// DeleteStale удаляет истёкшие и уже использованные коды
	DeleteStale(ctx context.Context, now time.Time) (int64, error)
}

type passwordResetRepo struct {
	db *gorm.DB
}

func NewPasswordResetRepo(db *gorm.DB) PasswordResetRepo {
	return &passwordResetRepo{db: db}
}

func (r *passwordResetRepo) Create(ctx context.Context, t *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *passwordResetRepo) GetValidByHash(ctx context.Context, userID uuid.UUID, codeHash string, now time.Time) (*models.PasswordResetToken, error) {
	var pr models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code_hash = ? AND consumed = ? AND expires_at > ?", userID, codeHash, false, now).
		First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pr, err
}

func (r *passwordResetRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.PasswordResetToken, error) {
	var pr models.PasswordResetToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pr, err
}

func (r *passwordResetRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("id = ? AND consumed = ?", id, false).
		Update("consumed", true)
	return res.RowsAffected > 0, res.Error
}

func (r *passwordResetRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}

func (r *passwordResetRepo) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR consumed = ?", now, true).
		Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
