package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsultationRepo interface {
	Create(ctx context.Context, c *models.Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Consultation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Consultation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ConsultationStatus) (bool, error)
}

type consultationRepo struct{ db *gorm.DB }

func NewConsultationRepo(db *gorm.DB) ConsultationRepo { return &consultationRepo{db: db} }

func (r *consultationRepo) withLookups(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Service").
		Preload("ConsultationType").
		Preload("DesignCategory").
		Preload("DesignStyle")
}

func (r *consultationRepo) Create(ctx context.Context, c *models.Consultation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *consultationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	var c models.Consultation
	err := r.withLookups(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *consultationRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Consultation, error) {
	var c models.Consultation
	err := r.withLookups(ctx).First(&c, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *consultationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Consultation, error) {
	var list []models.Consultation
	err := r.withLookups(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *consultationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ConsultationStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Consultation{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
	return tx.RowsAffected > 0, tx.Error
}
