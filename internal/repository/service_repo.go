package repository

import (
	"context"
	"errors"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceRepo interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	List(ctx context.Context, category *string) ([]models.Service, error)
	Ensure(ctx context.Context, s *models.Service) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepo(db *gorm.DB) ServiceRepo { return &serviceRepo{db: db} }

func (r *serviceRepo) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *serviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *serviceRepo) List(ctx context.Context, category *string) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{})
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	var list []models.Service
	err := q.Order("category ASC, name ASC").Find(&list).Error
	return list, err
}

// Ensure: вставка по уникальному имени без перезаписи существующей строки
func (r *serviceRepo) Ensure(ctx context.Context, s *models.Service) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(s)
	return res.RowsAffected > 0, res.Error
}

func (r *serviceRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}
