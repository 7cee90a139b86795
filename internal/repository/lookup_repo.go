package repository

import (
	"context"
	"shop-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LookupRepo: справочники для записи на консультацию.
type LookupRepo interface {
	ListConsultationTypes(ctx context.Context) ([]models.ConsultationType, error)
	ListDesignCategories(ctx context.Context) ([]models.DesignCategory, error)
	ListDesignStyles(ctx context.Context) ([]models.DesignStyle, error)

	ConsultationTypeExists(ctx context.Context, id uuid.UUID) (bool, error)
	DesignCategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	DesignStyleExists(ctx context.Context, id uuid.UUID) (bool, error)

	EnsureConsultationType(ctx context.Context, t *models.ConsultationType) (bool, error)
	EnsureDesignCategory(ctx context.Context, c *models.DesignCategory) (bool, error)
	EnsureDesignStyle(ctx context.Context, s *models.DesignStyle) (bool, error)
}

type lookupRepo struct{ db *gorm.DB }

func NewLookupRepo(db *gorm.DB) LookupRepo { return &lookupRepo{db: db} }

func (r *lookupRepo) ListConsultationTypes(ctx context.Context) ([]models.ConsultationType, error) {
	var list []models.ConsultationType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *lookupRepo) ListDesignCategories(ctx context.Context) ([]models.DesignCategory, error) {
	var list []models.DesignCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *lookupRepo) ListDesignStyles(ctx context.Context) ([]models.DesignStyle, error) {
	var list []models.DesignStyle
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *lookupRepo) ConsultationTypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.ConsultationType{}, id)
}

func (r *lookupRepo) DesignCategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.DesignCategory{}, id)
}

func (r *lookupRepo) DesignStyleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.DesignStyle{}, id)
}

func (r *lookupRepo) EnsureConsultationType(ctx context.Context, t *models.ConsultationType) (bool, error) {
	return r.ensureByName(ctx, t)
}

func (r *lookupRepo) EnsureDesignCategory(ctx context.Context, c *models.DesignCategory) (bool, error) {
	return r.ensureByName(ctx, c)
}

func (r *lookupRepo) EnsureDesignStyle(ctx context.Context, s *models.DesignStyle) (bool, error) {
	return r.ensureByName(ctx, s)
}

func (r *lookupRepo) exists(ctx context.Context, model any, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *lookupRepo) ensureByName(ctx context.Context, row any) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(row)
	return res.RowsAffected > 0, res.Error
}
