package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB             *gorm.DB
	Users          UserRepo
	PasswordResets PasswordResetRepo
	Products       ProductRepo
	Cart           CartRepo
	Orders         OrderRepo
	OrderItems     OrderItemRepo
	Ratings        RatingRepo
	Services       ServiceRepo
	Lookups        LookupRepo
	Consultations  ConsultationRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:             db,
		Users:          NewUserRepo(db),
		PasswordResets: NewPasswordResetRepo(db),
		Products:       NewProductRepo(db),
		Cart:           NewCartRepo(db),
		Orders:         NewOrderRepo(db),
		OrderItems:     NewOrderItemRepo(db),
		Ratings:        NewRatingRepo(db),
		Services:       NewServiceRepo(db),
		Lookups:        NewLookupRepo(db),
		Consultations:  NewConsultationRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Глобальная транзакция на весь набор репо. Внутри fn нужно работать только через tx.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
