package service

import (
	"context"
	"shop-service/internal/models"
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	Items []models.CartLine
	Total int64
}

type CartService interface {
	List(ctx context.Context) (*Cart, error)
	Add(ctx context.Context, productID uuid.UUID, quantity int64) (*Cart, error)
	Update(ctx context.Context, itemID uuid.UUID, quantity int64) (*Cart, error)
	Remove(ctx context.Context, itemID uuid.UUID) (*Cart, error)
}

type ListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderDetails struct {
	Order models.Order
	Items []models.OrderItemDetail
}

type OrderService interface {
	Checkout(ctx context.Context) (*models.Order, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	List(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDetails, error)
}

type AddRatingInput struct {
	ProductID uuid.UUID
	OrderID   uuid.UUID
	Rating    int
	Review    *string
}

type RatingSummary struct {
	Ratings      []models.RatingView
	Average      float64
	Total        int64
	Distribution map[int]int64
}

type RatingService interface {
	AddRating(ctx context.Context, in AddRatingInput) (*models.ProductRating, error)
	ProductRatings(ctx context.Context, productID uuid.UUID) (*RatingSummary, error)
	Rateable(ctx context.Context) ([]models.RateableProduct, error)
}

type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	ImageURL    string
	Stock       *int64
}

type CreateServiceInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	ImageURL    string
}

type StockInfo struct {
	ID    uuid.UUID
	Name  string
	Stock int64
	Sold  int64
}

type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	StockInfo(ctx context.Context, id uuid.UUID) (*StockInfo, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int64) (*StockInfo, error)

	ListServices(ctx context.Context, category string) ([]models.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, in CreateServiceInput) (*models.Service, error)
}

type CreateConsultationInput struct {
	ServiceID          uuid.UUID
	ConsultationTypeID uuid.UUID
	DesignCategoryID   uuid.UUID
	DesignStyleID      uuid.UUID
	ConsultationDate   string
	ConsultationTime   *string
	Address            *string
	Notes              *string
}

type ConsultationService interface {
	ListTypes(ctx context.Context) ([]models.ConsultationType, error)
	ListDesignCategories(ctx context.Context) ([]models.DesignCategory, error)
	ListDesignStyles(ctx context.Context) ([]models.DesignStyle, error)

	Create(ctx context.Context, in CreateConsultationInput) (*models.Consultation, error)
	List(ctx context.Context) ([]models.Consultation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Consultation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Consultation, error)
}

type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *models.User
}

type ResetPasswordInput struct {
	Email           string
	Pin             string
	NewPassword     string
	ConfirmPassword string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
	// Authenticate проверяет access token и возвращает клеймы
	Authenticate(ctx context.Context, token string) (*Claims, error)
}
