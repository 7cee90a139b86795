package service

import (
	"context"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultInitialStock int64 = 20

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{repo: repo, log: log}
}

func (s *catalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var f repository.ProductListFilter
	if c := strings.TrimSpace(category); c != "" {
		f.Category = &c
	}
	list, err := s.repo.Products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Product{}
	}
	return list, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) StockInfo(ctx context.Context, id uuid.UUID) (*StockInfo, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStockInfo(p), nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" {
		return nil, invalid("name is required")
	}
	if category == "" {
		return nil, invalid("category is required")
	}
	if in.Price < 0 {
		return nil, invalid("price must be non-negative")
	}

	stock := defaultInitialStock
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, invalid("stock must be non-negative")
		}
		stock = *in.Stock
	}

	p := &models.Product{
		Name:        name,
		Description: in.Description,
		Category:    category,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Stock:       stock,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("Товар создан", zap.String("product_id", p.ID.String()), zap.String("name", p.Name))
	return p, nil
}

// SetStock: ручная корректировка остатка. sold не меняется.
func (s *catalogService) SetStock(ctx context.Context, id uuid.UUID, stock int64) (*StockInfo, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, invalid("stock must be non-negative")
	}

	ok, err := s.repo.Products.SetStock(ctx, id, stock)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}

	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("Остаток товара обновлён", zap.String("product_id", id.String()), zap.Int64("stock", stock))
	return toStockInfo(p), nil
}

func (s *catalogService) ListServices(ctx context.Context, category string) ([]models.Service, error) {
	var c *string
	if v := strings.TrimSpace(category); v != "" {
		c = &v
	}
	list, err := s.repo.Services.List(ctx, c)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Service{}
	}
	return list, nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := s.repo.Services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *catalogService) CreateService(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" {
		return nil, invalid("name is required")
	}
	if category == "" {
		return nil, invalid("category is required")
	}
	if in.Price < 0 {
		return nil, invalid("price must be non-negative")
	}

	svc := &models.Service{
		Name:        name,
		Description: in.Description,
		Category:    category,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.Services.Create(ctx, svc); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "service with this name already exists")
		}
		return nil, err
	}

	s.log.Info("Услуга создана", zap.String("service_id", svc.ID.String()), zap.String("name", svc.Name))
	return svc, nil
}

func toStockInfo(p *models.Product) *StockInfo {
	return &StockInfo{ID: p.ID, Name: p.Name, Stock: p.Stock, Sold: p.Sold}
}
