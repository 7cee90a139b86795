package seed

import (
	"context"
	"fmt"

	"shop-service/internal/models"
	"shop-service/internal/repository"

	"go.uber.org/zap"
)

// Result: сколько строк реально вставлено за прогон.
type Result struct {
	Products          int
	Services          int
	ConsultationTypes int
	DesignCategories  int
	DesignStyles      int
}

var products = []models.Product{
	{Name: "Philips LED Emergency 7.5W", Category: "lighting", Price: 35000, Stock: 20, ImageURL: "/images/products/led-emergency.jpg",
		Description: "Аварийная LED-лампа с резервной батареей, 750 лм, до 3 часов автономной работы"},
	{Name: "Philips Strip Lamp", Category: "lighting", Price: 500000, Stock: 20, ImageURL: "/images/products/strip-lamp.jpg",
		Description: "Гибкая светодиодная лента для декоративной подсветки"},
	{Name: "Philips Pendant Light", Category: "lighting", Price: 1000000, Stock: 20, ImageURL: "/images/products/pendant-light.jpg",
		Description: "Подвесной светильник современного дизайна"},
	{Name: "Мраморный стол", Category: "furniture", Price: 8700000, Stock: 20, ImageURL: "/images/products/marble-table.jpg",
		Description: "Стол с мраморной столешницей"},
	{Name: "Деревянный стол 44x66x66 см", Category: "furniture", Price: 1500000, Stock: 20, ImageURL: "/images/products/wood-table.jpg",
		Description: "Стол из массива дерева"},
}

var services = []models.Service{
	{Name: "Профессиональное строительство", Category: "construction", ImageURL: "/images/construction.jpg",
		Description: "Строительные работы любой сложности"},
	{Name: "Дизайн интерьера", Category: "interior", ImageURL: "/images/interior.jpg",
		Description: "Профессиональный дизайн интерьера под ключ"},
	{Name: "Электромонтаж", Category: "electrical", ImageURL: "/images/electrical.jpg",
		Description: "Монтаж и ремонт электрики опытными мастерами"},
}

var consultationTypes = []models.ConsultationType{
	{Name: "Онлайн-консультация", Description: "Видеозвонок или чат с дизайнером"},
	{Name: "Выезд на объект", Description: "Дизайнер приезжает к вам"},
	{Name: "Консультация в офисе", Description: "Встреча в нашем офисе"},
}

var designCategories = []models.DesignCategory{
	{Name: "Кухня"},
	{Name: "Офис"},
	{Name: "Спальня"},
	{Name: "Дом"},
}

var designStyles = []models.DesignStyle{
	{Name: "Современный"},
	{Name: "Неоклассика"},
	{Name: "Минимализм"},
	{Name: "Индастриал"},
}

// Run вставляет демо-данные. Повторный запуск ничего не меняет: существующие строки ищутся по имени.
func Run(ctx context.Context, repo *repository.Repository, log *zap.Logger) (Result, error) {
	var res Result

	for _, p := range products {
		created, err := repo.Products.EnsureByName(ctx, &p)
		if err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		if created {
			res.Products++
		}
	}

	for _, s := range services {
		created, err := repo.Services.Ensure(ctx, &s)
		if err != nil {
			return res, fmt.Errorf("seed service %q: %w", s.Name, err)
		}
		if created {
			res.Services++
		}
	}

	for _, t := range consultationTypes {
		created, err := repo.Lookups.EnsureConsultationType(ctx, &t)
		if err != nil {
			return res, fmt.Errorf("seed consultation type %q: %w", t.Name, err)
		}
		if created {
			res.ConsultationTypes++
		}
	}

	for _, c := range designCategories {
		created, err := repo.Lookups.EnsureDesignCategory(ctx, &c)
		if err != nil {
			return res, fmt.Errorf("seed design category %q: %w", c.Name, err)
		}
		if created {
			res.DesignCategories++
		}
	}

	for _, s := range designStyles {
		created, err := repo.Lookups.EnsureDesignStyle(ctx, &s)
		if err != nil {
			return res, fmt.Errorf("seed design style %q: %w", s.Name, err)
		}
		if created {
			res.DesignStyles++
		}
	}

	log.Info("Демо-данные загружены",
		zap.Int("products", res.Products),
		zap.Int("services", res.Services),
		zap.Int("consultation_types", res.ConsultationTypes),
		zap.Int("design_categories", res.DesignCategories),
		zap.Int("design_styles", res.DesignStyles),
	)
	return res, nil
}
