package handlers

import (
	"net/http"

	"shop-service/internal/dto"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog service.CatalogService
	ratings service.RatingService
	log     *zap.Logger
}

func NewProductHandler(catalog service.CatalogService, ratings service.RatingService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, ratings: ratings, log: log}
}

// List godoc
// @Summary Список товаров
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductList(list))
}

// ListByCategory godoc
// @Summary Товары категории
// @Tags products
// @Produce json
// @Param category path string true "Категория"
// @Success 200 {array} dto.ProductResponse
// @Router /api/products/category/{category} [get]
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	list, err := h.catalog.ListProducts(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductList(list))
}

// Get godoc
// @Summary Товар по id
// @Tags products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// Stock godoc
// @Summary Остаток товара
// @Tags products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id}/stock [get]
func (h *ProductHandler) Stock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	info, err := h.catalog.StockInfo(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toStockResponse(info))
}

// Create godoc
// @Summary Создание товара
// @Description Только для администратора. Без stock создаётся с остатком 20
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(p))
}

// UpdateStock godoc
// @Summary Установка остатка
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param body body dto.UpdateStockRequest true "Новый остаток"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	info, err := h.catalog.SetStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toStockResponse(info))
}

// AddRating godoc
// @Summary Оценка товара
// @Description Оценить можно только товар из своего завершённого заказа, один раз на заказ
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param body body dto.AddRatingRequest true "Оценка 1..5"
// @Success 201 {object} dto.RatingResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse "Товар не куплен в завершённом заказе"
// @Failure 409 {object} dto.ConflictErrorResponse "Уже оценён"
// @Router /api/products/{id}/rating [post]
func (h *ProductHandler) AddRating(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	orderID, ok := parseUUIDField(c, "orderId", req.OrderID)
	if !ok {
		return
	}

	r, err := h.ratings.AddRating(c.Request.Context(), service.AddRatingInput{
		ProductID: productID,
		OrderID:   orderID,
		Rating:    req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RatingResponse{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		OrderID:   r.OrderID.String(),
		Rating:    r.Rating,
		Review:    r.Review,
		CreatedAt: r.CreatedAt,
	})
}

// Ratings godoc
// @Summary Оценки товара
// @Tags products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} dto.ProductRatingsResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id}/ratings [get]
func (h *ProductHandler) Ratings(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.ratings.ProductRatings(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toRatingsResponse(summary))
}

// Rateable godoc
// @Summary Товары, доступные для оценки
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RateableProductResponse
// @Router /api/products/user/rateable [get]
func (h *ProductHandler) Rateable(c *gin.Context) {
	list, err := h.ratings.Rateable(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toRateableList(list))
}
