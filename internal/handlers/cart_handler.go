package handlers

import (
	"net/http"

	"shop-service/internal/dto"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart   service.CartService
	orders service.OrderService
	log    *zap.Logger
}

func NewCartHandler(cart service.CartService, orders service.OrderService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, orders: orders, log: log}
}

// List godoc
// @Summary Корзина пользователя
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/cart [get]
func (h *CartHandler) List(c *gin.Context) {
	cart, err := h.cart.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Add godoc
// @Summary Добавление товара в корзину
// @Description Если товар уже в корзине, количество суммируется. По умолчанию quantity = 1
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddToCartRequest true "Товар и количество"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Недостаточно товара на складе"
// @Router /api/cart/add [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	productID, ok := parseUUIDField(c, "productId", req.ProductID)
	if !ok {
		return
	}
	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart, err := h.cart.Add(c.Request.Context(), productID, qty)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Update godoc
// @Summary Изменение количества
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "ID позиции корзины"
// @Param body body dto.UpdateCartRequest true "Новое количество"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/cart/update/{itemId} [patch]
func (h *CartHandler) Update(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	var req dto.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	cart, err := h.cart.Update(c.Request.Context(), itemID, *req.Quantity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Remove godoc
// @Summary Удаление позиции
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "ID позиции корзины"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/cart/remove/{itemId} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	cart, err := h.cart.Remove(c.Request.Context(), itemID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Checkout godoc
// @Summary Оформление заказа
// @Description Переносит корзину в заказ и списывает остатки одной транзакцией
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Корзина пуста"
// @Failure 409 {object} dto.ConflictErrorResponse "Недостаточно товара на складе"
// @Failure 503 {object} dto.RetryableErrorResponse
// @Router /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	order, err := h.orders.Checkout(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Message:     "Order placed successfully",
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount,
	})
}
