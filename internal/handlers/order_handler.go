package handlers

import (
	"net/http"
	"strconv"

	"shop-service/internal/dto"
	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultOrderLimit = 20
	maxOrderLimit     = 100
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// List godoc
// @Summary История заказов
// @Description Администратор видит все заказы, покупатель только свои
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", defaultOrderLimit)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}
	if limit <= 0 || limit > maxOrderLimit {
		limit = defaultOrderLimit
	}
	if offset < 0 {
		offset = 0
	}

	f := service.ListFilter{Limit: limit, Offset: offset}
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}

	orders, total, err := h.orders.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	resp := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Детали заказа
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDetailsResponse(d))
}

// Cancel godoc
// @Summary Отмена заказа
// @Description Возвращает товары на склад. Завершённый или уже отменённый заказ отменить нельзя
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Недопустимый переход статуса"
// @Router /api/orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

// UpdateStatus godoc
// @Summary Смена статуса заказа
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param body body dto.UpdateStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	o, err := h.orders.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid query parameter", []dto.FieldError{
			{Field: name, Message: "must be an integer"},
		}))
		return 0, false
	}
	return v, true
}
