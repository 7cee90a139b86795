package handlers

import (
	"net/http"

	"shop-service/internal/dto"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler отдаёт каталог услуг (дизайн, ремонт и т.п.)
type ServiceHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewServiceHandler(catalog service.CatalogService, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, log: log}
}

// List godoc
// @Summary Список услуг
// @Tags services
// @Produce json
// @Success 200 {array} dto.ServiceResponse
// @Router /api/services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	h.list(c, c.Query("category"))
}

// ByCategory godoc
// @Summary Услуги категории
// @Tags services
// @Produce json
// @Param category path string true "Категория"
// @Success 200 {array} dto.ServiceResponse
// @Router /api/services/category/{category} [get]
func (h *ServiceHandler) ByCategory(c *gin.Context) {
	h.list(c, c.Param("category"))
}

func (h *ServiceHandler) list(c *gin.Context, category string) {
	list, err := h.catalog.ListServices(c.Request.Context(), category)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for i := range list {
		out = append(out, toServiceResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Услуга по id
// @Tags services
// @Produce json
// @Param id path string true "ID услуги"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toServiceResponse(s))
}

// Create godoc
// @Summary Создание услуги
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateServiceRequest true "Услуга"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	s, err := h.catalog.CreateService(c.Request.Context(), service.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toServiceResponse(s))
}
