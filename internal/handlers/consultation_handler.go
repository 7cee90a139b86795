package handlers

import (
	"net/http"

	"shop-service/internal/dto"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConsultationHandler struct {
	consultations service.ConsultationService
	log           *zap.Logger
}

func NewConsultationHandler(consultations service.ConsultationService, log *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{consultations: consultations, log: log}
}

// Types godoc
// @Summary Типы консультаций
// @Tags consultations
// @Produce json
// @Success 200 {array} dto.LookupResponse
// @Router /api/consultations/types [get]
func (h *ConsultationHandler) Types(c *gin.Context) {
	list, err := h.consultations.ListTypes(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]dto.LookupResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.LookupResponse{ID: t.ID.String(), Name: t.Name, Description: t.Description})
	}
	c.JSON(http.StatusOK, out)
}

// DesignCategories godoc
// @Summary Категории дизайна
// @Tags consultations
// @Produce json
// @Success 200 {array} dto.LookupResponse
// @Router /api/consultations/design-categories [get]
func (h *ConsultationHandler) DesignCategories(c *gin.Context) {
	list, err := h.consultations.ListDesignCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]dto.LookupResponse, 0, len(list))
	for _, dc := range list {
		out = append(out, dto.LookupResponse{ID: dc.ID.String(), Name: dc.Name, Description: dc.Description})
	}
	c.JSON(http.StatusOK, out)
}

// DesignStyles godoc
// @Summary Стили дизайна
// @Tags consultations
// @Produce json
// @Success 200 {array} dto.LookupResponse
// @Router /api/consultations/design-styles [get]
func (h *ConsultationHandler) DesignStyles(c *gin.Context) {
	list, err := h.consultations.ListDesignStyles(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]dto.LookupResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.LookupResponse{ID: s.ID.String(), Name: s.Name, Description: s.Description})
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Запись на консультацию
// @Tags consultations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateConsultationRequest true "Параметры консультации"
// @Success 201 {object} dto.ConsultationResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Услуга, тип, категория или стиль не найдены"
// @Router /api/consultations [post]
func (h *ConsultationHandler) Create(c *gin.Context) {
	var req dto.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	serviceID, ok := parseUUIDField(c, "serviceId", req.ServiceID)
	if !ok {
		return
	}
	typeID, ok := parseUUIDField(c, "consultationTypeId", req.ConsultationTypeID)
	if !ok {
		return
	}
	categoryID, ok := parseUUIDField(c, "designCategoryId", req.DesignCategoryID)
	if !ok {
		return
	}
	styleID, ok := parseUUIDField(c, "designStyleId", req.DesignStyleID)
	if !ok {
		return
	}

	cons, err := h.consultations.Create(c.Request.Context(), service.CreateConsultationInput{
		ServiceID:          serviceID,
		ConsultationTypeID: typeID,
		DesignCategoryID:   categoryID,
		DesignStyleID:      styleID,
		ConsultationDate:   req.ConsultationDate,
		ConsultationTime:   req.ConsultationTime,
		Address:            req.Address,
		Notes:              req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toConsultationResponse(cons))
}

// List godoc
// @Summary Мои консультации
// @Tags consultations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ConsultationResponse
// @Router /api/consultations [get]
func (h *ConsultationHandler) List(c *gin.Context) {
	list, err := h.consultations.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]dto.ConsultationResponse, 0, len(list))
	for i := range list {
		out = append(out, toConsultationResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Консультация по id
// @Tags consultations
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID консультации"
// @Success 200 {object} dto.ConsultationResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/consultations/{id} [get]
func (h *ConsultationHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cons, err := h.consultations.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toConsultationResponse(cons))
}

// UpdateStatus godoc
// @Summary Смена статуса консультации
// @Tags consultations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID консультации"
// @Param body body dto.UpdateStatusRequest true "Новый статус"
// @Success 200 {object} dto.ConsultationResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/consultations/{id}/status [patch]
func (h *ConsultationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	cons, err := h.consultations.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toConsultationResponse(cons))
}
