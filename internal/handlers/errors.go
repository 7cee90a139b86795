package handlers

import (
	"context"
	"errors"
	"net/http"

	"shop-service/internal/dto"
	"shop-service/internal/repository"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	retryAfterSeconds   = "1"
	rateLimitRetryAfter = "60"
)

// writeError переводит ошибку сервиса в HTTP-ответ по её классу.
// Внутренние ошибки логируются, клиенту уходит только общий текст.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var stockErr *service.StockError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, dto.NewStockConflictError(err.Error(), stockErr.ProductID.String()))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(err.Error()))
	case errors.Is(err, service.ErrTooManyRequests):
		c.Header("Retry-After", rateLimitRetryAfter)
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedError(err.Error()))
	case repository.IsRetryable(err), errors.Is(err, context.DeadlineExceeded):
		log.Warn("Транзиентная ошибка хранилища", zap.String("path", c.FullPath()), zap.Error(err))
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, dto.NewRetryableError("temporary failure, retry the request"))
	default:
		log.Error("Внутренняя ошибка", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

// writeBindError отвечает 400 на невалидное тело запроса, с разбором по полям если это ошибки validator.
func writeBindError(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("Невалидное тело запроса", zap.String("path", c.FullPath()), zap.Error(err))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{
				Field:   fe.Field(),
				Message: fe.Error(),
				Tag:     fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", fields))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name, []dto.FieldError{{Field: name, Message: "must be a UUID"}}))
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDField(c *gin.Context, field, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+field, []dto.FieldError{{Field: field, Message: "must be a UUID"}}))
		return uuid.Nil, false
	}
	return id, true
}
