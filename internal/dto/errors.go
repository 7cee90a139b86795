package dto

// BaseError универсальный корневой формат ошибки
// Code: машинно-ориентированный код (snake_case)
// Message: краткое человеко-читаемое описание
// Details: дополнительная строка (пояснение)
// ProductID: товар, которого не хватило на складе (только для 409 по остаткам)
// Fields: для валидационных ошибок (имя поля + текст)
type BaseError struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Details   string       `json:"details,omitempty"`
	ProductID string       `json:"productId,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Семантические обёртки для swagger, по JSON совместимы с BaseError.

// ValidationErrorResponse 400
// Code: "validation_error"
type ValidationErrorResponse BaseError

// ConflictErrorResponse 409
// Пример: не хватает товара на складе, недопустимый переход статуса
// Code: "conflict"
type ConflictErrorResponse BaseError

// UnauthorizedErrorResponse 401
// Code: "unauthorized"
type UnauthorizedErrorResponse BaseError

// ForbiddenErrorResponse 403
// Code: "forbidden"
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404
// Code: "not_found"
type NotFoundErrorResponse BaseError

// RateLimitedErrorResponse 429
// Code: "rate_limited"
type RateLimitedErrorResponse BaseError

// RetryableErrorResponse 503
// Пример: конфликт сериализации в БД, запрос можно повторить
// Code: "retryable"
type RetryableErrorResponse BaseError

// InternalErrorResponse 500
// Code: "internal_error"
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewStockConflictError(msg, productID string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg, ProductID: productID})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewRateLimitedError(msg string) RateLimitedErrorResponse {
	return RateLimitedErrorResponse(BaseError{Code: "rate_limited", Message: msg})
}
func NewRetryableError(msg string) RetryableErrorResponse {
	return RetryableErrorResponse(BaseError{Code: "retryable", Message: msg})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
