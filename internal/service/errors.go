package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Классы ошибок. Конкретные ошибки ниже оборачивают один из них,
// транспорт выбирает HTTP-код по классу через errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTooManyRequests = errors.New("too many requests")
)

type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string { return e.msg }
func (e *classError) Unwrap() error { return e.class }

func newError(class error, msg string) error { return &classError{msg: msg, class: class} }

// invalid: ошибка валидации входных данных с пояснением для клиента.
func invalid(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidQuantity = newError(ErrValidation, "invalid quantity")
	ErrInvalidStatus   = newError(ErrValidation, "invalid status")
	ErrInvalidRating   = newError(ErrValidation, "rating must be between 1 and 5")
	ErrEmptyCart       = newError(ErrValidation, "cart is empty")
	ErrPasswordsDiffer = newError(ErrValidation, "passwords do not match")
	ErrInvalidCode     = newError(ErrValidation, "invalid or expired reset code")

	ErrUserNotFound             = newError(ErrNotFound, "user not found")
	ErrProductNotFound          = newError(ErrNotFound, "product not found")
	ErrCartItemNotFound         = newError(ErrNotFound, "cart item not found")
	ErrOrderNotFound            = newError(ErrNotFound, "order not found")
	ErrServiceNotFound          = newError(ErrNotFound, "service not found")
	ErrConsultationNotFound     = newError(ErrNotFound, "consultation not found")
	ErrConsultationTypeNotFound = newError(ErrNotFound, "consultation type not found")
	ErrDesignCategoryNotFound   = newError(ErrNotFound, "design category not found")
	ErrDesignStyleNotFound      = newError(ErrNotFound, "design style not found")

	ErrInsufficientStock = newError(ErrConflict, "insufficient stock")
	ErrDuplicateRating   = newError(ErrConflict, "product already rated for this order")
	ErrInvalidTransition = newError(ErrConflict, "invalid order status transition")
	ErrEmailExists       = newError(ErrConflict, "email already exists")
	ErrUsernameExists    = newError(ErrConflict, "username already exists")

	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid credentials")
	ErrNotPurchased       = newError(ErrForbidden, "product was not purchased in a completed order")

	// ErrLedgerInconsistent: откат проданного количества не сошёлся со складом. Внутренняя ошибка.
	ErrLedgerInconsistent = errors.New("inventory ledger inconsistent")
)

// StockError: нехватка остатка по конкретному товару.
type StockError struct {
	ProductID uuid.UUID
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// TransitionError: недопустимый переход статуса заказа.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
