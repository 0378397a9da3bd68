package e

import (
	"errors"
	"fmt"
)

var (
	// Ошибки корзины и оформления заказа
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrCheckoutBlocked    = errors.New("checkout blocked")
	ErrPersistenceFailure = errors.New("persistence failure")

	// 400 Bad Request
	ErrInvalidRequest          = errors.New("invalid request")
	ErrSizeRequired            = errors.New("size is required for this product")
	ErrSizeMismatch            = errors.New("size does not belong to product")
	ErrProductUnavailable      = errors.New("product is unavailable")
	ErrIllegalStatusTransition = errors.New("illegal order status transition")
	ErrUnknownOrderStatus      = errors.New("unknown order status")

	// 401 Unauthorized
	ErrUnauthorized = errors.New("unauthorized")

	// 404 Not Found
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrProfileNotFound = errors.New("profile not found")

	// 500
	ErrInternalServerError = errors.New("internal server error")

	// Внутренние ошибки
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrIncorrectEnvVariable = errors.New("incorrect environment variable")
	ErrCacheMiss            = errors.New("cache miss")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// CheckoutBlocked возвращает ErrCheckoutBlocked с указанием недостающего поля.
func CheckoutBlocked(field string) error {
	return fmt.Errorf("%w: %s is required", ErrCheckoutBlocked, field)
}

// Persistence помечает ошибку хранилища как ErrPersistenceFailure, сохраняя исходное сообщение.
func Persistence(err error) error {
	if err == nil || errors.Is(err, ErrPersistenceFailure) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
}

// IsCacheMiss сообщает, что значение отсутствует в кэше.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// LineUnavailable возвращает ErrCheckoutBlocked для строки корзины, которую нельзя оформить.
func LineUnavailable(productName, reason string) error {
	return fmt.Errorf("%w: item %q %s", ErrCheckoutBlocked, productName, reason)
}
