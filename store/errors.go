package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
	ErrEmptyCart = errors.New("cart has no items")
	// ErrInsufficientStock returned when requested qty exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError names the product that could not cover the requested quantity.
type StockError struct {
	ProductID int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

// MissingProductError names a cart line whose product is no longer in the catalog.
type MissingProductError struct {
	ProductID int64
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("product %d no longer exists", e.ProductID)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
