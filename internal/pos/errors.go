package pos

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a cart line references a
	// product that is not in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound is returned when a sale lookup misses.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrEmptyCart rejects a checkout without line items.
	ErrEmptyCart = errors.New("cart is empty")
)

// InsufficientStockError names the product that cannot cover the
// requested quantity.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError
// and returns it when so.
func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
