package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Checkout precondition failures. Both leave no partial order behind.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnauthenticated = errors.New("user is not authenticated")
)

// PersistenceError wraps a storage failure during order creation or reads.
// When it occurs during checkout the cart is left untouched so the user can
// retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
