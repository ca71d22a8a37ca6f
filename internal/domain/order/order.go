package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
)

// DeliveryEstimate is how far ahead of creation an order's estimated
// delivery date is set.
const DeliveryEstimate = 7 * 24 * time.Hour

// ErrNotFound is returned by Repository implementations when no order
// matches the requested ID.
var ErrNotFound = errors.New("order not found")

// Address is the delivery address captured at checkout. It is validated by
// the form layer and passed through this core unmodified.
type Address struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// Payment is the payment selection captured at checkout. No real charge is
// made; the selection is stored alongside the order as-is.
type Payment struct {
	Method string `json:"method"`
	Label  string `json:"label"`
}

// Order is an immutable snapshot of a checked-out cart. Only the Status
// field ever changes after creation.
type Order struct {
	ID                string
	UserID            string
	Items             []cart.LineItem
	Address           Address
	Payment           Payment
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	Shipping          decimal.Decimal
	Total             decimal.Decimal
	CouponCode        string
	Status            Status
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// Repository defines persistence operations for orders. Implementations
// report storage failures as plain errors; the service wraps them into
// *PersistenceError before they reach callers.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	// Delete removes an order by ID. It exists for compensation when the
	// second half of the checkout pair (clearing the cart) fails.
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Order, error)
	// ListByUser returns the user's orders most recently created first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// UpdateStatus transitions an order from the expected current status to
	// the new one, returning ErrNotFound when the order no longer holds the
	// expected status.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}
