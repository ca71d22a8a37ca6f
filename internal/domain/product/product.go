package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item as seen by the checkout core: identity, display
// metadata, and a unit price. The catalog itself is owned elsewhere; this
// core never mutates it.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	ImageURL string
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
