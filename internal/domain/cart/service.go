package cart

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/LucasSiw/apetrecho-core/internal/domain/coupon"
	"github.com/LucasSiw/apetrecho-core/internal/domain/product"
)

// Service runs ledger operations against a user's stored cart: it loads the
// cart, applies the mutation, and writes the cart back. This is the explicit
// session-scoped handle onto cart state — there is no ambient shared cart.
type Service struct {
	store    Store
	products product.Repository
	coupons  *coupon.Registry
	shipping ShippingPolicy
}

// NewService creates a cart Service.
func NewService(store Store, products product.Repository, coupons *coupon.Registry, shipping ShippingPolicy) *Service {
	return &Service{
		store:    store,
		products: products,
		coupons:  coupons,
		shipping: shipping,
	}
}

// Get returns the user's current cart together with its pricing breakdown.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, Pricing, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, Pricing{}, errors.Wrap(err, "load cart")
	}
	return c, s.shipping.Quote(c), nil
}

// AddItem resolves the product and adds one unit of it to the user's cart.
// Returns product.ErrNotFound when the product does not exist.
func (s *Service) AddItem(ctx context.Context, userID, productID string) (*Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %s", productID)
	}

	return s.mutate(ctx, userID, func(c *Cart) error {
		c.AddItem(p.ID, p.Name, p.Price)
		return nil
	})
}

// RemoveItem removes the product's line item from the user's cart.
// Removing an absent product is a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

// SetQuantity replaces the line item's quantity. Quantities below 1 leave the
// cart unchanged.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error {
		c.SetQuantity(productID, quantity)
		return nil
	})
}

// ApplyCoupon applies the coupon code to the user's cart. Returns
// coupon.ErrInvalidCoupon when the code is unknown or the subtotal is below
// the coupon's minimum; the cart is left untouched in that case.
func (s *Service) ApplyCoupon(ctx context.Context, userID, code string) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error {
		return c.ApplyCoupon(s.coupons, code)
	})
}

// RemoveCoupon drops the applied coupon from the user's cart.
func (s *Service) RemoveCoupon(ctx context.Context, userID string) (*Cart, error) {
	return s.mutate(ctx, userID, func(c *Cart) error {
		c.RemoveCoupon()
		return nil
	})
}

// Clear empties the user's cart and removes the persisted snapshot.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}

// Quote prices an already-loaded cart under the service's shipping policy.
func (s *Service) Quote(c *Cart) Pricing {
	return s.shipping.Quote(c)
}

func (s *Service) mutate(ctx context.Context, userID string, op func(c *Cart) error) (*Cart, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	if err := op(c); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, userID, c); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return c, nil
}
