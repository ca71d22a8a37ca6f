package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
)

// Service owns the order lifecycle: converting a finalized cart into an
// order, querying orders per user, and advancing an order's status along the
// transition graph.
type Service struct {
	orders   Repository
	carts    cart.Store
	shipping cart.ShippingPolicy
	now      func() time.Time
}

// NewService creates an order Service.
func NewService(orders Repository, carts cart.Store, shipping cart.ShippingPolicy) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		shipping: shipping,
		now:      time.Now,
	}
}

// Checkout snapshots the user's cart into a new Confirmed order, persists
// it, and clears the cart. The two side effects are atomic from the caller's
// perspective: when persisting fails the cart is untouched, and when
// clearing the cart fails the just-created order is deleted again. Either
// way a failed checkout can simply be retried.
func (s *Service) Checkout(ctx context.Context, userID string, addr Address, payment Payment) (*Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	pricing := s.shipping.Quote(c)

	couponCode := ""
	if c.Coupon != nil {
		couponCode = c.Coupon.Code
	}

	now := s.now()
	o := &Order{
		ID:                newOrderID(),
		UserID:            userID,
		Items:             c.Snapshot(),
		Address:           addr,
		Payment:           payment,
		Subtotal:          pricing.Subtotal,
		Discount:          pricing.Discount,
		Shipping:          pricing.Shipping,
		Total:             pricing.GrandTotal,
		CouponCode:        couponCode,
		Status:            StatusConfirmed,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(DeliveryEstimate),
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, &PersistenceError{Op: "create order", Err: err}
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// Roll the order back so the pair stays atomic.
		if delErr := s.orders.Delete(ctx, o.ID); delErr != nil {
			err = errors.Wrapf(err, "rollback order %s: %v", o.ID, delErr)
		}
		return nil, &PersistenceError{Op: "clear cart", Err: err}
	}

	return o, nil
}

// Get returns the order when it exists and belongs to the user. Absence and
// foreign ownership both return (nil, nil): not finding an order is a valid
// outcome, not an error.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get order", Err: err}
	}
	if o.UserID != userID {
		return nil, nil
	}
	return o, nil
}

// List returns the user's orders, most recently created first.
func (s *Service) List(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// Advance moves the order to the given status. Transitions outside the
// graph, including any transition out of a terminal status, fail with
// *InvalidTransitionError and leave the order unchanged.
func (s *Service) Advance(ctx context.Context, orderID string, to Status) (*Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "get order", Err: err}
	}

	if !CanTransition(o.Status, to) {
		return nil, &InvalidTransitionError{From: o.Status, To: to}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, o.Status, to); err != nil {
		if errors.Is(err, ErrNotFound) {
			// The order changed status underneath us; report the stale
			// transition rather than a missing order.
			return nil, &InvalidTransitionError{From: o.Status, To: to}
		}
		return nil, &PersistenceError{Op: "update status", Err: err}
	}

	o.Status = to
	return o, nil
}

// newOrderID returns a time-ordered identifier with a random suffix, so IDs
// sort by creation time yet stay unique under concurrent checkouts.
func newOrderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
