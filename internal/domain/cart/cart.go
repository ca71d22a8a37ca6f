// Package cart implements the cart ledger: line items, coupon application,
// and all derived monetary values. The ledger is pure computation — it does
// no I/O and all arithmetic uses decimal values, so totals are exact and
// reproducible regardless of how many operations produced the cart.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/LucasSiw/apetrecho-core/internal/domain/coupon"
)

// LineItem is one product entry in a cart. Items are unique by ProductID;
// re-adding a product increments its quantity instead of duplicating the row.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart holds a user's line items and at most one applied coupon.
// A Cart is owned by a single session; it is not safe for concurrent use.
type Cart struct {
	Items  []LineItem     `json:"items"`
	Coupon *coupon.Coupon `json:"coupon,omitempty"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the product to the cart. If a line item with the
// same product ID already exists its quantity is incremented by 1.
func (c *Cart) AddItem(productID, name string, unitPrice decimal.Decimal) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// RemoveItem removes the line item with the given product ID.
// An absent ID is a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of the line item with the given product
// ID. Quantities below 1 are ignored and the original quantity is preserved;
// removal is always an explicit RemoveItem.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and drops any applied coupon.
func (c *Cart) Clear() {
	c.Items = nil
	c.Coupon = nil
}

// ApplyCoupon looks up the code in the registry (case-insensitive) and
// applies it to the cart, replacing any previously applied coupon. It returns
// coupon.ErrInvalidCoupon when the code is unknown or the cart subtotal does
// not reach the coupon's minimum; the previously applied coupon is kept in
// that case and the cart remains usable.
func (c *Cart) ApplyCoupon(reg *coupon.Registry, code string) error {
	cp, ok := reg.Lookup(code)
	if !ok {
		return coupon.ErrInvalidCoupon
	}
	if !cp.Eligible(c.Subtotal()) {
		return coupon.ErrInvalidCoupon
	}
	c.Coupon = &cp
	return nil
}

// RemoveCoupon drops the applied coupon unconditionally.
func (c *Cart) RemoveCoupon() {
	c.Coupon = nil
}

// Subtotal returns the exact sum of unit price times quantity over all items.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

// Discount returns the discount granted by the applied coupon, or zero when
// no coupon is applied. The discount never exceeds the subtotal.
func (c *Cart) Discount() decimal.Decimal {
	if c.Coupon == nil {
		return decimal.Zero
	}

	subtotal := c.Subtotal()
	switch c.Coupon.Type {
	case coupon.DiscountPercentage:
		// Values above 100 are valid registry data; cap at the subtotal.
		d := subtotal.Mul(c.Coupon.Value).Div(hundred).Round(2)
		return decimal.Min(d, subtotal)
	case coupon.DiscountFixed:
		return decimal.Min(c.Coupon.Value, subtotal).Round(2)
	default:
		return decimal.Zero
	}
}

// Total returns subtotal minus discount, floored at zero.
func (c *Cart) Total() decimal.Decimal {
	total := c.Subtotal().Sub(c.Discount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Snapshot returns a value copy of the cart's line items. Mutating the cart
// afterwards does not affect the returned slice.
func (c *Cart) Snapshot() []LineItem {
	if len(c.Items) == 0 {
		return nil
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}

// Empty reports whether the cart has no line items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

var hundred = decimal.NewFromInt(100)
