package coupon

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage reduces the subtotal by a percentage.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed reduces the subtotal by a fixed amount, capped at the subtotal.
	DiscountFixed DiscountType = "fixed"
)

// ErrInvalidCoupon is returned when a coupon code is not found in the
// registry or the cart subtotal does not reach the coupon's minimum.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// Coupon defines a discount code's behaviour and eligibility constraints.
// Coupons are immutable and drawn from a fixed registry loaded at startup.
type Coupon struct {
	Code        string
	Type        DiscountType
	Value       decimal.Decimal
	MinSubtotal decimal.Decimal
	Description string
}

// Eligible reports whether the coupon can be applied to a cart with the
// given subtotal. A zero MinSubtotal means no minimum.
func (c Coupon) Eligible(subtotal decimal.Decimal) bool {
	if c.MinSubtotal.IsPositive() {
		return subtotal.GreaterThanOrEqual(c.MinSubtotal)
	}
	return true
}
