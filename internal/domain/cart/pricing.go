package cart

import "github.com/shopspring/decimal"

// ShippingPolicy controls the flat-fee shipping rule applied at checkout:
// shipping is free when the subtotal exceeds FreeAbove, otherwise FlatFee
// is charged.
type ShippingPolicy struct {
	FreeAbove decimal.Decimal
	FlatFee   decimal.Decimal
}

// Pricing is the full monetary breakdown of a cart at checkout time.
type Pricing struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Shipping returns the shipping fee for the given subtotal.
func (p ShippingPolicy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeAbove) {
		return decimal.Zero
	}
	return p.FlatFee
}

// Quote prices the cart under the policy. The grand total is the discounted
// total plus shipping and is never negative.
func (p ShippingPolicy) Quote(c *Cart) Pricing {
	subtotal := c.Subtotal()
	discount := c.Discount()
	shipping := p.Shipping(subtotal)

	return Pricing{
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shipping,
		GrandTotal: c.Total().Add(shipping),
	}
}
