package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipping() ShippingPolicy {
	return ShippingPolicy{
		FreeAbove: dec("99"),
		FlatFee:   dec("15"),
	}
}

func TestShippingPolicy_Shipping(t *testing.T) {
	policy := testShipping()

	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{name: "above threshold is free", subtotal: "99.01", want: "0"},
		{name: "at threshold still pays", subtotal: "99", want: "15"},
		{name: "below threshold pays flat fee", subtotal: "30", want: "15"},
		{name: "zero subtotal pays flat fee", subtotal: "0", want: "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Shipping(dec(tt.subtotal))
			assert.True(t, dec(tt.want).Equal(got),
				"expected shipping %s for subtotal %s, got %s", tt.want, tt.subtotal, got)
		})
	}
}

func TestShippingPolicy_Quote(t *testing.T) {
	policy := testShipping()
	reg := testRegistry()

	t.Run("discounted cart over free-shipping threshold", func(t *testing.T) {
		c := New()
		c.AddItem("p1", "Betoneira", dec("100.00"))
		c.SetQuantity("p1", 2)
		require.NoError(t, c.ApplyCoupon(reg, "DESCONTO10"))

		got := policy.Quote(c)

		assert.True(t, dec("200.00").Equal(got.Subtotal), "subtotal: %s", got.Subtotal)
		assert.True(t, dec("20.00").Equal(got.Discount), "discount: %s", got.Discount)
		assert.True(t, got.Shipping.IsZero(), "shipping: %s", got.Shipping)
		assert.True(t, dec("180.00").Equal(got.GrandTotal), "grand total: %s", got.GrandTotal)
	})

	t.Run("small cart pays flat shipping", func(t *testing.T) {
		c := New()
		c.AddItem("p1", "Trena", dec("30.00"))

		got := policy.Quote(c)

		assert.True(t, dec("30.00").Equal(got.Subtotal), "subtotal: %s", got.Subtotal)
		assert.True(t, got.Discount.IsZero(), "discount: %s", got.Discount)
		assert.True(t, dec("15").Equal(got.Shipping), "shipping: %s", got.Shipping)
		assert.True(t, dec("45.00").Equal(got.GrandTotal), "grand total: %s", got.GrandTotal)
	})

	t.Run("fixed coupon covering the subtotal leaves only shipping", func(t *testing.T) {
		c := New()
		c.AddItem("p1", "Trena", dec("30.00"))
		require.NoError(t, c.ApplyCoupon(reg, "FRETE50"))

		got := policy.Quote(c)

		assert.True(t, dec("30.00").Equal(got.Discount), "discount: %s", got.Discount)
		assert.True(t, dec("15").Equal(got.GrandTotal), "grand total: %s", got.GrandTotal)
		assert.False(t, got.GrandTotal.IsNegative())
	})
}
