package cartstore

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
	"github.com/LucasSiw/apetrecho-core/internal/domain/coupon"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleCart(t *testing.T) *cart.Cart {
	t.Helper()

	c := cart.New()
	c.AddItem("p1", "Furadeira", dec("35.00"))
	c.AddItem("p2", "Betoneira", dec("120.00"))

	reg := coupon.NewRegistry([]coupon.Coupon{
		{Code: "DESCONTO10", Type: coupon.DiscountPercentage, Value: dec("10")},
	})
	require.NoError(t, c.ApplyCoupon(reg, "DESCONTO10"))
	return c
}

func TestMemory_RoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	c := sampleCart(t)
	require.NoError(t, store.Save(ctx, "u1", c))

	got, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, c.Items, got.Items)
	require.NotNil(t, got.Coupon)
	assert.Equal(t, "DESCONTO10", got.Coupon.Code)
}

func TestMemory_LoadUnknownUser(t *testing.T) {
	store := NewMemory()

	got, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Nil(t, got.Coupon)
}

func TestMemory_Clear(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", sampleCart(t)))
	require.NoError(t, store.Clear(ctx, "u1"))

	got, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.Empty())

	// Clearing an absent cart is fine.
	require.NoError(t, store.Clear(ctx, "nobody"))
}

func TestMemory_CopiesIsolateCallers(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	c := sampleCart(t)
	require.NoError(t, store.Save(ctx, "u1", c))

	// Mutating the saved-from cart must not change the stored state.
	c.SetQuantity("p1", 50)
	c.RemoveCoupon()

	got, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
	require.NotNil(t, got.Coupon)

	// Mutating a loaded cart must not change the stored state either.
	got.SetQuantity("p1", 50)

	again, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestMemory_LastWriteWins(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	first := cart.New()
	first.AddItem("p1", "A", dec("10.00"))
	require.NoError(t, store.Save(ctx, "u1", first))

	second := cart.New()
	second.AddItem("p2", "B", dec("20.00"))
	require.NoError(t, store.Save(ctx, "u1", second))

	got, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p2", got.Items[0].ProductID)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c := cart.New()
				c.AddItem("p1", "A", dec("10.00"))
				_ = store.Save(ctx, "u1", c)
				_, _ = store.Load(ctx, "u1")
				_ = store.Clear(ctx, "u1")
			}
		}()
	}
	wg.Wait()
}
