// Package cartstore provides cart.Store implementations: an in-process map
// for tests and single-instance deployments, and a Redis-backed store for
// carts that must survive restarts.
package cartstore

import (
	"context"
	"sync"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
)

var _ cart.Store = (*Memory)(nil)

// Memory keeps one cart per user in process memory.
type Memory struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{carts: make(map[string]*cart.Cart)}
}

// Load returns a copy of the user's cart, or an empty cart when none is
// stored. The copy keeps callers from mutating stored state outside Save.
func (m *Memory) Load(_ context.Context, userID string) (*cart.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.carts[userID]
	if !ok {
		return cart.New(), nil
	}

	c := &cart.Cart{Items: stored.Snapshot()}
	if stored.Coupon != nil {
		cp := *stored.Coupon
		c.Coupon = &cp
	}
	return c, nil
}

// Save stores a copy of the cart under the user's ID, replacing any
// previous cart. Last write wins.
func (m *Memory) Save(_ context.Context, userID string, c *cart.Cart) error {
	stored := &cart.Cart{Items: c.Snapshot()}
	if c.Coupon != nil {
		cp := *c.Coupon
		stored.Coupon = &cp
	}

	m.mu.Lock()
	m.carts[userID] = stored
	m.mu.Unlock()
	return nil
}

// Clear removes the user's stored cart.
func (m *Memory) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	delete(m.carts, userID)
	m.mu.Unlock()
	return nil
}
