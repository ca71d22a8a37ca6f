package cart

import "context"

// Store persists one cart per user across requests. Implementations live in
// internal/cartstore; the ledger itself never touches them.
//
// Load returns an empty cart for users without a stored one. Within a single
// user's session operations run sequentially; if two sessions race on the
// same cart the last write wins.
type Store interface {
	Load(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, userID string, c *Cart) error
	Clear(ctx context.Context, userID string) error
}
