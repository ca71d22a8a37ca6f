package cartstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
)

// DefaultCartTTL is how long an untouched cart survives in Redis. Every Save
// refreshes the TTL, so active sessions keep their cart indefinitely.
const DefaultCartTTL = 7 * 24 * time.Hour

var _ cart.Store = (*Redis)(nil)

// Redis stores one JSON-serialized cart per user under the key
// "cart:<userID>".
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a Redis-backed store. A non-positive ttl falls back to
// DefaultCartTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Load returns the user's cart, or an empty cart when none is stored.
func (r *Redis) Load(ctx context.Context, userID string) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "unmarshal cart")
	}
	return &c, nil
}

// Save stores the cart under the user's key and refreshes its TTL.
func (r *Redis) Save(ctx context.Context, userID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal cart")
	}

	if err := r.client.Set(ctx, cartKey(userID), data, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Clear removes the user's stored cart.
func (r *Redis) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func cartKey(userID string) string {
	return "cart:" + userID
}
