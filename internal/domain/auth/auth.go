// Package auth models the administrative API keys that guard privileged
// operations. Keys are never stored raw: the server and the seeder derive the
// same peppered HMAC, and presented keys are compared in constant time.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-faster/errors"
)

// ErrAPIKeyNotFound is returned by Repository implementations when no key
// matches.
var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKey is the identity data for a stored administrative key.
type APIKey struct {
	ID      string
	KeyHash string
	Name    string
	Scopes  []string
}

// Repository provides lookup of API keys by their peppered hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
}

// HashKey returns the hex HMAC-SHA256 of the key under the pepper. The same
// derivation is used when seeding keys, so hashes line up across the seeder
// and the server.
func HashKey(pepper []byte, key string) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHash reports whether the computed hex sum matches the stored hex
// hash. The comparison is constant time to guard against timing
// side-channels.
func VerifyHash(hexSum, storedHex string) bool {
	sum, err := hex.DecodeString(hexSum)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(storedHex)
	if err != nil {
		return false
	}
	return hmac.Equal(sum, stored)
}
