package api

import (
	"context"
	"net/http"

	"github.com/LucasSiw/apetrecho-core/internal/domain/auth"
)

// userIDHeader carries the authenticated user's opaque identifier, set by
// the session layer in front of this service.
const userIDHeader = "X-User-ID"

// apiKeyHeader carries the administrative API key for status transitions.
const apiKeyHeader = "Api-Key"

type userIDKey struct{}

// UserIDFromContext extracts the authenticated user ID from the context.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequireUser rejects requests without a user identity and stores the user
// ID in the request context for the handlers downstream.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			respondError(w, r, http.StatusUnauthorized, "unauthenticated", "missing user identity")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAPIKey authenticates administrative requests: the presented key is
// hashed with the configured pepper, looked up, and verified in constant
// time.
func (h *Handler) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			respondError(w, r, http.StatusUnauthorized, "unauthorized", "missing api key")
			return
		}

		sum := auth.HashKey(h.pepper, key)
		info, err := h.apikeys.FindByHash(r.Context(), sum)
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "unauthorized", "invalid api key")
			return
		}

		if !auth.VerifyHash(sum, info.KeyHash) {
			respondError(w, r, http.StatusUnauthorized, "unauthorized", "invalid api key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
