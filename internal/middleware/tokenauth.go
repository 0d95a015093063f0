// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-Token"

// TokenResolver resolves a bearer token to an owner identifier.
type TokenResolver interface {
	Resolve(ctx context.Context, tok string) (string, error)
}

// TokenAuth enforces session-token authentication.
//
// It reads the token from the X-Token header and resolves it through
// the token store. A missing, unknown, or expired token gets a 401
// before the handler runs; callers cannot tell the three apart.
//
// On success the owner identifier is stored in the request context,
// where handlers retrieve it with GetUserIDFromContext.
func TokenAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := r.Header.Get(TokenHeader)
			if tok == "" {
				writeUnauthorized(w)
				return
			}
			ownerID, err := resolver.Resolve(r.Context(), tok)
			if err != nil {
				writeUnauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}

// GetUserIDFromContext extracts the authenticated owner identifier from
// the request context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
