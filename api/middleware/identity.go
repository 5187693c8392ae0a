package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

type userIDKey struct{}

const userIDHeader = "X-User-ID"

// UserIdentity resolves the acting user from the X-User-ID header set by the
// POS terminal after login. Routes behind this middleware reject requests
// without a valid id.
func UserIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			responses.Error(w, errors.New(errors.CodeUnauthorized, "missing user identity"))
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			responses.Error(w, errors.New(errors.CodeUnauthorized, "invalid user identity"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFrom returns the authenticated user id, or 0 when absent.
func UserIDFrom(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey{}).(int64); ok {
		return id
	}
	return 0
}
