package middleware

import (
	"fmt"
	"net/http"

	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses.
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := errors.New(errors.CodeInternal, fmt.Sprintf("panic: %v", rec))
					log.Error(r.Context(), "handler panicked", err)
					responses.Error(w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
