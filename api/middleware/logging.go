package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/metrics"
)

// Logging emits one structured line per request and records HTTP metrics.
func Logging(log *logger.Logger, m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := log.WithRequestID(r.Context(), RequestIDFrom(r.Context()))
			ctx = log.WithFields(ctx, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(ww, r.WithContext(ctx))

			duration := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if m != nil {
				m.Requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(status)).Inc()
				m.Duration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
			}

			ctx = log.WithFields(ctx, map[string]any{
				"status":      status,
				"duration_ms": duration.Milliseconds(),
				"bytes":       ww.BytesWritten(),
			})
			log.Info(ctx, "request completed")
		})
	}
}
