package middleware

import (
	"net/http"
	"time"

	"github.com/avillagomez/backoffice-backend/pkg/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging emits one start and one completion line per request.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := logger.FromContext(r.Context()).WithFields(map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			ctx := scoped.WithContext(r.Context())

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			scoped.Info(ctx, "request.start")

			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			scoped.WithFields(map[string]any{
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info(ctx, "request.complete")
		})
	}
}
