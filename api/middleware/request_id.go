package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/avillagomez/backoffice-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	// Caller-supplied ids longer than this are replaced rather than echoed.
	maxRequestIDLength = 64
)

// RequestID echoes or mints a request id and seeds the context with a
// request-scoped logger carrying it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(reqID).WithContext(ctx)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
