package middleware

import (
	"fmt"
	"net/http"

	"github.com/avillagomez/backoffice-backend/api/responses"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/logger"
)

func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					logger.FromContext(ctx).WithField("panic", rec).Error(ctx, "panic.recovered", err)
					responses.WriteError(ctx, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
