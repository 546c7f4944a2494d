package middleware

import (
	"net/http"
	"strings"

	"github.com/avillagomez/backoffice-backend/api/responses"
	pkgauth "github.com/avillagomez/backoffice-backend/pkg/auth"
	"github.com/avillagomez/backoffice-backend/pkg/auth/session"
	"github.com/avillagomez/backoffice-backend/pkg/config"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/logger"
)

// Auth validates a bearer token, checks the session is still live and seeds
// the request context with the claims.
func Auth(cfg config.AuthConfig, verifier session.AccessSessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithRole(ctx, string(claims.Role))
			ctx = logger.FromContext(ctx).WithFields(map[string]any{
				"user_id":    claims.UserID.String(),
				"actor_role": string(claims.Role),
			}).WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
