package controllers

import (
	"net"
	"net/http"
	"strings"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/users"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthRegister wires account creation into the HTTP layer.
func AuthRegister(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		input := users.RegisterInput{
			Username: body.Username,
			Email:    body.Email,
			Password: body.Password,
		}
		if raw := strings.TrimSpace(body.Role); raw != "" {
			role, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
				return
			}
			input.Role = role
		}

		user, err := svc.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func AuthLogin(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		result, err := svc.Login(r.Context(), users.LoginInput{
			Username: body.Username,
			Password: body.Password,
			ClientIP: clientIP(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func AuthRefresh(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body refreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), users.RefreshInput{
			AccessToken:  body.AccessToken,
			RefreshToken: body.RefreshToken,
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, pair)
	}
}

// AuthLogout revokes the session named by the bearer token. Expired tokens
// are accepted so a stale client can still log out.
func AuthLogout(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		token := bearerFromHeader(r)
		if token == "" {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

func bearerFromHeader(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

// clientIP resolves the caller address, trusting the first forwarded hop
// when the request came through a proxy.
func clientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
