package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/pkg/config"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

const readyCheckTimeout = 3 * time.Second

// Pinger is the health surface shared by the datastore clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency and reports per-check status.
func HealthReady(cfg *config.Config, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		statuses := map[string]string{}
		healthy := true
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				statuses[name] = err.Error()
				healthy = false
				continue
			}
			statuses[name] = "ok"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency check failed").WithDetails(statuses)
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": statuses})
	}
}
