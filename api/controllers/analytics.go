package controllers

import (
	"net/http"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/analytics"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

const maxTopLimit = 50

// AnalyticsReport serves the purchasing rollups for a date window, defaulting
// to the trailing thirty days.
func AnalyticsReport(svc analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		input := analytics.Input{}

		start, err := validators.ParseQueryDate(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}
		if start != nil {
			input.StartDate = *start
		}

		end, err := validators.ParseQueryDate(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}
		if end != nil {
			input.EndDate = *end
		}

		if input.TopLimit, err = validators.ParseQueryInt(r, "top_limit", 0, 0, maxTopLimit); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		report, err := svc.Report(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
