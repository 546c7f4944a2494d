package controllers

import (
	"net/http"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/catalog"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

type createWholesalerRequest struct {
	Name          string  `json:"name" validate:"required"`
	IsDaily       bool    `json:"is_daily"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
}

type updateWholesalerRequest struct {
	Name          *string `json:"name,omitempty"`
	IsDaily       *bool   `json:"is_daily,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty"`
}

func WholesalerCreate(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createWholesalerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		wholesaler, err := svc.CreateWholesaler(r.Context(), catalog.CreateWholesalerInput{
			Name:          body.Name,
			IsDaily:       body.IsDaily,
			ContactPerson: body.ContactPerson,
			Email:         body.Email,
			Phone:         body.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, wholesaler)
	}
}

func WholesalerList(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		wholesalers, err := svc.ListWholesalers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, wholesalers)
	}
}

func WholesalerUpdate(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		var body updateWholesalerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		wholesaler, err := svc.UpdateWholesaler(r.Context(), id, catalog.UpdateWholesalerInput{
			Name:          body.Name,
			IsDaily:       body.IsDaily,
			ContactPerson: body.ContactPerson,
			Email:         body.Email,
			Phone:         body.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, wholesaler)
	}
}

func WholesalerDelete(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		if err := svc.DeleteWholesaler(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
