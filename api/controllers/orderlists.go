package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/orderlists"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/types"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxListOffset    = 1 << 30
)

type addOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Cadence   *string   `json:"cadence,omitempty"`
	Comment   *string   `json:"comment,omitempty"`
}

type updateOrderItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// OrderListAddItem routes a product into its wholesaler's open list,
// opening one when none is pending.
func OrderListAddItem(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		var body addOrderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		input := orderlists.AddToOrderInput{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			Comment:   body.Comment,
		}
		if body.Cadence != nil {
			cadence, err := enums.ParseCadence(strings.TrimSpace(*body.Cadence))
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cadence"))
				return
			}
			input.CadenceOverride = &cadence
		}

		list, err := svc.AddToOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, list)
	}
}

func OrderListUpdateItem(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		var body updateOrderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		list, err := svc.UpdateItemQuantity(r.Context(), itemID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func OrderListRemoveItem(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		if err := svc.RemoveItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// OrderListPending shows the open lists for one cadence, the view used to
// assemble the day's or month's purchase round.
func OrderListPending(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		cadence, err := cadenceQueryParam(r)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		lists, err := svc.ListPending(r.Context(), cadence)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, lists)
	}
}

func OrderListHistory(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		input, err := orderListHistoryInput(r)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, types.Page{
			Items:  result.Lists,
			Total:  result.Total,
			Limit:  input.Limit,
			Offset: input.Offset,
		})
	}
}

func OrderListDetail(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		list, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func OrderListDelete(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func OrderListFinalize(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		list, err := svc.FinalizeList(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// OrderListFinalizeCadence stamps every pending list of the cadence in one
// sweep, the end-of-round action.
func OrderListFinalizeCadence(svc orderlists.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "order lists service unavailable"))
			return
		}

		cadence, err := cadenceQueryParam(r)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		finalized, err := svc.FinalizeCadence(r.Context(), cadence)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"finalized": finalized})
	}
}

func cadenceQueryParam(r *http.Request) (enums.Cadence, error) {
	raw := validators.ParseQueryString(r, "cadence")
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter cadence is required")
	}
	cadence, err := enums.ParseCadence(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cadence")
	}
	return cadence, nil
}

func orderListHistoryInput(r *http.Request) (orderlists.ListInput, error) {
	input := orderlists.ListInput{
		SortBy:    validators.ParseQueryString(r, "sort_by"),
		SortOrder: validators.ParseQueryString(r, "sort_order"),
	}

	if raw := validators.ParseQueryString(r, "cadence"); raw != "" {
		cadence, err := enums.ParseCadence(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cadence")
		}
		input.Cadence = &cadence
	}

	if raw := validators.ParseQueryString(r, "status"); raw != "" {
		status, err := enums.ParseOrderListStatus(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	var err error
	if input.StartDate, err = validators.ParseQueryDate(r, "start_date"); err != nil {
		return input, err
	}
	if input.EndDate, err = validators.ParseQueryDate(r, "end_date"); err != nil {
		return input, err
	}
	if input.Limit, err = validators.ParseQueryInt(r, "limit", defaultListLimit, 1, maxListLimit); err != nil {
		return input, err
	}
	if input.Offset, err = validators.ParseQueryInt(r, "offset", 0, 0, maxListOffset); err != nil {
		return input, err
	}
	return input, nil
}
