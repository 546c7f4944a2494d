package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/customerorders"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/types"
)

type createCustomerOrderRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required"`
	CustomerContact *string `json:"customer_contact,omitempty"`
	OrderDate       *string `json:"order_date,omitempty"`
	IsPaid          bool    `json:"is_paid"`
	Status          *string `json:"status,omitempty"`
}

type updateCustomerOrderRequest struct {
	CustomerName    *string `json:"customer_name,omitempty"`
	CustomerContact *string `json:"customer_contact,omitempty"`
	IsPaid          *bool   `json:"is_paid,omitempty"`
	Status          *string `json:"status,omitempty"`
}

type addCustomerOrderItemRequest struct {
	ProductNameQuery *string          `json:"product_name,omitempty"`
	CustomName       *string          `json:"custom_name,omitempty"`
	Quantity         int              `json:"quantity" validate:"required,min=1"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Status           *string          `json:"status,omitempty"`
}

type updateCustomerOrderItemRequest struct {
	Quantity *int             `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Status   *string          `json:"status,omitempty"`
}

func CustomerOrderCreate(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		var body createCustomerOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		input := customerorders.CreateOrderInput{
			CustomerName:    body.CustomerName,
			CustomerContact: body.CustomerContact,
			IsPaid:          body.IsPaid,
		}
		if body.OrderDate != nil {
			parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*body.OrderDate))
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order_date must be a YYYY-MM-DD date"))
				return
			}
			input.OrderDate = &parsed
		}
		if body.Status != nil {
			status, err := enums.ParseCustomerOrderStatus(strings.TrimSpace(*body.Status))
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		order, err := svc.CreateOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func CustomerOrderUpdate(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		var body updateCustomerOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		input := customerorders.UpdateOrderInput{
			CustomerName:    body.CustomerName,
			CustomerContact: body.CustomerContact,
			IsPaid:          body.IsPaid,
		}
		if body.Status != nil {
			status, err := enums.ParseCustomerOrderStatus(strings.TrimSpace(*body.Status))
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		order, err := svc.UpdateOrder(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func CustomerOrderDetail(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func CustomerOrderList(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		input := customerorders.ListInput{}
		if raw := validators.ParseQueryString(r, "status"); raw != "" {
			status, err := enums.ParseCustomerOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		var err error
		if input.StartDate, err = validators.ParseQueryDate(r, "start_date"); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}
		if input.EndDate, err = validators.ParseQueryDate(r, "end_date"); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}
		if input.Limit, err = validators.ParseQueryInt(r, "limit", defaultListLimit, 1, maxListLimit); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}
		if input.Offset, err = validators.ParseQueryInt(r, "offset", 0, 0, maxListOffset); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		result, err := svc.ListOrders(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, types.Page{
			Items:  result.Orders,
			Total:  result.Total,
			Limit:  input.Limit,
			Offset: input.Offset,
		})
	}
}

func CustomerOrderDelete(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		if err := svc.DeleteOrder(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CustomerOrderAddItem appends a line by catalog name lookup, or as a custom
// off-catalog item when custom_name is set.
func CustomerOrderAddItem(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		orderID, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		var body addCustomerOrderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		input := customerorders.AddItemInput{
			ProductNameQuery: body.ProductNameQuery,
			CustomName:       body.CustomName,
			Quantity:         body.Quantity,
			Price:            body.Price,
		}
		if body.Status != nil {
			status, err := enums.ParseOrderItemStatus(strings.TrimSpace(*body.Status))
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		order, err := svc.AddItem(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func CustomerOrderUpdateItem(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		var body updateCustomerOrderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		input := customerorders.UpdateItemInput{
			Quantity: body.Quantity,
			Price:    body.Price,
		}
		if body.Status != nil {
			status, err := enums.ParseOrderItemStatus(strings.TrimSpace(*body.Status))
			if err != nil {
				responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		order, err := svc.UpdateItem(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func CustomerOrderRemoveItem(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		order, err := svc.RemoveItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// CustomerOrderProductSuggestions backs the item-entry autocomplete with
// catalog name matches.
func CustomerOrderProductSuggestions(svc customerorders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "customer orders service unavailable"))
			return
		}

		query := validators.ParseQueryString(r, "q")
		if query == "" {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter q is required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultSearchLimit, 1, maxSearchLimit)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		suggestions, err := svc.SearchProducts(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, suggestions)
	}
}
