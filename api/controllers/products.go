package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/catalog"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type createProductRequest struct {
	Code             string          `json:"code" validate:"required"`
	Name             string          `json:"name" validate:"required"`
	Size             *string         `json:"size,omitempty"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	WholesalerID     uuid.UUID       `json:"wholesaler_id" validate:"required"`
	AvailableInStore bool            `json:"available_in_store"`
}

type updateProductRequest struct {
	Code             *string          `json:"code,omitempty"`
	Name             *string          `json:"name,omitempty"`
	Size             *string          `json:"size,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	WholesalerID     *uuid.UUID       `json:"wholesaler_id,omitempty"`
	AvailableInStore *bool            `json:"available_in_store,omitempty"`
}

type bulkDeleteProductsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

func ProductCreate(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Code:             body.Code,
			Name:             body.Name,
			Size:             body.Size,
			Price:            body.Price,
			WholesalerID:     body.WholesalerID,
			AvailableInStore: body.AvailableInStore,
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductList(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

func ProductUpdate(svc catalog.Service) http.HandlerFunc {
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

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, catalog.UpdateProductInput{
			Code:             body.Code,
			Name:             body.Name,
			Size:             body.Size,
			Price:            body.Price,
			WholesalerID:     body.WholesalerID,
			AvailableInStore: body.AvailableInStore,
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc catalog.Service) http.HandlerFunc {
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

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ProductBulkDelete(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body bulkDeleteProductsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		deleted, err := svc.BulkDeleteProducts(r.Context(), body.IDs)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"deleted": deleted})
	}
}

func ProductSearch(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
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

		products, err := svc.SearchProducts(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductImport ingests a multipart xlsx upload and bulk-inserts the rows.
func ProductImport(svc catalog.Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		result, err := svc.ImportSpreadsheet(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
