package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/api/middleware"
	"github.com/avillagomez/backoffice-backend/api/responses"
	"github.com/avillagomez/backoffice-backend/api/validators"
	"github.com/avillagomez/backoffice-backend/internal/sales"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/types"
)

type createSalesRequest struct {
	Date  string  `json:"date" validate:"required"`
	Notes *string `json:"notes,omitempty"`

	FrontRegisterAmount decimal.Decimal `json:"front_register_amount"`
	BackRegisterAmount  decimal.Decimal `json:"back_register_amount"`
	CreditCardAmount    decimal.Decimal `json:"credit_card_amount"`
	OTC1Amount          decimal.Decimal `json:"otc1_amount"`
	OTC2Amount          decimal.Decimal `json:"otc2_amount"`

	FrontRegisterCash decimal.Decimal `json:"front_register_cash"`
	BackRegisterCash  decimal.Decimal `json:"back_register_cash"`
	CreditCardTotal   decimal.Decimal `json:"credit_card_total"`
	OTC1Total         decimal.Decimal `json:"otc1_total"`
	OTC2Total         decimal.Decimal `json:"otc2_total"`
}

// SalesCreate files the end-of-day report. The reporting employee is the
// authenticated caller, never a body field.
func SalesCreate(svc sales.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		employeeID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var body createSalesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(body.Date))
		if err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be a YYYY-MM-DD date"))
			return
		}

		record, err := svc.Create(r.Context(), sales.CreateSalesInput{
			Date:       date,
			EmployeeID: employeeID,
			Notes:      body.Notes,
			Figures: sales.ChannelFigures{
				FrontRegisterAmount: body.FrontRegisterAmount,
				BackRegisterAmount:  body.BackRegisterAmount,
				CreditCardAmount:    body.CreditCardAmount,
				OTC1Amount:          body.OTC1Amount,
				OTC2Amount:          body.OTC2Amount,
				FrontRegisterCash:   body.FrontRegisterCash,
				BackRegisterCash:    body.BackRegisterCash,
				CreditCardTotal:     body.CreditCardTotal,
				OTC1Total:           body.OTC1Total,
				OTC2Total:           body.OTC2Total,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func SalesDetail(svc sales.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

func SalesList(svc sales.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		input := sales.ListInput{}
		if raw := validators.ParseQueryString(r, "status"); raw != "" {
			status, err := enums.ParseSalesStatus(raw)
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

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, types.Page{
			Items:  result.Records,
			Total:  result.Total,
			Limit:  input.Limit,
			Offset: input.Offset,
		})
	}
}

func SalesDelete(svc sales.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
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

// SalesUploadDocument attaches one multipart evidence file to a report.
func SalesUploadDocument(svc sales.Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		salesID, err := validators.PathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		docType, err := enums.ParseDocumentType(strings.TrimSpace(r.FormValue("document_type")))
		if err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid document_type"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		document, err := svc.UploadDocument(r.Context(), sales.UploadDocumentInput{
			SalesID:      salesID,
			DocumentType: docType,
			Filename:     header.Filename,
			ContentType:  contentType,
		}, file)
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, document)
	}
}

func SalesDeleteDocument(svc sales.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		documentID, err := validators.PathUUID(r, "documentId")
		if err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		if err := svc.DeleteDocument(r.Context(), documentID); err != nil {
			responses.WriteError(r.Context(), w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
