package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// DailySalesDTO is the reconciliation record returned to clients.
type DailySalesDTO struct {
	ID         uuid.UUID `json:"id"`
	Date       time.Time `json:"date"`
	ReportTime time.Time `json:"report_time"`
	EmployeeID uuid.UUID `json:"employee_id"`

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

	FrontDiscrepancy   decimal.Decimal `json:"front_discrepancy"`
	BackDiscrepancy    decimal.Decimal `json:"back_discrepancy"`
	TotalExpected      decimal.Decimal `json:"total_expected"`
	TotalActual        decimal.Decimal `json:"total_actual"`
	OverallDiscrepancy decimal.Decimal `json:"overall_discrepancy"`

	Notes     *string            `json:"notes,omitempty"`
	Status    enums.SalesStatus  `json:"status"`
	Documents []SalesDocumentDTO `json:"documents"`
	CreatedAt time.Time          `json:"created_at"`
}

// SalesDocumentDTO is one attached piece of evidence.
type SalesDocumentDTO struct {
	ID           uuid.UUID          `json:"id"`
	SalesID      uuid.UUID          `json:"sales_id"`
	DocumentType enums.DocumentType `json:"document_type"`
	Filename     string             `json:"filename"`
	StorageURL   string             `json:"storage_url"`
	UploadTime   time.Time          `json:"upload_time"`
}

// CreateSalesInput holds the raw channel figures for a new record.
type CreateSalesInput struct {
	Date       time.Time
	EmployeeID uuid.UUID
	Figures    ChannelFigures
	Notes      *string
}

// UploadDocumentInput describes one multipart evidence upload.
type UploadDocumentInput struct {
	SalesID      uuid.UUID
	DocumentType enums.DocumentType
	Filename     string
	ContentType  string
}

// ListInput carries date filters and pagination for the sales ledger.
type ListInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *enums.SalesStatus
	Limit     int
	Offset    int
}

// ListResult pairs one page of records with the unfiltered total.
type ListResult struct {
	Records []DailySalesDTO
	Total   int64
}

// NewDailySalesDTO builds a DTO from the persisted model.
func NewDailySalesDTO(record *models.DailySales) *DailySalesDTO {
	dto := &DailySalesDTO{
		ID:         record.ID,
		Date:       record.Date,
		ReportTime: record.ReportTime,
		EmployeeID: record.EmployeeID,

		FrontRegisterAmount: record.FrontRegisterAmount,
		BackRegisterAmount:  record.BackRegisterAmount,
		CreditCardAmount:    record.CreditCardAmount,
		OTC1Amount:          record.OTC1Amount,
		OTC2Amount:          record.OTC2Amount,

		FrontRegisterCash: record.FrontRegisterCash,
		BackRegisterCash:  record.BackRegisterCash,
		CreditCardTotal:   record.CreditCardTotal,
		OTC1Total:         record.OTC1Total,
		OTC2Total:         record.OTC2Total,

		FrontDiscrepancy:   record.FrontDiscrepancy,
		BackDiscrepancy:    record.BackDiscrepancy,
		TotalExpected:      record.TotalExpected,
		TotalActual:        record.TotalActual,
		OverallDiscrepancy: record.OverallDiscrepancy,

		Notes:     record.Notes,
		Status:    record.Status,
		Documents: make([]SalesDocumentDTO, 0, len(record.Documents)),
		CreatedAt: record.CreatedAt,
	}
	for i := range record.Documents {
		dto.Documents = append(dto.Documents, *NewSalesDocumentDTO(&record.Documents[i]))
	}
	return dto
}

// NewSalesDocumentDTO maps one evidence row.
func NewSalesDocumentDTO(doc *models.SalesDocument) *SalesDocumentDTO {
	return &SalesDocumentDTO{
		ID:           doc.ID,
		SalesID:      doc.SalesID,
		DocumentType: doc.DocumentType,
		Filename:     doc.Filename,
		StorageURL:   doc.StorageURL,
		UploadTime:   doc.UploadTime,
	}
}

// NewDailySalesDTOs maps a slice of models.
func NewDailySalesDTOs(records []models.DailySales) []DailySalesDTO {
	out := make([]DailySalesDTO, 0, len(records))
	for i := range records {
		out = append(out, *NewDailySalesDTO(&records[i]))
	}
	return out
}
