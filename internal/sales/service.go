package sales

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/logger"
)

// ObjectStore is the slice of the storage client the service needs.
type ObjectStore interface {
	UploadObject(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	DeleteObject(ctx context.Context, objectName string) error
	MediaURL(objectName string) string
}

// Service exposes daily sales reconciliation and evidence handling.
type Service interface {
	Create(ctx context.Context, input CreateSalesInput) (*DailySalesDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*DailySalesDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UploadDocument(ctx context.Context, input UploadDocumentInput, body io.Reader) (*SalesDocumentDTO, error)
	DeleteDocument(ctx context.Context, documentID uuid.UUID) error
}

type service struct {
	repo           *Repository
	dbClient       *db.Client
	store          ObjectStore
	documentFolder string
	now            func() time.Time
}

// NewService constructs a daily sales service instance.
func NewService(repo *Repository, dbClient *db.Client, store ObjectStore, documentFolder string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if documentFolder == "" {
		documentFolder = "sales-documents"
	}
	return &service{
		repo:           repo,
		dbClient:       dbClient,
		store:          store,
		documentFolder: documentFolder,
		now:            time.Now,
	}, nil
}

// Create runs the reconciliation engine over the channel figures and
// persists the record with the derived columns filled in. The derived
// figures are never recomputed afterwards.
func (s *service) Create(ctx context.Context, input CreateSalesInput) (*DailySalesDTO, error) {
	if input.EmployeeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id is required")
	}
	exists, err := s.repo.EmployeeExists(ctx, input.EmployeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking reporting employee")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reporting employee does not exist")
	}
	for _, d := range []struct {
		name  string
		value interface{ IsNegative() bool }
	}{
		{"front_register_amount", input.Figures.FrontRegisterAmount},
		{"back_register_amount", input.Figures.BackRegisterAmount},
		{"credit_card_amount", input.Figures.CreditCardAmount},
		{"otc1_amount", input.Figures.OTC1Amount},
		{"otc2_amount", input.Figures.OTC2Amount},
		{"front_register_cash", input.Figures.FrontRegisterCash},
		{"back_register_cash", input.Figures.BackRegisterCash},
		{"credit_card_total", input.Figures.CreditCardTotal},
		{"otc1_total", input.Figures.OTC1Total},
		{"otc2_total", input.Figures.OTC2Total},
	} {
		if d.value.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, d.name+" cannot be negative")
		}
	}

	date := input.Date
	if date.IsZero() {
		date = s.now().Truncate(24 * time.Hour)
	}

	derived := Reconcile(input.Figures)
	record := &models.DailySales{
		Date:       date,
		ReportTime: s.now(),
		EmployeeID: input.EmployeeID,

		FrontRegisterAmount: input.Figures.FrontRegisterAmount,
		BackRegisterAmount:  input.Figures.BackRegisterAmount,
		CreditCardAmount:    input.Figures.CreditCardAmount,
		OTC1Amount:          input.Figures.OTC1Amount,
		OTC2Amount:          input.Figures.OTC2Amount,

		FrontRegisterCash: input.Figures.FrontRegisterCash,
		BackRegisterCash:  input.Figures.BackRegisterCash,
		CreditCardTotal:   input.Figures.CreditCardTotal,
		OTC1Total:         input.Figures.OTC1Total,
		OTC2Total:         input.Figures.OTC2Total,

		FrontDiscrepancy:   derived.FrontDiscrepancy,
		BackDiscrepancy:    derived.BackDiscrepancy,
		TotalExpected:      derived.TotalExpected,
		TotalActual:        derived.TotalActual,
		OverallDiscrepancy: derived.OverallDiscrepancy,

		Notes:  input.Notes,
		Status: derived.Status,
	}
	if _, err := s.repo.CreateSales(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating daily sales record")
	}
	return s.Get(ctx, record.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DailySalesDTO, error) {
	record, err := s.findSales(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewDailySalesDTO(record), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	records, total, err := s.repo.ListSales(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing daily sales records")
	}
	return &ListResult{Records: NewDailySalesDTOs(records), Total: total}, nil
}

// Delete removes the record, its evidence rows, and best-effort the stored
// objects. A failed object delete is logged, not surfaced.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findSales(ctx, id); err != nil {
		return err
	}

	docs, err := s.repo.ListDocumentsBySales(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading sales documents")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteSalesWithDocuments(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting daily sales record")
	}

	for _, doc := range docs {
		if err := s.store.DeleteObject(ctx, doc.StorageKey); err != nil {
			logger.FromContext(ctx).
				WithField("object", doc.StorageKey).
				Warn(ctx, "leaving orphaned storage object behind", err)
		}
	}
	return nil
}

// UploadDocument stores the object first and inserts the row only after
// the store confirmed the write.
func (s *service) UploadDocument(ctx context.Context, input UploadDocumentInput, body io.Reader) (*SalesDocumentDTO, error) {
	if !input.DocumentType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid document type")
	}
	filename := path.Base(strings.TrimSpace(input.Filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}

	record, err := s.findSales(ctx, input.SalesID)
	if err != nil {
		return nil, err
	}

	uploadTime := s.now()
	objectName := fmt.Sprintf("%s/%s/%s_%s",
		s.documentFolder, record.ID, uploadTime.UTC().Format("20060102T150405Z"), filename)

	mediaURL, err := s.store.UploadObject(ctx, objectName, input.ContentType, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading document to storage")
	}

	doc := &models.SalesDocument{
		SalesID:      record.ID,
		DocumentType: input.DocumentType,
		Filename:     filename,
		StorageKey:   objectName,
		StorageURL:   mediaURL,
		UploadTime:   uploadTime,
	}
	if _, err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving document record")
	}
	return NewSalesDocumentDTO(doc), nil
}

// DeleteDocument calls the store first. The row goes away only once the
// store confirms, so a failed delete never leaves a dangling reference.
func (s *service) DeleteDocument(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.repo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading document")
	}

	if err := s.store.DeleteObject(ctx, doc.StorageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting document from storage")
	}

	if err := s.repo.DeleteDocument(ctx, documentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting document record")
	}
	return nil
}

func (s *service) findSales(ctx context.Context, id uuid.UUID) (*models.DailySales, error) {
	record, err := s.repo.FindSalesByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "daily sales record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading daily sales record")
	}
	return record, nil
}
