package sales

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository, *fakeObjectStore) {
	t.Helper()
	conn := setupSalesTestDB(t)
	repo := NewRepository(conn)
	store := &fakeObjectStore{}
	svc, err := NewService(repo, db.NewWithConn(conn), store, "sales-documents")
	require.NoError(t, err)
	return svc, repo, store
}

func balancedFigures() ChannelFigures {
	return ChannelFigures{
		FrontRegisterAmount: dec("500"),
		BackRegisterAmount:  dec("300"),
		CreditCardAmount:    dec("1200"),
		OTC1Amount:          dec("50"),
		OTC2Amount:          dec("20"),
		FrontRegisterCash:   dec("495"),
		BackRegisterCash:    dec("300"),
		CreditCardTotal:     dec("1200"),
		OTC1Total:           dec("50"),
		OTC2Total:           dec("15"),
	}
}

func TestCreatePersistsDerivedFigures(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	emp := mustCreateTestEmployee(t, repo.db)

	record, err := svc.Create(ctx, CreateSalesInput{
		EmployeeID: emp.ID,
		Figures:    balancedFigures(),
	})
	require.NoError(t, err)
	assert.True(t, record.FrontDiscrepancy.Equal(dec("-5")))
	assert.True(t, record.OverallDiscrepancy.Equal(dec("-10")))
	assert.True(t, record.TotalExpected.Equal(dec("2070")))
	assert.True(t, record.TotalActual.Equal(dec("2060")))
	assert.Equal(t, enums.SalesStatusBalanced, record.Status)
	assert.False(t, record.ReportTime.IsZero())
	assert.Empty(t, record.Documents)

	// the stored figures survive a fresh read untouched
	again, err := svc.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, again.OverallDiscrepancy.Equal(dec("-10")))
}

func TestCreateValidation(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSalesInput{Figures: balancedFigures()})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	emp := mustCreateTestEmployee(t, repo.db)
	figures := balancedFigures()
	figures.OTC1Total = decimal.NewFromInt(-1)
	_, err = svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Figures: figures})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateRejectsUnknownEmployee(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSalesInput{
		EmployeeID: uuid.New(),
		Figures:    balancedFigures(),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "reporting employee does not exist", typed.Message())
}

func TestListFiltersByDateAndStatus(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	emp := mustCreateTestEmployee(t, repo.db)

	june := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	august := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Date: june, Figures: balancedFigures()})
	require.NoError(t, err)

	off := balancedFigures()
	off.OTC2Total = decimal.Zero
	_, err = svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Date: august, Figures: off})
	require.NoError(t, err)

	result, err := svc.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Records, 2)
	// newest first
	assert.Equal(t, august.Format("2006-01-02"), result.Records[0].Date.Format("2006-01-02"))

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	result, err = svc.List(ctx, ListInput{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	discrepancy := enums.SalesStatusDiscrepancy
	result, err = svc.List(ctx, ListInput{Status: &discrepancy})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].OverallDiscrepancy.Equal(dec("-25")))
}

func TestUploadDocumentStoresObjectThenRow(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	emp := mustCreateTestEmployee(t, repo.db)
	record, err := svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Figures: balancedFigures()})
	require.NoError(t, err)

	doc, err := svc.UploadDocument(ctx, UploadDocumentInput{
		SalesID:      record.ID,
		DocumentType: enums.DocumentTypeRegisterTape,
		Filename:     "tape.pdf",
		ContentType:  "application/pdf",
	}, strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	require.Len(t, store.uploaded, 1)
	key := store.uploaded[0]
	assert.True(t, strings.HasPrefix(key, "sales-documents/"+record.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "_tape.pdf"))
	assert.Equal(t, store.MediaURL(key), doc.StorageURL)

	fetched, err := svc.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Documents, 1)
	assert.Equal(t, "tape.pdf", fetched.Documents[0].Filename)
}

func TestUploadDocumentFailureLeavesNoRow(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	emp := mustCreateTestEmployee(t, repo.db)
	record, err := svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Figures: balancedFigures()})
	require.NoError(t, err)

	store.uploadErr = errors.New("bucket unavailable")
	_, err = svc.UploadDocument(ctx, UploadDocumentInput{
		SalesID:      record.ID,
		DocumentType: enums.DocumentTypeReceipt,
		Filename:     "receipt.jpg",
		ContentType:  "image/jpeg",
	}, strings.NewReader("jpeg bytes"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())

	docs, err := repo.ListDocumentsBySales(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeleteDocumentKeepsRowOnStoreFailure(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	emp := mustCreateTestEmployee(t, repo.db)
	record, err := svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Figures: balancedFigures()})
	require.NoError(t, err)

	doc, err := svc.UploadDocument(ctx, UploadDocumentInput{
		SalesID:      record.ID,
		DocumentType: enums.DocumentTypeCardStatement,
		Filename:     "statement.pdf",
		ContentType:  "application/pdf",
	}, strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	store.deleteErr = errors.New("storage timeout")
	err = svc.DeleteDocument(ctx, doc.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())

	// the row survives until the store confirms the delete
	docs, err := repo.ListDocumentsBySales(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	store.deleteErr = nil
	require.NoError(t, svc.DeleteDocument(ctx, doc.ID))
	docs, err = repo.ListDocumentsBySales(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeleteSalesCleansUpObjects(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	emp := mustCreateTestEmployee(t, repo.db)
	record, err := svc.Create(ctx, CreateSalesInput{EmployeeID: emp.ID, Figures: balancedFigures()})
	require.NoError(t, err)

	_, err = svc.UploadDocument(ctx, UploadDocumentInput{
		SalesID:      record.ID,
		DocumentType: enums.DocumentTypeOther,
		Filename:     "notes.txt",
		ContentType:  "text/plain",
	}, strings.NewReader("text"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, record.ID))

	_, err = svc.Get(ctx, record.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Len(t, store.deleted, 1)

	err = svc.DeleteDocument(ctx, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
