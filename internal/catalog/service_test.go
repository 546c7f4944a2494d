package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository, *db.Client) {
	t.Helper()
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	client := db.NewWithConn(conn)
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	return svc, repo, client
}

func TestDeleteWholesalerRejectedWhileProductsRemain(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	mustCreateTestProduct(t, repo.db, w.ID, "Plaster", "0.99")

	err := svc.DeleteWholesaler(ctx, w.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// drops once the catalog no longer references it
	_, err = svc.BulkDeleteProducts(ctx, []uuid.UUID{})
	require.Error(t, err) // empty id set is a validation error

	require.NoError(t, repo.db.Exec("DELETE FROM products").Error)
	require.NoError(t, svc.DeleteWholesaler(ctx, w.ID))
}

func TestDeleteWholesalerNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.DeleteWholesaler(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateProductValidatesWholesalerAndPrice(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		Code:         "X-1",
		Name:         "Ghost Product",
		Price:        decimal.NewFromInt(5),
		WholesalerID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	w := mustCreateTestWholesaler(t, repo.db, false)
	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Code:         "X-2",
		Name:         "Negative Product",
		Price:        decimal.NewFromInt(-1),
		WholesalerID: w.ID,
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateProductRejectsDuplicateCode(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, false)
	input := CreateProductInput{
		Code:             "DUP-1",
		Name:             "Saline Solution",
		Price:            decimal.RequireFromString("3.20"),
		WholesalerID:     w.ID,
		AvailableInStore: true,
	}
	_, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateProductAppliesPartialChanges(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "Eye Drops", "9.99")

	newName := "Eye Drops 10ml"
	newPrice := decimal.RequireFromString("10.49")
	updated, err := svc.UpdateProduct(ctx, p.ID, UpdateProductInput{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Eye Drops 10ml", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, p.Code, updated.Code)
}

func TestBulkDeleteProductsReportsCount(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p1 := mustCreateTestProduct(t, repo.db, w.ID, "Mask", "1.00")
	p2 := mustCreateTestProduct(t, repo.db, w.ID, "Gloves", "2.00")

	deleted, err := svc.BulkDeleteProducts(ctx, []uuid.UUID{p1.ID, p2.ID, uuid.New()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}
