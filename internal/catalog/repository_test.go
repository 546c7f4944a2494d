package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

func TestSearchProductsByNameIsCaseInsensitive(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, conn, true)
	mustCreateTestProduct(t, conn, w.ID, "Aspirin 500mg", "4.99")
	mustCreateTestProduct(t, conn, w.ID, "Vitamin C", "8.50")

	found, err := repo.SearchProductsByName(ctx, "aspir", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Aspirin 500mg", found[0].Name)

	found, err = repo.SearchProductsByName(ctx, "zzz-no-match", 10)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchProductsByNameHonorsLimit(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, conn, false)
	for i := 0; i < 5; i++ {
		mustCreateTestProduct(t, conn, w.ID, "Bandage Roll", "1.20")
	}

	found, err := repo.SearchProductsByName(ctx, "bandage", 3)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestCountProductsByWholesaler(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, conn, true)
	other := mustCreateTestWholesaler(t, conn, false)
	mustCreateTestProduct(t, conn, w.ID, "Thermometer", "12.00")
	mustCreateTestProduct(t, conn, w.ID, "Gauze", "2.40")

	count, err := repo.CountProductsByWholesaler(ctx, w.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountProductsByWholesaler(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteProductsRemovesReferencedOrderListItems(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, conn, true)
	p := mustCreateTestProduct(t, conn, w.ID, "Cough Syrup", "6.75")

	list := &models.OrderList{
		ID:           uuid.New(),
		WholesalerID: w.ID,
		Status:       enums.OrderListStatusPending,
		Cadence:      enums.CadenceDaily,
	}
	require.NoError(t, conn.Create(list).Error)
	item := &models.OrderListItem{
		ID:          uuid.New(),
		OrderListID: list.ID,
		ProductID:   p.ID,
		Quantity:    3,
	}
	require.NoError(t, conn.Create(item).Error)

	require.NoError(t, repo.DeleteOrderListItemsByProducts(ctx, []uuid.UUID{p.ID}))
	deleted, err := repo.DeleteProducts(ctx, []uuid.UUID{p.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var itemCount int64
	require.NoError(t, conn.Model(&models.OrderListItem{}).Where("product_id = ?", p.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}
