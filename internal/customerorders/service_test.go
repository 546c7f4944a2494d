package customerorders

import (
	"context"
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

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := setupCustomerOrdersTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestCreateOrderDefaultsAndValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "  Maria Lopez  "})
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", order.CustomerName)
	assert.Equal(t, enums.CustomerOrderStatusPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.True(t, order.TotalAmount.IsZero())
	assert.Empty(t, order.Items)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "   "})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAddItemResolvesByNameAndRecomputesTotal(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Aspirin 500mg", "4.20")

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Jose"})
	require.NoError(t, err)

	// case-insensitive substring match against the catalog
	updated, err := svc.AddItem(ctx, order.ID, AddItemInput{
		ProductNameQuery: strPtr("aspirin"),
		Quantity:         3,
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Aspirin 500mg", updated.Items[0].ProductName)
	assert.True(t, updated.Items[0].Price.Equal(decimal.RequireFromString("4.20")))
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("12.60")),
		"expected total 12.60, got %s", updated.TotalAmount)
}

func TestAddItemPriceOverride(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Bandages", "2.00")

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Ana"})
	require.NoError(t, err)

	override := decimal.RequireFromString("1.50")
	updated, err := svc.AddItem(ctx, order.ID, AddItemInput{
		ProductNameQuery: strPtr("bandages"),
		Quantity:         2,
		Price:            &override,
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("3.00")))
}

func TestAddItemUnknownProductCarriesQuery(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Luis"})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, order.ID, AddItemInput{
		ProductNameQuery: strPtr("unicorn dust"),
		Quantity:         1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "unicorn dust", details["query"])
}

func TestAddCustomItemRequiresPrice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Rosa"})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, order.ID, AddItemInput{
		CustomName: strPtr("Gift wrap"),
		Quantity:   1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	price := decimal.RequireFromString("0.75")
	updated, err := svc.AddItem(ctx, order.ID, AddItemInput{
		CustomName: strPtr("Gift wrap"),
		Quantity:   2,
		Price:      &price,
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Nil(t, updated.Items[0].ProductID)
	assert.Equal(t, "Gift wrap", updated.Items[0].ProductName)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("1.50")))
}

func TestUpdateItemRecomputesTotal(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Cough Syrup", "6.00")

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Elena"})
	require.NoError(t, err)
	withItem, err := svc.AddItem(ctx, order.ID, AddItemInput{
		ProductNameQuery: strPtr("cough"),
		Quantity:         1,
	})
	require.NoError(t, err)

	qty := 4
	updated, err := svc.UpdateItem(ctx, withItem.Items[0].ID, UpdateItemInput{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("24")))

	fulfilled := enums.OrderItemStatusFulfilled
	updated, err = svc.UpdateItem(ctx, withItem.Items[0].ID, UpdateItemInput{Status: &fulfilled})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderItemStatusFulfilled, updated.Items[0].Status)
}

func TestRemoveItemShrinksTotal(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Vitamin C", "5.00")
	mustCreateTestProduct(t, repo.db, "Zinc Tablets", "3.00")

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Pedro"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, order.ID, AddItemInput{ProductNameQuery: strPtr("vitamin"), Quantity: 2})
	require.NoError(t, err)
	withBoth, err := svc.AddItem(ctx, order.ID, AddItemInput{ProductNameQuery: strPtr("zinc"), Quantity: 1})
	require.NoError(t, err)
	require.True(t, withBoth.TotalAmount.Equal(decimal.RequireFromString("13.00")))

	var zincItem uuid.UUID
	for _, item := range withBoth.Items {
		if item.ProductName == "Zinc Tablets" {
			zincItem = item.ID
		}
	}
	require.NotEqual(t, uuid.Nil, zincItem)

	after, err := svc.RemoveItem(ctx, zincItem)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.True(t, after.TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestListOrdersFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	old := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	complete := enums.CustomerOrderStatusComplete

	_, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Old", OrderDate: &old, Status: &complete})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Recent", OrderDate: &recent})
	require.NoError(t, err)

	result, err := svc.ListOrders(ctx, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Orders, 2)
	// newest first
	assert.Equal(t, "Recent", result.Orders[0].CustomerName)

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	result, err = svc.ListOrders(ctx, ListInput{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = svc.ListOrders(ctx, ListInput{Status: &complete})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "Old", result.Orders[0].CustomerName)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Thermometer", "12.00")

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Carmen"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, order.ID, AddItemInput{ProductNameQuery: strPtr("thermo"), Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	_, err = svc.GetOrder(ctx, order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	items, err := repo.ListItemsByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchProducts(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Ibuprofen 200mg", "3.10")
	mustCreateTestProduct(t, repo.db, "Ibuprofen 400mg", "4.60")
	mustCreateTestProduct(t, repo.db, "Paracetamol", "2.20")

	hits, err := svc.SearchProducts(ctx, "IBUPROFEN", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Ibuprofen 200mg", hits[0].Name)

	hits, err = svc.SearchProducts(ctx, "ibuprofen", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearchProductsMatchesWildcardsLiterally(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateTestProduct(t, repo.db, "Juice 100% Orange", "2.50")
	mustCreateTestProduct(t, repo.db, "Juice 1000ml Apple", "2.00")
	mustCreateTestProduct(t, repo.db, "Oat_Milk", "3.30")

	// % and _ in the query are literals, not LIKE wildcards
	hits, err := svc.SearchProducts(ctx, "100%", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Juice 100% Orange", hits[0].Name)

	hits, err = svc.SearchProducts(ctx, "Oat_", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Oat_Milk", hits[0].Name)
}
