package orderlists

import (
	"context"
	"testing"

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
	conn := setupOrderListsTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, repo
}

func TestAddToOrderConsolidatesIntoOnePendingList(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p1 := mustCreateTestProduct(t, repo.db, w.ID, "2.50")
	p2 := mustCreateTestProduct(t, repo.db, w.ID, "4.00")

	first, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p1.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, enums.CadenceDaily, first.Cadence)

	second, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p2.ID, Quantity: 1})
	require.NoError(t, err)

	// same wholesaler and cadence, so both lines land on the same list
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Items, 2)
	assert.True(t, second.TotalValue.Equal(decimal.RequireFromString("11.50")),
		"expected total 11.50, got %s", second.TotalValue)
}

func TestAddToOrderKeepsRepeatedProductAsSeparateLines(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "1.25")

	_, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	list, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	quantities := []int{list.Items[0].Quantity, list.Items[1].Quantity}
	assert.ElementsMatch(t, []int{2, 5}, quantities)
	assert.True(t, list.TotalValue.Equal(decimal.RequireFromString("8.75")))
}

func TestAddToOrderCadenceOverride(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "9.99")

	monthly := enums.CadenceMonthly
	list, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 1, CadenceOverride: &monthly})
	require.NoError(t, err)
	assert.Equal(t, enums.CadenceMonthly, list.Cadence)

	// the default cadence opens its own list
	daily, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, enums.CadenceDaily, daily.Cadence)
	assert.NotEqual(t, list.ID, daily.ID)
}

func TestAddToOrderValidation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "1.00")

	_, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 0})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.AddToOrder(ctx, AddToOrderInput{ProductID: uuid.New(), Quantity: 1})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateItemQuantityRecomputesTotal(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "3.00")

	list, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(ctx, list.Items[0].ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Items[0].Quantity)
	assert.True(t, updated.TotalValue.Equal(decimal.RequireFromString("21")))

	_, err = svc.UpdateItemQuantity(ctx, uuid.New(), 1)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveItem(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "2.00")

	list, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, list.Items[0].ID))

	after, err := svc.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Items)

	err = svc.RemoveItem(ctx, list.Items[0].ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestFinalizeCadenceClosesOnlyMatchingLists(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	daily := mustCreateTestWholesaler(t, repo.db, true)
	monthly := mustCreateTestWholesaler(t, repo.db, false)
	pd := mustCreateTestProduct(t, repo.db, daily.ID, "1.00")
	pm := mustCreateTestProduct(t, repo.db, monthly.ID, "1.00")

	_, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: pd.ID, Quantity: 1})
	require.NoError(t, err)
	monthlyList, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: pm.ID, Quantity: 1})
	require.NoError(t, err)

	count, err := svc.FinalizeCadence(ctx, enums.CadenceDaily)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	still, err := svc.Get(ctx, monthlyList.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderListStatusPending, still.Status)

	count, err = svc.FinalizeCadence(ctx, enums.CadenceDaily)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// a follow-up add opens a fresh list instead of reviving the closed one
	fresh, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: pd.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderListStatusPending, fresh.Status)
	require.Len(t, fresh.Items, 1)
}

func TestFinalizeListConflictWhenAlreadyFinalized(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "1.00")

	list, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	finalized, err := svc.FinalizeList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderListStatusFinalized, finalized.Status)
	require.NotNil(t, finalized.FinalizedDate)

	_, err = svc.FinalizeList(ctx, list.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDeleteListRemovesItems(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	w := mustCreateTestWholesaler(t, repo.db, true)
	p := mustCreateTestProduct(t, repo.db, w.ID, "1.00")

	list, err := svc.AddToOrder(ctx, AddToOrderInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, list.ID))

	_, err = svc.Get(ctx, list.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
