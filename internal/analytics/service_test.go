package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

func setupAnalyticsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS wholesalers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  is_daily INTEGER NOT NULL DEFAULT 0,
  contact_person TEXT,
  email TEXT,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  size TEXT,
  price TEXT NOT NULL,
  wholesaler_id TEXT NOT NULL,
  available_in_store INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_lists (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  wholesaler_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  cadence TEXT NOT NULL,
  finalized_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_list_items (
  id TEXT PRIMARY KEY,
  order_list_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, ddl := range schemas {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	for _, table := range []string{"order_list_items", "order_lists", "products", "wholesalers"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

type fixture struct {
	conn *gorm.DB
}

func (f *fixture) wholesaler(t *testing.T, name string) *models.Wholesaler {
	t.Helper()
	w := &models.Wholesaler{ID: uuid.New(), Name: name}
	require.NoError(t, f.conn.Create(w).Error)
	return w
}

func (f *fixture) product(t *testing.T, w *models.Wholesaler, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:           uuid.New(),
		Code:         fmt.Sprintf("CODE-%s", uuid.NewString()[:8]),
		Name:         name,
		Price:        decimal.RequireFromString(price),
		WholesalerID: w.ID,
	}
	require.NoError(t, f.conn.Create(p).Error)
	return p
}

func (f *fixture) list(t *testing.T, w *models.Wholesaler, date time.Time, items ...*models.Product) *models.OrderList {
	t.Helper()
	list := &models.OrderList{
		ID:           uuid.New(),
		Date:         date,
		WholesalerID: w.ID,
		Status:       enums.OrderListStatusFinalized,
		Cadence:      enums.CadenceDaily,
	}
	require.NoError(t, f.conn.Create(list).Error)
	for _, p := range items {
		item := &models.OrderListItem{
			ID:          uuid.New(),
			OrderListID: list.ID,
			ProductID:   p.ID,
			Quantity:    2,
		}
		require.NoError(t, f.conn.Create(item).Error)
	}
	return list
}

func TestReportRollups(t *testing.T) {
	conn := setupAnalyticsTestDB(t)
	f := &fixture{conn: conn}
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	inRange := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	alsoInRange := time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	wa := f.wholesaler(t, "Alpha Supply")
	wb := f.wholesaler(t, "Beta Goods")
	pa := f.product(t, wa, "Soap", "2.00")
	pb := f.product(t, wb, "Towels", "5.00")

	// qty is always 2 per line: alpha 2x2.00=4.00, beta 2x5.00=10.00
	f.list(t, wa, inRange, pa)
	f.list(t, wb, alsoInRange, pb)
	f.list(t, wb, alsoInRange, pb)
	f.list(t, wa, outOfRange, pa)

	report, err := svc.Report(context.Background(), Input{
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("24.00")),
		"expected total 24.00, got %s", report.TotalSales)

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Towels", report.TopProducts[0].Name)
	assert.Equal(t, int64(4), report.TopProducts[0].Quantity)
	assert.Equal(t, int64(2), report.TopProducts[1].Quantity)

	require.Len(t, report.SalesByWholesaler, 2)
	assert.Equal(t, "Beta Goods", report.SalesByWholesaler[0].Name)
	assert.True(t, report.SalesByWholesaler[0].TotalSales.Equal(decimal.RequireFromString("20.00")))

	require.Len(t, report.OrderFrequency, 2)
	assert.Equal(t, "2025-08-10", report.OrderFrequency[0].Date)
	assert.Equal(t, int64(1), report.OrderFrequency[0].Count)
	assert.Equal(t, int64(2), report.OrderFrequency[1].Count)

	// mean of 4.00, 10.00, 10.00
	assert.True(t, report.AverageOrderValue.Equal(decimal.RequireFromString("8.00")),
		"expected average 8.00, got %s", report.AverageOrderValue)
}

func TestReportTopLimitAndEmptyWindow(t *testing.T) {
	conn := setupAnalyticsTestDB(t)
	f := &fixture{conn: conn}
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	w := f.wholesaler(t, "Gamma")
	date := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := f.product(t, w, fmt.Sprintf("Product %d", i), "1.00")
		f.list(t, w, date, p)
	}

	report, err := svc.Report(context.Background(), Input{
		StartDate: date.AddDate(0, 0, -1),
		EndDate:   date.AddDate(0, 0, 1),
		TopLimit:  2,
	})
	require.NoError(t, err)
	assert.Len(t, report.TopProducts, 2)

	empty, err := svc.Report(context.Background(), Input{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, empty.TotalSales.IsZero())
	assert.True(t, empty.AverageOrderValue.IsZero())
	assert.Empty(t, empty.TopProducts)
	assert.Empty(t, empty.OrderFrequency)

	_, err = svc.Report(context.Background(), Input{
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
