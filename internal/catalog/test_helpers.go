package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	wholesalers := `
CREATE TABLE IF NOT EXISTS wholesalers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  is_daily INTEGER NOT NULL DEFAULT 0,
  contact_person TEXT,
  email TEXT,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
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
);`
	orderLists := `
CREATE TABLE IF NOT EXISTS order_lists (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  wholesaler_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  cadence TEXT NOT NULL,
  finalized_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderListItems := `
CREATE TABLE IF NOT EXISTS order_list_items (
  id TEXT PRIMARY KEY,
  order_list_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, ddl := range []string{wholesalers, products, orderLists, orderListItems} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	// the shared in-memory db outlives individual tests
	for _, table := range []string{"order_list_items", "order_lists", "products", "wholesalers"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

func mustCreateTestWholesaler(t *testing.T, tx *gorm.DB, isDaily bool) *models.Wholesaler {
	t.Helper()
	w := &models.Wholesaler{
		ID:      uuid.New(),
		Name:    fmt.Sprintf("Wholesaler %s", uuid.NewString()[:8]),
		IsDaily: isDaily,
	}
	require.NoError(t, tx.Create(w).Error)
	return w
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, wholesalerID uuid.UUID, name string, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:               uuid.New(),
		Code:             fmt.Sprintf("CODE-%s", uuid.NewString()[:8]),
		Name:             name,
		Price:            decimal.RequireFromString(price),
		WholesalerID:     wholesalerID,
		AvailableInStore: true,
	}
	require.NoError(t, tx.Create(p).Error)
	return p
}
