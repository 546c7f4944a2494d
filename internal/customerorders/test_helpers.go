package customerorders

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

func setupCustomerOrdersTestDB(t *testing.T) *gorm.DB {
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
	customerOrders := `
CREATE TABLE IF NOT EXISTS customer_orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_contact TEXT,
  order_date DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  is_paid INTEGER NOT NULL DEFAULT 0,
  total_amount TEXT NOT NULL DEFAULT '0',
  created_at DATETIME,
  updated_at DATETIME
);`
	customerOrderItems := `
CREATE TABLE IF NOT EXISTS customer_order_items (
  id TEXT PRIMARY KEY,
  customer_order_id TEXT NOT NULL,
  product_id TEXT,
  custom_product_name TEXT,
  quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, ddl := range []string{wholesalers, products, customerOrders, customerOrderItems} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	for _, table := range []string{"customer_order_items", "customer_orders", "products", "wholesalers"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, name, price string) *models.Product {
	t.Helper()
	w := &models.Wholesaler{ID: uuid.New(), Name: fmt.Sprintf("Wholesaler %s", uuid.NewString()[:8])}
	require.NoError(t, tx.Create(w).Error)

	p := &models.Product{
		ID:               uuid.New(),
		Code:             fmt.Sprintf("CODE-%s", uuid.NewString()[:8]),
		Name:             name,
		Price:            decimal.RequireFromString(price),
		WholesalerID:     w.ID,
		AvailableInStore: true,
	}
	require.NoError(t, tx.Create(p).Error)
	return p
}
