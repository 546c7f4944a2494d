package sales

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'employee',
  created_at DATETIME,
  updated_at DATETIME
);`
	dailySales := `
CREATE TABLE IF NOT EXISTS daily_sales (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  report_time DATETIME NOT NULL,
  employee_id TEXT NOT NULL,
  front_register_amount TEXT NOT NULL,
  back_register_amount TEXT NOT NULL,
  credit_card_amount TEXT NOT NULL,
  otc1_amount TEXT NOT NULL,
  otc2_amount TEXT NOT NULL,
  front_register_cash TEXT NOT NULL,
  back_register_cash TEXT NOT NULL,
  credit_card_total TEXT NOT NULL,
  otc1_total TEXT NOT NULL,
  otc2_total TEXT NOT NULL,
  front_discrepancy TEXT NOT NULL,
  back_discrepancy TEXT NOT NULL,
  total_expected TEXT NOT NULL,
  total_actual TEXT NOT NULL,
  overall_discrepancy TEXT NOT NULL,
  notes TEXT,
  status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	salesDocuments := `
CREATE TABLE IF NOT EXISTS sales_documents (
  id TEXT PRIMARY KEY,
  sales_id TEXT NOT NULL,
  document_type TEXT NOT NULL,
  filename TEXT NOT NULL,
  storage_key TEXT NOT NULL,
  storage_url TEXT NOT NULL,
  upload_time DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, ddl := range []string{users, dailySales, salesDocuments} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	for _, table := range []string{"sales_documents", "daily_sales", "users"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

func mustCreateTestEmployee(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("clerk-%s", suffix),
		Email:        fmt.Sprintf("clerk-%s@example.com", suffix),
		PasswordHash: "x",
		Role:         enums.UserRoleEmployee,
	}
	require.NoError(t, tx.Create(u).Error)
	return u
}

// fakeObjectStore records calls and can be told to fail.
type fakeObjectStore struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeObjectStore) UploadObject(_ context.Context, objectName, _ string, body io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, objectName)
	return f.MediaURL(objectName), nil
}

func (f *fakeObjectStore) DeleteObject(_ context.Context, objectName string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeObjectStore) MediaURL(objectName string) string {
	return "https://storage.googleapis.com/test-bucket/" + objectName
}
