package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avillagomez/backoffice-backend/pkg/migrate"
)

func TestOrderListsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_order_lists_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no order lists migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS order_lists",
		"CREATE UNIQUE INDEX IF NOT EXISTS order_lists_pending_unique",
		"WHERE status = 'pending'",
		"CHECK (cadence IN ('daily', 'monthly'))",
		"FOREIGN KEY (order_list_id) REFERENCES order_lists(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS order_list_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestDailySalesMigrationContainsDerivedColumns(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_daily_sales_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no daily sales migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS daily_sales",
		"overall_discrepancy NUMERIC(12,2) NOT NULL",
		"CHECK (status IN ('Balanced', 'Discrepancy'))",
		"FOREIGN KEY (sales_id) REFERENCES daily_sales(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS sales_documents",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
