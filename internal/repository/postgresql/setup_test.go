package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

var (
	dbOnce sync.Once
	db     *database.DB
	dbErr  error
)

// testDB connects once per test binary and skips the test when no database
// is configured, so the suite stays runnable without infrastructure.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	dbOnce.Do(func() {
		if err := database.MigrateUp(dsn); err != nil {
			dbErr = fmt.Errorf("failed to migrate test database: %w", err)
			return
		}
		db, dbErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, dbErr)

	return db
}

// truncateAll resets every table between tests.
func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"payslip_transactions",
		"payslips",
		"custom_transaction_codes",
		"custom_transaction_employees",
		"custom_transactions",
		"default_transactions",
		"transaction_codes",
		"vehicle_benefit_bands",
		"tax_credits",
		"employee_nec_grades",
		"nec_grades",
		"tax_bands",
		"exchange_rates",
		"currency_splits",
		"center_period_statuses",
		"accounting_periods",
		"payroll_employees",
		"payrolls",
		"employees",
		"cost_centers",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// createTestCostCenter inserts a cost center and returns its id.
func createTestCostCenter(t *testing.T, ctx context.Context, db *database.DB) string {
	t.Helper()

	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO cost_centers (code, name)
		VALUES ('HQ', 'Head Office')
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	return id
}
