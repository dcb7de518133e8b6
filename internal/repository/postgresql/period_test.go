package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
	"github.com/zimhr/payroll-backend-go/internal/repository/postgresql"
)

func createTestPayroll(t *testing.T, ctx context.Context, repo period.PeriodRepository) period.Payroll {
	t.Helper()

	p, err := repo.CreatePayroll(ctx, period.Payroll{
		Name:         "Main Payroll",
		PeriodLength: "monthly",
		TaxMethod:    "monthly",
		BaseCurrency: "USD",
	})
	require.NoError(t, err)
	return p
}

func createTestPeriod(t *testing.T, ctx context.Context, repo period.PeriodRepository, payrollID string) period.AccountingPeriod {
	t.Helper()
	return createTestPeriodFor(t, ctx, repo, payrollID, "March", time.March)
}

func createTestPeriodFor(t *testing.T, ctx context.Context, repo period.PeriodRepository, payrollID, name string, month time.Month) period.AccountingPeriod {
	t.Helper()

	start := time.Date(2026, month, 1, 0, 0, 0, 0, time.UTC)
	p, err := repo.CreateAccountingPeriod(ctx, period.AccountingPeriod{
		PayrollID:   payrollID,
		MonthName:   name,
		Year:        2026,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 1, -1),
	})
	require.NoError(t, err)
	return p
}

func TestPeriodRepository_PayrollRoundTrip(t *testing.T) {
	db := testDB(t)
	truncateAll(t, db)
	ctx := context.Background()
	repo := postgresql.NewPeriodRepository(db)

	created := createTestPayroll(t, ctx, repo)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetPayrollByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main Payroll", got.Name)
	assert.Equal(t, "USD", string(got.BaseCurrency))

	_, err = repo.GetPayrollByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, period.ErrPayrollNotFound)
}

func TestPeriodRepository_DuplicatePeriodRejected(t *testing.T) {
	db := testDB(t)
	truncateAll(t, db)
	ctx := context.Background()
	repo := postgresql.NewPeriodRepository(db)

	pr := createTestPayroll(t, ctx, repo)
	createTestPeriod(t, ctx, repo, pr.ID)

	_, err := repo.CreateAccountingPeriod(ctx, period.AccountingPeriod{
		PayrollID:   pr.ID,
		MonthName:   "March",
		Year:        2026,
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, period.ErrPeriodExists)
}

func TestPeriodRepository_CenterStatusUpsert(t *testing.T) {
	db := testDB(t)
	truncateAll(t, db)
	ctx := context.Background()
	repo := postgresql.NewPeriodRepository(db)

	pr := createTestPayroll(t, ctx, repo)
	p := createTestPeriod(t, ctx, repo, pr.ID)
	centerID := createTestCostCenter(t, ctx, db)

	_, err := repo.GetCenterStatus(ctx, p.ID, centerID)
	assert.ErrorIs(t, err, period.ErrCenterStatusNotFound)

	runDate := time.Date(2026, 3, 25, 10, 0, 0, 0, time.UTC)
	created, err := repo.UpsertCenterStatus(ctx, period.CenterPeriodStatus{
		PeriodID:      p.ID,
		CostCenterID:  centerID,
		CurrencyMode:  "DEFAULT",
		PeriodRunDate: &runDate,
		PayRunDate:    &runDate,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Upserting the same (period, center) pair updates in place.
	created.IsClosedConfirmed = true
	updated, err := repo.UpsertCenterStatus(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.IsClosedConfirmed)

	got, err := repo.GetCenterStatus(ctx, p.ID, centerID)
	require.NoError(t, err)
	assert.True(t, got.IsClosedConfirmed)
	require.NotNil(t, got.PeriodRunDate)
	assert.True(t, got.PeriodRunDate.Equal(runDate))
}

func TestPayslipRepository_ReplaceForPeriodCenter(t *testing.T) {
	db := testDB(t)
	truncateAll(t, db)
	ctx := context.Background()
	periodRepo := postgresql.NewPeriodRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	pr := createTestPayroll(t, ctx, periodRepo)
	p := createTestPeriod(t, ctx, periodRepo, pr.ID)
	centerID := createTestCostCenter(t, ctx, db)

	var employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (cost_center_id, employee_code, full_name, basic_salary)
		VALUES ($1, 'E001', 'Tinashe Moyo', 1000)
		RETURNING id
	`, centerID).Scan(&employeeID)
	require.NoError(t, err)

	slip := payslip.Payslip{
		EmployeeID:   employeeID,
		PeriodID:     p.ID,
		CostCenterID: centerID,
		GrossUsd:     decimal.RequireFromString("1000"),
		NetUsd:       decimal.RequireFromString("800"),
		YtdGrossUsd:  decimal.RequireFromString("1000"),
		ExchangeRate: decimal.RequireFromString("1"),
		Status:       payslip.StatusFinalized,
	}
	lines := map[string][]payslip.Transaction{
		employeeID: {{
			TransactionCode:  "BASIC",
			Category:         transaction.CategoryEarning,
			CalculationBasis: transaction.BasisAmount,
			Currency:         "DEFAULT",
			AmountUsd:        decimal.RequireFromString("1000"),
		}},
	}

	err = payslipRepo.ReplaceForPeriodCenter(ctx, p.ID, centerID, []payslip.Payslip{slip}, lines)
	require.NoError(t, err)

	stored, err := payslipRepo.ListByPeriodCenter(ctx, p.ID, centerID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].GrossUsd.Equal(decimal.RequireFromString("1000")))

	// Replacing again overwrites rather than accumulating.
	slip.NetUsd = decimal.RequireFromString("750")
	err = payslipRepo.ReplaceForPeriodCenter(ctx, p.ID, centerID, []payslip.Payslip{slip}, lines)
	require.NoError(t, err)

	stored, err = payslipRepo.ListByPeriodCenter(ctx, p.ID, centerID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].NetUsd.Equal(decimal.RequireFromString("750")))

	items, err := payslipRepo.ListTransactions(ctx, stored[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "BASIC", items[0].TransactionCode)
}

func TestPayslipRepository_YTDExcludesLaterPeriods(t *testing.T) {
	db := testDB(t)
	truncateAll(t, db)
	ctx := context.Background()
	periodRepo := postgresql.NewPeriodRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	pr := createTestPayroll(t, ctx, periodRepo)
	january := createTestPeriodFor(t, ctx, periodRepo, pr.ID, "January", time.January)
	february := createTestPeriodFor(t, ctx, periodRepo, pr.ID, "February", time.February)
	centerID := createTestCostCenter(t, ctx, db)

	var employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (cost_center_id, employee_code, full_name, basic_salary)
		VALUES ($1, 'E001', 'Tinashe Moyo', 1000)
		RETURNING id
	`, centerID).Scan(&employeeID)
	require.NoError(t, err)

	seedMonth := func(p period.AccountingPeriod, gross, paye string) {
		slip := payslip.Payslip{
			EmployeeID:   employeeID,
			PeriodID:     p.ID,
			CostCenterID: centerID,
			GrossUsd:     decimal.RequireFromString(gross),
			ExchangeRate: decimal.RequireFromString("1"),
			Status:       payslip.StatusFinalized,
		}
		lines := map[string][]payslip.Transaction{
			employeeID: {{
				TransactionCode:  "PAYE",
				Category:         transaction.CategoryDeduction,
				CalculationBasis: transaction.BasisPercentage,
				Currency:         "DEFAULT",
				AmountUsd:        decimal.RequireFromString(paye),
			}},
		}
		err := payslipRepo.ReplaceForPeriodCenter(ctx, p.ID, centerID, []payslip.Payslip{slip}, lines)
		require.NoError(t, err)
	}
	seedMonth(january, "1000", "100")
	seedMonth(february, "1200", "120")

	taxYearStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Rebuilding February sees only January.
	totals, err := payslipRepo.YTDTotalsByEmployee(ctx, []string{employeeID}, taxYearStart, february.PeriodStart)
	require.NoError(t, err)
	require.Contains(t, totals, employeeID)
	assert.True(t, totals[employeeID].GrossUsd.Equal(decimal.RequireFromString("1000")))
	assert.True(t, totals[employeeID].PayeUsd.Equal(decimal.RequireFromString("100")))

	// Rebuilding January after February has run sees neither month.
	totals, err = payslipRepo.YTDTotalsByEmployee(ctx, []string{employeeID}, taxYearStart, january.PeriodStart)
	require.NoError(t, err)
	assert.NotContains(t, totals, employeeID)
}
