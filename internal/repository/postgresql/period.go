package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) period.PeriodRepository {
	return &periodRepository{db: db}
}

// ========== PAYROLLS ==========

func (r *periodRepository) CreatePayroll(ctx context.Context, p period.Payroll) (period.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (name, period_length, tax_method, base_currency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, period_length, tax_method, base_currency, created_at, updated_at
	`

	var created period.Payroll
	err := q.QueryRow(ctx, query, p.Name, p.PeriodLength, p.TaxMethod, p.BaseCurrency).Scan(
		&created.ID, &created.Name, &created.PeriodLength, &created.TaxMethod,
		&created.BaseCurrency, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return period.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return created, nil
}

func (r *periodRepository) GetPayrollByID(ctx context.Context, id string) (period.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, period_length, tax_method, base_currency, created_at, updated_at
		FROM payrolls
		WHERE id = $1
	`

	var p period.Payroll
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.PeriodLength, &p.TaxMethod,
		&p.BaseCurrency, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.Payroll{}, period.ErrPayrollNotFound
		}
		return period.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

func (r *periodRepository) ListPayrolls(ctx context.Context) ([]period.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, period_length, tax_method, base_currency, created_at, updated_at
		FROM payrolls
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []period.Payroll
	for rows.Next() {
		var p period.Payroll
		if err := rows.Scan(
			&p.ID, &p.Name, &p.PeriodLength, &p.TaxMethod,
			&p.BaseCurrency, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	return payrolls, rows.Err()
}

// ========== ACCOUNTING PERIODS ==========

func (r *periodRepository) CreateAccountingPeriod(ctx context.Context, p period.AccountingPeriod) (period.AccountingPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO accounting_periods (payroll_id, month_name, year, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, payroll_id, month_name, year, period_start, period_end, created_at, updated_at
	`

	var created period.AccountingPeriod
	err := q.QueryRow(ctx, query, p.PayrollID, p.MonthName, p.Year, p.PeriodStart, p.PeriodEnd).Scan(
		&created.ID, &created.PayrollID, &created.MonthName, &created.Year,
		&created.PeriodStart, &created.PeriodEnd, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_accounting_period") {
			return period.AccountingPeriod{}, period.ErrPeriodExists
		}
		return period.AccountingPeriod{}, fmt.Errorf("failed to create accounting period: %w", err)
	}

	return created, nil
}

func (r *periodRepository) GetAccountingPeriodByID(ctx context.Context, id string) (period.AccountingPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, month_name, year, period_start, period_end, created_at, updated_at
		FROM accounting_periods
		WHERE id = $1
	`

	var p period.AccountingPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PayrollID, &p.MonthName, &p.Year,
		&p.PeriodStart, &p.PeriodEnd, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.AccountingPeriod{}, period.ErrPeriodNotFound
		}
		return period.AccountingPeriod{}, fmt.Errorf("failed to get accounting period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) ListAccountingPeriods(ctx context.Context, payrollID string) ([]period.AccountingPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, month_name, year, period_start, period_end, created_at, updated_at
		FROM accounting_periods
		WHERE payroll_id = $1
		ORDER BY period_start
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounting periods: %w", err)
	}
	defer rows.Close()

	var periods []period.AccountingPeriod
	for rows.Next() {
		var p period.AccountingPeriod
		if err := rows.Scan(
			&p.ID, &p.PayrollID, &p.MonthName, &p.Year,
			&p.PeriodStart, &p.PeriodEnd, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan accounting period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// ========== CENTER PERIOD STATUSES ==========

func (r *periodRepository) GetCenterStatus(ctx context.Context, periodID, costCenterID string) (period.CenterPeriodStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_id, cost_center_id, currency_mode, period_run_date,
			   pay_run_date, is_closed_confirmed, created_at, updated_at
		FROM center_period_statuses
		WHERE period_id = $1 AND cost_center_id = $2
	`

	var s period.CenterPeriodStatus
	err := q.QueryRow(ctx, query, periodID, costCenterID).Scan(
		&s.ID, &s.PeriodID, &s.CostCenterID, &s.CurrencyMode, &s.PeriodRunDate,
		&s.PayRunDate, &s.IsClosedConfirmed, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.CenterPeriodStatus{}, period.ErrCenterStatusNotFound
		}
		return period.CenterPeriodStatus{}, fmt.Errorf("failed to get center period status: %w", err)
	}

	return s, nil
}

func (r *periodRepository) UpsertCenterStatus(ctx context.Context, status period.CenterPeriodStatus) (period.CenterPeriodStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO center_period_statuses (
			period_id, cost_center_id, currency_mode, period_run_date,
			pay_run_date, is_closed_confirmed
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (period_id, cost_center_id) DO UPDATE SET
			currency_mode = EXCLUDED.currency_mode,
			period_run_date = EXCLUDED.period_run_date,
			pay_run_date = EXCLUDED.pay_run_date,
			is_closed_confirmed = EXCLUDED.is_closed_confirmed,
			updated_at = NOW()
		RETURNING id, period_id, cost_center_id, currency_mode, period_run_date,
			pay_run_date, is_closed_confirmed, created_at, updated_at
	`

	var s period.CenterPeriodStatus
	err := q.QueryRow(ctx, query,
		status.PeriodID, status.CostCenterID, status.CurrencyMode,
		status.PeriodRunDate, status.PayRunDate, status.IsClosedConfirmed,
	).Scan(
		&s.ID, &s.PeriodID, &s.CostCenterID, &s.CurrencyMode, &s.PeriodRunDate,
		&s.PayRunDate, &s.IsClosedConfirmed, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return period.CenterPeriodStatus{}, fmt.Errorf("failed to upsert center period status: %w", err)
	}

	return s, nil
}
