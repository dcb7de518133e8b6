package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	p.id, p.employee_id, p.period_id, p.cost_center_id,
	p.gross_zwg, p.gross_usd, p.deductions_zwg, p.deductions_usd, p.net_zwg, p.net_usd,
	p.ytd_gross_zwg, p.ytd_gross_usd, p.ytd_paye_zwg, p.ytd_paye_usd,
	p.exchange_rate, p.status, p.created_at, p.updated_at,
	e.full_name, e.employee_code
`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodID, &p.CostCenterID,
		&p.GrossZwg, &p.GrossUsd, &p.DeductionsZwg, &p.DeductionsUsd, &p.NetZwg, &p.NetUsd,
		&p.YtdGrossZwg, &p.YtdGrossUsd, &p.YtdPayeZwg, &p.YtdPayeUsd,
		&p.ExchangeRate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	return p, err
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByEmployeePeriod(ctx context.Context, employeeID, periodID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.period_id = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, periodID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) ListByPeriodCenter(ctx context.Context, periodID, costCenterID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.period_id = $1 AND p.cost_center_id = $2
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, periodID, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

func (r *payslipRepository) ListTransactions(ctx context.Context, payslipID string) ([]payslip.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payslip_id, transaction_code, description, category, calculation_basis,
			   currency, amount_zwg, amount_usd, employer_amount, is_manual_override, created_at
		FROM payslip_transactions
		WHERE payslip_id = $1
		ORDER BY created_at, transaction_code
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip transactions: %w", err)
	}
	defer rows.Close()

	var lines []payslip.Transaction
	for rows.Next() {
		var t payslip.Transaction
		if err := rows.Scan(
			&t.ID, &t.PayslipID, &t.TransactionCode, &t.Description, &t.Category, &t.CalculationBasis,
			&t.Currency, &t.AmountZwg, &t.AmountUsd, &t.EmployerAmount, &t.IsManualOverride, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip transaction: %w", err)
		}
		lines = append(lines, t)
	}

	return lines, rows.Err()
}

// ReplaceForPeriodCenter wipes and rewrites the run's payslips. Callers hold
// the (period, center) lock and wrap this in the batch transaction, so a
// reader either sees the old run or the new one.
func (r *payslipRepository) ReplaceForPeriodCenter(ctx context.Context, periodID, costCenterID string, payslips []payslip.Payslip, lines map[string][]payslip.Transaction) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		DELETE FROM payslip_transactions
		WHERE payslip_id IN (SELECT id FROM payslips WHERE period_id = $1 AND cost_center_id = $2)
	`, periodID, costCenterID); err != nil {
		return fmt.Errorf("failed to delete payslip transactions: %w", err)
	}
	if _, err := q.Exec(ctx,
		`DELETE FROM payslips WHERE period_id = $1 AND cost_center_id = $2`,
		periodID, costCenterID,
	); err != nil {
		return fmt.Errorf("failed to delete payslips: %w", err)
	}

	insertPayslip := `
		INSERT INTO payslips (
			employee_id, period_id, cost_center_id,
			gross_zwg, gross_usd, deductions_zwg, deductions_usd, net_zwg, net_usd,
			ytd_gross_zwg, ytd_gross_usd, ytd_paye_zwg, ytd_paye_usd,
			exchange_rate, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	insertLine := `
		INSERT INTO payslip_transactions (
			payslip_id, transaction_code, description, category, calculation_basis,
			currency, amount_zwg, amount_usd, employer_amount, is_manual_override
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, p := range payslips {
		var payslipID string
		err := q.QueryRow(ctx, insertPayslip,
			p.EmployeeID, p.PeriodID, p.CostCenterID,
			p.GrossZwg, p.GrossUsd, p.DeductionsZwg, p.DeductionsUsd, p.NetZwg, p.NetUsd,
			p.YtdGrossZwg, p.YtdGrossUsd, p.YtdPayeZwg, p.YtdPayeUsd,
			p.ExchangeRate, p.Status,
		).Scan(&payslipID)
		if err != nil {
			return fmt.Errorf("failed to insert payslip: %w", err)
		}

		for _, line := range lines[p.EmployeeID] {
			if _, err := q.Exec(ctx, insertLine,
				payslipID, line.TransactionCode, line.Description, line.Category, line.CalculationBasis,
				line.Currency, line.AmountZwg, line.AmountUsd, line.EmployerAmount, line.IsManualOverride,
			); err != nil {
				return fmt.Errorf("failed to insert payslip transaction: %w", err)
			}
		}
	}

	return nil
}

func (r *payslipRepository) MarkDistributed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE payslips SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		payslip.StatusDistributed, id, payslip.StatusFinalized,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payslip distributed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrInvalidStatusTransition
	}

	return nil
}

func (r *payslipRepository) YTDTotalsByEmployee(ctx context.Context, employeeIDs []string, taxYearStart, before time.Time) (map[string]payslip.YTDTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.employee_id,
			   COALESCE(SUM(p.gross_zwg), 0), COALESCE(SUM(p.gross_usd), 0),
			   COALESCE(SUM(paye.amount_zwg), 0), COALESCE(SUM(paye.amount_usd), 0)
		FROM payslips p
		JOIN accounting_periods ap ON ap.id = p.period_id
		LEFT JOIN LATERAL (
			SELECT SUM(amount_zwg) AS amount_zwg, SUM(amount_usd) AS amount_usd
			FROM payslip_transactions
			WHERE payslip_id = p.id AND transaction_code = 'PAYE'
		) paye ON TRUE
		WHERE p.employee_id = ANY($1)
		  AND p.status IN ('finalized', 'distributed')
		  AND ap.period_start >= $2
		  AND ap.period_start < $3
		GROUP BY p.employee_id
	`

	rows, err := q.Query(ctx, query, employeeIDs, taxYearStart, before)
	if err != nil {
		return nil, fmt.Errorf("failed to sum year-to-date totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]payslip.YTDTotals, len(employeeIDs))
	for rows.Next() {
		var employeeID string
		var t payslip.YTDTotals
		if err := rows.Scan(&employeeID, &t.GrossZwg, &t.GrossUsd, &t.PayeZwg, &t.PayeUsd); err != nil {
			return nil, fmt.Errorf("failed to scan year-to-date totals: %w", err)
		}
		totals[employeeID] = t
	}

	return totals, rows.Err()
}
