package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) transaction.TransactionRepository {
	return &transactionRepository{db: db}
}

// ========== TRANSACTION CODES ==========

func (r *transactionRepository) CreateCode(ctx context.Context, code transaction.TransactionCode) (transaction.TransactionCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO transaction_codes (code, name, category, is_taxable, fixed_amount, percentage, is_benefit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id, code, name, category, is_taxable, fixed_amount, percentage, is_benefit, is_active, created_at, updated_at
	`

	var created transaction.TransactionCode
	err := q.QueryRow(ctx, query,
		code.Code, code.Name, code.Category, code.IsTaxable,
		code.FixedAmount, code.Percentage, code.IsBenefit,
	).Scan(
		&created.ID, &created.Code, &created.Name, &created.Category, &created.IsTaxable,
		&created.FixedAmount, &created.Percentage, &created.IsBenefit, &created.IsActive,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "transaction_codes_code_key") {
			return transaction.TransactionCode{}, transaction.ErrTransactionCodeExists
		}
		return transaction.TransactionCode{}, fmt.Errorf("failed to create transaction code: %w", err)
	}

	return created, nil
}

func (r *transactionRepository) GetCodeByID(ctx context.Context, id string) (transaction.TransactionCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, category, is_taxable, fixed_amount, percentage, is_benefit, is_active, created_at, updated_at
		FROM transaction_codes
		WHERE id = $1
	`

	var c transaction.TransactionCode
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.Category, &c.IsTaxable,
		&c.FixedAmount, &c.Percentage, &c.IsBenefit, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return transaction.TransactionCode{}, transaction.ErrTransactionCodeNotFound
		}
		return transaction.TransactionCode{}, fmt.Errorf("failed to get transaction code: %w", err)
	}

	return c, nil
}

func (r *transactionRepository) ListCodes(ctx context.Context, activeOnly bool) ([]transaction.TransactionCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, category, is_taxable, fixed_amount, percentage, is_benefit, is_active, created_at, updated_at
		FROM transaction_codes
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction codes: %w", err)
	}
	defer rows.Close()

	var codes []transaction.TransactionCode
	for rows.Next() {
		var c transaction.TransactionCode
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Category, &c.IsTaxable,
			&c.FixedAmount, &c.Percentage, &c.IsBenefit, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction code: %w", err)
		}
		codes = append(codes, c)
	}

	return codes, rows.Err()
}

// ========== DEFAULT TRANSACTIONS ==========

func (r *transactionRepository) CreateDefaultTransaction(ctx context.Context, txn transaction.DefaultTransaction) (transaction.DefaultTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO default_transactions (transaction_code_id, period_id, cost_center_id, currency, employee_amount, employer_amount, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, transaction_code_id, period_id, cost_center_id, currency, employee_amount, employer_amount, hours, created_at, updated_at, deleted_at
	`

	var created transaction.DefaultTransaction
	err := q.QueryRow(ctx, query,
		txn.TransactionCodeID, txn.PeriodID, txn.CostCenterID,
		txn.Currency, txn.EmployeeAmount, txn.EmployerAmount, txn.Hours,
	).Scan(
		&created.ID, &created.TransactionCodeID, &created.PeriodID, &created.CostCenterID,
		&created.Currency, &created.EmployeeAmount, &created.EmployerAmount, &created.Hours,
		&created.CreatedAt, &created.UpdatedAt, &created.DeletedAt,
	)
	if err != nil {
		return transaction.DefaultTransaction{}, fmt.Errorf("failed to create default transaction: %w", err)
	}

	return created, nil
}

func (r *transactionRepository) ListDefaultTransactions(ctx context.Context, periodID, costCenterID string) ([]transaction.DefaultTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT dt.id, dt.transaction_code_id, dt.period_id, dt.cost_center_id, dt.currency,
			   dt.employee_amount, dt.employer_amount, dt.hours, dt.created_at, dt.updated_at, dt.deleted_at,
			   tc.code, tc.name, tc.category, tc.is_taxable
		FROM default_transactions dt
		JOIN transaction_codes tc ON tc.id = dt.transaction_code_id
		WHERE dt.period_id = $1 AND dt.cost_center_id = $2 AND dt.deleted_at IS NULL
		ORDER BY tc.code
	`

	rows, err := q.Query(ctx, query, periodID, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list default transactions: %w", err)
	}
	defer rows.Close()

	var txns []transaction.DefaultTransaction
	for rows.Next() {
		var t transaction.DefaultTransaction
		if err := rows.Scan(
			&t.ID, &t.TransactionCodeID, &t.PeriodID, &t.CostCenterID, &t.Currency,
			&t.EmployeeAmount, &t.EmployerAmount, &t.Hours, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
			&t.Code, &t.CodeName, &t.CodeCategory, &t.CodeTaxable,
		); err != nil {
			return nil, fmt.Errorf("failed to scan default transaction: %w", err)
		}
		txns = append(txns, t)
	}

	return txns, rows.Err()
}

func (r *transactionRepository) SoftDeleteDefaultTransaction(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE default_transactions SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete default transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrDefaultTransactionNotFound
	}

	return nil
}

// ========== CUSTOM TRANSACTIONS ==========

func (r *transactionRepository) CreateCustomTransaction(ctx context.Context, txn transaction.CustomTransaction) (transaction.CustomTransaction, error) {
	var created transaction.CustomTransaction

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO custom_transactions (period_id, cost_center_id, description, use_basic, base_amount, worked_hours, base_hours)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, period_id, cost_center_id, description, use_basic, base_amount, worked_hours, base_hours, created_at, updated_at, deleted_at
		`
		err := q.QueryRow(txCtx, query,
			txn.PeriodID, txn.CostCenterID, txn.Description,
			txn.UseBasic, txn.BaseAmount, txn.WorkedHours, txn.BaseHours,
		).Scan(
			&created.ID, &created.PeriodID, &created.CostCenterID, &created.Description,
			&created.UseBasic, &created.BaseAmount, &created.WorkedHours, &created.BaseHours,
			&created.CreatedAt, &created.UpdatedAt, &created.DeletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create custom transaction: %w", err)
		}

		for _, employeeID := range txn.EmployeeIDs {
			if _, err := q.Exec(txCtx,
				`INSERT INTO custom_transaction_employees (custom_transaction_id, employee_id) VALUES ($1, $2)`,
				created.ID, employeeID,
			); err != nil {
				return fmt.Errorf("failed to assign employee to custom transaction: %w", err)
			}
		}
		for _, code := range txn.Codes {
			if _, err := q.Exec(txCtx,
				`INSERT INTO custom_transaction_codes (custom_transaction_id, transaction_code_id) VALUES ($1, $2)`,
				created.ID, code.ID,
			); err != nil {
				return fmt.Errorf("failed to tag code on custom transaction: %w", err)
			}
		}

		created.EmployeeIDs = txn.EmployeeIDs
		created.Codes = txn.Codes
		return nil
	})
	if err != nil {
		return transaction.CustomTransaction{}, err
	}

	return created, nil
}

func (r *transactionRepository) ListCustomTransactions(ctx context.Context, periodID, costCenterID string) ([]transaction.CustomTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_id, cost_center_id, description, use_basic, base_amount, worked_hours, base_hours, created_at, updated_at, deleted_at
		FROM custom_transactions
		WHERE period_id = $1 AND cost_center_id = $2 AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, periodID, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom transactions: %w", err)
	}
	defer rows.Close()

	var txns []transaction.CustomTransaction
	for rows.Next() {
		var t transaction.CustomTransaction
		if err := rows.Scan(
			&t.ID, &t.PeriodID, &t.CostCenterID, &t.Description,
			&t.UseBasic, &t.BaseAmount, &t.WorkedHours, &t.BaseHours,
			&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan custom transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range txns {
		if err := r.loadCustomTransactionLinks(ctx, &txns[i]); err != nil {
			return nil, err
		}
	}

	return txns, nil
}

func (r *transactionRepository) loadCustomTransactionLinks(ctx context.Context, txn *transaction.CustomTransaction) error {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT employee_id FROM custom_transaction_employees WHERE custom_transaction_id = $1`,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to list custom transaction employees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var employeeID string
		if err := rows.Scan(&employeeID); err != nil {
			return fmt.Errorf("failed to scan custom transaction employee: %w", err)
		}
		txn.EmployeeIDs = append(txn.EmployeeIDs, employeeID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	codeRows, err := q.Query(ctx, `
		SELECT tc.id, tc.code, tc.name, tc.category, tc.is_taxable, tc.fixed_amount, tc.percentage, tc.is_benefit, tc.is_active, tc.created_at, tc.updated_at
		FROM custom_transaction_codes ctc
		JOIN transaction_codes tc ON tc.id = ctc.transaction_code_id
		WHERE ctc.custom_transaction_id = $1
		ORDER BY tc.code
	`, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to list custom transaction codes: %w", err)
	}
	defer codeRows.Close()
	for codeRows.Next() {
		var c transaction.TransactionCode
		if err := codeRows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Category, &c.IsTaxable,
			&c.FixedAmount, &c.Percentage, &c.IsBenefit, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan custom transaction code: %w", err)
		}
		txn.Codes = append(txn.Codes, c)
	}

	return codeRows.Err()
}

func (r *transactionRepository) SoftDeleteCustomTransaction(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE custom_transactions SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete custom transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrCustomTransactionNotFound
	}

	return nil
}
