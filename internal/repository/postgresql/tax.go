package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

type taxRepository struct {
	db *database.DB
}

func NewTaxRepository(db *database.DB) tax.TaxRepository {
	return &taxRepository{db: db}
}

// ========== TAX BANDS ==========

// ReplaceTaxTable swaps the whole band set for one (currency, period type)
// in a single transaction so readers never see a half-written table.
func (r *taxRepository) ReplaceTaxTable(ctx context.Context, code currency.Code, periodType tax.PeriodType, bands []tax.TaxBand) ([]tax.TaxBand, error) {
	var replaced []tax.TaxBand

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx,
			`DELETE FROM tax_bands WHERE currency = $1 AND period_type = $2`,
			code, periodType,
		); err != nil {
			return fmt.Errorf("failed to delete tax bands: %w", err)
		}

		query := `
			INSERT INTO tax_bands (currency, period_type, min_salary, max_salary, tax_rate, tax_amount, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			RETURNING id, currency, period_type, min_salary, max_salary, tax_rate, tax_amount, is_active, created_at, updated_at
		`
		for _, band := range bands {
			var b tax.TaxBand
			err := q.QueryRow(txCtx, query,
				code, periodType, band.MinSalary, band.MaxSalary, band.TaxRate, band.TaxAmount,
			).Scan(
				&b.ID, &b.Currency, &b.PeriodType, &b.MinSalary, &b.MaxSalary,
				&b.TaxRate, &b.TaxAmount, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert tax band: %w", err)
			}
			replaced = append(replaced, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return replaced, nil
}

func (r *taxRepository) GetTaxTable(ctx context.Context, code currency.Code, periodType tax.PeriodType) ([]tax.TaxBand, error) {
	return r.listBands(ctx, `WHERE currency = $1 AND period_type = $2 AND is_active = TRUE`, code, periodType)
}

func (r *taxRepository) ListActiveBands(ctx context.Context) ([]tax.TaxBand, error) {
	return r.listBands(ctx, `WHERE is_active = TRUE`)
}

func (r *taxRepository) listBands(ctx context.Context, where string, args ...any) ([]tax.TaxBand, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, currency, period_type, min_salary, max_salary, tax_rate, tax_amount, is_active, created_at, updated_at
		FROM tax_bands
		` + where + `
		ORDER BY currency, period_type, min_salary
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax bands: %w", err)
	}
	defer rows.Close()

	var bands []tax.TaxBand
	for rows.Next() {
		var b tax.TaxBand
		if err := rows.Scan(
			&b.ID, &b.Currency, &b.PeriodType, &b.MinSalary, &b.MaxSalary,
			&b.TaxRate, &b.TaxAmount, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax band: %w", err)
		}
		bands = append(bands, b)
	}

	return bands, rows.Err()
}

// ========== NEC GRADES ==========

func (r *taxRepository) CreateNecGrade(ctx context.Context, grade tax.NecGrade) (tax.NecGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO nec_grades (
			name, transaction_code, contribution_type, employee_amount, employer_amount,
			employee_percent, employer_percent, min_threshold, max_threshold, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING id, name, transaction_code, contribution_type, employee_amount, employer_amount,
			employee_percent, employer_percent, min_threshold, max_threshold, is_active, created_at, updated_at
	`

	var created tax.NecGrade
	err := q.QueryRow(ctx, query,
		grade.Name, grade.TransactionCode, grade.ContributionType,
		grade.EmployeeAmount, grade.EmployerAmount,
		grade.EmployeePercent, grade.EmployerPercent,
		grade.MinThreshold, grade.MaxThreshold,
	).Scan(
		&created.ID, &created.Name, &created.TransactionCode, &created.ContributionType,
		&created.EmployeeAmount, &created.EmployerAmount,
		&created.EmployeePercent, &created.EmployerPercent,
		&created.MinThreshold, &created.MaxThreshold,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "nec_grades_name_key") {
			return tax.NecGrade{}, tax.ErrNecGradeNameExists
		}
		return tax.NecGrade{}, fmt.Errorf("failed to create nec grade: %w", err)
	}

	return created, nil
}

func (r *taxRepository) GetNecGradeByID(ctx context.Context, id string) (tax.NecGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, transaction_code, contribution_type, employee_amount, employer_amount,
			   employee_percent, employer_percent, min_threshold, max_threshold, is_active, created_at, updated_at
		FROM nec_grades
		WHERE id = $1
	`

	var g tax.NecGrade
	err := q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.TransactionCode, &g.ContributionType,
		&g.EmployeeAmount, &g.EmployerAmount,
		&g.EmployeePercent, &g.EmployerPercent,
		&g.MinThreshold, &g.MaxThreshold,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tax.NecGrade{}, tax.ErrNecGradeNotFound
		}
		return tax.NecGrade{}, fmt.Errorf("failed to get nec grade: %w", err)
	}

	return g, nil
}

func (r *taxRepository) ListActiveNecGrades(ctx context.Context) ([]tax.NecGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, transaction_code, contribution_type, employee_amount, employer_amount,
			   employee_percent, employer_percent, min_threshold, max_threshold, is_active, created_at, updated_at
		FROM nec_grades
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list nec grades: %w", err)
	}
	defer rows.Close()

	var grades []tax.NecGrade
	for rows.Next() {
		var g tax.NecGrade
		if err := rows.Scan(
			&g.ID, &g.Name, &g.TransactionCode, &g.ContributionType,
			&g.EmployeeAmount, &g.EmployerAmount,
			&g.EmployeePercent, &g.EmployerPercent,
			&g.MinThreshold, &g.MaxThreshold,
			&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nec grade: %w", err)
		}
		grades = append(grades, g)
	}

	return grades, rows.Err()
}

// ========== TAX CREDITS ==========

func (r *taxRepository) CreateTaxCredit(ctx context.Context, credit tax.TaxCredit) (tax.TaxCredit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tax_credits (name, currency, period_type, amount, min_age, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, name, currency, period_type, amount, min_age, is_active, created_at, updated_at
	`

	var created tax.TaxCredit
	err := q.QueryRow(ctx, query,
		credit.Name, credit.Currency, credit.PeriodType, credit.Amount, credit.MinAge,
	).Scan(
		&created.ID, &created.Name, &created.Currency, &created.PeriodType,
		&created.Amount, &created.MinAge, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return tax.TaxCredit{}, fmt.Errorf("failed to create tax credit: %w", err)
	}

	return created, nil
}

func (r *taxRepository) ListActiveTaxCredits(ctx context.Context) ([]tax.TaxCredit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, currency, period_type, amount, min_age, is_active, created_at, updated_at
		FROM tax_credits
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax credits: %w", err)
	}
	defer rows.Close()

	var credits []tax.TaxCredit
	for rows.Next() {
		var c tax.TaxCredit
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Currency, &c.PeriodType,
			&c.Amount, &c.MinAge, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax credit: %w", err)
		}
		credits = append(credits, c)
	}

	return credits, rows.Err()
}

// ========== VEHICLE BENEFIT BANDS ==========

func (r *taxRepository) CreateVehicleBenefitBand(ctx context.Context, band tax.VehicleBenefitBand) (tax.VehicleBenefitBand, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicle_benefit_bands (currency, period_type, engine_capacity_min, engine_capacity_max, amount, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, currency, period_type, engine_capacity_min, engine_capacity_max, amount, is_active, created_at, updated_at
	`

	var created tax.VehicleBenefitBand
	err := q.QueryRow(ctx, query,
		band.Currency, band.PeriodType, band.EngineCapacityMin, band.EngineCapacityMax, band.Amount,
	).Scan(
		&created.ID, &created.Currency, &created.PeriodType,
		&created.EngineCapacityMin, &created.EngineCapacityMax, &created.Amount,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return tax.VehicleBenefitBand{}, fmt.Errorf("failed to create vehicle benefit band: %w", err)
	}

	return created, nil
}

func (r *taxRepository) ListActiveVehicleBenefitBands(ctx context.Context) ([]tax.VehicleBenefitBand, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, currency, period_type, engine_capacity_min, engine_capacity_max, amount, is_active, created_at, updated_at
		FROM vehicle_benefit_bands
		WHERE is_active = TRUE
		ORDER BY currency, period_type, engine_capacity_min
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle benefit bands: %w", err)
	}
	defer rows.Close()

	var bands []tax.VehicleBenefitBand
	for rows.Next() {
		var b tax.VehicleBenefitBand
		if err := rows.Scan(
			&b.ID, &b.Currency, &b.PeriodType,
			&b.EngineCapacityMin, &b.EngineCapacityMax, &b.Amount,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle benefit band: %w", err)
		}
		bands = append(bands, b)
	}

	return bands, rows.Err()
}
