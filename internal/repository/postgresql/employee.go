package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, cost_center_id, employee_code, full_name, date_of_birth,
			   basic_salary, vehicle_engine_capacity, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.CostCenterID, &e.EmployeeCode, &e.FullName, &e.DateOfBirth,
		&e.BasicSalary, &e.VehicleEngineCapacity, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	e.NecGradeIDs, err = r.necGradeIDs(ctx, []string{e.ID})
	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepository) GetActiveByPayrollAndCenter(ctx context.Context, payrollID, costCenterID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.cost_center_id, e.employee_code, e.full_name, e.date_of_birth,
			   e.basic_salary, e.vehicle_engine_capacity, e.is_active, e.created_at, e.updated_at
		FROM employees e
		JOIN payroll_employees pe ON pe.employee_id = e.id
		WHERE pe.payroll_id = $1 AND e.cost_center_id = $2 AND e.is_active = TRUE
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, payrollID, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.CostCenterID, &e.EmployeeCode, &e.FullName, &e.DateOfBirth,
			&e.BasicSalary, &e.VehicleEngineCapacity, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(employees) == 0 {
		return employees, nil
	}

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	grades, err := r.necGradesByEmployee(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].NecGradeIDs = grades[employees[i].ID]
	}

	return employees, nil
}

func (r *employeeRepository) GetCostCenterByID(ctx context.Context, id string) (employee.CostCenter, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, bank_name, bank_account_number, is_active, created_at, updated_at
		FROM cost_centers
		WHERE id = $1
	`

	var c employee.CostCenter
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.BankName, &c.BankAccountNumber,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.CostCenter{}, employee.ErrCostCenterNotFound
		}
		return employee.CostCenter{}, fmt.Errorf("failed to get cost center: %w", err)
	}

	return c, nil
}

func (r *employeeRepository) ListCostCenters(ctx context.Context, activeOnly bool) ([]employee.CostCenter, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, bank_name, bank_account_number, is_active, created_at, updated_at
		FROM cost_centers
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	defer rows.Close()

	var centers []employee.CostCenter
	for rows.Next() {
		var c employee.CostCenter
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.BankName, &c.BankAccountNumber,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cost center: %w", err)
		}
		centers = append(centers, c)
	}

	return centers, rows.Err()
}

func (r *employeeRepository) necGradeIDs(ctx context.Context, employeeIDs []string) ([]string, error) {
	grades, err := r.necGradesByEmployee(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	return grades[employeeIDs[0]], nil
}

func (r *employeeRepository) necGradesByEmployee(ctx context.Context, employeeIDs []string) (map[string][]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, nec_grade_id
		FROM employee_nec_grades
		WHERE employee_id = ANY($1)
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee nec grades: %w", err)
	}
	defer rows.Close()

	grades := make(map[string][]string)
	for rows.Next() {
		var employeeID, gradeID string
		if err := rows.Scan(&employeeID, &gradeID); err != nil {
			return nil, fmt.Errorf("failed to scan employee nec grade: %w", err)
		}
		grades[employeeID] = append(grades[employeeID], gradeID)
	}

	return grades, rows.Err()
}
