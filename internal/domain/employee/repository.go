package employee

import "context"

// EmployeeRepository defines read access to employee master data. The engine
// never mutates employees.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetActiveByPayrollAndCenter returns the active employees assigned to the
	// payroll and resolvable to the given cost center, NEC grade memberships included.
	GetActiveByPayrollAndCenter(ctx context.Context, payrollID, costCenterID string) ([]Employee, error)

	GetCostCenterByID(ctx context.Context, id string) (CostCenter, error)
	ListCostCenters(ctx context.Context, activeOnly bool) ([]CostCenter, error)
}
