package period

import "context"

// PeriodRepository defines data access for payrolls, accounting periods and
// per-center processing statuses.
type PeriodRepository interface {
	CreatePayroll(ctx context.Context, p Payroll) (Payroll, error)
	GetPayrollByID(ctx context.Context, id string) (Payroll, error)
	ListPayrolls(ctx context.Context) ([]Payroll, error)

	CreateAccountingPeriod(ctx context.Context, p AccountingPeriod) (AccountingPeriod, error)
	GetAccountingPeriodByID(ctx context.Context, id string) (AccountingPeriod, error)
	ListAccountingPeriods(ctx context.Context, payrollID string) ([]AccountingPeriod, error)

	GetCenterStatus(ctx context.Context, periodID, costCenterID string) (CenterPeriodStatus, error)
	// UpsertCenterStatus creates the status lazily on first run and updates it
	// afterwards. Must run inside the batch transaction during run/refresh.
	UpsertCenterStatus(ctx context.Context, status CenterPeriodStatus) (CenterPeriodStatus, error)
}
