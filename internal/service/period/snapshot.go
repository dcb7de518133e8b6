package period

import (
	"context"
	"fmt"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
	currencyService "github.com/zimhr/payroll-backend-go/internal/service/currency"
	payslipService "github.com/zimhr/payroll-backend-go/internal/service/payslip"
	taxService "github.com/zimhr/payroll-backend-go/internal/service/tax"
)

// SnapshotLoader captures everything a batch reads before the first employee
// is calculated: roster, pay transactions, currency configuration, tax
// tables and year-to-date totals. Writes landing mid-batch are invisible to
// the running batch.
type SnapshotLoader struct {
	employeeRepo    employee.EmployeeRepository
	transactionRepo transaction.TransactionRepository
	payslipRepo     payslip.PayslipRepository
	resolver        *currencyService.Resolver
	tablesLoader    *taxService.Loader
}

func NewSnapshotLoader(
	employeeRepo employee.EmployeeRepository,
	transactionRepo transaction.TransactionRepository,
	payslipRepo payslip.PayslipRepository,
	resolver *currencyService.Resolver,
	tablesLoader *taxService.Loader,
) *SnapshotLoader {
	return &SnapshotLoader{
		employeeRepo:    employeeRepo,
		transactionRepo: transactionRepo,
		payslipRepo:     payslipRepo,
		resolver:        resolver,
		tablesLoader:    tablesLoader,
	}
}

// Load assembles the immutable build context for one (period, center) run.
func (l *SnapshotLoader) Load(
	ctx context.Context,
	pr period.Payroll,
	p period.AccountingPeriod,
	costCenterID string,
	mode currency.Mode,
) (payslipService.BuildContext, []employee.Employee, error) {
	employees, err := l.employeeRepo.GetActiveByPayrollAndCenter(ctx, pr.ID, costCenterID)
	if err != nil {
		return payslipService.BuildContext{}, nil, fmt.Errorf("load employees: %w", err)
	}

	defaults, err := l.transactionRepo.ListDefaultTransactions(ctx, p.ID, costCenterID)
	if err != nil {
		return payslipService.BuildContext{}, nil, fmt.Errorf("load default transactions: %w", err)
	}

	customs, err := l.transactionRepo.ListCustomTransactions(ctx, p.ID, costCenterID)
	if err != nil {
		return payslipService.BuildContext{}, nil, fmt.Errorf("load custom transactions: %w", err)
	}

	snapshot, err := l.resolver.LoadSnapshot(ctx)
	if err != nil {
		return payslipService.BuildContext{}, nil, fmt.Errorf("load currency snapshot: %w", err)
	}

	tables, err := l.tablesLoader.LoadTables(ctx)
	if err != nil {
		return payslipService.BuildContext{}, nil, fmt.Errorf("load tax tables: %w", err)
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
	}
	ytd := map[string]payslip.YTDTotals{}
	if len(employeeIDs) > 0 {
		ytd, err = l.payslipRepo.YTDTotalsByEmployee(ctx, employeeIDs, p.TaxYearStart(), p.PeriodStart)
		if err != nil {
			return payslipService.BuildContext{}, nil, fmt.Errorf("load year-to-date totals: %w", err)
		}
	}

	return payslipService.BuildContext{
		Payroll:      pr,
		Period:       p,
		CostCenterID: costCenterID,
		Mode:         mode,
		Currency:     snapshot,
		Tables:       tables,
		Defaults:     defaults,
		Customs:      customs,
		YTD:          ytd,
	}, employees, nil
}
