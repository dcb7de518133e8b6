package payslip

import (
	"context"
	"time"
)

// PayslipRepository defines data access for payslips and their line items.
// Writes during a run happen inside the batch transaction; the repository
// refuses amount mutation on anything past draft except via ReplaceForPeriodCenter,
// which the period engine only calls while the center is still open.
type PayslipRepository interface {
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeePeriod(ctx context.Context, employeeID, periodID string) (Payslip, error)
	ListByPeriodCenter(ctx context.Context, periodID, costCenterID string) ([]Payslip, error)
	ListTransactions(ctx context.Context, payslipID string) ([]Transaction, error)

	// ReplaceForPeriodCenter deletes any prior payslips for the (period, center)
	// pair and inserts the given set with their line items. Must be called
	// inside the batch transaction.
	ReplaceForPeriodCenter(ctx context.Context, periodID, costCenterID string, payslips []Payslip, lines map[string][]Transaction) error

	// MarkDistributed advances a finalized payslip to distributed. Allowed
	// after close; distribution state is not an amount mutation.
	MarkDistributed(ctx context.Context, id string) error

	// YTDTotalsByEmployee sums finalized payslips for the employees within the
	// tax year, over periods starting strictly before the given date. Later
	// periods may already have been run; they never count toward an earlier
	// period's year-to-date.
	YTDTotalsByEmployee(ctx context.Context, employeeIDs []string, taxYearStart, before time.Time) (map[string]YTDTotals, error)
}
