package period

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
)

var (
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPeriodNotFound       = errors.New("accounting period not found")
	ErrPeriodExists         = errors.New("accounting period already exists for this payroll and month")
	ErrCenterStatusNotFound = errors.New("center period status not found")

	// ErrPeriodBusy - another run/refresh/close holds the (period, center)
	// lock. Retry later; nothing is corrupted.
	ErrPeriodBusy = errors.New("a run is already in flight for this period and cost center")

	// State errors - rejected at the state-machine boundary.
	ErrPeriodAlreadyRun = errors.New("period has already been run for this cost center")
	ErrPeriodNotRun     = errors.New("period has not been run for this cost center")
	ErrPeriodClosed     = errors.New("period is closed for this cost center")
)

// IsState reports whether err was rejected by the state machine boundary.
func IsState(err error) bool {
	return errors.Is(err, ErrPeriodAlreadyRun) ||
		errors.Is(err, ErrPeriodNotRun) ||
		errors.Is(err, ErrPeriodClosed)
}

// IsConfiguration reports whether err signals missing or malformed
// configuration. Configuration errors are always fatal to a batch and are
// never silently defaulted.
func IsConfiguration(err error) bool {
	return errors.Is(err, currency.ErrNoApplicableSplit) ||
		errors.Is(err, currency.ErrNoApplicableRate) ||
		errors.Is(err, tax.ErrNoMatchingTaxBand) ||
		errors.Is(err, transaction.ErrZeroBaseHours)
}

// EmployeeError ties a per-employee calculation failure to the employee for
// caller reporting.
type EmployeeError struct {
	EmployeeID   string
	EmployeeCode string
	Err          error
}

func (e EmployeeError) Error() string {
	return fmt.Sprintf("employee %s: %v", e.EmployeeCode, e.Err)
}

func (e EmployeeError) Unwrap() error {
	return e.Err
}

// RunError aggregates every per-employee failure in a batch. The batch as a
// whole rolled back; the center status is unchanged.
type RunError struct {
	PeriodID     string
	CostCenterID string
	Failures     []EmployeeError
}

func (e *RunError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("period run failed for %d employee(s): %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *RunError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
