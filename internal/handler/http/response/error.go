package response

import (
	"errors"
	"net/http"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
	"github.com/zimhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A failed batch reports every employee that failed; the run as a whole
	// rolled back.
	var runErr *period.RunError
	if errors.As(err, &runErr) {
		details := make(map[string]string, len(runErr.Failures))
		for _, failure := range runErr.Failures {
			details[failure.EmployeeCode] = failure.Err.Error()
		}
		UnprocessableEntity(w, "RUN_FAILED", "Period run failed, nothing was persisted", details)
		return
	}

	switch {
	// Concurrency: another caller holds the (period, center) lock
	case errors.Is(err, period.ErrPeriodBusy):
		Conflict(w, err.Error())

	// State machine rejections
	case errors.Is(err, period.ErrPeriodAlreadyRun),
		errors.Is(err, period.ErrPeriodNotRun),
		errors.Is(err, period.ErrPeriodClosed):
		Conflict(w, err.Error())

	// Configuration errors are never silently defaulted
	case period.IsConfiguration(err):
		UnprocessableEntity(w, "CONFIGURATION_ERROR", err.Error(), nil)

	// Not found
	case errors.Is(err, period.ErrPayrollNotFound),
		errors.Is(err, period.ErrPeriodNotFound),
		errors.Is(err, period.ErrCenterStatusNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrCostCenterNotFound),
		errors.Is(err, currency.ErrSplitNotFound),
		errors.Is(err, tax.ErrNecGradeNotFound),
		errors.Is(err, transaction.ErrTransactionCodeNotFound),
		errors.Is(err, transaction.ErrDefaultTransactionNotFound),
		errors.Is(err, transaction.ErrCustomTransactionNotFound),
		errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, err.Error())

	// Conflicts with existing configuration
	case errors.Is(err, period.ErrPeriodExists),
		errors.Is(err, currency.ErrRateAlreadyExists),
		errors.Is(err, tax.ErrNecGradeNameExists),
		errors.Is(err, transaction.ErrTransactionCodeExists):
		Conflict(w, err.Error())

	// Payslip lifecycle
	case errors.Is(err, payslip.ErrInvalidStatusTransition),
		errors.Is(err, payslip.ErrPayslipImmutable):
		Conflict(w, err.Error())

	case errors.Is(err, tax.ErrInvalidContributionRule):
		UnprocessableEntity(w, "CONFIGURATION_ERROR", err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
