package period

import (
	"time"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/pkg/validator"
)

// ========== PAYROLL DTOs ==========

type CreatePayrollRequest struct {
	Name         string `json:"name"`
	PeriodLength string `json:"period_length"` // "monthly"
	TaxMethod    string `json:"tax_method"`    // "monthly" or "annual"
	BaseCurrency string `json:"base_currency"` // "ZWG" or "USD"
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.PeriodLength != "" && r.PeriodLength != "monthly" {
		errs = append(errs, validator.ValidationError{Field: "period_length", Message: "only 'monthly' is supported"})
	}
	if r.TaxMethod != "" && !validator.IsInSlice(r.TaxMethod, []string{"monthly", "annual"}) {
		errs = append(errs, validator.ValidationError{Field: "tax_method", Message: "must be 'monthly' or 'annual'"})
	}
	if r.BaseCurrency != "" && !validator.IsInSlice(r.BaseCurrency, []string{string(currency.CodeZWG), string(currency.CodeUSD)}) {
		errs = append(errs, validator.ValidationError{Field: "base_currency", Message: "must be 'ZWG' or 'USD'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PeriodLength string `json:"period_length"`
	TaxMethod    string `json:"tax_method"`
	BaseCurrency string `json:"base_currency"`
}

// ========== ACCOUNTING PERIOD DTOs ==========

type CreateAccountingPeriodRequest struct {
	PayrollID   string `json:"payroll_id"`
	MonthName   string `json:"month_name"`
	Year        int    `json:"year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func (r *CreateAccountingPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.MonthName, monthNames) {
		errs = append(errs, validator.ValidationError{Field: "month_name", Message: "must be a valid month name"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && !end.After(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be after period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccountingPeriodResponse struct {
	ID             string `json:"id"`
	PayrollID      string `json:"payroll_id"`
	MonthName      string `json:"month_name"`
	Year           int    `json:"year"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	Classification string `json:"classification"`
}

// ========== RUN DTOs ==========

type RunPeriodRequest struct {
	PeriodID     string `json:"period_id"`
	CostCenterID string `json:"cost_center_id"`
	CurrencyMode string `json:"currency_mode"` // "DEFAULT", "ZWG" or "USD"
}

func (r *RunPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if validator.IsEmpty(r.CostCenterID) {
		errs = append(errs, validator.ValidationError{Field: "cost_center_id", Message: "is required"})
	}
	if !currency.Mode(r.CurrencyMode).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "currency_mode", Message: "must be 'DEFAULT', 'ZWG' or 'USD'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClosePeriodRequest struct {
	PeriodID     string `json:"period_id"`
	CostCenterID string `json:"cost_center_id"`
}

func (r *ClosePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if validator.IsEmpty(r.CostCenterID) {
		errs = append(errs, validator.ValidationError{Field: "cost_center_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CenterPeriodStatusResponse struct {
	ID                string     `json:"id"`
	PeriodID          string     `json:"period_id"`
	CostCenterID      string     `json:"cost_center_id"`
	CurrencyMode      string     `json:"currency_mode"`
	PeriodRunDate     *time.Time `json:"period_run_date,omitempty"`
	PayRunDate        *time.Time `json:"pay_run_date,omitempty"`
	IsClosedConfirmed bool       `json:"is_closed_confirmed"`
	CanBeRun          bool       `json:"can_be_run"`
	CanBeRefreshed    bool       `json:"can_be_refreshed"`
	CanBeClosed       bool       `json:"can_be_closed"`
}

type RunPeriodResponse struct {
	Status        CenterPeriodStatusResponse `json:"status"`
	PayslipCount  int                        `json:"payslip_count"`
	EmployeeCount int                        `json:"employee_count"`
}

// RunFailureResponse reports which employees or configurations caused a
// failed run, without asserting which would have succeeded.
type RunFailureResponse struct {
	PeriodID     string   `json:"period_id"`
	CostCenterID string   `json:"cost_center_id"`
	Failures     []string `json:"failures"`
}
