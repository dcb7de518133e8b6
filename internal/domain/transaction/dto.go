package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/pkg/validator"
)

// ========== TRANSACTION CODE DTOs ==========

type CreateTransactionCodeRequest struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Category    string           `json:"category"` // "earning", "deduction" or "contribution"
	IsTaxable   *bool            `json:"is_taxable,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixed_amount,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	IsBenefit   *bool            `json:"is_benefit,omitempty"`
}

func (r *CreateTransactionCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidTransactionCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must be 2-20 uppercase letters, digits or underscores"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !Category(r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be 'earning', 'deduction' or 'contribution'"})
	}
	if r.FixedAmount != nil && r.FixedAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_amount", Message: "must be non-negative"})
	}
	if r.Percentage != nil && r.Percentage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "percentage", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionCodeResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	IsTaxable   bool             `json:"is_taxable"`
	FixedAmount *decimal.Decimal `json:"fixed_amount,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	IsBenefit   bool             `json:"is_benefit"`
	IsActive    bool             `json:"is_active"`
}

// ========== DEFAULT TRANSACTION DTOs ==========

type CreateDefaultTransactionRequest struct {
	TransactionCodeID string           `json:"transaction_code_id"`
	PeriodID          string           `json:"period_id"`
	CostCenterID      string           `json:"cost_center_id"`
	Currency          string           `json:"currency"` // "DEFAULT", "ZWG" or "USD"
	EmployeeAmount    decimal.Decimal  `json:"employee_amount"`
	EmployerAmount    decimal.Decimal  `json:"employer_amount"`
	Hours             *decimal.Decimal `json:"hours,omitempty"`
}

func (r *CreateDefaultTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TransactionCodeID) {
		errs = append(errs, validator.ValidationError{Field: "transaction_code_id", Message: "is required"})
	}
	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if validator.IsEmpty(r.CostCenterID) {
		errs = append(errs, validator.ValidationError{Field: "cost_center_id", Message: "is required"})
	}
	if !currency.Mode(r.Currency).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be 'DEFAULT', 'ZWG' or 'USD'"})
	}
	if r.Hours != nil && r.Hours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DefaultTransactionResponse struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	CodeName       string           `json:"code_name"`
	Category       string           `json:"category"`
	PeriodID       string           `json:"period_id"`
	CostCenterID   string           `json:"cost_center_id"`
	Currency       string           `json:"currency"`
	EmployeeAmount decimal.Decimal  `json:"employee_amount"`
	EmployerAmount decimal.Decimal  `json:"employer_amount"`
	Hours          *decimal.Decimal `json:"hours,omitempty"`
}

// ========== CUSTOM TRANSACTION DTOs ==========

type CreateCustomTransactionRequest struct {
	PeriodID           string          `json:"period_id"`
	CostCenterID       string          `json:"cost_center_id"`
	Description        *string         `json:"description,omitempty"`
	UseBasic           bool            `json:"use_basic"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	WorkedHours        decimal.Decimal `json:"worked_hours"`
	BaseHours          decimal.Decimal `json:"base_hours"`
	EmployeeIDs        []string        `json:"employee_ids"`
	TransactionCodeIDs []string        `json:"transaction_code_ids"`
}

func (r *CreateCustomTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if validator.IsEmpty(r.CostCenterID) {
		errs = append(errs, validator.ValidationError{Field: "cost_center_id", Message: "is required"})
	}
	if !r.UseBasic && !r.BaseAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_amount", Message: "must be positive when use_basic is false"})
	}
	if r.WorkedHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "worked_hours", Message: "must be non-negative"})
	}
	if !r.BaseHours.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_hours", Message: "must be positive"})
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee is required"})
	}
	if len(r.TransactionCodeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "transaction_code_ids", Message: "at least one transaction code is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CustomTransactionResponse struct {
	ID                 string          `json:"id"`
	PeriodID           string          `json:"period_id"`
	CostCenterID       string          `json:"cost_center_id"`
	Description        *string         `json:"description,omitempty"`
	UseBasic           bool            `json:"use_basic"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	WorkedHours        decimal.Decimal `json:"worked_hours"`
	BaseHours          decimal.Decimal `json:"base_hours"`
	EmployeeIDs        []string        `json:"employee_ids"`
	TransactionCodeIDs []string        `json:"transaction_code_ids"`
}
