package tax

import (
	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/pkg/validator"
)

// ========== TAX TABLE DTOs ==========

type TaxBandInput struct {
	MinSalary decimal.Decimal  `json:"min_salary"`
	MaxSalary *decimal.Decimal `json:"max_salary,omitempty"`
	TaxRate   decimal.Decimal  `json:"tax_rate"`
	TaxAmount decimal.Decimal  `json:"tax_amount"`
}

// ReplaceTaxTableRequest swaps the whole band set for one (currency, period type).
// Bands are validated as a partition of [0, inf) before anything is written.
type ReplaceTaxTableRequest struct {
	Currency   string         `json:"currency"`
	PeriodType string         `json:"period_type"`
	Bands      []TaxBandInput `json:"bands"`
}

func (r *ReplaceTaxTableRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Currency, []string{string(currency.CodeZWG), string(currency.CodeUSD)}) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be 'ZWG' or 'USD'"})
	}
	if !PeriodType(r.PeriodType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "must be 'monthly' or 'annual'"})
	}
	if len(r.Bands) == 0 {
		errs = append(errs, validator.ValidationError{Field: "bands", Message: "at least one band is required"})
		return errs
	}

	// Bands must partition [0, inf): first starts at 0, each next starts where
	// the previous ended, only the last band may be unbounded.
	if !r.Bands[0].MinSalary.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "bands[0].min_salary", Message: "first band must start at 0"})
	}
	for i, band := range r.Bands {
		field := "bands[" + validator.Itoa(i) + "]"
		if band.TaxRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".tax_rate", Message: "must be non-negative"})
		}
		if band.TaxAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field + ".tax_amount", Message: "must be non-negative"})
		}
		last := i == len(r.Bands)-1
		if last {
			if band.MaxSalary != nil {
				errs = append(errs, validator.ValidationError{Field: field + ".max_salary", Message: "last band must be open-ended"})
			}
			continue
		}
		if band.MaxSalary == nil {
			errs = append(errs, validator.ValidationError{Field: field + ".max_salary", Message: "only the last band may be open-ended"})
			continue
		}
		if !band.MaxSalary.GreaterThan(band.MinSalary) {
			errs = append(errs, validator.ValidationError{Field: field + ".max_salary", Message: "must be greater than min_salary"})
		}
		if !r.Bands[i+1].MinSalary.Equal(*band.MaxSalary) {
			errs = append(errs, validator.ValidationError{Field: "bands[" + validator.Itoa(i+1) + "].min_salary", Message: "must equal the previous band's max_salary"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaxBandResponse struct {
	ID        string           `json:"id"`
	MinSalary decimal.Decimal  `json:"min_salary"`
	MaxSalary *decimal.Decimal `json:"max_salary,omitempty"`
	TaxRate   decimal.Decimal  `json:"tax_rate"`
	TaxAmount decimal.Decimal  `json:"tax_amount"`
}

type TaxTableResponse struct {
	Currency   string            `json:"currency"`
	PeriodType string            `json:"period_type"`
	Bands      []TaxBandResponse `json:"bands"`
}

// ========== NEC GRADE DTOs ==========

type CreateNecGradeRequest struct {
	Name             string           `json:"name"`
	TransactionCode  string           `json:"transaction_code"`
	ContributionType string           `json:"contribution_type"` // "amount" or "percentage"
	EmployeeAmount   *decimal.Decimal `json:"employee_amount,omitempty"`
	EmployerAmount   *decimal.Decimal `json:"employer_amount,omitempty"`
	EmployeePercent  *decimal.Decimal `json:"employee_percent,omitempty"`
	EmployerPercent  *decimal.Decimal `json:"employer_percent,omitempty"`
	MinThreshold     *decimal.Decimal `json:"min_threshold,omitempty"`
	MaxThreshold     *decimal.Decimal `json:"max_threshold,omitempty"`
}

func (r *CreateNecGradeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidTransactionCode(r.TransactionCode) {
		errs = append(errs, validator.ValidationError{Field: "transaction_code", Message: "must be a valid transaction code"})
	}

	switch ContributionType(r.ContributionType) {
	case ContributionTypeAmount:
		if r.EmployeeAmount == nil && r.EmployerAmount == nil {
			errs = append(errs, validator.ValidationError{Field: "employee_amount", Message: "amount rule needs employee_amount or employer_amount"})
		}
	case ContributionTypePercentage:
		if r.EmployeePercent == nil && r.EmployerPercent == nil {
			errs = append(errs, validator.ValidationError{Field: "employee_percent", Message: "percentage rule needs employee_percent or employer_percent"})
		}
		if r.MinThreshold != nil && r.MaxThreshold != nil && r.MaxThreshold.LessThan(*r.MinThreshold) {
			errs = append(errs, validator.ValidationError{Field: "max_threshold", Message: "must be greater than or equal to min_threshold"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "contribution_type", Message: "must be 'amount' or 'percentage'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type NecGradeResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	TransactionCode  string           `json:"transaction_code"`
	ContributionType string           `json:"contribution_type"`
	EmployeeAmount   *decimal.Decimal `json:"employee_amount,omitempty"`
	EmployerAmount   *decimal.Decimal `json:"employer_amount,omitempty"`
	EmployeePercent  *decimal.Decimal `json:"employee_percent,omitempty"`
	EmployerPercent  *decimal.Decimal `json:"employer_percent,omitempty"`
	MinThreshold     *decimal.Decimal `json:"min_threshold,omitempty"`
	MaxThreshold     *decimal.Decimal `json:"max_threshold,omitempty"`
	IsActive         bool             `json:"is_active"`
}

// ========== TAX CREDIT DTOs ==========

type CreateTaxCreditRequest struct {
	Name       string          `json:"name"`
	Currency   string          `json:"currency"`
	PeriodType string          `json:"period_type"`
	Amount     decimal.Decimal `json:"amount"`
	MinAge     *int            `json:"min_age,omitempty"`
}

func (r *CreateTaxCreditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Currency, []string{string(currency.CodeZWG), string(currency.CodeUSD)}) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be 'ZWG' or 'USD'"})
	}
	if !PeriodType(r.PeriodType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "must be 'monthly' or 'annual'"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.MinAge != nil && *r.MinAge < 0 {
		errs = append(errs, validator.ValidationError{Field: "min_age", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== VEHICLE BENEFIT DTOs ==========

type CreateVehicleBenefitBandRequest struct {
	Currency          string          `json:"currency"`
	PeriodType        string          `json:"period_type"`
	EngineCapacityMin int             `json:"engine_capacity_min"`
	EngineCapacityMax *int            `json:"engine_capacity_max,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
}

func (r *CreateVehicleBenefitBandRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Currency, []string{string(currency.CodeZWG), string(currency.CodeUSD)}) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be 'ZWG' or 'USD'"})
	}
	if !PeriodType(r.PeriodType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "must be 'monthly' or 'annual'"})
	}
	if r.EngineCapacityMin < 0 {
		errs = append(errs, validator.ValidationError{Field: "engine_capacity_min", Message: "must be non-negative"})
	}
	if r.EngineCapacityMax != nil && *r.EngineCapacityMax <= r.EngineCapacityMin {
		errs = append(errs, validator.ValidationError{Field: "engine_capacity_max", Message: "must be greater than engine_capacity_min"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
