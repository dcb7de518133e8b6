package currency

import (
	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/pkg/validator"
)

// splitTolerance is the accepted rounding slack on ZWG% + USD% = 100.
var splitTolerance = decimal.NewFromFloat(0.01)

type CreateCurrencySplitRequest struct {
	CostCenterID  string          `json:"cost_center_id"`
	ZwgPercent    decimal.Decimal `json:"zwg_percent"`
	UsdPercent    decimal.Decimal `json:"usd_percent"`
	EffectiveDate string          `json:"effective_date"`
}

func (r *CreateCurrencySplitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CostCenterID) {
		errs = append(errs, validator.ValidationError{Field: "cost_center_id", Message: "is required"})
	}
	if r.ZwgPercent.IsNegative() || r.UsdPercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "zwg_percent", Message: "percentages must be non-negative"})
	}
	sum := r.ZwgPercent.Add(r.UsdPercent)
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(splitTolerance) {
		errs = append(errs, validator.ValidationError{Field: "usd_percent", Message: "zwg_percent and usd_percent must sum to 100"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CurrencySplitResponse struct {
	ID            string          `json:"id"`
	CostCenterID  string          `json:"cost_center_id"`
	ZwgPercent    decimal.Decimal `json:"zwg_percent"`
	UsdPercent    decimal.Decimal `json:"usd_percent"`
	EffectiveDate string          `json:"effective_date"`
	IsActive      bool            `json:"is_active"`
}

type CreateExchangeRateRequest struct {
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
}

func (r *CreateExchangeRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.FromCurrency, []string{string(CodeZWG), string(CodeUSD)}) {
		errs = append(errs, validator.ValidationError{Field: "from_currency", Message: "must be 'ZWG' or 'USD'"})
	}
	if !validator.IsInSlice(r.ToCurrency, []string{string(CodeZWG), string(CodeUSD)}) {
		errs = append(errs, validator.ValidationError{Field: "to_currency", Message: "must be 'ZWG' or 'USD'"})
	}
	if r.FromCurrency == r.ToCurrency {
		errs = append(errs, validator.ValidationError{Field: "to_currency", Message: "must differ from from_currency"})
	}
	if !r.Rate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExchangeRateResponse struct {
	ID            string          `json:"id"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
	IsActive      bool            `json:"is_active"`
}
