package payslip

import (
	"github.com/shopspring/decimal"
)

type PayslipResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	PeriodID     string `json:"period_id"`
	CostCenterID string `json:"cost_center_id"`

	GrossZwg      decimal.Decimal `json:"gross_zwg"`
	GrossUsd      decimal.Decimal `json:"gross_usd"`
	DeductionsZwg decimal.Decimal `json:"deductions_zwg"`
	DeductionsUsd decimal.Decimal `json:"deductions_usd"`
	NetZwg        decimal.Decimal `json:"net_zwg"`
	NetUsd        decimal.Decimal `json:"net_usd"`

	YtdGrossZwg decimal.Decimal `json:"ytd_gross_zwg"`
	YtdGrossUsd decimal.Decimal `json:"ytd_gross_usd"`
	YtdPayeZwg  decimal.Decimal `json:"ytd_paye_zwg"`
	YtdPayeUsd  decimal.Decimal `json:"ytd_paye_usd"`

	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Status       string          `json:"status"`

	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

type TransactionResponse struct {
	ID               string          `json:"id"`
	TransactionCode  string          `json:"transaction_code"`
	Description      *string         `json:"description,omitempty"`
	Category         string          `json:"category"`
	CalculationBasis string          `json:"calculation_basis"`
	Currency         string          `json:"currency"`
	AmountZwg        decimal.Decimal `json:"amount_zwg"`
	AmountUsd        decimal.Decimal `json:"amount_usd"`
	EmployerAmount   decimal.Decimal `json:"employer_amount"`
	IsManualOverride bool            `json:"is_manual_override"`
}

// MapToResponse converts a payslip and optional line items to the HTTP shape.
func MapToResponse(p Payslip, lines []Transaction) PayslipResponse {
	resp := PayslipResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		PeriodID:      p.PeriodID,
		CostCenterID:  p.CostCenterID,
		GrossZwg:      p.GrossZwg,
		GrossUsd:      p.GrossUsd,
		DeductionsZwg: p.DeductionsZwg,
		DeductionsUsd: p.DeductionsUsd,
		NetZwg:        p.NetZwg,
		NetUsd:        p.NetUsd,
		YtdGrossZwg:   p.YtdGrossZwg,
		YtdGrossUsd:   p.YtdGrossUsd,
		YtdPayeZwg:    p.YtdPayeZwg,
		YtdPayeUsd:    p.YtdPayeUsd,
		ExchangeRate:  p.ExchangeRate,
		Status:        string(p.Status),
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		resp.EmployeeCode = *p.EmployeeCode
	}
	for _, line := range lines {
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			ID:               line.ID,
			TransactionCode:  line.TransactionCode,
			Description:      line.Description,
			Category:         string(line.Category),
			CalculationBasis: string(line.CalculationBasis),
			Currency:         line.Currency,
			AmountZwg:        line.AmountZwg,
			AmountUsd:        line.AmountUsd,
			EmployerAmount:   line.EmployerAmount,
			IsManualOverride: line.IsManualOverride,
		})
	}
	return resp
}
