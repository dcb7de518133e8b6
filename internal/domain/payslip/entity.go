package payslip

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
)

// Status enum
type Status string

const (
	StatusDraft       Status = "draft"
	StatusFinalized   Status = "finalized"
	StatusDistributed Status = "distributed"
	StatusCancelled   Status = "cancelled"
)

// CanTransitionTo enforces the payslip lifecycle:
// draft -> finalized -> distributed, or draft -> cancelled.
// Finalize is a one-way gate; amounts never change after it.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusFinalized || next == StatusCancelled
	case StatusFinalized:
		return next == StatusDistributed
	default:
		return false
	}
}

// Mutable reports whether payslip amounts may still change.
func (s Status) Mutable() bool {
	return s == StatusDraft
}

// Payslip - one record per (employee, period)
type Payslip struct {
	ID           string
	EmployeeID   string
	PeriodID     string
	CostCenterID string

	GrossZwg      decimal.Decimal
	GrossUsd      decimal.Decimal
	DeductionsZwg decimal.Decimal
	DeductionsUsd decimal.Decimal
	NetZwg        decimal.Decimal
	NetUsd        decimal.Decimal

	YtdGrossZwg decimal.Decimal
	YtdGrossUsd decimal.Decimal
	YtdPayeZwg  decimal.Decimal
	YtdPayeUsd  decimal.Decimal

	ExchangeRate decimal.Decimal
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Transaction is one computed line item on a payslip, carrying the
// calculation basis for audit.
type Transaction struct {
	ID               string
	PayslipID        string
	TransactionCode  string
	Description      *string
	Category         transaction.Category
	CalculationBasis transaction.CalculationBasis
	Currency         string
	AmountZwg        decimal.Decimal
	AmountUsd        decimal.Decimal
	EmployerAmount   decimal.Decimal
	IsManualOverride bool
	CreatedAt        time.Time
}

// YTDTotals is the read-only year-to-date snapshot taken before a batch
// starts, keyed by employee.
type YTDTotals struct {
	GrossZwg decimal.Decimal
	GrossUsd decimal.Decimal
	PayeZwg  decimal.Decimal
	PayeUsd  decimal.Decimal
}
