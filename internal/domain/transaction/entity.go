package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

// Category enum
type Category string

const (
	CategoryEarning      Category = "earning"
	CategoryDeduction    Category = "deduction"
	CategoryContribution Category = "contribution"
)

func (c Category) IsValid() bool {
	return c == CategoryEarning || c == CategoryDeduction || c == CategoryContribution
}

// CalculationBasis records how a line item's amount was derived, for audit.
type CalculationBasis string

const (
	BasisDays       CalculationBasis = "days"
	BasisHours      CalculationBasis = "hours"
	BasisAmount     CalculationBasis = "amount"
	BasisPercentage CalculationBasis = "percentage"
)

// TransactionCode - reusable pay line classification
type TransactionCode struct {
	ID          string
	Code        string
	Name        string
	Category    Category
	IsTaxable   bool
	FixedAmount *decimal.Decimal
	Percentage  *decimal.Decimal
	IsBenefit   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultTransaction - recurring pay line for (code, period, center, currency)
type DefaultTransaction struct {
	ID                string
	TransactionCodeID string
	PeriodID          string
	CostCenterID      string
	// Currency tags the line: DEFAULT lines follow the center's split,
	// ZWG/USD lines are explicit and get rate-converted instead.
	Currency       currency.Mode
	EmployeeAmount decimal.Decimal
	EmployerAmount decimal.Decimal
	Hours          *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time

	// Joined fields
	Code         *string
	CodeName     *string
	CodeCategory *Category
	CodeTaxable  *bool
}

// CustomTransaction - ad-hoc batch fanned out to an explicit employee set,
// expanded once per tagged transaction code.
type CustomTransaction struct {
	ID           string
	PeriodID     string
	CostCenterID string
	Description  *string
	UseBasic     bool
	BaseAmount   decimal.Decimal
	WorkedHours  decimal.Decimal
	BaseHours    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	EmployeeIDs []string
	Codes       []TransactionCode
}

// LineItem is one normalized pay line produced by aggregation, mirrored into
// a payslip transaction after the build.
type LineItem struct {
	Code           string
	Description    string
	Category       Category
	Basis          CalculationBasis
	Currency       currency.Mode
	Taxable        bool
	EmployeeAmount decimal.Decimal
	EmployerAmount decimal.Decimal
}
