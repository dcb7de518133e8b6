package tax

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

// PeriodType enum
type PeriodType string

const (
	PeriodTypeMonthly PeriodType = "monthly"
	PeriodTypeAnnual  PeriodType = "annual"
)

func (p PeriodType) IsValid() bool {
	return p == PeriodTypeMonthly || p == PeriodTypeAnnual
}

// TaxBand is one bracket of a progressive table. Bands for a
// (currency, period type) must partition [0, inf) without gaps or overlaps;
// MaxSalary nil marks the top band.
type TaxBand struct {
	ID         string
	Currency   currency.Code
	PeriodType PeriodType
	MinSalary  decimal.Decimal
	MaxSalary  *decimal.Decimal
	TaxRate    decimal.Decimal
	TaxAmount  decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Matches reports whether income falls inside this band.
func (b TaxBand) Matches(income decimal.Decimal) bool {
	if income.LessThan(b.MinSalary) {
		return false
	}
	return b.MaxSalary == nil || income.LessThan(*b.MaxSalary)
}

// ContributionType enum
type ContributionType string

const (
	ContributionTypeAmount     ContributionType = "amount"
	ContributionTypePercentage ContributionType = "percentage"
)

// NecGrade is a statutory contribution rule tied to a transaction code.
// Either fixed employee/employer amounts or percentages with optional
// min/max threshold clipping.
type NecGrade struct {
	ID               string
	Name             string
	TransactionCode  string
	ContributionType ContributionType
	EmployeeAmount   *decimal.Decimal
	EmployerAmount   *decimal.Decimal
	EmployeePercent  *decimal.Decimal
	EmployerPercent  *decimal.Decimal
	MinThreshold     *decimal.Decimal
	MaxThreshold     *decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TaxCredit is a flat allowance matched against employee attributes.
// MinAge nil means the credit applies to everyone.
type TaxCredit struct {
	ID         string
	Name       string
	Currency   currency.Code
	PeriodType PeriodType
	Amount     decimal.Decimal
	MinAge     *int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VehicleBenefitBand maps an engine capacity range [min, max) to a
// benefit-in-kind amount. EngineCapacityMax nil marks the top band.
type VehicleBenefitBand struct {
	ID                string
	Currency          currency.Code
	PeriodType        PeriodType
	EngineCapacityMin int
	EngineCapacityMax *int
	Amount            decimal.Decimal
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Matches reports whether the engine capacity falls inside this band.
func (b VehicleBenefitBand) Matches(engineCapacity int) bool {
	if engineCapacity < b.EngineCapacityMin {
		return false
	}
	return b.EngineCapacityMax == nil || engineCapacity < *b.EngineCapacityMax
}
