package tax

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
)

type tableKey struct {
	currency   currency.Code
	periodType tax.PeriodType
}

// Tables is an immutable snapshot of tax configuration: progressive bands,
// NEC grades, tax credits and vehicle benefit bands. All calculator
// operations are pure functions over this data.
type Tables struct {
	bands        map[tableKey][]tax.TaxBand
	necGrades    map[string]tax.NecGrade
	credits      []tax.TaxCredit
	vehicleBands []tax.VehicleBenefitBand
}

// NewTables builds a snapshot from active configuration rows. Bands are
// sorted by min salary per (currency, period type) table.
func NewTables(bands []tax.TaxBand, grades []tax.NecGrade, credits []tax.TaxCredit, vehicleBands []tax.VehicleBenefitBand) *Tables {
	t := &Tables{
		bands:     make(map[tableKey][]tax.TaxBand),
		necGrades: make(map[string]tax.NecGrade),
	}
	for _, band := range bands {
		if !band.IsActive {
			continue
		}
		key := tableKey{currency: band.Currency, periodType: band.PeriodType}
		t.bands[key] = append(t.bands[key], band)
	}
	for _, rows := range t.bands {
		sort.Slice(rows, func(i, j int) bool { return rows[i].MinSalary.LessThan(rows[j].MinSalary) })
	}
	for _, grade := range grades {
		if grade.IsActive {
			t.necGrades[grade.ID] = grade
		}
	}
	for _, credit := range credits {
		if credit.IsActive {
			t.credits = append(t.credits, credit)
		}
	}
	for _, band := range vehicleBands {
		if band.IsActive {
			t.vehicleBands = append(t.vehicleBands, band)
		}
	}
	return t
}

// NecGrade returns the active grade by id.
func (t *Tables) NecGrade(id string) (tax.NecGrade, bool) {
	grade, ok := t.necGrades[id]
	return grade, ok
}

// ComputeTax applies the progressive table for (currency, period type):
// result = band.tax_amount + (income - band.min_salary) * band.tax_rate for
// the band covering the income. A gap in the table is a configuration error,
// never papered over with the nearest band.
func (t *Tables) ComputeTax(income decimal.Decimal, code currency.Code, periodType tax.PeriodType) (decimal.Decimal, error) {
	if income.IsNegative() {
		income = decimal.Zero
	}
	for _, band := range t.bands[tableKey{currency: code, periodType: periodType}] {
		if band.Matches(income) {
			return band.TaxAmount.Add(income.Sub(band.MinSalary).Mul(band.TaxRate)), nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("income %s (%s, %s): %w", income, code, periodType, tax.ErrNoMatchingTaxBand)
}

// Contribution is the employee/employer pair produced by a NEC grade rule.
type Contribution struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// ComputeNecContribution evaluates a grade's rule against the base amount.
// Fixed-amount rules return their amounts as-is; percentage rules multiply
// and clip each portion to [min_threshold, max_threshold] when set.
func (t *Tables) ComputeNecContribution(grade tax.NecGrade, baseAmount decimal.Decimal) (Contribution, error) {
	switch grade.ContributionType {
	case tax.ContributionTypeAmount:
		return Contribution{
			Employee: valueOrZero(grade.EmployeeAmount),
			Employer: valueOrZero(grade.EmployerAmount),
		}, nil
	case tax.ContributionTypePercentage:
		return Contribution{
			Employee: clip(baseAmount.Mul(valueOrZero(grade.EmployeePercent)), grade.MinThreshold, grade.MaxThreshold),
			Employer: clip(baseAmount.Mul(valueOrZero(grade.EmployerPercent)), grade.MinThreshold, grade.MaxThreshold),
		}, nil
	default:
		return Contribution{}, fmt.Errorf("nec grade %s: %w", grade.Name, tax.ErrInvalidContributionRule)
	}
}

// ComputeTaxCredit sums every active credit matching the employee's age for
// the (currency, period type) pair. Age -1 (unknown date of birth) only
// matches unconditional credits.
func (t *Tables) ComputeTaxCredit(age int, code currency.Code, periodType tax.PeriodType) decimal.Decimal {
	total := decimal.Zero
	for _, credit := range t.credits {
		if credit.Currency != code || credit.PeriodType != periodType {
			continue
		}
		if credit.MinAge != nil && age < *credit.MinAge {
			continue
		}
		total = total.Add(credit.Amount)
	}
	return total
}

// ComputeVehicleBenefit returns the benefit-in-kind amount for the engine
// capacity, or zero when no band covers it (no band means no benefit).
func (t *Tables) ComputeVehicleBenefit(engineCapacity int, code currency.Code, periodType tax.PeriodType) decimal.Decimal {
	for _, band := range t.vehicleBands {
		if band.Currency != code || band.PeriodType != periodType {
			continue
		}
		if band.Matches(engineCapacity) {
			return band.Amount
		}
	}
	return decimal.Zero
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func clip(amount decimal.Decimal, min, max *decimal.Decimal) decimal.Decimal {
	if min != nil && amount.LessThan(*min) {
		return *min
	}
	if max != nil && amount.GreaterThan(*max) {
		return *max
	}
	return amount
}

// Loader reads tax configuration into a Tables snapshot.
type Loader struct {
	taxRepo tax.TaxRepository
}

func NewLoader(taxRepo tax.TaxRepository) *Loader {
	return &Loader{taxRepo: taxRepo}
}

func (l *Loader) LoadTables(ctx context.Context) (*Tables, error) {
	bands, err := l.taxRepo.ListActiveBands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax bands: %w", err)
	}
	grades, err := l.taxRepo.ListActiveNecGrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load nec grades: %w", err)
	}
	credits, err := l.taxRepo.ListActiveTaxCredits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax credits: %w", err)
	}
	vehicleBands, err := l.taxRepo.ListActiveVehicleBenefitBands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle benefit bands: %w", err)
	}
	return NewTables(bands, grades, credits, vehicleBands), nil
}
