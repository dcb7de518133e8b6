package payslip

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
	currencyService "github.com/zimhr/payroll-backend-go/internal/service/currency"
	taxService "github.com/zimhr/payroll-backend-go/internal/service/tax"
	transactionService "github.com/zimhr/payroll-backend-go/internal/service/transaction"
)

// Engine-generated line codes. NEC lines carry the grade's own code.
const (
	codePaye           = "PAYE"
	codeTaxCredit      = "TAX_CREDIT"
	codeVehicleBenefit = "VEH_BENEFIT"
)

// BuildContext is the immutable per-(period, center) snapshot a run computes
// against. Loading it once before the batch keeps every employee on the same
// configuration and YTD view.
type BuildContext struct {
	Payroll      period.Payroll
	Period       period.AccountingPeriod
	CostCenterID string
	Mode         currency.Mode

	Currency *currencyService.Snapshot
	Tables   *taxService.Tables
	Defaults []transaction.DefaultTransaction
	Customs  []transaction.CustomTransaction

	// YTD holds per-employee totals over prior finalized payslips in the tax
	// year, captured before the batch starts.
	YTD map[string]payslip.YTDTotals
}

// resolutionDate is the date effective-dated configuration is resolved at.
func (c BuildContext) resolutionDate() time.Time {
	return c.Period.PeriodEnd
}

func (c BuildContext) periodType() tax.PeriodType {
	if c.Payroll.TaxMethod == string(tax.PeriodTypeAnnual) {
		return tax.PeriodTypeAnnual
	}
	return tax.PeriodTypeMonthly
}

// Builder combines aggregated transactions with calculator outputs and
// currency splits into one payslip per employee.
type Builder struct {
	aggregator *transactionService.Aggregator
}

func NewBuilder(aggregator *transactionService.Aggregator) *Builder {
	return &Builder{aggregator: aggregator}
}

// Build computes the draft payslip and its line items for one employee.
// It is pure over the context; persistence and finalization belong to the
// period engine.
func (b *Builder) Build(ctx BuildContext, emp employee.Employee) (payslip.Payslip, []payslip.Transaction, error) {
	split, err := b.resolveSplit(ctx)
	if err != nil {
		return payslip.Payslip{}, nil, err
	}

	base := ctx.Payroll.BaseCurrency
	rate, err := b.resolveRate(ctx, split)
	if err != nil {
		return payslip.Payslip{}, nil, err
	}

	items, err := b.aggregator.Aggregate(emp, ctx.Mode, ctx.Defaults, ctx.Customs)
	if err != nil {
		return payslip.Payslip{}, nil, err
	}

	conv := converter{base: base, split: split, rate: rate}

	// Cash totals accumulate in base currency for tax math and per
	// currency column for the payslip.
	var lines []payslip.Transaction
	taxableBase := decimal.Zero
	allowableDeductionsBase := decimal.Zero
	grossZwg, grossUsd := decimal.Zero, decimal.Zero
	deductionsZwg, deductionsUsd := decimal.Zero, decimal.Zero

	for _, item := range items {
		zwg, usd, err := conv.lineAmounts(item.Currency, item.EmployeeAmount)
		if err != nil {
			return payslip.Payslip{}, nil, err
		}
		inBase, err := conv.toBase(item.Currency, item.EmployeeAmount)
		if err != nil {
			return payslip.Payslip{}, nil, err
		}

		switch item.Category {
		case transaction.CategoryEarning:
			grossZwg = grossZwg.Add(zwg)
			grossUsd = grossUsd.Add(usd)
			if item.Taxable {
				taxableBase = taxableBase.Add(inBase)
			}
		case transaction.CategoryDeduction, transaction.CategoryContribution:
			deductionsZwg = deductionsZwg.Add(zwg)
			deductionsUsd = deductionsUsd.Add(usd)
			if item.Taxable {
				allowableDeductionsBase = allowableDeductionsBase.Add(inBase)
			}
		}

		lines = append(lines, payslip.Transaction{
			TransactionCode:  item.Code,
			Description:      optional(item.Description),
			Category:         item.Category,
			CalculationBasis: item.Basis,
			Currency:         string(item.Currency),
			AmountZwg:        zwg.Round(2),
			AmountUsd:        usd.Round(2),
			EmployerAmount:   item.EmployerAmount.Round(2),
		})
	}

	periodType := ctx.periodType()

	// Benefit-in-kind raises taxable income but is not cash pay.
	vehicleBenefit := decimal.Zero
	if emp.VehicleEngineCapacity != nil {
		vehicleBenefit = ctx.Tables.ComputeVehicleBenefit(*emp.VehicleEngineCapacity, base, periodType)
	}
	if vehicleBenefit.IsPositive() {
		zwg, usd, _ := conv.lineAmounts(currency.ModeDefault, vehicleBenefit)
		lines = append(lines, payslip.Transaction{
			TransactionCode:  codeVehicleBenefit,
			Description:      optional("Vehicle benefit (non-cash)"),
			Category:         transaction.CategoryEarning,
			CalculationBasis: transaction.BasisAmount,
			Currency:         string(currency.ModeDefault),
			AmountZwg:        zwg.Round(2),
			AmountUsd:        usd.Round(2),
		})
	}

	taxableIncome := taxableBase.Add(vehicleBenefit).Sub(allowableDeductionsBase)

	paye, err := ctx.Tables.ComputeTax(taxableIncome, base, periodType)
	if err != nil {
		return payslip.Payslip{}, nil, err
	}

	necEmployee, necEmployer := decimal.Zero, decimal.Zero
	for _, gradeID := range emp.NecGradeIDs {
		grade, ok := ctx.Tables.NecGrade(gradeID)
		if !ok {
			continue
		}
		contribution, err := ctx.Tables.ComputeNecContribution(grade, emp.BasicSalary)
		if err != nil {
			return payslip.Payslip{}, nil, err
		}
		necEmployee = necEmployee.Add(contribution.Employee)
		necEmployer = necEmployer.Add(contribution.Employer)

		zwg, usd, _ := conv.lineAmounts(currency.ModeDefault, contribution.Employee)
		lines = append(lines, payslip.Transaction{
			TransactionCode:  grade.TransactionCode,
			Description:      optional(grade.Name),
			Category:         transaction.CategoryContribution,
			CalculationBasis: transaction.BasisPercentage,
			Currency:         string(currency.ModeDefault),
			AmountZwg:        zwg.Round(2),
			AmountUsd:        usd.Round(2),
			EmployerAmount:   contribution.Employer.Round(2),
		})
	}

	credit := ctx.Tables.ComputeTaxCredit(emp.AgeOn(ctx.Period.PeriodEnd), base, periodType)

	payeZwg, payeUsd, _ := conv.lineAmounts(currency.ModeDefault, paye)
	if paye.IsPositive() {
		lines = append(lines, payslip.Transaction{
			TransactionCode:  codePaye,
			Description:      optional("Pay as you earn"),
			Category:         transaction.CategoryDeduction,
			CalculationBasis: transaction.BasisPercentage,
			Currency:         string(currency.ModeDefault),
			AmountZwg:        payeZwg.Round(2),
			AmountUsd:        payeUsd.Round(2),
		})
	}
	if credit.IsPositive() {
		zwg, usd, _ := conv.lineAmounts(currency.ModeDefault, credit)
		lines = append(lines, payslip.Transaction{
			TransactionCode:  codeTaxCredit,
			Description:      optional("Tax credit"),
			Category:         transaction.CategoryDeduction,
			CalculationBasis: transaction.BasisAmount,
			Currency:         string(currency.ModeDefault),
			AmountZwg:        zwg.Neg().Round(2),
			AmountUsd:        usd.Neg().Round(2),
		})
	}

	// net = gross - (tax + contributions + other deductions) + credits
	necZwg, necUsd, _ := conv.lineAmounts(currency.ModeDefault, necEmployee)
	creditZwg, creditUsd, _ := conv.lineAmounts(currency.ModeDefault, credit)

	deductionsZwg = deductionsZwg.Add(payeZwg).Add(necZwg).Sub(creditZwg)
	deductionsUsd = deductionsUsd.Add(payeUsd).Add(necUsd).Sub(creditUsd)
	netZwg := grossZwg.Sub(deductionsZwg)
	netUsd := grossUsd.Sub(deductionsUsd)

	payeZwgRounded := payeZwg.Round(2)
	payeUsdRounded := payeUsd.Round(2)

	prior := ctx.YTD[emp.ID]
	slip := payslip.Payslip{
		EmployeeID:   emp.ID,
		PeriodID:     ctx.Period.ID,
		CostCenterID: ctx.CostCenterID,

		GrossZwg:      grossZwg.Round(2),
		GrossUsd:      grossUsd.Round(2),
		DeductionsZwg: deductionsZwg.Round(2),
		DeductionsUsd: deductionsUsd.Round(2),
		NetZwg:        netZwg.Round(2),
		NetUsd:        netUsd.Round(2),

		YtdGrossZwg: prior.GrossZwg.Add(grossZwg).Round(2),
		YtdGrossUsd: prior.GrossUsd.Add(grossUsd).Round(2),
		YtdPayeZwg:  prior.PayeZwg.Add(payeZwgRounded).Round(2),
		YtdPayeUsd:  prior.PayeUsd.Add(payeUsdRounded).Round(2),

		ExchangeRate: rate,
		Status:       payslip.StatusDraft,
	}

	return slip, lines, nil
}

func (b *Builder) resolveSplit(ctx BuildContext) (currency.Split, error) {
	hundred := decimal.NewFromInt(100)
	switch ctx.Mode {
	case currency.ModeZWG:
		return currency.Split{ZwgPercent: hundred, UsdPercent: decimal.Zero}, nil
	case currency.ModeUSD:
		return currency.Split{ZwgPercent: decimal.Zero, UsdPercent: hundred}, nil
	default:
		return ctx.Currency.ResolveSplit(ctx.CostCenterID, ctx.resolutionDate())
	}
}

// resolveRate returns the base-to-other rate. A run that never leaves the
// base currency column does not require a configured rate.
func (b *Builder) resolveRate(ctx BuildContext, split currency.Split) (decimal.Decimal, error) {
	base := ctx.Payroll.BaseCurrency
	other := base.Other()

	rate, err := ctx.Currency.ResolveRate(base, other, ctx.resolutionDate())
	if err == nil {
		return rate, nil
	}
	if !b.needsConversion(ctx, split) {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Decimal{}, err
}

func (b *Builder) needsConversion(ctx BuildContext, split currency.Split) bool {
	base := ctx.Payroll.BaseCurrency
	otherPct := split.ZwgPercent
	if base == currency.CodeZWG {
		otherPct = split.UsdPercent
	}
	if otherPct.IsPositive() {
		return true
	}
	for _, txn := range ctx.Defaults {
		if txn.DeletedAt == nil && txn.Currency != currency.ModeDefault && txn.Currency != currency.Mode(base) {
			return true
		}
	}
	return false
}

// converter splits base-currency amounts into the ZWG/USD columns and
// converts explicitly tagged amounts.
type converter struct {
	base  currency.Code
	split currency.Split
	rate  decimal.Decimal // base -> other
}

var oneHundred = decimal.NewFromInt(100)

// lineAmounts returns the (zwg, usd) columns for one amount. DEFAULT-tagged
// amounts are split by the percentages, with the non-base share converted at
// the resolved rate; explicitly tagged amounts land wholly in their own
// column.
func (c converter) lineAmounts(tag currency.Mode, amount decimal.Decimal) (zwg, usd decimal.Decimal, err error) {
	switch tag {
	case currency.ModeZWG:
		return amount, decimal.Zero, nil
	case currency.ModeUSD:
		return decimal.Zero, amount, nil
	}

	zwgShare := amount.Mul(c.split.ZwgPercent).Div(oneHundred)
	usdShare := amount.Mul(c.split.UsdPercent).Div(oneHundred)
	if c.base == currency.CodeUSD {
		return zwgShare.Mul(c.rate), usdShare, nil
	}
	return zwgShare, usdShare.Mul(c.rate), nil
}

// toBase expresses an amount in the payroll's base currency for tax math.
func (c converter) toBase(tag currency.Mode, amount decimal.Decimal) (decimal.Decimal, error) {
	if tag == currency.ModeDefault || tag == currency.Mode(c.base) {
		return amount, nil
	}
	if c.rate.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("converting %s amount to %s: %w", tag, c.base, currency.ErrNoApplicableRate)
	}
	return amount.Div(c.rate), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
