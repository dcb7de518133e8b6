package payslip

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usdPayroll() period.Payroll {
	return period.Payroll{
		ID:           "payroll-1",
		Name:         "Monthly Payroll",
		PeriodLength: "monthly",
		TaxMethod:    "monthly",
		BaseCurrency: currency.CodeUSD,
	}
}

func marchPeriod() period.AccountingPeriod {
	return period.AccountingPeriod{
		ID:          "period-3",
		PayrollID:   "payroll-1",
		MonthName:   "March",
		Year:        2026,
		PeriodStart: date(2026, time.March, 1),
		PeriodEnd:   date(2026, time.March, 31),
	}
}

func flatUsdBands(rate string) []tax.TaxBand {
	return []tax.TaxBand{{
		Currency:   currency.CodeUSD,
		PeriodType: tax.PeriodTypeMonthly,
		MinSalary:  dec("0"),
		TaxRate:    dec(rate),
		TaxAmount:  dec("0"),
		IsActive:   true,
	}}
}

func salaryDefault(id, code, amount string) transaction.DefaultTransaction {
	earning := transaction.CategoryEarning
	taxable := true
	return transaction.DefaultTransaction{
		ID:             id,
		Code:           &code,
		CodeCategory:   &earning,
		CodeTaxable:    &taxable,
		EmployeeAmount: dec(amount),
		Currency:       currency.ModeDefault,
	}
}

func buildContext(splits []currency.CurrencySplit, rates []currency.ExchangeRate, bands []tax.TaxBand) BuildContext {
	return BuildContext{
		Payroll:      usdPayroll(),
		Period:       marchPeriod(),
		CostCenterID: "center-1",
		Mode:         currency.ModeDefault,
		Currency:     currencyService.NewSnapshot(splits, rates),
		Tables:       taxService.NewTables(bands, nil, nil, nil),
		YTD:          map[string]payslip.YTDTotals{},
	}
}

func TestBuilder_SplitsBaseAmountsAcrossCurrencies(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("30"),
		UsdPercent:    dec("70"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}
	rates := []currency.ExchangeRate{{
		FromCurrency:  currency.CodeUSD,
		ToCurrency:    currency.CodeZWG,
		Rate:          dec("30"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}

	ctx := buildContext(splits, rates, flatUsdBands("0"))
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	builder := NewBuilder(transactionService.NewAggregator())
	slip, lines, err := builder.Build(ctx, employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), IsActive: true})
	require.NoError(t, err)

	// 30% of 1000 converted at 30, 70% stays in USD.
	assert.True(t, slip.GrossZwg.Equal(dec("9000")), "gross zwg = %s", slip.GrossZwg)
	assert.True(t, slip.GrossUsd.Equal(dec("700")), "gross usd = %s", slip.GrossUsd)
	assert.True(t, slip.NetZwg.Equal(dec("9000")))
	assert.True(t, slip.NetUsd.Equal(dec("700")))
	assert.True(t, slip.ExchangeRate.Equal(dec("30")))
	assert.Equal(t, payslip.StatusDraft, slip.Status)

	require.Len(t, lines, 1)
	assert.Equal(t, "BASIC", lines[0].TransactionCode)
	assert.True(t, lines[0].AmountZwg.Equal(dec("9000")))
	assert.True(t, lines[0].AmountUsd.Equal(dec("700")))
}

func TestBuilder_ExplicitCurrencyLineIsNotSplit(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("0"),
		UsdPercent:    dec("100"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}
	rates := []currency.ExchangeRate{{
		FromCurrency:  currency.CodeUSD,
		ToCurrency:    currency.CodeZWG,
		Rate:          dec("25"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}

	zwgAllowance := salaryDefault("dt-2", "ZWG_ALLW", "500")
	zwgAllowance.Currency = currency.ModeZWG

	ctx := buildContext(splits, rates, flatUsdBands("0"))
	ctx.Defaults = []transaction.DefaultTransaction{
		salaryDefault("dt-1", "BASIC", "1000"),
		zwgAllowance,
	}

	builder := NewBuilder(transactionService.NewAggregator())
	slip, lines, err := builder.Build(ctx, employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), IsActive: true})
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.True(t, slip.GrossUsd.Equal(dec("1000")), "gross usd = %s", slip.GrossUsd)
	// The tagged line lands wholly in its own currency column.
	assert.True(t, slip.GrossZwg.Equal(dec("500")), "gross zwg = %s", slip.GrossZwg)
}

func TestBuilder_ModeOverridesConfiguredSplit(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("50"),
		UsdPercent:    dec("50"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}

	ctx := buildContext(splits, nil, flatUsdBands("0"))
	ctx.Mode = currency.ModeUSD
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	builder := NewBuilder(transactionService.NewAggregator())
	slip, _, err := builder.Build(ctx, employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), IsActive: true})
	require.NoError(t, err)

	assert.True(t, slip.GrossZwg.IsZero())
	assert.True(t, slip.GrossUsd.Equal(dec("1000")))
	// Single-currency run needs no configured rate.
	assert.True(t, slip.ExchangeRate.Equal(dec("1")))
}

func TestBuilder_MissingSplitIsFatal(t *testing.T) {
	ctx := buildContext(nil, nil, flatUsdBands("0"))
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	builder := NewBuilder(transactionService.NewAggregator())
	_, _, err := builder.Build(ctx, employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), IsActive: true})
	assert.ErrorIs(t, err, currency.ErrNoApplicableSplit)
}

func TestBuilder_MissingRateIsFatalWhenConversionNeeded(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("30"),
		UsdPercent:    dec("70"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}

	ctx := buildContext(splits, nil, flatUsdBands("0"))
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	builder := NewBuilder(transactionService.NewAggregator())
	_, _, err := builder.Build(ctx, employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), IsActive: true})
	assert.ErrorIs(t, err, currency.ErrNoApplicableRate)
}

func TestBuilder_TaxAndContributionsReduceNet(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("0"),
		UsdPercent:    dec("100"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}
	pct := dec("0.045")
	grades := []tax.NecGrade{{
		ID:               "grade-1",
		Name:             "NEC Grade A",
		TransactionCode:  "NEC_A",
		ContributionType: tax.ContributionTypePercentage,
		EmployeePercent:  &pct,
		EmployerPercent:  &pct,
		IsActive:         true,
	}}

	ctx := buildContext(splits, nil, flatUsdBands("0.20"))
	ctx.Tables = taxService.NewTables(flatUsdBands("0.20"), grades, nil, nil)
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	builder := NewBuilder(transactionService.NewAggregator())
	emp := employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), NecGradeIDs: []string{"grade-1"}, IsActive: true}
	slip, lines, err := builder.Build(ctx, emp)
	require.NoError(t, err)

	// PAYE 20% of 1000, NEC 4.5% of basic.
	assert.True(t, slip.GrossUsd.Equal(dec("1000")))
	assert.True(t, slip.DeductionsUsd.Equal(dec("245")), "deductions usd = %s", slip.DeductionsUsd)
	assert.True(t, slip.NetUsd.Equal(dec("755")), "net usd = %s", slip.NetUsd)

	var codes []string
	for _, line := range lines {
		codes = append(codes, line.TransactionCode)
	}
	assert.ElementsMatch(t, []string{"BASIC", "NEC_A", "PAYE"}, codes)

	for _, line := range lines {
		if line.TransactionCode == "NEC_A" {
			assert.True(t, line.EmployerAmount.Equal(dec("45")))
		}
	}
}

func TestBuilder_VehicleBenefitTaxedButNotPaid(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("0"),
		UsdPercent:    dec("100"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}
	maxCapacity := 2000
	vehicleBands := []tax.VehicleBenefitBand{{
		Currency:          currency.CodeUSD,
		PeriodType:        tax.PeriodTypeMonthly,
		EngineCapacityMin: 1500,
		EngineCapacityMax: &maxCapacity,
		Amount:            dec("50"),
		IsActive:          true,
	}}

	ctx := buildContext(splits, nil, flatUsdBands("0.10"))
	ctx.Tables = taxService.NewTables(flatUsdBands("0.10"), nil, nil, vehicleBands)
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	capacity := 1800
	builder := NewBuilder(transactionService.NewAggregator())
	emp := employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), VehicleEngineCapacity: &capacity, IsActive: true}
	slip, lines, err := builder.Build(ctx, emp)
	require.NoError(t, err)

	// Taxable income 1050, cash gross still 1000.
	assert.True(t, slip.GrossUsd.Equal(dec("1000")))
	assert.True(t, slip.DeductionsUsd.Equal(dec("105")), "deductions usd = %s", slip.DeductionsUsd)
	assert.True(t, slip.NetUsd.Equal(dec("895")))

	var benefitLine *payslip.Transaction
	for i := range lines {
		if lines[i].TransactionCode == "VEH_BENEFIT" {
			benefitLine = &lines[i]
		}
	}
	require.NotNil(t, benefitLine)
	assert.True(t, benefitLine.AmountUsd.Equal(dec("50")))
}

func TestBuilder_TaxCreditIncreasesNet(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("0"),
		UsdPercent:    dec("100"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}
	minAge := 55
	credits := []tax.TaxCredit{{
		Name:       "Elderly credit",
		Currency:   currency.CodeUSD,
		PeriodType: tax.PeriodTypeMonthly,
		Amount:     dec("30"),
		MinAge:     &minAge,
		IsActive:   true,
	}}

	ctx := buildContext(splits, nil, flatUsdBands("0.20"))
	ctx.Tables = taxService.NewTables(flatUsdBands("0.20"), nil, credits, nil)
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}

	dob := date(1960, time.June, 15)
	builder := NewBuilder(transactionService.NewAggregator())
	emp := employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), DateOfBirth: &dob, IsActive: true}
	slip, _, err := builder.Build(ctx, emp)
	require.NoError(t, err)

	// PAYE 200 less the 30 credit.
	assert.True(t, slip.DeductionsUsd.Equal(dec("170")), "deductions usd = %s", slip.DeductionsUsd)
	assert.True(t, slip.NetUsd.Equal(dec("830")))
}

func TestBuilder_AccumulatesYearToDate(t *testing.T) {
	splits := []currency.CurrencySplit{{
		CostCenterID:  "center-1",
		ZwgPercent:    dec("0"),
		UsdPercent:    dec("100"),
		EffectiveDate: date(2026, time.January, 1),
		IsActive:      true,
	}}

	ctx := buildContext(splits, nil, flatUsdBands("0.10"))
	ctx.Defaults = []transaction.DefaultTransaction{salaryDefault("dt-1", "BASIC", "1000")}
	ctx.YTD = map[string]payslip.YTDTotals{
		"emp-1": {GrossUsd: dec("2000"), PayeUsd: dec("200")},
	}

	builder := NewBuilder(transactionService.NewAggregator())
	slip, _, err := builder.Build(ctx, employee.Employee{ID: "emp-1", BasicSalary: dec("1000"), IsActive: true})
	require.NoError(t, err)

	assert.True(t, slip.YtdGrossUsd.Equal(dec("3000")), "ytd gross usd = %s", slip.YtdGrossUsd)
	assert.True(t, slip.YtdPayeUsd.Equal(dec("300")), "ytd paye usd = %s", slip.YtdPayeUsd)
	assert.True(t, slip.YtdGrossZwg.IsZero())
}
