package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:           "emp-1",
		EmployeeCode: "0001",
		BasicSalary:  dec("1000"),
		IsActive:     true,
	}
}

func defaultTxn(code string, category transaction.Category, tag currency.Mode, amount string) transaction.DefaultTransaction {
	cat := category
	taxable := true
	return transaction.DefaultTransaction{
		ID:             "dt-" + code,
		Currency:       tag,
		EmployeeAmount: dec(amount),
		Code:           strPtr(code),
		CodeName:       strPtr(code),
		CodeCategory:   &cat,
		CodeTaxable:    &taxable,
	}
}

func TestAggregate_DefaultTransactionsByMode(t *testing.T) {
	agg := NewAggregator()
	defaults := []transaction.DefaultTransaction{
		defaultTxn("BASIC", transaction.CategoryEarning, currency.ModeDefault, "1000"),
		defaultTxn("USD_ALLOW", transaction.CategoryEarning, currency.ModeUSD, "100"),
		defaultTxn("ZWG_ALLOW", transaction.CategoryEarning, currency.ModeZWG, "50"),
	}

	// DEFAULT mode: everything comes through
	items, err := agg.Aggregate(testEmployee(), currency.ModeDefault, defaults, nil)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// USD mode: the ZWG-tagged line is excluded
	items, err = agg.Aggregate(testEmployee(), currency.ModeUSD, defaults, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "BASIC", items[0].Code)
	assert.Equal(t, "USD_ALLOW", items[1].Code)
}

func TestAggregate_SkipsSoftDeletedDefaults(t *testing.T) {
	agg := NewAggregator()
	deleted := defaultTxn("GONE", transaction.CategoryEarning, currency.ModeDefault, "10")
	now := time.Now()
	deleted.DeletedAt = &now

	items, err := agg.Aggregate(testEmployee(), currency.ModeDefault, []transaction.DefaultTransaction{deleted}, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAggregate_CustomTransactionFanout(t *testing.T) {
	agg := NewAggregator()
	customs := []transaction.CustomTransaction{{
		ID:          "ct-1",
		UseBasic:    true,
		WorkedHours: dec("150"),
		BaseHours:   dec("176"),
		EmployeeIDs: []string{"emp-1", "emp-2"},
		Codes: []transaction.TransactionCode{
			{ID: "code-1", Code: "OT", Name: "Overtime", Category: transaction.CategoryEarning, IsTaxable: true},
			{ID: "code-2", Code: "SHIFT", Name: "Shift allowance", Category: transaction.CategoryEarning, IsTaxable: true},
		},
	}}

	items, err := agg.Aggregate(testEmployee(), currency.ModeDefault, nil, customs)
	require.NoError(t, err)
	require.Len(t, items, 2, "one line per tagged code")

	// basic_salary * worked/base = 1000 * 150/176 = 852.27 at 2 d.p.
	assert.True(t, items[0].EmployeeAmount.Equal(dec("852.27")), "got %s", items[0].EmployeeAmount)
	assert.Equal(t, transaction.BasisHours, items[0].Basis)
	assert.Equal(t, "OT", items[0].Code)
	assert.Equal(t, "SHIFT", items[1].Code)
}

func TestAggregate_CustomBaseAmountDerivation(t *testing.T) {
	agg := NewAggregator()
	customs := []transaction.CustomTransaction{{
		ID:          "ct-2",
		UseBasic:    false,
		BaseAmount:  dec("880"),
		WorkedHours: dec("88"),
		BaseHours:   dec("176"),
		EmployeeIDs: []string{"emp-1"},
		Codes: []transaction.TransactionCode{
			{ID: "code-1", Code: "BONUS", Name: "Bonus", Category: transaction.CategoryEarning, IsTaxable: true},
		},
	}}

	items, err := agg.Aggregate(testEmployee(), currency.ModeDefault, nil, customs)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].EmployeeAmount.Equal(dec("440")), "got %s", items[0].EmployeeAmount)
}

func TestAggregate_CustomIgnoresUnassignedEmployee(t *testing.T) {
	agg := NewAggregator()
	customs := []transaction.CustomTransaction{{
		ID:          "ct-3",
		UseBasic:    true,
		WorkedHours: dec("10"),
		BaseHours:   dec("176"),
		EmployeeIDs: []string{"someone-else"},
		Codes: []transaction.TransactionCode{
			{ID: "code-1", Code: "OT", Name: "Overtime", Category: transaction.CategoryEarning},
		},
	}}

	items, err := agg.Aggregate(testEmployee(), currency.ModeDefault, nil, customs)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAggregate_ZeroBaseHoursIsConfigurationError(t *testing.T) {
	agg := NewAggregator()
	customs := []transaction.CustomTransaction{{
		ID:          "ct-4",
		UseBasic:    true,
		WorkedHours: dec("10"),
		BaseHours:   dec("0"),
		EmployeeIDs: []string{"emp-1"},
		Codes: []transaction.TransactionCode{
			{ID: "code-1", Code: "OT", Name: "Overtime", Category: transaction.CategoryEarning},
		},
	}}

	_, err := agg.Aggregate(testEmployee(), currency.ModeDefault, nil, customs)
	assert.ErrorIs(t, err, transaction.ErrZeroBaseHours)
}
