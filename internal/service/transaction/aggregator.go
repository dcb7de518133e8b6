package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
)

// Aggregator normalizes recurring and ad-hoc pay transactions into line
// items. It is pure: inputs come from the run snapshot, nothing is written.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate merges the default transactions for the (period, center) with
// the custom transactions targeting the employee. Defaults are filtered by
// the center's resolved currency mode; a DEFAULT-tagged line matches any
// mode, an explicit ZWG/USD line matches its own mode or a DEFAULT-mode run.
func (a *Aggregator) Aggregate(
	emp employee.Employee,
	mode currency.Mode,
	defaults []transaction.DefaultTransaction,
	customs []transaction.CustomTransaction,
) ([]transaction.LineItem, error) {
	var items []transaction.LineItem

	for _, txn := range defaults {
		if txn.DeletedAt != nil {
			continue
		}
		if !currencyMatchesMode(txn.Currency, mode) {
			continue
		}
		item := transaction.LineItem{
			Currency:       txn.Currency,
			Basis:          transaction.BasisAmount,
			EmployeeAmount: txn.EmployeeAmount,
			EmployerAmount: txn.EmployerAmount,
		}
		if txn.Hours != nil {
			item.Basis = transaction.BasisHours
		}
		if txn.Code != nil {
			item.Code = *txn.Code
		}
		if txn.CodeName != nil {
			item.Description = *txn.CodeName
		}
		if txn.CodeCategory != nil {
			item.Category = *txn.CodeCategory
		}
		if txn.CodeTaxable != nil {
			item.Taxable = *txn.CodeTaxable
		}
		items = append(items, item)
	}

	for _, txn := range customs {
		if txn.DeletedAt != nil {
			continue
		}
		if !containsEmployee(txn.EmployeeIDs, emp.ID) {
			continue
		}
		amount, err := customAmount(txn, emp)
		if err != nil {
			return nil, err
		}
		// expanded once per tagged code
		for _, code := range txn.Codes {
			items = append(items, transaction.LineItem{
				Code:           code.Code,
				Description:    code.Name,
				Category:       code.Category,
				Basis:          transaction.BasisHours,
				Currency:       currency.ModeDefault,
				Taxable:        code.IsTaxable,
				EmployeeAmount: amount,
			})
		}
	}

	return items, nil
}

// customAmount derives the pay amount from the hour ratio:
// basic_salary * worked/base when use_basic, base_amount * worked/base
// otherwise. Zero base hours is a configuration error, never clamped.
func customAmount(txn transaction.CustomTransaction, emp employee.Employee) (decimal.Decimal, error) {
	if txn.BaseHours.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("custom transaction %s: %w", txn.ID, transaction.ErrZeroBaseHours)
	}
	base := txn.BaseAmount
	if txn.UseBasic {
		base = emp.BasicSalary
	}
	return base.Mul(txn.WorkedHours).Div(txn.BaseHours).Round(2), nil
}

func currencyMatchesMode(tag currency.Mode, mode currency.Mode) bool {
	return tag == currency.ModeDefault || mode == currency.ModeDefault || tag == mode
}

func containsEmployee(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
