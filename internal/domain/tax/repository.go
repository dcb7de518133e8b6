package tax

import (
	"context"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

// TaxRepository defines data access for tax tables, NEC grades, tax credits
// and vehicle benefit bands. All of these are read-only during a period run.
type TaxRepository interface {
	// ReplaceTaxTable atomically swaps the band set for one (currency, period type).
	ReplaceTaxTable(ctx context.Context, code currency.Code, periodType PeriodType, bands []TaxBand) ([]TaxBand, error)
	GetTaxTable(ctx context.Context, code currency.Code, periodType PeriodType) ([]TaxBand, error)
	// ListActiveBands returns every active band ordered by
	// (currency, period_type, min_salary) for snapshot loading.
	ListActiveBands(ctx context.Context) ([]TaxBand, error)

	CreateNecGrade(ctx context.Context, grade NecGrade) (NecGrade, error)
	GetNecGradeByID(ctx context.Context, id string) (NecGrade, error)
	ListActiveNecGrades(ctx context.Context) ([]NecGrade, error)

	CreateTaxCredit(ctx context.Context, credit TaxCredit) (TaxCredit, error)
	ListActiveTaxCredits(ctx context.Context) ([]TaxCredit, error)

	CreateVehicleBenefitBand(ctx context.Context, band VehicleBenefitBand) (VehicleBenefitBand, error)
	ListActiveVehicleBenefitBands(ctx context.Context) ([]VehicleBenefitBand, error)
}
