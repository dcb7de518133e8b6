package tax

import (
	"context"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
)

// TaxService manages tax configuration writes. Band partition rules are
// enforced here so a gappy table can never reach a period run.
type TaxService struct {
	taxRepo tax.TaxRepository
}

func NewTaxService(taxRepo tax.TaxRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

func (s *TaxService) ReplaceTaxTable(ctx context.Context, req tax.ReplaceTaxTableRequest) (tax.TaxTableResponse, error) {
	if err := req.Validate(); err != nil {
		return tax.TaxTableResponse{}, err
	}

	code := currency.Code(req.Currency)
	periodType := tax.PeriodType(req.PeriodType)

	bands := make([]tax.TaxBand, 0, len(req.Bands))
	for _, input := range req.Bands {
		bands = append(bands, tax.TaxBand{
			Currency:   code,
			PeriodType: periodType,
			MinSalary:  input.MinSalary,
			MaxSalary:  input.MaxSalary,
			TaxRate:    input.TaxRate,
			TaxAmount:  input.TaxAmount,
			IsActive:   true,
		})
	}

	created, err := s.taxRepo.ReplaceTaxTable(ctx, code, periodType, bands)
	if err != nil {
		return tax.TaxTableResponse{}, err
	}

	return mapTableResponse(req.Currency, req.PeriodType, created), nil
}

func (s *TaxService) GetTaxTable(ctx context.Context, code currency.Code, periodType tax.PeriodType) (tax.TaxTableResponse, error) {
	bands, err := s.taxRepo.GetTaxTable(ctx, code, periodType)
	if err != nil {
		return tax.TaxTableResponse{}, err
	}
	return mapTableResponse(string(code), string(periodType), bands), nil
}

func (s *TaxService) CreateNecGrade(ctx context.Context, req tax.CreateNecGradeRequest) (tax.NecGradeResponse, error) {
	if err := req.Validate(); err != nil {
		return tax.NecGradeResponse{}, err
	}

	created, err := s.taxRepo.CreateNecGrade(ctx, tax.NecGrade{
		Name:             req.Name,
		TransactionCode:  req.TransactionCode,
		ContributionType: tax.ContributionType(req.ContributionType),
		EmployeeAmount:   req.EmployeeAmount,
		EmployerAmount:   req.EmployerAmount,
		EmployeePercent:  req.EmployeePercent,
		EmployerPercent:  req.EmployerPercent,
		MinThreshold:     req.MinThreshold,
		MaxThreshold:     req.MaxThreshold,
		IsActive:         true,
	})
	if err != nil {
		return tax.NecGradeResponse{}, err
	}

	return mapNecGradeResponse(created), nil
}

func (s *TaxService) ListNecGrades(ctx context.Context) ([]tax.NecGradeResponse, error) {
	grades, err := s.taxRepo.ListActiveNecGrades(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]tax.NecGradeResponse, 0, len(grades))
	for _, grade := range grades {
		result = append(result, mapNecGradeResponse(grade))
	}
	return result, nil
}

func (s *TaxService) CreateTaxCredit(ctx context.Context, req tax.CreateTaxCreditRequest) (tax.TaxCredit, error) {
	if err := req.Validate(); err != nil {
		return tax.TaxCredit{}, err
	}

	return s.taxRepo.CreateTaxCredit(ctx, tax.TaxCredit{
		Name:       req.Name,
		Currency:   currency.Code(req.Currency),
		PeriodType: tax.PeriodType(req.PeriodType),
		Amount:     req.Amount,
		MinAge:     req.MinAge,
		IsActive:   true,
	})
}

func (s *TaxService) CreateVehicleBenefitBand(ctx context.Context, req tax.CreateVehicleBenefitBandRequest) (tax.VehicleBenefitBand, error) {
	if err := req.Validate(); err != nil {
		return tax.VehicleBenefitBand{}, err
	}

	return s.taxRepo.CreateVehicleBenefitBand(ctx, tax.VehicleBenefitBand{
		Currency:          currency.Code(req.Currency),
		PeriodType:        tax.PeriodType(req.PeriodType),
		EngineCapacityMin: req.EngineCapacityMin,
		EngineCapacityMax: req.EngineCapacityMax,
		Amount:            req.Amount,
		IsActive:          true,
	})
}

func mapTableResponse(code, periodType string, bands []tax.TaxBand) tax.TaxTableResponse {
	resp := tax.TaxTableResponse{Currency: code, PeriodType: periodType}
	for _, band := range bands {
		resp.Bands = append(resp.Bands, tax.TaxBandResponse{
			ID:        band.ID,
			MinSalary: band.MinSalary,
			MaxSalary: band.MaxSalary,
			TaxRate:   band.TaxRate,
			TaxAmount: band.TaxAmount,
		})
	}
	return resp
}

func mapNecGradeResponse(grade tax.NecGrade) tax.NecGradeResponse {
	return tax.NecGradeResponse{
		ID:               grade.ID,
		Name:             grade.Name,
		TransactionCode:  grade.TransactionCode,
		ContributionType: string(grade.ContributionType),
		EmployeeAmount:   grade.EmployeeAmount,
		EmployerAmount:   grade.EmployerAmount,
		EmployeePercent:  grade.EmployeePercent,
		EmployerPercent:  grade.EmployerPercent,
		MinThreshold:     grade.MinThreshold,
		MaxThreshold:     grade.MaxThreshold,
		IsActive:         grade.IsActive,
	}
}
