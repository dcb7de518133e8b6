package currency

import (
	"context"
	"time"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

// CurrencyService manages split and rate configuration. Validation happens
// here, at write time, so a bad split can never reach a period run.
type CurrencyService struct {
	currencyRepo currency.CurrencyRepository
}

func NewCurrencyService(currencyRepo currency.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

func (s *CurrencyService) CreateSplit(ctx context.Context, req currency.CreateCurrencySplitRequest) (currency.CurrencySplitResponse, error) {
	if err := req.Validate(); err != nil {
		return currency.CurrencySplitResponse{}, err
	}

	effectiveDate, _ := parseDate(req.EffectiveDate)
	created, err := s.currencyRepo.CreateSplit(ctx, currency.CurrencySplit{
		CostCenterID:  req.CostCenterID,
		ZwgPercent:    req.ZwgPercent,
		UsdPercent:    req.UsdPercent,
		EffectiveDate: effectiveDate,
		IsActive:      true,
	})
	if err != nil {
		return currency.CurrencySplitResponse{}, err
	}

	return mapSplitResponse(created), nil
}

func (s *CurrencyService) ListSplits(ctx context.Context, costCenterID string) ([]currency.CurrencySplitResponse, error) {
	splits, err := s.currencyRepo.ListSplitsByCenter(ctx, costCenterID)
	if err != nil {
		return nil, err
	}

	result := make([]currency.CurrencySplitResponse, 0, len(splits))
	for _, split := range splits {
		result = append(result, mapSplitResponse(split))
	}
	return result, nil
}

func (s *CurrencyService) DeactivateSplit(ctx context.Context, id string) error {
	return s.currencyRepo.DeactivateSplit(ctx, id)
}

func (s *CurrencyService) CreateRate(ctx context.Context, req currency.CreateExchangeRateRequest) (currency.ExchangeRateResponse, error) {
	if err := req.Validate(); err != nil {
		return currency.ExchangeRateResponse{}, err
	}

	effectiveDate, _ := parseDate(req.EffectiveDate)
	created, err := s.currencyRepo.CreateRate(ctx, currency.ExchangeRate{
		FromCurrency:  currency.Code(req.FromCurrency),
		ToCurrency:    currency.Code(req.ToCurrency),
		Rate:          req.Rate,
		EffectiveDate: effectiveDate,
		IsActive:      true,
	})
	if err != nil {
		return currency.ExchangeRateResponse{}, err
	}

	return currency.ExchangeRateResponse{
		ID:            created.ID,
		FromCurrency:  string(created.FromCurrency),
		ToCurrency:    string(created.ToCurrency),
		Rate:          created.Rate,
		EffectiveDate: created.EffectiveDate.Format("2006-01-02"),
		IsActive:      created.IsActive,
	}, nil
}

func (s *CurrencyService) ListRates(ctx context.Context) ([]currency.ExchangeRateResponse, error) {
	rates, err := s.currencyRepo.ListActiveRates(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]currency.ExchangeRateResponse, 0, len(rates))
	for _, rate := range rates {
		result = append(result, currency.ExchangeRateResponse{
			ID:            rate.ID,
			FromCurrency:  string(rate.FromCurrency),
			ToCurrency:    string(rate.ToCurrency),
			Rate:          rate.Rate,
			EffectiveDate: rate.EffectiveDate.Format("2006-01-02"),
			IsActive:      rate.IsActive,
		})
	}
	return result, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func mapSplitResponse(split currency.CurrencySplit) currency.CurrencySplitResponse {
	return currency.CurrencySplitResponse{
		ID:            split.ID,
		CostCenterID:  split.CostCenterID,
		ZwgPercent:    split.ZwgPercent,
		UsdPercent:    split.UsdPercent,
		EffectiveDate: split.EffectiveDate.Format("2006-01-02"),
		IsActive:      split.IsActive,
	}
}
