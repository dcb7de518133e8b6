package currency

import "context"

// CurrencyRepository defines data access for currency splits and exchange rates.
type CurrencyRepository interface {
	CreateSplit(ctx context.Context, split CurrencySplit) (CurrencySplit, error)
	ListSplitsByCenter(ctx context.Context, costCenterID string) ([]CurrencySplit, error)
	// ListActiveSplits returns every active split, ordered by
	// (cost_center_id, effective_date) for snapshot loading.
	ListActiveSplits(ctx context.Context) ([]CurrencySplit, error)
	DeactivateSplit(ctx context.Context, id string) error

	CreateRate(ctx context.Context, rate ExchangeRate) (ExchangeRate, error)
	// ListActiveRates returns every active rate, ordered by
	// (from_currency, to_currency, effective_date) for snapshot loading.
	ListActiveRates(ctx context.Context) ([]ExchangeRate, error)
}
