package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/pkg/database"
)

type currencyRepository struct {
	db *database.DB
}

func NewCurrencyRepository(db *database.DB) currency.CurrencyRepository {
	return &currencyRepository{db: db}
}

// ========== CURRENCY SPLITS ==========

func (r *currencyRepository) CreateSplit(ctx context.Context, split currency.CurrencySplit) (currency.CurrencySplit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO currency_splits (cost_center_id, zwg_percent, usd_percent, effective_date, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, cost_center_id, zwg_percent, usd_percent, effective_date, is_active, created_at, updated_at
	`

	var created currency.CurrencySplit
	err := q.QueryRow(ctx, query,
		split.CostCenterID, split.ZwgPercent, split.UsdPercent, split.EffectiveDate,
	).Scan(
		&created.ID, &created.CostCenterID, &created.ZwgPercent, &created.UsdPercent,
		&created.EffectiveDate, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return currency.CurrencySplit{}, fmt.Errorf("failed to create currency split: %w", err)
	}

	return created, nil
}

func (r *currencyRepository) ListSplitsByCenter(ctx context.Context, costCenterID string) ([]currency.CurrencySplit, error) {
	return r.listSplits(ctx, `WHERE cost_center_id = $1`, costCenterID)
}

func (r *currencyRepository) ListActiveSplits(ctx context.Context) ([]currency.CurrencySplit, error) {
	return r.listSplits(ctx, `WHERE is_active = TRUE`)
}

func (r *currencyRepository) listSplits(ctx context.Context, where string, args ...any) ([]currency.CurrencySplit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, cost_center_id, zwg_percent, usd_percent, effective_date, is_active, created_at, updated_at
		FROM currency_splits
		` + where + `
		ORDER BY cost_center_id, effective_date
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency splits: %w", err)
	}
	defer rows.Close()

	var splits []currency.CurrencySplit
	for rows.Next() {
		var s currency.CurrencySplit
		if err := rows.Scan(
			&s.ID, &s.CostCenterID, &s.ZwgPercent, &s.UsdPercent,
			&s.EffectiveDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan currency split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, rows.Err()
}

func (r *currencyRepository) DeactivateSplit(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE currency_splits SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate currency split: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return currency.ErrSplitNotFound
	}

	return nil
}

// ========== EXCHANGE RATES ==========

func (r *currencyRepository) CreateRate(ctx context.Context, rate currency.ExchangeRate) (currency.ExchangeRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, from_currency, to_currency, rate, effective_date, is_active, created_at, updated_at
	`

	var created currency.ExchangeRate
	err := q.QueryRow(ctx, query,
		rate.FromCurrency, rate.ToCurrency, rate.Rate, rate.EffectiveDate,
	).Scan(
		&created.ID, &created.FromCurrency, &created.ToCurrency, &created.Rate,
		&created.EffectiveDate, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_exchange_rate") {
			return currency.ExchangeRate{}, currency.ErrRateAlreadyExists
		}
		return currency.ExchangeRate{}, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	return created, nil
}

func (r *currencyRepository) ListActiveRates(ctx context.Context) ([]currency.ExchangeRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, from_currency, to_currency, rate, effective_date, is_active, created_at, updated_at
		FROM exchange_rates
		WHERE is_active = TRUE
		ORDER BY from_currency, to_currency, effective_date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []currency.ExchangeRate
	for rows.Next() {
		var er currency.ExchangeRate
		if err := rows.Scan(
			&er.ID, &er.FromCurrency, &er.ToCurrency, &er.Rate,
			&er.EffectiveDate, &er.IsActive, &er.CreatedAt, &er.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates = append(rates, er)
	}

	return rates, rows.Err()
}
