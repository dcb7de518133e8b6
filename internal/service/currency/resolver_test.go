package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func split(centerID string, zwg, usd int64, effective time.Time, active bool) currency.CurrencySplit {
	return currency.CurrencySplit{
		CostCenterID:  centerID,
		ZwgPercent:    decimal.NewFromInt(zwg),
		UsdPercent:    decimal.NewFromInt(usd),
		EffectiveDate: effective,
		IsActive:      active,
	}
}

func TestResolveSplit_LatestApplicableWins(t *testing.T) {
	snapshot := NewSnapshot([]currency.CurrencySplit{
		split("center-a", 50, 50, date(2024, time.June, 1), true),
		split("center-a", 30, 70, date(2025, time.January, 1), true),
		split("center-a", 20, 80, date(2025, time.June, 1), true),
	}, nil)

	got, err := snapshot.ResolveSplit("center-a", date(2025, time.March, 15))
	require.NoError(t, err)
	assert.True(t, got.ZwgPercent.Equal(decimal.NewFromInt(30)))
	assert.True(t, got.UsdPercent.Equal(decimal.NewFromInt(70)))
}

func TestResolveSplit_ExactEffectiveDateApplies(t *testing.T) {
	snapshot := NewSnapshot([]currency.CurrencySplit{
		split("center-a", 30, 70, date(2025, time.January, 1), true),
	}, nil)

	got, err := snapshot.ResolveSplit("center-a", date(2025, time.January, 1))
	require.NoError(t, err)
	assert.True(t, got.ZwgPercent.Equal(decimal.NewFromInt(30)))
}

func TestResolveSplit_NoneApplicable(t *testing.T) {
	snapshot := NewSnapshot([]currency.CurrencySplit{
		split("center-a", 30, 70, date(2025, time.June, 1), true),
	}, nil)

	_, err := snapshot.ResolveSplit("center-a", date(2025, time.March, 15))
	assert.ErrorIs(t, err, currency.ErrNoApplicableSplit)

	_, err = snapshot.ResolveSplit("center-unknown", date(2025, time.March, 15))
	assert.ErrorIs(t, err, currency.ErrNoApplicableSplit)
}

func TestResolveSplit_InactiveRowsIgnored(t *testing.T) {
	snapshot := NewSnapshot([]currency.CurrencySplit{
		split("center-a", 30, 70, date(2025, time.January, 1), true),
		split("center-a", 10, 90, date(2025, time.February, 1), false),
	}, nil)

	got, err := snapshot.ResolveSplit("center-a", date(2025, time.March, 15))
	require.NoError(t, err)
	assert.True(t, got.ZwgPercent.Equal(decimal.NewFromInt(30)))
}

func rate(from, to currency.Code, value string, effective time.Time) currency.ExchangeRate {
	return currency.ExchangeRate{
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          decimal.RequireFromString(value),
		EffectiveDate: effective,
		IsActive:      true,
	}
}

func TestResolveRate_DirectRow(t *testing.T) {
	snapshot := NewSnapshot(nil, []currency.ExchangeRate{
		rate(currency.CodeUSD, currency.CodeZWG, "26.50", date(2025, time.January, 1)),
	})

	got, err := snapshot.ResolveRate(currency.CodeUSD, currency.CodeZWG, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("26.50")))
}

func TestResolveRate_InvertsWhenOnlyReverseExists(t *testing.T) {
	snapshot := NewSnapshot(nil, []currency.ExchangeRate{
		rate(currency.CodeUSD, currency.CodeZWG, "25", date(2025, time.January, 1)),
	})

	got, err := snapshot.ResolveRate(currency.CodeZWG, currency.CodeUSD, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.04")))
}

func TestResolveRate_ExplicitReverseRowWinsOverInversion(t *testing.T) {
	snapshot := NewSnapshot(nil, []currency.ExchangeRate{
		rate(currency.CodeUSD, currency.CodeZWG, "25", date(2025, time.January, 1)),
		rate(currency.CodeZWG, currency.CodeUSD, "0.039", date(2025, time.January, 1)),
	})

	got, err := snapshot.ResolveRate(currency.CodeZWG, currency.CodeUSD, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.039")))
}

func TestResolveRate_SameCurrencyIsIdentity(t *testing.T) {
	snapshot := NewSnapshot(nil, nil)

	got, err := snapshot.ResolveRate(currency.CodeUSD, currency.CodeUSD, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1)))
}

func TestResolveRate_NoneApplicable(t *testing.T) {
	snapshot := NewSnapshot(nil, []currency.ExchangeRate{
		rate(currency.CodeUSD, currency.CodeZWG, "26.50", date(2025, time.June, 1)),
	})

	_, err := snapshot.ResolveRate(currency.CodeUSD, currency.CodeZWG, date(2025, time.January, 15))
	assert.ErrorIs(t, err, currency.ErrNoApplicableRate)
}

func TestCreateSplitRequest_RejectsBadSum(t *testing.T) {
	req := currency.CreateCurrencySplitRequest{
		CostCenterID:  "center-a",
		ZwgPercent:    decimal.NewFromInt(30),
		UsdPercent:    decimal.NewFromInt(60),
		EffectiveDate: "2025-01-01",
	}
	assert.Error(t, req.Validate())

	req.UsdPercent = decimal.NewFromInt(70)
	assert.NoError(t, req.Validate())

	// 0.01 tolerance
	req.UsdPercent = decimal.RequireFromString("70.005")
	assert.NoError(t, req.Validate())
	req.UsdPercent = decimal.RequireFromString("70.02")
	assert.Error(t, req.Validate())
}
