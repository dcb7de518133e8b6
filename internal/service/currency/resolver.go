package currency

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

type pairKey struct {
	from currency.Code
	to   currency.Code
}

// Snapshot is an immutable point-in-time view of currency configuration.
// Rows are grouped per key and sorted by effective date so resolution is a
// binary search for the latest row at or before the target date.
type Snapshot struct {
	splitsByCenter map[string][]currency.CurrencySplit
	ratesByPair    map[pairKey][]currency.ExchangeRate
}

// NewSnapshot builds a snapshot from active configuration rows. Inactive rows
// are dropped; the rest are sorted by effective date per key.
func NewSnapshot(splits []currency.CurrencySplit, rates []currency.ExchangeRate) *Snapshot {
	s := &Snapshot{
		splitsByCenter: make(map[string][]currency.CurrencySplit),
		ratesByPair:    make(map[pairKey][]currency.ExchangeRate),
	}
	for _, split := range splits {
		if !split.IsActive {
			continue
		}
		s.splitsByCenter[split.CostCenterID] = append(s.splitsByCenter[split.CostCenterID], split)
	}
	for _, rows := range s.splitsByCenter {
		sort.Slice(rows, func(i, j int) bool { return rows[i].EffectiveDate.Before(rows[j].EffectiveDate) })
	}
	for _, rate := range rates {
		key := pairKey{from: rate.FromCurrency, to: rate.ToCurrency}
		if !rate.IsActive {
			continue
		}
		s.ratesByPair[key] = append(s.ratesByPair[key], rate)
	}
	for _, rows := range s.ratesByPair {
		sort.Slice(rows, func(i, j int) bool { return rows[i].EffectiveDate.Before(rows[j].EffectiveDate) })
	}
	return s
}

// ResolveSplit returns the ZWG/USD percentage split for the cost center on
// the given date: the active row with the latest effective date at or before
// the date wins.
func (s *Snapshot) ResolveSplit(costCenterID string, onDate time.Time) (currency.Split, error) {
	rows := s.splitsByCenter[costCenterID]
	idx := latestAtOrBefore(len(rows), onDate, func(i int) time.Time { return rows[i].EffectiveDate })
	if idx < 0 {
		return currency.Split{}, fmt.Errorf("cost center %s on %s: %w", costCenterID, onDate.Format("2006-01-02"), currency.ErrNoApplicableSplit)
	}
	return currency.Split{ZwgPercent: rows[idx].ZwgPercent, UsdPercent: rows[idx].UsdPercent}, nil
}

// ResolveRate returns the exchange rate from one currency to another on the
// given date. Rates are directional: an explicit row for the requested
// direction wins; otherwise the reverse row is inverted.
func (s *Snapshot) ResolveRate(from, to currency.Code, onDate time.Time) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if rate, ok := s.lookupRate(from, to, onDate); ok {
		return rate, nil
	}
	if reverse, ok := s.lookupRate(to, from, onDate); ok {
		return decimal.NewFromInt(1).Div(reverse), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%s to %s on %s: %w", from, to, onDate.Format("2006-01-02"), currency.ErrNoApplicableRate)
}

func (s *Snapshot) lookupRate(from, to currency.Code, onDate time.Time) (decimal.Decimal, bool) {
	rows := s.ratesByPair[pairKey{from: from, to: to}]
	idx := latestAtOrBefore(len(rows), onDate, func(i int) time.Time { return rows[i].EffectiveDate })
	if idx < 0 {
		return decimal.Decimal{}, false
	}
	return rows[idx].Rate, true
}

// latestAtOrBefore returns the index of the last row whose effective date is
// at or before the target, or -1. Rows must be sorted ascending.
func latestAtOrBefore(n int, target time.Time, dateAt func(int) time.Time) int {
	idx := sort.Search(n, func(i int) bool { return dateAt(i).After(target) })
	return idx - 1
}

// Resolver loads currency configuration and answers split/rate lookups.
// Pure lookup, no side effects.
type Resolver struct {
	currencyRepo currency.CurrencyRepository
}

func NewResolver(currencyRepo currency.CurrencyRepository) *Resolver {
	return &Resolver{currencyRepo: currencyRepo}
}

// LoadSnapshot reads all active splits and rates once. Period runs call this
// before the batch starts so every employee sees the same configuration.
func (r *Resolver) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	splits, err := r.currencyRepo.ListActiveSplits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency splits: %w", err)
	}
	rates, err := r.currencyRepo.ListActiveRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}
	return NewSnapshot(splits, rates), nil
}

// ResolveSplit is the one-shot form used outside batch runs.
func (r *Resolver) ResolveSplit(ctx context.Context, costCenterID string, onDate time.Time) (currency.Split, error) {
	snapshot, err := r.LoadSnapshot(ctx)
	if err != nil {
		return currency.Split{}, err
	}
	return snapshot.ResolveSplit(costCenterID, onDate)
}

// ResolveRate is the one-shot form used outside batch runs.
func (r *Resolver) ResolveRate(ctx context.Context, from, to currency.Code, onDate time.Time) (decimal.Decimal, error) {
	snapshot, err := r.LoadSnapshot(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return snapshot.ResolveRate(from, to, onDate)
}
