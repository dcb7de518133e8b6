package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// Code enum
type Code string

const (
	CodeZWG Code = "ZWG"
	CodeUSD Code = "USD"
)

// Other returns the counterpart of a two-currency pair.
func (c Code) Other() Code {
	if c == CodeZWG {
		return CodeUSD
	}
	return CodeZWG
}

// Mode selects how a period run allocates pay between the two currencies.
type Mode string

const (
	// ModeZWG pays everything in ZWG regardless of the configured split.
	ModeZWG Mode = "ZWG"
	// ModeUSD pays everything in USD regardless of the configured split.
	ModeUSD Mode = "USD"
	// ModeDefault applies the cost center's effective-dated percentage split.
	ModeDefault Mode = "DEFAULT"
)

func (m Mode) IsValid() bool {
	return m == ModeZWG || m == ModeUSD || m == ModeDefault
}

// CurrencySplit - effective-dated ZWG/USD percentage split for a cost center.
// ZwgPercent + UsdPercent must equal 100.
type CurrencySplit struct {
	ID            string
	CostCenterID  string
	ZwgPercent    decimal.Decimal
	UsdPercent    decimal.Decimal
	EffectiveDate time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExchangeRate - effective-dated directional rate between a currency pair.
type ExchangeRate struct {
	ID            string
	FromCurrency  Code
	ToCurrency    Code
	Rate          decimal.Decimal
	EffectiveDate time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Split is the resolved percentage pair handed to callers.
type Split struct {
	ZwgPercent decimal.Decimal
	UsdPercent decimal.Decimal
}
