package currency

import "errors"

var (
	ErrNoApplicableSplit = errors.New("no applicable currency split for cost center and date")
	ErrNoApplicableRate  = errors.New("no applicable exchange rate for currency pair and date")
	ErrRateAlreadyExists = errors.New("exchange rate already exists for this pair and effective date")
	ErrSplitNotFound     = errors.New("currency split not found")
)
