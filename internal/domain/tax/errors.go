package tax

import "errors"

var (
	ErrNoMatchingTaxBand       = errors.New("no tax band covers the taxable income")
	ErrNecGradeNotFound        = errors.New("nec grade not found")
	ErrNecGradeNameExists      = errors.New("nec grade name already exists")
	ErrInvalidContributionRule = errors.New("nec grade contribution rule is incomplete")
)
