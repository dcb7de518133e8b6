package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrCostCenterNotFound = errors.New("cost center not found")
)
