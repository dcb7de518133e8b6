package transaction

import "errors"

var (
	ErrTransactionCodeNotFound    = errors.New("transaction code not found")
	ErrTransactionCodeExists      = errors.New("transaction code already exists")
	ErrDefaultTransactionNotFound = errors.New("default transaction not found")
	ErrCustomTransactionNotFound  = errors.New("custom transaction not found")
	ErrZeroBaseHours              = errors.New("custom transaction base hours must not be zero")
)
