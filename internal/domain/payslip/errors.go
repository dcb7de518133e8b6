package payslip

import "errors"

var (
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipImmutable        = errors.New("payslip is finalized, amounts cannot change")
	ErrInvalidStatusTransition = errors.New("invalid payslip status transition")
)
