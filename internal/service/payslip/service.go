package payslip

import (
	"context"
	"fmt"

	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
)

// PayslipService is the read and distribution surface. Amounts are only
// ever written by the period engine; this service never mutates them.
type PayslipService struct {
	payslipRepo payslip.PayslipRepository
}

func NewPayslipService(payslipRepo payslip.PayslipRepository) *PayslipService {
	return &PayslipService{payslipRepo: payslipRepo}
}

// GetPayslip returns one payslip with its line items.
func (s *PayslipService) GetPayslip(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	lines, err := s.payslipRepo.ListTransactions(ctx, slip.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.MapToResponse(slip, lines), nil
}

// ListByPeriodCenter returns the payslips of one run, without line items.
func (s *PayslipService) ListByPeriodCenter(ctx context.Context, periodID, costCenterID string) ([]payslip.PayslipResponse, error) {
	slips, err := s.payslipRepo.ListByPeriodCenter(ctx, periodID, costCenterID)
	if err != nil {
		return nil, err
	}
	responses := make([]payslip.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, payslip.MapToResponse(slip, nil))
	}
	return responses, nil
}

// Distribute advances a finalized payslip to distributed. Distribution is a
// lifecycle change, not an amount mutation, so it is allowed after close.
func (s *PayslipService) Distribute(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if !slip.Status.CanTransitionTo(payslip.StatusDistributed) {
		return payslip.PayslipResponse{}, fmt.Errorf("%s -> %s: %w", slip.Status, payslip.StatusDistributed, payslip.ErrInvalidStatusTransition)
	}
	if err := s.payslipRepo.MarkDistributed(ctx, id); err != nil {
		return payslip.PayslipResponse{}, err
	}
	slip.Status = payslip.StatusDistributed
	return payslip.MapToResponse(slip, nil), nil
}
