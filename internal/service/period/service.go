package period

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/employee"
	"github.com/zimhr/payroll-backend-go/internal/domain/payslip"
	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	payslipService "github.com/zimhr/payroll-backend-go/internal/service/payslip"
)

// TxManager runs fn inside one database transaction. Every repository call
// made through the ctx it passes to fn joins that transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PeriodService owns the period state machine: run, refresh and close for a
// (period, cost center) pair, plus payroll and period administration.
type PeriodService struct {
	periodRepo   period.PeriodRepository
	employeeRepo employee.EmployeeRepository
	payslipRepo  payslip.PayslipRepository
	snapshots    *SnapshotLoader
	builder      *payslipService.Builder
	tx           TxManager
	locks        *lockRegistry
	workers      int
	log          *logrus.Logger
}

func NewPeriodService(
	periodRepo period.PeriodRepository,
	employeeRepo employee.EmployeeRepository,
	payslipRepo payslip.PayslipRepository,
	snapshots *SnapshotLoader,
	builder *payslipService.Builder,
	tx TxManager,
	workers int,
	log *logrus.Logger,
) *PeriodService {
	if workers < 1 {
		workers = 1
	}
	return &PeriodService{
		periodRepo:   periodRepo,
		employeeRepo: employeeRepo,
		payslipRepo:  payslipRepo,
		snapshots:    snapshots,
		builder:      builder,
		tx:           tx,
		locks:        newLockRegistry(),
		workers:      workers,
		log:          log,
	}
}

func (s *PeriodService) CreatePayroll(ctx context.Context, req period.CreatePayrollRequest) (period.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return period.PayrollResponse{}, err
	}

	p := period.Payroll{
		Name:         req.Name,
		PeriodLength: req.PeriodLength,
		TaxMethod:    req.TaxMethod,
		BaseCurrency: currency.Code(req.BaseCurrency),
	}
	if p.PeriodLength == "" {
		p.PeriodLength = "monthly"
	}
	if p.TaxMethod == "" {
		p.TaxMethod = "monthly"
	}
	if p.BaseCurrency == "" {
		p.BaseCurrency = currency.CodeUSD
	}

	created, err := s.periodRepo.CreatePayroll(ctx, p)
	if err != nil {
		return period.PayrollResponse{}, err
	}
	return mapPayrollResponse(created), nil
}

func (s *PeriodService) ListPayrolls(ctx context.Context) ([]period.PayrollResponse, error) {
	payrolls, err := s.periodRepo.ListPayrolls(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]period.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		responses = append(responses, mapPayrollResponse(p))
	}
	return responses, nil
}

func (s *PeriodService) CreateAccountingPeriod(ctx context.Context, req period.CreateAccountingPeriodRequest) (period.AccountingPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return period.AccountingPeriodResponse{}, err
	}

	if _, err := s.periodRepo.GetPayrollByID(ctx, req.PayrollID); err != nil {
		return period.AccountingPeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)

	created, err := s.periodRepo.CreateAccountingPeriod(ctx, period.AccountingPeriod{
		PayrollID:   req.PayrollID,
		MonthName:   req.MonthName,
		Year:        req.Year,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return period.AccountingPeriodResponse{}, err
	}
	return mapAccountingPeriodResponse(created, time.Now()), nil
}

func (s *PeriodService) ListAccountingPeriods(ctx context.Context, payrollID string) ([]period.AccountingPeriodResponse, error) {
	periods, err := s.periodRepo.ListAccountingPeriods(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	responses := make([]period.AccountingPeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, mapAccountingPeriodResponse(p, now))
	}
	return responses, nil
}

// GetStatus returns the processing status for a (period, center) pair. A
// pair that was never run has no stored record; the response synthesizes
// the virgin state instead of erroring.
func (s *PeriodService) GetStatus(ctx context.Context, periodID, costCenterID string) (period.CenterPeriodStatusResponse, error) {
	if _, err := s.periodRepo.GetAccountingPeriodByID(ctx, periodID); err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}
	if _, err := s.employeeRepo.GetCostCenterByID(ctx, costCenterID); err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}

	status, err := s.periodRepo.GetCenterStatus(ctx, periodID, costCenterID)
	if errors.Is(err, period.ErrCenterStatusNotFound) {
		status = period.CenterPeriodStatus{
			PeriodID:     periodID,
			CostCenterID: costCenterID,
			CurrencyMode: currency.ModeDefault,
		}
	} else if err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}
	return mapStatusResponse(status), nil
}

// RunPeriod executes the first calculation batch for a (period, center)
// pair. The batch is all-or-nothing: any employee failure rolls everything
// back and leaves the status untouched.
func (s *PeriodService) RunPeriod(ctx context.Context, req period.RunPeriodRequest) (period.RunPeriodResponse, error) {
	return s.execute(ctx, req, false)
}

// RefreshPeriod recalculates an already-run, still-open pair against current
// configuration, overwriting the previous payslips.
func (s *PeriodService) RefreshPeriod(ctx context.Context, req period.RunPeriodRequest) (period.RunPeriodResponse, error) {
	return s.execute(ctx, req, true)
}

func (s *PeriodService) execute(ctx context.Context, req period.RunPeriodRequest, refresh bool) (period.RunPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return period.RunPeriodResponse{}, err
	}
	mode := currency.Mode(req.CurrencyMode)

	p, err := s.periodRepo.GetAccountingPeriodByID(ctx, req.PeriodID)
	if err != nil {
		return period.RunPeriodResponse{}, err
	}
	pr, err := s.periodRepo.GetPayrollByID(ctx, p.PayrollID)
	if err != nil {
		return period.RunPeriodResponse{}, err
	}
	if _, err := s.employeeRepo.GetCostCenterByID(ctx, req.CostCenterID); err != nil {
		return period.RunPeriodResponse{}, err
	}

	if err := s.locks.acquire(req.PeriodID, req.CostCenterID); err != nil {
		return period.RunPeriodResponse{}, err
	}
	defer s.locks.release(req.PeriodID, req.CostCenterID)

	status, err := s.loadStatus(ctx, req.PeriodID, req.CostCenterID)
	if err != nil {
		return period.RunPeriodResponse{}, err
	}
	if err := checkTransition(status, refresh); err != nil {
		return period.RunPeriodResponse{}, err
	}

	started := time.Now()
	buildCtx, employees, err := s.snapshots.Load(ctx, pr, p, req.CostCenterID, mode)
	if err != nil {
		return period.RunPeriodResponse{}, err
	}

	payslips, lines, err := s.buildBatch(ctx, buildCtx, employees)
	if err != nil {
		return period.RunPeriodResponse{}, err
	}

	now := time.Now()
	status.CurrencyMode = mode
	if status.PeriodRunDate == nil {
		status.PeriodRunDate = &now
	}
	status.PayRunDate = &now

	var saved period.CenterPeriodStatus
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.payslipRepo.ReplaceForPeriodCenter(txCtx, req.PeriodID, req.CostCenterID, payslips, lines); err != nil {
			return fmt.Errorf("persist payslips: %w", err)
		}
		saved, err = s.periodRepo.UpsertCenterStatus(txCtx, status)
		if err != nil {
			return fmt.Errorf("update center status: %w", err)
		}
		return nil
	})
	if err != nil {
		return period.RunPeriodResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"period_id":      req.PeriodID,
		"cost_center_id": req.CostCenterID,
		"currency_mode":  string(mode),
		"refresh":        refresh,
		"employees":      len(employees),
		"payslips":       len(payslips),
		"duration":       time.Since(started).String(),
	}).Info("period run committed")

	return period.RunPeriodResponse{
		Status:        mapStatusResponse(saved),
		PayslipCount:  len(payslips),
		EmployeeCount: len(employees),
	}, nil
}

// buildBatch calculates every employee in parallel and collects all
// failures; a partial batch never survives.
func (s *PeriodService) buildBatch(
	ctx context.Context,
	buildCtx payslipService.BuildContext,
	employees []employee.Employee,
) ([]payslip.Payslip, map[string][]payslip.Transaction, error) {
	type result struct {
		slip  payslip.Payslip
		lines []payslip.Transaction
		err   error
	}
	results := make([]result, len(employees))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, emp := range employees {
		i, emp := i, emp
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			slip, lines, err := s.builder.Build(buildCtx, emp)
			if err != nil {
				// recorded, not returned: one failure must not hide the others
				results[i] = result{err: err}
				return nil
			}
			slip.Status = payslip.StatusFinalized
			results[i] = result{slip: slip, lines: lines}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	var failures []period.EmployeeError
	payslips := make([]payslip.Payslip, 0, len(employees))
	lines := make(map[string][]payslip.Transaction, len(employees))
	for i, res := range results {
		if res.err != nil {
			failures = append(failures, period.EmployeeError{
				EmployeeID:   employees[i].ID,
				EmployeeCode: employees[i].EmployeeCode,
				Err:          res.err,
			})
			continue
		}
		payslips = append(payslips, res.slip)
		lines[res.slip.EmployeeID] = res.lines
	}
	if len(failures) > 0 {
		return nil, nil, &period.RunError{
			PeriodID:     buildCtx.Period.ID,
			CostCenterID: buildCtx.CostCenterID,
			Failures:     failures,
		}
	}
	return payslips, lines, nil
}

// ClosePeriod confirms a run pair closed. Close is terminal: no refresh or
// re-run afterwards, only payslip distribution.
func (s *PeriodService) ClosePeriod(ctx context.Context, req period.ClosePeriodRequest) (period.CenterPeriodStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}

	if err := s.locks.acquire(req.PeriodID, req.CostCenterID); err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}
	defer s.locks.release(req.PeriodID, req.CostCenterID)

	status, err := s.periodRepo.GetCenterStatus(ctx, req.PeriodID, req.CostCenterID)
	if errors.Is(err, period.ErrCenterStatusNotFound) {
		return period.CenterPeriodStatusResponse{}, period.ErrPeriodNotRun
	}
	if err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}
	if status.IsClosedConfirmed {
		return period.CenterPeriodStatusResponse{}, period.ErrPeriodClosed
	}
	if !status.CanBeClosed() {
		return period.CenterPeriodStatusResponse{}, period.ErrPeriodNotRun
	}

	status.IsClosedConfirmed = true
	saved, err := s.periodRepo.UpsertCenterStatus(ctx, status)
	if err != nil {
		return period.CenterPeriodStatusResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"period_id":      req.PeriodID,
		"cost_center_id": req.CostCenterID,
	}).Info("period closed")

	return mapStatusResponse(saved), nil
}

func (s *PeriodService) loadStatus(ctx context.Context, periodID, costCenterID string) (period.CenterPeriodStatus, error) {
	status, err := s.periodRepo.GetCenterStatus(ctx, periodID, costCenterID)
	if errors.Is(err, period.ErrCenterStatusNotFound) {
		return period.CenterPeriodStatus{
			PeriodID:     periodID,
			CostCenterID: costCenterID,
			CurrencyMode: currency.ModeDefault,
		}, nil
	}
	if err != nil {
		return period.CenterPeriodStatus{}, err
	}
	return status, nil
}

func checkTransition(status period.CenterPeriodStatus, refresh bool) error {
	if status.IsClosedConfirmed {
		return period.ErrPeriodClosed
	}
	if refresh {
		if !status.CanBeRefreshed() {
			return period.ErrPeriodNotRun
		}
		return nil
	}
	if !status.CanBeRun() {
		return period.ErrPeriodAlreadyRun
	}
	return nil
}

func mapPayrollResponse(p period.Payroll) period.PayrollResponse {
	return period.PayrollResponse{
		ID:           p.ID,
		Name:         p.Name,
		PeriodLength: p.PeriodLength,
		TaxMethod:    p.TaxMethod,
		BaseCurrency: string(p.BaseCurrency),
	}
}

func mapAccountingPeriodResponse(p period.AccountingPeriod, now time.Time) period.AccountingPeriodResponse {
	return period.AccountingPeriodResponse{
		ID:             p.ID,
		PayrollID:      p.PayrollID,
		MonthName:      p.MonthName,
		Year:           p.Year,
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
		Classification: string(p.Classify(now)),
	}
}

func mapStatusResponse(status period.CenterPeriodStatus) period.CenterPeriodStatusResponse {
	return period.CenterPeriodStatusResponse{
		ID:                status.ID,
		PeriodID:          status.PeriodID,
		CostCenterID:      status.CostCenterID,
		CurrencyMode:      string(status.CurrencyMode),
		PeriodRunDate:     status.PeriodRunDate,
		PayRunDate:        status.PayRunDate,
		IsClosedConfirmed: status.IsClosedConfirmed,
		CanBeRun:          status.CanBeRun(),
		CanBeRefreshed:    status.CanBeRefreshed(),
		CanBeClosed:       status.CanBeClosed(),
	}
}
