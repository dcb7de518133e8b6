package period

import (
	"time"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
)

// Payroll - named payroll configuration owning accounting periods.
type Payroll struct {
	ID           string
	Name         string
	PeriodLength string
	TaxMethod    string
	BaseCurrency currency.Code
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountingPeriod - one calendar month of a payroll.
type AccountingPeriod struct {
	ID          string
	PayrollID   string
	MonthName   string
	Year        int
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Classification enum, derived read-only from the period dates. It never
// gates run/refresh/close; only the per-center status does.
type Classification string

const (
	ClassificationPast    Classification = "past"
	ClassificationCurrent Classification = "current"
	ClassificationFuture  Classification = "future"
)

// Classify compares the period window against the given date.
func (p AccountingPeriod) Classify(today time.Time) Classification {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(p.PeriodStart) {
		return ClassificationFuture
	}
	if day.After(p.PeriodEnd) {
		return ClassificationPast
	}
	return ClassificationCurrent
}

// TaxYearStart returns the first day of the tax year the period falls in.
func (p AccountingPeriod) TaxYearStart() time.Time {
	return time.Date(p.PeriodStart.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// CenterPeriodStatus - the processing record for one (period, cost center)
// pair, created lazily on first run.
type CenterPeriodStatus struct {
	ID                string
	PeriodID          string
	CostCenterID      string
	CurrencyMode      currency.Mode
	PeriodRunDate     *time.Time
	PayRunDate        *time.Time
	IsClosedConfirmed bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanBeRun reports whether the center has never been processed for the period.
func (s CenterPeriodStatus) CanBeRun() bool {
	return s.PeriodRunDate == nil && !s.IsClosedConfirmed
}

// CanBeRefreshed reports whether the center was run and is still open.
func (s CenterPeriodStatus) CanBeRefreshed() bool {
	return s.PeriodRunDate != nil && !s.IsClosedConfirmed
}

// CanBeClosed reports whether the center was run and is still open.
func (s CenterPeriodStatus) CanBeClosed() bool {
	return s.PeriodRunDate != nil && !s.IsClosedConfirmed
}
