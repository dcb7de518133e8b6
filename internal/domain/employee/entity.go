package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the read-only master record the engine consumes. Administration
// of employees lives outside this service.
type Employee struct {
	ID                    string
	CostCenterID          string
	EmployeeCode          string
	FullName              string
	DateOfBirth           *time.Time
	BasicSalary           decimal.Decimal
	VehicleEngineCapacity *int
	NecGradeIDs           []string
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AgeOn returns the employee's age in whole years on the given date,
// or -1 when the date of birth is unknown.
func (e Employee) AgeOn(date time.Time) int {
	if e.DateOfBirth == nil {
		return -1
	}
	dob := *e.DateOfBirth
	age := date.Year() - dob.Year()
	anniversary := time.Date(date.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(anniversary) {
		age--
	}
	return age
}

// CostCenter is an organizational unit with its own currency split and bank details.
type CostCenter struct {
	ID                string
	Code              string
	Name              string
	BankName          *string
	BankAccountNumber *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
