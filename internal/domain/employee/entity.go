package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "MONTHLY"
	SalaryTypeHourly  SalaryType = "HOURLY"
	SalaryTypeDaily   SalaryType = "DAILY"
)

// Fixed divisors for deriving an hourly rate from base salary:
// 8 working hours per day, 22 working days per month (176 hours).
var (
	hoursPerDay   = decimal.NewFromInt(8)
	hoursPerMonth = decimal.NewFromInt(176)
)

type Employee struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Position     *string
	DepartmentID *string
	DateHired    *time.Time
	SSSNo        *string
	PhilHealthNo *string
	PagIBIGNo    *string
	TINNo        *string
	BaseSalary   decimal.Decimal
	HourlyRate   decimal.Decimal
	SalaryType   SalaryType
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EffectiveHourlyRate returns the rate used for pay computation. An explicitly
// configured hourly rate wins; otherwise the rate is derived from base salary
// according to the salary type. A zero base salary yields a zero rate, which
// computes to zero pay rather than an error.
func (e Employee) EffectiveHourlyRate() decimal.Decimal {
	if e.HourlyRate.IsPositive() {
		return e.HourlyRate
	}
	switch e.SalaryType {
	case SalaryTypeHourly:
		return e.BaseSalary
	case SalaryTypeDaily:
		return e.BaseSalary.Div(hoursPerDay)
	case SalaryTypeMonthly:
		return e.BaseSalary.Div(hoursPerMonth)
	default:
		return e.BaseSalary.Div(hoursPerMonth)
	}
}

// SalaryChange is one row of the append-only salary history ledger. Rows are
// only ever inserted; a correction is a new change, not an edit.
type SalaryChange struct {
	ID            string
	EmployeeID    string
	OldSalary     decimal.Decimal
	NewSalary     decimal.Decimal
	EffectiveDate time.Time
	Reason        *string
	ChangedBy     *string
	CreatedAt     time.Time
}
