package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusOnLeave Status = "ON_LEAVE"
	StatusHoliday Status = "HOLIDAY"
)

// Attendance is the daily timekeeping record. At most one row exists per
// (employee, date); the row is created on time-in and finalized on time-out,
// when the hour and minute breakdowns are computed.
type Attendance struct {
	ID                     string
	EmployeeID             string
	Date                   time.Time
	TimeIn                 *time.Time
	TimeOut                *time.Time
	HoursWorked            float64
	RegularHours           float64
	OvertimeHours          float64
	NightDifferentialHours float64
	LateMinutes            int
	UndertimeMinutes       int
	IsHoliday              bool
	IsRestDay              bool
	Status                 Status
	Notes                  *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Worked reports whether the row counts toward payroll aggregation.
func (a Attendance) Worked() bool {
	return a.Status == StatusPresent || a.Status == StatusLate
}
