package attendance

import (
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date,omitempty"`
	Time       string  `json:"time,omitempty"`
	IsHoliday  bool    `json:"is_holiday,omitempty"`
	IsRestDay  bool    `json:"is_rest_day,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Date != "" && !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Time != "" && !validator.IsValidTimeOfDay(r.Time) {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "must be in HH:MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Date != "" && !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Time != "" && !validator.IsValidTimeOfDay(r.Time) {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "must be in HH:MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkStatusRequest records a day that involves no clocking: an absence, a
// leave or a non-working holiday.
type MarkStatusRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *MarkStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	switch Status(r.Status) {
	case StatusAbsent, StatusOnLeave, StatusHoliday:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'ABSENT', 'ON_LEAVE' or 'HOLIDAY'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                     string  `json:"id"`
	EmployeeID             string  `json:"employee_id"`
	Date                   string  `json:"date"`
	TimeIn                 *string `json:"time_in,omitempty"`
	TimeOut                *string `json:"time_out,omitempty"`
	HoursWorked            float64 `json:"hours_worked"`
	RegularHours           float64 `json:"regular_hours"`
	OvertimeHours          float64 `json:"overtime_hours"`
	NightDifferentialHours float64 `json:"night_differential_hours"`
	LateMinutes            int     `json:"late_minutes"`
	UndertimeMinutes       int     `json:"undertime_minutes"`
	IsHoliday              bool    `json:"is_holiday"`
	IsRestDay              bool    `json:"is_rest_day"`
	Status                 string  `json:"status"`
	Notes                  *string `json:"notes,omitempty"`
}
