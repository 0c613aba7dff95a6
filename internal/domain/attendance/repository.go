package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record. Fails with ErrDuplicateDate
	// when a row already exists for the employee and date.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the attendance row for one employee on
	// one calendar date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update overwrites an existing attendance record.
	Update(ctx context.Context, att Attendance) error

	// ListWorkedForPeriod returns rows with status PRESENT or LATE within
	// [start, end] inclusive, ordered by date. This is the input to payroll
	// aggregation.
	ListWorkedForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListRange returns all rows in [start, end] regardless of status.
	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
