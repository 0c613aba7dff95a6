package attendance

import "context"

// AttendanceService records daily time-ins and time-outs and derives the
// hour and minute breakdowns payroll aggregates from.
type AttendanceService interface {
	// ClockIn opens the day's record. Time and date default to now/today.
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the record and computes hours worked, the
	// regular/overtime/night-differential split and the late and undertime
	// minutes against the company work schedule.
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// MarkStatus records a non-working day (absence, leave, holiday).
	MarkStatus(ctx context.Context, req MarkStatusRequest) (AttendanceResponse, error)

	ListForEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]AttendanceResponse, error)
}
