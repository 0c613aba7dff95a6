package attendance

import "errors"

// Attendance domain errors
var (
	// Time-in/time-out errors
	ErrAlreadyTimedIn  = errors.New("time-in already recorded for this date")
	ErrNotTimedIn      = errors.New("time-in must be recorded before time-out")
	ErrAlreadyTimedOut = errors.New("time-out already recorded for this date")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateDate      = errors.New("attendance already exists for this employee and date")
)
