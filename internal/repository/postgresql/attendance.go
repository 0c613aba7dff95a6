package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prolyhq/payroll-backend-go/internal/domain/attendance"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, time_in, time_out,
	   hours_worked, regular_hours, overtime_hours, night_differential_hours,
	   late_minutes, undertime_minutes, is_holiday, is_rest_day,
	   status, notes, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.TimeIn, &att.TimeOut,
		&att.HoursWorked, &att.RegularHours, &att.OvertimeHours, &att.NightDifferentialHours,
		&att.LateMinutes, &att.UndertimeMinutes, &att.IsHoliday, &att.IsRestDay,
		&att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, time_in, time_out,
			hours_worked, regular_hours, overtime_hours, night_differential_hours,
			late_minutes, undertime_minutes, is_holiday, is_rest_day, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.TimeIn, att.TimeOut,
		att.HoursWorked, att.RegularHours, att.OvertimeHours, att.NightDifferentialHours,
		att.LateMinutes, att.UndertimeMinutes, att.IsHoliday, att.IsRestDay, att.Status, att.Notes,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_attendance_employee_date") {
			return attendance.Attendance{}, attendance.ErrDuplicateDate
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET time_in = $1, time_out = $2,
			hours_worked = $3, regular_hours = $4, overtime_hours = $5, night_differential_hours = $6,
			late_minutes = $7, undertime_minutes = $8, is_holiday = $9, is_rest_day = $10,
			status = $11, notes = $12, updated_at = NOW()
		WHERE id = $13
	`

	tag, err := q.Exec(ctx, query,
		att.TimeIn, att.TimeOut,
		att.HoursWorked, att.RegularHours, att.OvertimeHours, att.NightDifferentialHours,
		att.LateMinutes, att.UndertimeMinutes, att.IsHoliday, att.IsRestDay,
		att.Status, att.Notes, att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListWorkedForPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListWorkedForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND status IN ($4, $5)
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, attendance.StatusPresent, attendance.StatusLate)
	if err != nil {
		return nil, fmt.Errorf("failed to list worked attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
