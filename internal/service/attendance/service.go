package attendance

import (
	"context"
	"time"

	"github.com/prolyhq/payroll-backend-go/internal/config"
	"github.com/prolyhq/payroll-backend-go/internal/domain/attendance"
	"github.com/prolyhq/payroll-backend-go/internal/domain/employee"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	cfg            config.PayrollConfig
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	cfg config.PayrollConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		cfg:            cfg,
		now:            time.Now,
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	date, at := s.resolveMoment(req.Date, req.Time)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err == nil {
		if existing.TimeIn != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyTimedIn
		}
		existing.TimeIn = &at
		existing.Status = attendance.StatusPresent
		existing.IsHoliday = existing.IsHoliday || req.IsHoliday
		existing.IsRestDay = existing.IsRestDay || req.IsRestDay
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toAttendanceResponse(existing), nil
	}
	if err != attendance.ErrAttendanceNotFound {
		return attendance.AttendanceResponse{}, err
	}

	att := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       date,
		TimeIn:     &at,
		IsHoliday:  req.IsHoliday,
		IsRestDay:  req.IsRestDay,
		Status:     attendance.StatusPresent,
		Notes:      req.Notes,
	}

	created, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, at := s.resolveMoment(req.Date, req.Time)

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if err == attendance.ErrAttendanceNotFound {
			return attendance.AttendanceResponse{}, attendance.ErrNotTimedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if att.TimeIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotTimedIn
	}
	if att.TimeOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyTimedOut
	}

	b := breakdown(*att.TimeIn, at, s.cfg)

	att.TimeOut = &at
	att.HoursWorked = b.HoursWorked
	att.RegularHours = b.RegularHours
	att.OvertimeHours = b.OvertimeHours
	att.NightDifferentialHours = b.NightDifferentialHours
	att.LateMinutes = b.LateMinutes
	att.UndertimeMinutes = b.UndertimeMinutes
	att.Status = attendance.StatusPresent
	if b.LateMinutes > 0 {
		att.Status = attendance.StatusLate
	}

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(att), nil
}

// MarkStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkStatus(ctx context.Context, req attendance.MarkStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	status := attendance.Status(req.Status)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err == nil {
		existing.Status = status
		existing.IsHoliday = existing.IsHoliday || status == attendance.StatusHoliday
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toAttendanceResponse(existing), nil
	}
	if err != attendance.ErrAttendanceNotFound {
		return attendance.AttendanceResponse{}, err
	}

	att := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		IsHoliday:  status == attendance.StatusHoliday,
		Status:     status,
		Notes:      req.Notes,
	}

	created, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// ListForEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListForEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidDate(startDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidDate(endDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	start, _ := time.Parse("2006-01-02", startDate)
	end, _ := time.Parse("2006-01-02", endDate)

	records, err := s.attendanceRepo.ListRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toAttendanceResponse(att))
	}
	return responses, nil
}

// resolveMoment turns optional date and clock strings into the attendance
// date and the full timestamp, defaulting to now. Validation upstream
// guarantees the formats.
func (s *AttendanceServiceImpl) resolveMoment(dateStr, timeStr string) (time.Time, time.Time) {
	now := s.now()

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateStr != "" {
		date, _ = time.Parse("2006-01-02", dateStr)
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), now.Hour(), now.Minute(), 0, 0, time.UTC)
	if timeStr != "" {
		clock, _ := time.Parse("15:04", timeStr)
		at = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	}

	return date, at
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                     att.ID,
		EmployeeID:             att.EmployeeID,
		Date:                   att.Date.Format("2006-01-02"),
		HoursWorked:            att.HoursWorked,
		RegularHours:           att.RegularHours,
		OvertimeHours:          att.OvertimeHours,
		NightDifferentialHours: att.NightDifferentialHours,
		LateMinutes:            att.LateMinutes,
		UndertimeMinutes:       att.UndertimeMinutes,
		IsHoliday:              att.IsHoliday,
		IsRestDay:              att.IsRestDay,
		Status:                 string(att.Status),
		Notes:                  att.Notes,
	}
	if att.TimeIn != nil {
		v := att.TimeIn.Format("15:04")
		resp.TimeIn = &v
	}
	if att.TimeOut != nil {
		v := att.TimeOut.Format("15:04")
		resp.TimeOut = &v
	}
	return resp
}
