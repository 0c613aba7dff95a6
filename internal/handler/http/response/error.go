package response

import (
	"errors"
	"net/http"

	"github.com/prolyhq/payroll-backend-go/internal/domain/attendance"
	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
	"github.com/prolyhq/payroll-backend-go/internal/domain/employee"
	"github.com/prolyhq/payroll-backend-go/internal/domain/payroll"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)
	case errors.Is(err, employee.ErrInvalidSalaryAmount):
		BadRequest(w, "Invalid salary amount", nil)
	case errors.Is(err, employee.ErrInvalidEffectiveDate):
		BadRequest(w, "Invalid effective date", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyTimedIn):
		Conflict(w, "Time-in already recorded for this date")
	case errors.Is(err, attendance.ErrNotTimedIn):
		BadRequest(w, "Time-in must be recorded before time-out", nil)
	case errors.Is(err, attendance.ErrAlreadyTimedOut):
		Conflict(w, "Time-out already recorded for this date")
	case errors.Is(err, attendance.ErrDuplicateDate):
		Conflict(w, "Attendance already exists for this date")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodOverlaps):
		Conflict(w, "Payroll period overlaps an existing period")
	case errors.Is(err, payroll.ErrInvalidPeriodDates):
		BadRequest(w, "Period end date must not be before start date", nil)
	case errors.Is(err, payroll.ErrPeriodNotComputable):
		Conflict(w, "Payroll period cannot be computed in its current status")
	case errors.Is(err, payroll.ErrPeriodNotProcessed):
		Conflict(w, "Payroll period has not been processed")
	case errors.Is(err, payroll.ErrPeriodNotSubmitted):
		Conflict(w, "Payroll period has not been submitted")
	case errors.Is(err, payroll.ErrPeriodApproved):
		Conflict(w, "Payroll period is approved and frozen")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrEntryNotPending):
		Conflict(w, "Payroll entry is not pending review")

	// Compliance domain errors
	case errors.Is(err, compliance.ErrRateTableNotFound):
		NotFound(w, "Rate table not found")
	case errors.Is(err, compliance.ErrInvalidComplianceType):
		BadRequest(w, "Invalid compliance type", nil)
	case errors.Is(err, compliance.ErrInvalidEffectiveDate):
		BadRequest(w, "Invalid effective date", nil)
	case errors.Is(err, compliance.ErrEmptyRateTable):
		BadRequest(w, "Rate table has no usable brackets", nil)
	case errors.Is(err, compliance.ErrUnsupportedFileFormat):
		BadRequest(w, "Unsupported rate table file format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
