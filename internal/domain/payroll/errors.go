package payroll

import "errors"

var (
	ErrPeriodNotFound      = errors.New("payroll period not found")
	ErrPeriodOverlaps      = errors.New("payroll period overlaps an existing period")
	ErrPeriodNotComputable = errors.New("payroll period cannot be computed in its current status")
	ErrPeriodNotProcessed  = errors.New("payroll period has not been processed")
	ErrPeriodNotSubmitted  = errors.New("payroll period has not been submitted")
	ErrPeriodApproved      = errors.New("payroll period is approved and frozen")
	ErrInvalidPeriodDates  = errors.New("period end date must not be before start date")
	ErrEntryNotFound       = errors.New("payroll entry not found")
	ErrEntryNotPending     = errors.New("payroll entry is not pending review")
)
