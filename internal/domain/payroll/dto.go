package payroll

import (
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayDate   string `json:"pay_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidDate(r.PayDate) {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayDate   string `json:"pay_date"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ========== COMPUTE DTOs ==========

// ComputeError is one employee the batch run could not compute. The batch
// carries on past individual failures.
type ComputeError struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Error        string `json:"error"`
}

type ComputePeriodResponse struct {
	PeriodID       string         `json:"period_id"`
	TotalEmployees int            `json:"total_employees"`
	Computed       int            `json:"computed"`
	Errors         []ComputeError `json:"errors"`
}

// ========== ENTRY DTOs ==========

type EntryResponse struct {
	ID         string `json:"id"`
	PeriodID   string `json:"period_id"`
	EmployeeID string `json:"employee_id"`

	DaysPresent            int     `json:"days_present"`
	RegularHours           float64 `json:"regular_hours"`
	OvertimeHours          float64 `json:"overtime_hours"`
	NightDifferentialHours float64 `json:"night_differential_hours"`
	LateMinutes            int     `json:"late_minutes"`
	UndertimeMinutes       int     `json:"undertime_minutes"`

	BasicPay             decimal.Decimal `json:"basic_pay"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	NightDifferentialPay decimal.Decimal `json:"night_differential_pay"`
	HolidayPay           decimal.Decimal `json:"holiday_pay"`
	RestDayPay           decimal.Decimal `json:"rest_day_pay"`
	Allowances           decimal.Decimal `json:"allowances"`
	IncentivePay         decimal.Decimal `json:"incentive_pay"`
	VacationSickLeavePay decimal.Decimal `json:"vacation_sickleave_pay"`
	SalaryAdjustment     decimal.Decimal `json:"salary_adjustment"`
	GrossPay             decimal.Decimal `json:"gross_pay"`
	SSSDeduction         decimal.Decimal `json:"sss_deduction"`
	PhilHealthDeduction  decimal.Decimal `json:"philhealth_deduction"`
	PagIBIGDeduction     decimal.Decimal `json:"pagibig_deduction"`
	TaxDeduction         decimal.Decimal `json:"tax_deduction"`
	LateDeduction        decimal.Decimal `json:"late_deduction"`
	UndertimeDeduction   decimal.Decimal `json:"undertime_deduction"`
	CashAdvance          decimal.Decimal `json:"cash_advance"`
	OtherDeductions      decimal.Decimal `json:"other_deductions"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	NetPay               decimal.Decimal `json:"net_pay"`

	Status    string `json:"status"`
	Remarks   string `json:"remarks,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ReviewEntryRequest struct {
	Status      string `json:"status"`
	Remarks     string `json:"remarks,omitempty"`
	PerformedBy string `json:"performed_by,omitempty"`
}

func (r *ReviewEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	switch EntryStatus(r.Status) {
	case EntryVerified, EntryRejected, EntryRevisionRequested:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'VERIFIED', 'REJECTED' or 'REVISION_REQUESTED'"})
	}
	if EntryStatus(r.Status) != EntryVerified && validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{Field: "remarks", Message: "is required when rejecting or requesting revision"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== HISTORY DTOs ==========

type TransactionResponse struct {
	ID               string           `json:"id"`
	EntryID          string           `json:"entry_id"`
	Type             string           `json:"transaction_type"`
	PreviousStatus   *string          `json:"previous_status,omitempty"`
	NewStatus        string           `json:"new_status"`
	PreviousGrossPay *decimal.Decimal `json:"previous_gross_pay,omitempty"`
	NewGrossPay      decimal.Decimal  `json:"new_gross_pay"`
	PreviousNetPay   *decimal.Decimal `json:"previous_net_pay,omitempty"`
	NewNetPay        decimal.Decimal  `json:"new_net_pay"`
	PerformedBy      string           `json:"performed_by,omitempty"`
	Remarks          string           `json:"remarks,omitempty"`
	CreatedAt        string           `json:"created_at"`
}
