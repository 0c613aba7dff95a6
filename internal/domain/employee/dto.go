package employee

import (
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string           `json:"employee_code"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Position     *string          `json:"position,omitempty"`
	DepartmentID *string          `json:"department_id,omitempty"`
	DateHired    *string          `json:"date_hired,omitempty"`
	SSSNo        *string          `json:"sss_no,omitempty"`
	PhilHealthNo *string          `json:"philhealth_no,omitempty"`
	PagIBIGNo    *string          `json:"pagibig_no,omitempty"`
	TINNo        *string          `json:"tin_no,omitempty"`
	BaseSalary   decimal.Decimal  `json:"base_salary"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	SalaryType   string           `json:"salary_type"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	switch SalaryType(r.SalaryType) {
	case SalaryTypeMonthly, SalaryTypeHourly, SalaryTypeDaily:
	default:
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'MONTHLY', 'HOURLY' or 'DAILY'"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.DateHired != nil && !validator.IsValidDate(*r.DateHired) {
		errs = append(errs, validator.ValidationError{Field: "date_hired", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	FullName     string          `json:"full_name"`
	Position     *string         `json:"position,omitempty"`
	DepartmentID *string         `json:"department_id,omitempty"`
	DateHired    *string         `json:"date_hired,omitempty"`
	SSSNo        *string         `json:"sss_no,omitempty"`
	PhilHealthNo *string         `json:"philhealth_no,omitempty"`
	PagIBIGNo    *string         `json:"pagibig_no,omitempty"`
	TINNo        *string         `json:"tin_no,omitempty"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	SalaryType   string          `json:"salary_type"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    string          `json:"created_at"`
}

type UpdateSalaryRequest struct {
	NewSalary     decimal.Decimal `json:"new_salary"`
	EffectiveDate string          `json:"effective_date"`
	Reason        *string         `json:"reason,omitempty"`
	ChangedBy     *string         `json:"changed_by,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NewSalary.IsNegative() || r.NewSalary.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "new_salary", Message: "must be greater than zero"})
	}
	if !validator.IsValidDate(r.EffectiveDate) {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryChangeResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	OldSalary     decimal.Decimal `json:"old_salary"`
	NewSalary     decimal.Decimal `json:"new_salary"`
	EffectiveDate string          `json:"effective_date"`
	Reason        *string         `json:"reason,omitempty"`
	ChangedBy     *string         `json:"changed_by,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
