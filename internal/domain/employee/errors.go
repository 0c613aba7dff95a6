package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrInvalidSalaryAmount  = errors.New("salary amount must be non-negative")
	ErrEmployeeInactive     = errors.New("employee is not active")
	ErrInvalidEffectiveDate = errors.New("invalid effective date")
)
