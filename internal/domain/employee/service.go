package employee

import "context"

// EmployeeService manages employee pay profiles and the salary history
// ledger.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	ListActive(ctx context.Context) ([]EmployeeResponse, error)

	// UpdateSalary changes the base salary and appends the change to the
	// salary history ledger in the same transaction.
	UpdateSalary(ctx context.Context, id string, req UpdateSalaryRequest) (EmployeeResponse, error)
	SalaryHistory(ctx context.Context, id string) ([]SalaryChangeResponse, error)
}
