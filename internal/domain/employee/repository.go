package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeRepository defines data access for employee pay profiles and the
// salary history ledger.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)

	// ListActive returns active employees ordered by employee code so that
	// batch computations iterate in a deterministic, reproducible order.
	ListActive(ctx context.Context) ([]Employee, error)

	UpdateBaseSalary(ctx context.Context, id string, newSalary decimal.Decimal) error

	// AppendSalaryChange inserts a salary history row. The ledger is
	// append-only; there is no update or delete.
	AppendSalaryChange(ctx context.Context, change SalaryChange) (SalaryChange, error)
	SalaryHistory(ctx context.Context, employeeID string) ([]SalaryChange, error)
}
