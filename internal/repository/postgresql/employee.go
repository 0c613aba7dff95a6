package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/prolyhq/payroll-backend-go/internal/domain/employee"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_code, first_name, last_name, position, department_id, date_hired,
	   sss_no, philhealth_no, pagibig_no, tin_no,
	   base_salary, hourly_rate, salary_type, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Position, &emp.DepartmentID, &emp.DateHired,
		&emp.SSSNo, &emp.PhilHealthNo, &emp.PagIBIGNo, &emp.TINNo,
		&emp.BaseSalary, &emp.HourlyRate, &emp.SalaryType, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_code, first_name, last_name, position, department_id, date_hired,
			sss_no, philhealth_no, pagibig_no, tin_no,
			base_salary, hourly_rate, salary_type, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.FirstName, emp.LastName, emp.Position, emp.DepartmentID, emp.DateHired,
		emp.SSSNo, emp.PhilHealthNo, emp.PagIBIGNo, emp.TINNo,
		emp.BaseSalary, emp.HourlyRate, emp.SalaryType, emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = true ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// UpdateBaseSalary implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateBaseSalary(ctx context.Context, id string, newSalary decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET base_salary = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, newSalary, id)
	if err != nil {
		return fmt.Errorf("failed to update base salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// AppendSalaryChange implements employee.EmployeeRepository.
func (r *employeeRepository) AppendSalaryChange(ctx context.Context, change employee.SalaryChange) (employee.SalaryChange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_changes (
			employee_id, old_salary, new_salary, effective_date, reason, changed_by
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		change.EmployeeID, change.OldSalary, change.NewSalary, change.EffectiveDate, change.Reason, change.ChangedBy,
	).Scan(&change.ID, &change.CreatedAt)

	if err != nil {
		return employee.SalaryChange{}, fmt.Errorf("failed to append salary change: %w", err)
	}

	return change, nil
}

// SalaryHistory implements employee.EmployeeRepository.
func (r *employeeRepository) SalaryHistory(ctx context.Context, employeeID string) ([]employee.SalaryChange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, old_salary, new_salary, effective_date, reason, changed_by, created_at
		FROM salary_changes
		WHERE employee_id = $1
		ORDER BY effective_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}
	defer rows.Close()

	var changes []employee.SalaryChange
	for rows.Next() {
		var c employee.SalaryChange
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.OldSalary, &c.NewSalary, &c.EffectiveDate, &c.Reason, &c.ChangedBy, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary change: %w", err)
		}
		changes = append(changes, c)
	}

	return changes, rows.Err()
}
