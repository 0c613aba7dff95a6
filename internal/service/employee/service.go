package employee

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prolyhq/payroll-backend-go/internal/domain/employee"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
	"github.com/prolyhq/payroll-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository

	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
		SSSNo:        req.SSSNo,
		PhilHealthNo: req.PhilHealthNo,
		PagIBIGNo:    req.PagIBIGNo,
		TINNo:        req.TINNo,
		BaseSalary:   req.BaseSalary,
		SalaryType:   employee.SalaryType(req.SalaryType),
		IsActive:     true,
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = *req.HourlyRate
	}
	if req.DateHired != nil {
		hired, _ := time.Parse("2006-01-02", *req.DateHired)
		emp.DateHired = &hired
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// ListActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}
	return responses, nil
}

// UpdateSalary implements employee.EmployeeService. The salary column and
// the history row move together or not at all.
func (s *EmployeeServiceImpl) UpdateSalary(ctx context.Context, id string, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.UpdateBaseSalary(txCtx, emp.ID, req.NewSalary); err != nil {
			return err
		}
		_, err := s.employeeRepo.AppendSalaryChange(txCtx, employee.SalaryChange{
			EmployeeID:    emp.ID,
			OldSalary:     emp.BaseSalary,
			NewSalary:     req.NewSalary,
			EffectiveDate: effectiveDate,
			Reason:        req.Reason,
			ChangedBy:     req.ChangedBy,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.BaseSalary = req.NewSalary
	return toEmployeeResponse(emp), nil
}

// SalaryHistory implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SalaryHistory(ctx context.Context, id string) ([]employee.SalaryChangeResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	changes, err := s.employeeRepo.SalaryHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.SalaryChangeResponse, 0, len(changes))
	for _, c := range changes {
		responses = append(responses, employee.SalaryChangeResponse{
			ID:            c.ID,
			EmployeeID:    c.EmployeeID,
			OldSalary:     c.OldSalary,
			NewSalary:     c.NewSalary,
			EffectiveDate: c.EffectiveDate.Format("2006-01-02"),
			Reason:        c.Reason,
			ChangedBy:     c.ChangedBy,
			CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		FullName:     emp.FullName(),
		Position:     emp.Position,
		DepartmentID: emp.DepartmentID,
		SSSNo:        emp.SSSNo,
		PhilHealthNo: emp.PhilHealthNo,
		PagIBIGNo:    emp.PagIBIGNo,
		TINNo:        emp.TINNo,
		BaseSalary:   emp.BaseSalary,
		HourlyRate:   emp.HourlyRate,
		SalaryType:   string(emp.SalaryType),
		IsActive:     emp.IsActive,
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
	}
	if emp.DateHired != nil {
		v := emp.DateHired.Format("2006-01-02")
		resp.DateHired = &v
	}
	return resp
}
