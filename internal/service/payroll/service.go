package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/prolyhq/payroll-backend-go/internal/config"
	"github.com/prolyhq/payroll-backend-go/internal/domain/attendance"
	"github.com/prolyhq/payroll-backend-go/internal/domain/employee"
	"github.com/prolyhq/payroll-backend-go/internal/domain/payroll"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
	"github.com/prolyhq/payroll-backend-go/internal/repository/postgresql"
	"github.com/prolyhq/payroll-backend-go/internal/service/compliance"
)

type PayrollServiceImpl struct {
	periodRepo     payroll.PeriodRepository
	entryRepo      payroll.EntryRepository
	txRepo         payroll.TransactionRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	deductions     *compliance.Calculator
	cfg            config.PayrollConfig

	// runTx executes fn inside a database transaction carried on the
	// context value read by the repositories.
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewPayrollService(
	db *database.DB,
	periodRepo payroll.PeriodRepository,
	entryRepo payroll.EntryRepository,
	txRepo payroll.TransactionRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	deductions *compliance.Calculator,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		periodRepo:     periodRepo,
		entryRepo:      entryRepo,
		txRepo:         txRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		deductions:     deductions,
		cfg:            cfg,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// ========== PERIODS ==========

// CreatePeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	payDate, _ := time.Parse("2006-01-02", req.PayDate)

	if endDate.Before(startDate) {
		return payroll.PeriodResponse{}, payroll.ErrInvalidPeriodDates
	}

	period := &payroll.Period{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		PayDate:   payDate,
		Status:    payroll.PeriodOpen,
	}

	overlaps, err := s.periodRepo.HasOverlap(ctx, period)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if overlaps {
		return payroll.PeriodResponse{}, payroll.ErrPeriodOverlaps
	}

	if err := s.periodRepo.Create(ctx, period); err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(period), nil
}

// GetPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return toPeriodResponse(period), nil
}

// ListPeriods implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.periodRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for i := range periods {
		responses = append(responses, toPeriodResponse(&periods[i]))
	}
	return responses, nil
}

// ========== COMPUTATION ==========

// ComputePeriod implements payroll.PayrollService. Employees are processed
// one at a time in employee-code order; a failure for one employee is
// recorded and the batch moves on. The period becomes PROCESSED when at
// least one entry computes.
func (s *PayrollServiceImpl) ComputePeriod(ctx context.Context, periodID, performedBy string) (payroll.ComputePeriodResponse, error) {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.ComputePeriodResponse{}, err
	}
	if !period.Computable() {
		return payroll.ComputePeriodResponse{}, payroll.ErrPeriodNotComputable
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.ComputePeriodResponse{}, err
	}

	result := payroll.ComputePeriodResponse{
		PeriodID:       period.ID,
		TotalEmployees: len(employees),
		Errors:         []payroll.ComputeError{},
	}

	for _, emp := range employees {
		if _, err := s.computeEntry(ctx, period, emp, performedBy); err != nil {
			slog.Warn("Failed to compute payroll entry",
				"period_id", period.ID, "employee_code", emp.EmployeeCode, "error", err)
			result.Errors = append(result.Errors, payroll.ComputeError{
				EmployeeID:   emp.ID,
				EmployeeCode: emp.EmployeeCode,
				Error:        err.Error(),
			})
			continue
		}
		result.Computed++
	}

	if result.Computed > 0 {
		if err := s.periodRepo.UpdateStatus(ctx, period.ID, payroll.PeriodProcessed); err != nil {
			return payroll.ComputePeriodResponse{}, err
		}
	}

	slog.Info("Computed payroll period",
		"period_id", period.ID, "computed", result.Computed, "failed", len(result.Errors))

	return result, nil
}

// ComputeForEmployee implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeForEmployee(ctx context.Context, periodID, employeeID, performedBy string) (payroll.EntryResponse, error) {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	if !period.Computable() {
		return payroll.EntryResponse{}, payroll.ErrPeriodNotComputable
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	if !emp.IsActive {
		return payroll.EntryResponse{}, employee.ErrEmployeeInactive
	}

	entry, err := s.computeEntry(ctx, period, emp, performedBy)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	return toEntryResponse(entry), nil
}

// computeEntry builds one employee's entry from attendance and rate tables,
// then upserts it together with its history record in a single transaction.
// Manual adjustment fields go back to zero on every recompute; the computed
// figures are authoritative. The history record carries the entry's previous
// status and figures, read before the upsert overwrites them.
func (s *PayrollServiceImpl) computeEntry(ctx context.Context, period *payroll.Period, emp employee.Employee, performedBy string) (*payroll.Entry, error) {
	prev, err := s.entryRepo.GetByPeriodAndEmployee(ctx, period.ID, emp.ID)
	if err != nil && err != payroll.ErrEntryNotFound {
		return nil, fmt.Errorf("failed to load existing entry: %w", err)
	}

	records, err := s.attendanceRepo.ListWorkedForPeriod(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	summary := attendance.Summarize(records)
	hourlyRate := emp.EffectiveHourlyRate()
	components := CalculateComponents(summary, hourlyRate, s.cfg)

	// Statutory rates are resolved as of the period start date.
	deductions, _, err := s.deductions.Calculate(ctx, components.GrossPay, period.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate statutory deductions: %w", err)
	}

	entry := &payroll.Entry{
		PeriodID:   period.ID,
		EmployeeID: emp.ID,

		DaysPresent:            summary.DaysPresent,
		RegularHours:           summary.RegularHours,
		OvertimeHours:          summary.OvertimeHours,
		NightDifferentialHours: summary.NightDifferentialHours,
		LateMinutes:            summary.LateMinutes,
		UndertimeMinutes:       summary.UndertimeMinutes,

		BasicPay:             components.BasicPay,
		OvertimePay:          components.OvertimePay,
		NightDifferentialPay: components.NightDifferentialPay,
		HolidayPay:           components.HolidayPay,
		RestDayPay:           components.RestDayPay,
		Allowances:           decimal.Zero,
		IncentivePay:         decimal.Zero,
		VacationSickLeavePay: decimal.Zero,
		SalaryAdjustment:     decimal.Zero,
		SSSDeduction:         deductions.SSS,
		PhilHealthDeduction:  deductions.PhilHealth,
		PagIBIGDeduction:     deductions.PagIBIG,
		TaxDeduction:         deductions.Tax,
		LateDeduction:        components.LateDeduction,
		UndertimeDeduction:   components.UndertimeDeduction,
		CashAdvance:          decimal.Zero,
		OtherDeductions:      decimal.Zero,

		Status: payroll.EntryPending,
	}

	entry.GrossPay = components.GrossPay.
		Add(entry.Allowances).
		Add(entry.IncentivePay).
		Add(entry.VacationSickLeavePay).
		Add(entry.SalaryAdjustment).
		Round(2)
	entry.TotalDeductions = deductions.Total().
		Add(components.LateDeduction).
		Add(components.UndertimeDeduction).
		Add(entry.CashAdvance).
		Add(entry.OtherDeductions).
		Round(2)
	entry.NetPay = entry.GrossPay.Sub(entry.TotalDeductions).Round(2)

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.entryRepo.Upsert(txCtx, entry)
		if err != nil {
			return err
		}

		record := &payroll.Transaction{
			EntryID:     entry.ID,
			Type:        payroll.TxUpdated,
			NewStatus:   entry.Status,
			NewGrossPay: entry.GrossPay,
			NewNetPay:   entry.NetPay,
			PerformedBy: performedBy,
		}
		if created {
			record.Type = payroll.TxCreated
		} else if prev != nil {
			record.PreviousStatus = &prev.Status
			record.PreviousGrossPay = &prev.GrossPay
			record.PreviousNetPay = &prev.NetPay
		}
		return s.txRepo.Append(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ========== ENTRIES ==========

// ListEntries implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListEntries(ctx context.Context, periodID string) ([]payroll.EntryResponse, error) {
	if _, err := s.periodRepo.GetByID(ctx, periodID); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toEntryResponse(&entries[i]))
	}
	return responses, nil
}

// GetEntry implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEntry(ctx context.Context, entryID string) (payroll.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return toEntryResponse(entry), nil
}

// ReviewEntry implements payroll.PayrollService. Entries are reviewed after
// the period is submitted; each verdict lands in the entry history.
func (s *PayrollServiceImpl) ReviewEntry(ctx context.Context, entryID string, req payroll.ReviewEntryRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	if entry.Status != payroll.EntryPending {
		return payroll.EntryResponse{}, payroll.ErrEntryNotPending
	}

	period, err := s.periodRepo.GetByID(ctx, entry.PeriodID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	if period.Status != payroll.PeriodSubmitted {
		return payroll.EntryResponse{}, payroll.ErrPeriodNotSubmitted
	}

	status := payroll.EntryStatus(req.Status)
	priorStatus := entry.Status

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.entryRepo.UpdateStatus(txCtx, entry.ID, status, req.Remarks); err != nil {
			return err
		}
		return s.txRepo.Append(txCtx, &payroll.Transaction{
			EntryID:          entry.ID,
			Type:             payroll.TransactionType(status),
			PreviousStatus:   &priorStatus,
			NewStatus:        status,
			PreviousGrossPay: &entry.GrossPay,
			NewGrossPay:      entry.GrossPay,
			PreviousNetPay:   &entry.NetPay,
			NewNetPay:        entry.NetPay,
			PerformedBy:      req.PerformedBy,
			Remarks:          req.Remarks,
		})
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	entry.Status = status
	entry.Remarks = req.Remarks
	return toEntryResponse(entry), nil
}

// EntryHistory implements payroll.PayrollService.
func (s *PayrollServiceImpl) EntryHistory(ctx context.Context, entryID string) ([]payroll.TransactionResponse, error) {
	if _, err := s.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}

	txs, err := s.txRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, toTransactionResponse(&txs[i]))
	}
	return responses, nil
}

// ========== REVIEW LIFECYCLE ==========

// SubmitPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) SubmitPeriod(ctx context.Context, periodID, performedBy string) (payroll.PeriodResponse, error) {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status != payroll.PeriodProcessed {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotProcessed
	}

	entries, err := s.entryRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.periodRepo.UpdateStatus(txCtx, period.ID, payroll.PeriodSubmitted); err != nil {
			return err
		}
		for i := range entries {
			err := s.txRepo.Append(txCtx, &payroll.Transaction{
				EntryID:          entries[i].ID,
				Type:             payroll.TxSubmitted,
				PreviousStatus:   &entries[i].Status,
				NewStatus:        entries[i].Status,
				PreviousGrossPay: &entries[i].GrossPay,
				NewGrossPay:      entries[i].GrossPay,
				PreviousNetPay:   &entries[i].NetPay,
				NewNetPay:        entries[i].NetPay,
				PerformedBy:      performedBy,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = payroll.PeriodSubmitted
	return toPeriodResponse(period), nil
}

// ApprovePeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) ApprovePeriod(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	return s.closeReview(ctx, periodID, payroll.PeriodApproved, "", "")
}

// RejectPeriod implements payroll.PayrollService. The remarks land on every
// entry's history so the accountant's reason survives recomputation.
func (s *PayrollServiceImpl) RejectPeriod(ctx context.Context, periodID, remarks, performedBy string) (payroll.PeriodResponse, error) {
	return s.closeReview(ctx, periodID, payroll.PeriodRejected, remarks, performedBy)
}

func (s *PayrollServiceImpl) closeReview(ctx context.Context, periodID string, status payroll.PeriodStatus, remarks, performedBy string) (payroll.PeriodResponse, error) {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status != payroll.PeriodSubmitted {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotSubmitted
	}

	if status == payroll.PeriodRejected && remarks != "" {
		entries, err := s.entryRepo.ListByPeriod(ctx, periodID)
		if err != nil {
			return payroll.PeriodResponse{}, err
		}
		err = s.runTx(ctx, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			if err := s.periodRepo.UpdateStatus(txCtx, period.ID, status); err != nil {
				return err
			}
			for i := range entries {
				err := s.txRepo.Append(txCtx, &payroll.Transaction{
					EntryID:          entries[i].ID,
					Type:             payroll.TxRejected,
					PreviousStatus:   &entries[i].Status,
					NewStatus:        entries[i].Status,
					PreviousGrossPay: &entries[i].GrossPay,
					NewGrossPay:      entries[i].GrossPay,
					PreviousNetPay:   &entries[i].NetPay,
					NewNetPay:        entries[i].NetPay,
					PerformedBy:      performedBy,
					Remarks:          remarks,
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return payroll.PeriodResponse{}, err
		}
	} else {
		if err := s.periodRepo.UpdateStatus(ctx, period.ID, status); err != nil {
			return payroll.PeriodResponse{}, err
		}
	}

	period.Status = status
	return toPeriodResponse(period), nil
}

// ReopenPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) ReopenPeriod(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	switch period.Status {
	case payroll.PeriodApproved:
		return payroll.PeriodResponse{}, payroll.ErrPeriodApproved
	case payroll.PeriodSubmitted, payroll.PeriodRejected, payroll.PeriodProcessed:
	default:
		return toPeriodResponse(period), nil
	}

	if err := s.periodRepo.UpdateStatus(ctx, period.ID, payroll.PeriodOpen); err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = payroll.PeriodOpen
	return toPeriodResponse(period), nil
}

// ========== MAPPING ==========

func toPeriodResponse(p *payroll.Period) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		PayDate:   p.PayDate.Format("2006-01-02"),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toEntryResponse(e *payroll.Entry) payroll.EntryResponse {
	return payroll.EntryResponse{
		ID:         e.ID,
		PeriodID:   e.PeriodID,
		EmployeeID: e.EmployeeID,

		DaysPresent:            e.DaysPresent,
		RegularHours:           e.RegularHours,
		OvertimeHours:          e.OvertimeHours,
		NightDifferentialHours: e.NightDifferentialHours,
		LateMinutes:            e.LateMinutes,
		UndertimeMinutes:       e.UndertimeMinutes,

		BasicPay:             e.BasicPay,
		OvertimePay:          e.OvertimePay,
		NightDifferentialPay: e.NightDifferentialPay,
		HolidayPay:           e.HolidayPay,
		RestDayPay:           e.RestDayPay,
		Allowances:           e.Allowances,
		IncentivePay:         e.IncentivePay,
		VacationSickLeavePay: e.VacationSickLeavePay,
		SalaryAdjustment:     e.SalaryAdjustment,
		GrossPay:             e.GrossPay,
		SSSDeduction:         e.SSSDeduction,
		PhilHealthDeduction:  e.PhilHealthDeduction,
		PagIBIGDeduction:     e.PagIBIGDeduction,
		TaxDeduction:         e.TaxDeduction,
		LateDeduction:        e.LateDeduction,
		UndertimeDeduction:   e.UndertimeDeduction,
		CashAdvance:          e.CashAdvance,
		OtherDeductions:      e.OtherDeductions,
		TotalDeductions:      e.TotalDeductions,
		NetPay:               e.NetPay,

		Status:    string(e.Status),
		Remarks:   e.Remarks,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(t *payroll.Transaction) payroll.TransactionResponse {
	resp := payroll.TransactionResponse{
		ID:               t.ID,
		EntryID:          t.EntryID,
		Type:             string(t.Type),
		NewStatus:        string(t.NewStatus),
		PreviousGrossPay: t.PreviousGrossPay,
		NewGrossPay:      t.NewGrossPay,
		PreviousNetPay:   t.PreviousNetPay,
		NewNetPay:        t.NewNetPay,
		PerformedBy:      t.PerformedBy,
		Remarks:          t.Remarks,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
	if t.PreviousStatus != nil {
		prev := string(*t.PreviousStatus)
		resp.PreviousStatus = &prev
	}
	return resp
}
