package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prolyhq/payroll-backend-go/internal/domain/payroll"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
)

// ========== PERIODS ==========

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) payroll.PeriodRepository {
	return &periodRepository{db: db}
}

// Create implements payroll.PeriodRepository.
func (r *periodRepository) Create(ctx context.Context, period *payroll.Period) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (name, start_date, end_date, pay_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		period.Name, period.StartDate, period.EndDate, period.PayDate, period.Status,
	).Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create payroll period: %w", err)
	}

	return nil
}

// GetByID implements payroll.PeriodRepository.
func (r *periodRepository) GetByID(ctx context.Context, id string) (*payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, pay_date, status, created_at, updated_at
		FROM payroll_periods
		WHERE id = $1
	`

	var p payroll.Period
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return &p, nil
}

// List implements payroll.PeriodRepository.
func (r *periodRepository) List(ctx context.Context) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, pay_date, status, created_at, updated_at
		FROM payroll_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.Period
	for rows.Next() {
		var p payroll.Period
		if err := rows.Scan(
			&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// UpdateStatus implements payroll.PeriodRepository.
func (r *periodRepository) UpdateStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_periods SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

// HasOverlap implements payroll.PeriodRepository.
func (r *periodRepository) HasOverlap(ctx context.Context, period *payroll.Period) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_periods
			WHERE start_date <= $1 AND end_date >= $2 AND id::text != $3
		)
	`

	var overlaps bool
	err := q.QueryRow(ctx, query, period.EndDate, period.StartDate, period.ID).Scan(&overlaps)
	if err != nil {
		return false, fmt.Errorf("failed to check period overlap: %w", err)
	}

	return overlaps, nil
}

// ========== ENTRIES ==========

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) payroll.EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, period_id, employee_id,
	   days_present, regular_hours, overtime_hours, night_differential_hours, late_minutes, undertime_minutes,
	   basic_pay, overtime_pay, night_differential_pay, holiday_pay, rest_day_pay,
	   allowances, incentive_pay, vacation_sickleave_pay, salary_adjustment, gross_pay,
	   sss_deduction, philhealth_deduction, pagibig_deduction, tax_deduction,
	   late_deduction, undertime_deduction, cash_advance, other_deductions, total_deductions, net_pay,
	   status, remarks, created_at, updated_at`

func scanEntry(row pgx.Row) (payroll.Entry, error) {
	var e payroll.Entry
	err := row.Scan(
		&e.ID, &e.PeriodID, &e.EmployeeID,
		&e.DaysPresent, &e.RegularHours, &e.OvertimeHours, &e.NightDifferentialHours, &e.LateMinutes, &e.UndertimeMinutes,
		&e.BasicPay, &e.OvertimePay, &e.NightDifferentialPay, &e.HolidayPay, &e.RestDayPay,
		&e.Allowances, &e.IncentivePay, &e.VacationSickLeavePay, &e.SalaryAdjustment, &e.GrossPay,
		&e.SSSDeduction, &e.PhilHealthDeduction, &e.PagIBIGDeduction, &e.TaxDeduction,
		&e.LateDeduction, &e.UndertimeDeduction, &e.CashAdvance, &e.OtherDeductions, &e.TotalDeductions, &e.NetPay,
		&e.Status, &e.Remarks, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Upsert implements payroll.EntryRepository. The insert is keyed on the
// (period_id, employee_id) unique constraint; a conflict overwrites every
// computed figure and resets the entry to PENDING so a recompute always
// reopens review. xmax = 0 distinguishes a fresh insert from an overwrite.
func (r *entryRepository) Upsert(ctx context.Context, entry *payroll.Entry) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_entries (
			period_id, employee_id,
			days_present, regular_hours, overtime_hours, night_differential_hours, late_minutes, undertime_minutes,
			basic_pay, overtime_pay, night_differential_pay, holiday_pay, rest_day_pay,
			allowances, incentive_pay, vacation_sickleave_pay, salary_adjustment, gross_pay,
			sss_deduction, philhealth_deduction, pagibig_deduction, tax_deduction,
			late_deduction, undertime_deduction, cash_advance, other_deductions, total_deductions, net_pay,
			status, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30
		)
		ON CONFLICT (period_id, employee_id) DO UPDATE SET
			days_present = EXCLUDED.days_present,
			regular_hours = EXCLUDED.regular_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			night_differential_hours = EXCLUDED.night_differential_hours,
			late_minutes = EXCLUDED.late_minutes,
			undertime_minutes = EXCLUDED.undertime_minutes,
			basic_pay = EXCLUDED.basic_pay,
			overtime_pay = EXCLUDED.overtime_pay,
			night_differential_pay = EXCLUDED.night_differential_pay,
			holiday_pay = EXCLUDED.holiday_pay,
			rest_day_pay = EXCLUDED.rest_day_pay,
			allowances = EXCLUDED.allowances,
			incentive_pay = EXCLUDED.incentive_pay,
			vacation_sickleave_pay = EXCLUDED.vacation_sickleave_pay,
			salary_adjustment = EXCLUDED.salary_adjustment,
			gross_pay = EXCLUDED.gross_pay,
			sss_deduction = EXCLUDED.sss_deduction,
			philhealth_deduction = EXCLUDED.philhealth_deduction,
			pagibig_deduction = EXCLUDED.pagibig_deduction,
			tax_deduction = EXCLUDED.tax_deduction,
			late_deduction = EXCLUDED.late_deduction,
			undertime_deduction = EXCLUDED.undertime_deduction,
			cash_advance = EXCLUDED.cash_advance,
			other_deductions = EXCLUDED.other_deductions,
			total_deductions = EXCLUDED.total_deductions,
			net_pay = EXCLUDED.net_pay,
			status = EXCLUDED.status,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	var created bool
	err := q.QueryRow(ctx, query,
		entry.PeriodID, entry.EmployeeID,
		entry.DaysPresent, entry.RegularHours, entry.OvertimeHours, entry.NightDifferentialHours, entry.LateMinutes, entry.UndertimeMinutes,
		entry.BasicPay, entry.OvertimePay, entry.NightDifferentialPay, entry.HolidayPay, entry.RestDayPay,
		entry.Allowances, entry.IncentivePay, entry.VacationSickLeavePay, entry.SalaryAdjustment, entry.GrossPay,
		entry.SSSDeduction, entry.PhilHealthDeduction, entry.PagIBIGDeduction, entry.TaxDeduction,
		entry.LateDeduction, entry.UndertimeDeduction, entry.CashAdvance, entry.OtherDeductions, entry.TotalDeductions, entry.NetPay,
		entry.Status, entry.Remarks,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt, &created)

	if err != nil {
		return false, fmt.Errorf("failed to upsert payroll entry: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.EntryRepository.
func (r *entryRepository) GetByID(ctx context.Context, id string) (*payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM payroll_entries WHERE id = $1`

	e, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	return &e, nil
}

// GetByPeriodAndEmployee implements payroll.EntryRepository.
func (r *entryRepository) GetByPeriodAndEmployee(ctx context.Context, periodID, employeeID string) (*payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM payroll_entries WHERE period_id = $1 AND employee_id = $2`

	e, err := scanEntry(q.QueryRow(ctx, query, periodID, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	return &e, nil
}

// ListByPeriod implements payroll.EntryRepository.
func (r *entryRepository) ListByPeriod(ctx context.Context, periodID string) ([]payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM payroll_entries
		WHERE period_id = $1
		ORDER BY (SELECT employee_code FROM employees WHERE employees.id = payroll_entries.employee_id)
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpdateStatus implements payroll.EntryRepository.
func (r *entryRepository) UpdateStatus(ctx context.Context, id string, status payroll.EntryStatus, remarks string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_entries SET status = $1, remarks = $2, updated_at = NOW() WHERE id = $3`

	tag, err := q.Exec(ctx, query, status, remarks, id)
	if err != nil {
		return fmt.Errorf("failed to update entry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}

	return nil
}

// ========== TRANSACTION HISTORY ==========

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) payroll.TransactionRepository {
	return &transactionRepository{db: db}
}

// Append implements payroll.TransactionRepository. History rows are insert
// only; no update or delete statement exists anywhere for this table.
func (r *transactionRepository) Append(ctx context.Context, tx *payroll.Transaction) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_transactions (
			entry_id, transaction_type, previous_status, new_status,
			previous_gross_pay, new_gross_pay, previous_net_pay, new_net_pay,
			performed_by, remarks
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		tx.EntryID, tx.Type, tx.PreviousStatus, tx.NewStatus,
		tx.PreviousGrossPay, tx.NewGrossPay, tx.PreviousNetPay, tx.NewNetPay,
		tx.PerformedBy, tx.Remarks,
	).Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append payroll transaction: %w", err)
	}

	return nil
}

// ListByEntry implements payroll.TransactionRepository.
func (r *transactionRepository) ListByEntry(ctx context.Context, entryID string) ([]payroll.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, entry_id, transaction_type, previous_status, new_status,
		       previous_gross_pay, new_gross_pay, previous_net_pay, new_net_pay,
		       performed_by, remarks, created_at
		FROM payroll_transactions
		WHERE entry_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll transactions: %w", err)
	}
	defer rows.Close()

	var txs []payroll.Transaction
	for rows.Next() {
		var t payroll.Transaction
		if err := rows.Scan(
			&t.ID, &t.EntryID, &t.Type, &t.PreviousStatus, &t.NewStatus,
			&t.PreviousGrossPay, &t.NewGrossPay, &t.PreviousNetPay, &t.NewNetPay,
			&t.PerformedBy, &t.Remarks, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll transaction: %w", err)
		}
		txs = append(txs, t)
	}

	return txs, rows.Err()
}
