package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prolyhq/payroll-backend-go/internal/config"
	"github.com/prolyhq/payroll-backend-go/internal/domain/attendance"
	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
	"github.com/prolyhq/payroll-backend-go/internal/domain/employee"
	"github.com/prolyhq/payroll-backend-go/internal/domain/payroll"
	compliancesvc "github.com/prolyhq/payroll-backend-go/internal/service/compliance"
)

// ========== FAKES ==========

type fakePeriodRepo struct {
	seq     int
	periods []*payroll.Period
}

func (f *fakePeriodRepo) add(status payroll.PeriodStatus) *payroll.Period {
	f.seq++
	p := &payroll.Period{
		ID:        fmt.Sprintf("period-%d", f.seq),
		Name:      fmt.Sprintf("Period %d", f.seq),
		StartDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		PayDate:   time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
	f.periods = append(f.periods, p)
	return p
}

func (f *fakePeriodRepo) Create(_ context.Context, period *payroll.Period) error {
	f.seq++
	period.ID = fmt.Sprintf("period-%d", f.seq)
	stored := *period
	f.periods = append(f.periods, &stored)
	return nil
}

func (f *fakePeriodRepo) GetByID(_ context.Context, id string) (*payroll.Period, error) {
	for _, p := range f.periods {
		if p.ID == id {
			found := *p
			return &found, nil
		}
	}
	return nil, payroll.ErrPeriodNotFound
}

func (f *fakePeriodRepo) List(_ context.Context) ([]payroll.Period, error) {
	out := make([]payroll.Period, 0, len(f.periods))
	for _, p := range f.periods {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePeriodRepo) UpdateStatus(_ context.Context, id string, status payroll.PeriodStatus) error {
	for _, p := range f.periods {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return payroll.ErrPeriodNotFound
}

func (f *fakePeriodRepo) HasOverlap(_ context.Context, period *payroll.Period) (bool, error) {
	for _, p := range f.periods {
		if p.ID == period.ID {
			continue
		}
		if !p.StartDate.After(period.EndDate) && !p.EndDate.Before(period.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

type fakeEntryRepo struct {
	seq     int
	entries []*payroll.Entry
}

func (f *fakeEntryRepo) Upsert(_ context.Context, entry *payroll.Entry) (bool, error) {
	for _, existing := range f.entries {
		if existing.PeriodID == entry.PeriodID && existing.EmployeeID == entry.EmployeeID {
			entry.ID = existing.ID
			entry.Status = payroll.EntryPending
			*existing = *entry
			return false, nil
		}
	}
	f.seq++
	entry.ID = fmt.Sprintf("entry-%d", f.seq)
	stored := *entry
	f.entries = append(f.entries, &stored)
	return true, nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id string) (*payroll.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			found := *e
			return &found, nil
		}
	}
	return nil, payroll.ErrEntryNotFound
}

func (f *fakeEntryRepo) GetByPeriodAndEmployee(_ context.Context, periodID, employeeID string) (*payroll.Entry, error) {
	for _, e := range f.entries {
		if e.PeriodID == periodID && e.EmployeeID == employeeID {
			found := *e
			return &found, nil
		}
	}
	return nil, payroll.ErrEntryNotFound
}

func (f *fakeEntryRepo) ListByPeriod(_ context.Context, periodID string) ([]payroll.Entry, error) {
	var out []payroll.Entry
	for _, e := range f.entries {
		if e.PeriodID == periodID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) UpdateStatus(_ context.Context, id string, status payroll.EntryStatus, remarks string) error {
	for _, e := range f.entries {
		if e.ID == id {
			e.Status = status
			e.Remarks = remarks
			return nil
		}
	}
	return payroll.ErrEntryNotFound
}

type fakeTransactionRepo struct {
	records []payroll.Transaction
}

func (f *fakeTransactionRepo) Append(_ context.Context, tx *payroll.Transaction) error {
	f.records = append(f.records, *tx)
	return nil
}

func (f *fakeTransactionRepo) ListByEntry(_ context.Context, entryID string) ([]payroll.Transaction, error) {
	var out []payroll.Transaction
	for _, t := range f.records {
		if t.EntryID == entryID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) forEntry(entryID string) []payroll.Transaction {
	out, _ := f.ListByEntry(context.Background(), entryID)
	return out
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) UpdateBaseSalary(_ context.Context, id string, newSalary decimal.Decimal) error {
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].BaseSalary = newSalary
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) AppendSalaryChange(_ context.Context, change employee.SalaryChange) (employee.SalaryChange, error) {
	return change, nil
}

func (f *fakeEmployeeRepo) SalaryHistory(_ context.Context, _ string) ([]employee.SalaryChange, error) {
	return nil, nil
}

type fakeAttendanceRepo struct {
	rows    map[string][]attendance.Attendance
	failFor map[string]error
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) ListWorkedForPeriod(_ context.Context, employeeID string, _, _ time.Time) ([]attendance.Attendance, error) {
	if err, ok := f.failFor[employeeID]; ok {
		return nil, err
	}
	return f.rows[employeeID], nil
}

func (f *fakeAttendanceRepo) ListRange(_ context.Context, employeeID string, _, _ time.Time) ([]attendance.Attendance, error) {
	return f.rows[employeeID], nil
}

// fakeRateTables has nothing uploaded, so every deduction computes from the
// built-in defaults.
type fakeRateTables struct{}

func (fakeRateTables) Create(_ context.Context, _ *compliance.RateTable) error { return nil }

func (fakeRateTables) Latest(_ context.Context, _ compliance.Type, _ time.Time) (*compliance.RateTable, error) {
	return nil, compliance.ErrRateTableNotFound
}

func (fakeRateTables) NextVersion(_ context.Context, _ compliance.Type) (int, error) { return 1, nil }

func (fakeRateTables) History(_ context.Context, _ compliance.Type) ([]compliance.RateTable, error) {
	return nil, nil
}

// ========== FIXTURE ==========

type payrollFixture struct {
	svc         *PayrollServiceImpl
	periods     *fakePeriodRepo
	entries     *fakeEntryRepo
	txs         *fakeTransactionRepo
	employees   *fakeEmployeeRepo
	attendances *fakeAttendanceRepo
}

func newFixture() *payrollFixture {
	f := &payrollFixture{
		periods:     &fakePeriodRepo{},
		entries:     &fakeEntryRepo{},
		txs:         &fakeTransactionRepo{},
		employees:   &fakeEmployeeRepo{},
		attendances: &fakeAttendanceRepo{rows: map[string][]attendance.Attendance{}, failFor: map[string]error{}},
	}
	f.svc = &PayrollServiceImpl{
		periodRepo:     f.periods,
		entryRepo:      f.entries,
		txRepo:         f.txs,
		employeeRepo:   f.employees,
		attendanceRepo: f.attendances,
		deductions:     compliancesvc.NewCalculator(fakeRateTables{}),
		cfg:            config.DefaultPayrollConfig(),
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
	}
	return f
}

// addEmployee registers an active monthly employee whose effective hourly
// rate comes out to 100 (17600 / 176).
func (f *payrollFixture) addEmployee(id, code string) employee.Employee {
	emp := employee.Employee{
		ID:           id,
		EmployeeCode: code,
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		BaseSalary:   decimal.NewFromInt(17600),
		SalaryType:   employee.SalaryTypeMonthly,
		IsActive:     true,
	}
	f.employees.employees = append(f.employees.employees, emp)
	return emp
}

// addWorkedDays records n plain 8-hour PRESENT days for the employee.
func (f *payrollFixture) addWorkedDays(employeeID string, n int) {
	for i := 0; i < n; i++ {
		f.attendances.rows[employeeID] = append(f.attendances.rows[employeeID], attendance.Attendance{
			EmployeeID:   employeeID,
			Status:       attendance.StatusPresent,
			HoursWorked:  8,
			RegularHours: 8,
		})
	}
}

// ========== PERIODS ==========

func TestCreatePeriod(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		Name:      "March 1-15",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-15",
		PayDate:   "2026-03-20",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(payroll.PeriodOpen), resp.Status)
	assert.Equal(t, "2026-03-01", resp.StartDate)
}

func TestCreatePeriodRejectsReversedDates(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		Name:      "Backwards",
		StartDate: "2026-03-15",
		EndDate:   "2026-03-01",
		PayDate:   "2026-03-20",
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriodDates)
}

func TestCreatePeriodRejectsOverlap(t *testing.T) {
	f := newFixture()
	f.periods.add(payroll.PeriodOpen) // 2026-03-01 .. 2026-03-15

	_, err := f.svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		Name:      "Overlapping",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-25",
		PayDate:   "2026-03-30",
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodOverlaps)
}

// ========== COMPUTATION ==========

func TestComputePeriod(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.addEmployee("emp-2", "E002")
	f.addWorkedDays("emp-1", 2)
	f.addWorkedDays("emp-2", 2)

	result, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalEmployees)
	assert.Equal(t, 2, result.Computed)
	assert.Empty(t, result.Errors)

	stored, err := f.periods.GetByID(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodProcessed, stored.Status)

	entries, err := f.entries.ListByPeriod(context.Background(), period.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// 16 regular hours at 100/hour; statutory defaults for 1600 gross are
	// SSS 135, PhilHealth 300, Pag-IBIG 32, tax 0.
	e := entries[0]
	assert.Equal(t, payroll.EntryPending, e.Status)
	assert.Equal(t, 2, e.DaysPresent)
	assert.Equal(t, "1600", e.GrossPay.String())
	assert.Equal(t, "135", e.SSSDeduction.String())
	assert.Equal(t, "300", e.PhilHealthDeduction.String())
	assert.Equal(t, "32", e.PagIBIGDeduction.String())
	assert.True(t, e.TaxDeduction.IsZero())
	assert.Equal(t, "467", e.TotalDeductions.String())
	assert.Equal(t, "1133", e.NetPay.String())

	history := f.txs.forEntry(e.ID)
	require.Len(t, history, 1)
	assert.Equal(t, payroll.TxCreated, history[0].Type)
	assert.Equal(t, payroll.EntryPending, history[0].NewStatus)
	assert.Equal(t, "1600", history[0].NewGrossPay.String())
	assert.Nil(t, history[0].PreviousStatus)
	assert.Nil(t, history[0].PreviousGrossPay)
	assert.Nil(t, history[0].PreviousNetPay)
}

func TestRecomputeRecordsPreviousFigures(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.addWorkedDays("emp-1", 2)

	_, err := f.svc.ComputePeriod(context.Background(), period.ID, "maria.santos")
	require.NoError(t, err)

	// A third worked day comes in and the period is recomputed.
	f.addWorkedDays("emp-1", 1)
	_, err = f.svc.ComputePeriod(context.Background(), period.ID, "maria.santos")
	require.NoError(t, err)

	entries, _ := f.entries.ListByPeriod(context.Background(), period.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "2400", entries[0].GrossPay.String())

	history := f.txs.forEntry(entries[0].ID)
	require.Len(t, history, 2)

	updated := history[1]
	assert.Equal(t, payroll.TxUpdated, updated.Type)
	require.NotNil(t, updated.PreviousStatus)
	assert.Equal(t, payroll.EntryPending, *updated.PreviousStatus)
	assert.Equal(t, payroll.EntryPending, updated.NewStatus)
	require.NotNil(t, updated.PreviousGrossPay)
	assert.Equal(t, "1600", updated.PreviousGrossPay.String())
	assert.Equal(t, "2400", updated.NewGrossPay.String())
	require.NotNil(t, updated.PreviousNetPay)
	assert.Equal(t, "1133", updated.PreviousNetPay.String())
	assert.Equal(t, "1917", updated.NewNetPay.String())
	assert.Equal(t, "maria.santos", updated.PerformedBy)
}

func TestRecomputeResetsManualAdjustments(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.addWorkedDays("emp-1", 2)

	_, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)

	// An accountant keys in adjustments after the first run.
	stored := f.entries.entries[0]
	stored.Allowances = decimal.NewFromInt(500)
	stored.IncentivePay = decimal.NewFromInt(250)
	stored.CashAdvance = decimal.NewFromInt(1000)

	_, err = f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)

	entries, _ := f.entries.ListByPeriod(context.Background(), period.ID)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.True(t, e.Allowances.IsZero())
	assert.True(t, e.IncentivePay.IsZero())
	assert.True(t, e.VacationSickLeavePay.IsZero())
	assert.True(t, e.SalaryAdjustment.IsZero())
	assert.True(t, e.CashAdvance.IsZero())
	assert.True(t, e.OtherDeductions.IsZero())
	assert.Equal(t, "1600", e.GrossPay.String())
	assert.Equal(t, "467", e.TotalDeductions.String())
	assert.Equal(t, "1133", e.NetPay.String())
}

func TestComputePeriodCarriesOnPastFailures(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.addEmployee("emp-2", "E002")
	f.addWorkedDays("emp-1", 2)
	f.attendances.failFor["emp-2"] = errors.New("connection reset")

	result, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalEmployees)
	assert.Equal(t, 1, result.Computed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "E002", result.Errors[0].EmployeeCode)
	assert.Contains(t, result.Errors[0].Error, "connection reset")

	stored, _ := f.periods.GetByID(context.Background(), period.ID)
	assert.Equal(t, payroll.PeriodProcessed, stored.Status)
}

func TestComputePeriodNothingComputedLeavesPeriodOpen(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.attendances.failFor["emp-1"] = errors.New("boom")

	result, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Computed)

	stored, _ := f.periods.GetByID(context.Background(), period.ID)
	assert.Equal(t, payroll.PeriodOpen, stored.Status)
}

func TestComputePeriodIsIdempotent(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.addWorkedDays("emp-1", 2)

	_, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)
	_, err = f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)

	entries, _ := f.entries.ListByPeriod(context.Background(), period.ID)
	require.Len(t, entries, 1)

	history := f.txs.forEntry(entries[0].ID)
	require.Len(t, history, 2)
	assert.Equal(t, payroll.TxCreated, history[0].Type)
	assert.Equal(t, payroll.TxUpdated, history[1].Type)
}

func TestComputePeriodRequiresComputableStatus(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodSubmitted)

	_, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	assert.ErrorIs(t, err, payroll.ErrPeriodNotComputable)

	period = f.periods.add(payroll.PeriodApproved)
	_, err = f.svc.ComputePeriod(context.Background(), period.ID, "")
	assert.ErrorIs(t, err, payroll.ErrPeriodNotComputable)
}

func TestComputeForEmployee(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	emp := f.addEmployee("emp-1", "E001")
	f.addWorkedDays(emp.ID, 2)

	resp, err := f.svc.ComputeForEmployee(context.Background(), period.ID, emp.ID, "")
	require.NoError(t, err)

	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, "1600", resp.GrossPay.String())
	assert.Equal(t, string(payroll.EntryPending), resp.Status)
}

func TestComputeForEmployeeRejectsInactive(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.employees.employees[0].IsActive = false

	_, err := f.svc.ComputeForEmployee(context.Background(), period.ID, "emp-1", "")
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

// ========== REVIEW ==========

func (f *payrollFixture) computedPeriod(t *testing.T) (periodID, entryID string) {
	t.Helper()
	period := f.periods.add(payroll.PeriodOpen)
	f.addEmployee("emp-1", "E001")
	f.addWorkedDays("emp-1", 2)

	_, err := f.svc.ComputePeriod(context.Background(), period.ID, "")
	require.NoError(t, err)

	entries, _ := f.entries.ListByPeriod(context.Background(), period.ID)
	require.Len(t, entries, 1)
	return period.ID, entries[0].ID
}

func TestSubmitPeriod(t *testing.T) {
	f := newFixture()
	periodID, entryID := f.computedPeriod(t)

	resp, err := f.svc.SubmitPeriod(context.Background(), periodID, "ana.reyes")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodSubmitted), resp.Status)

	history := f.txs.forEntry(entryID)
	require.Len(t, history, 2)
	assert.Equal(t, payroll.TxSubmitted, history[1].Type)
	assert.Equal(t, "ana.reyes", history[1].PerformedBy)
	require.NotNil(t, history[1].PreviousStatus)
	assert.Equal(t, history[1].NewStatus, *history[1].PreviousStatus)
	require.NotNil(t, history[1].PreviousGrossPay)
	assert.True(t, history[1].PreviousGrossPay.Equal(history[1].NewGrossPay))
}

func TestSubmitPeriodRequiresProcessed(t *testing.T) {
	f := newFixture()
	period := f.periods.add(payroll.PeriodOpen)

	_, err := f.svc.SubmitPeriod(context.Background(), period.ID, "")
	assert.ErrorIs(t, err, payroll.ErrPeriodNotProcessed)
}

func TestReviewEntry(t *testing.T) {
	f := newFixture()
	periodID, entryID := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)

	resp, err := f.svc.ReviewEntry(context.Background(), entryID, payroll.ReviewEntryRequest{
		Status:      string(payroll.EntryVerified),
		PerformedBy: "ana.reyes",
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.EntryVerified), resp.Status)

	history := f.txs.forEntry(entryID)
	require.Len(t, history, 3)
	assert.Equal(t, payroll.TxVerified, history[2].Type)
	require.NotNil(t, history[2].PreviousStatus)
	assert.Equal(t, payroll.EntryPending, *history[2].PreviousStatus)
	assert.Equal(t, payroll.EntryVerified, history[2].NewStatus)
	assert.Equal(t, "ana.reyes", history[2].PerformedBy)
}

func TestReviewEntryRequiresSubmittedPeriod(t *testing.T) {
	f := newFixture()
	_, entryID := f.computedPeriod(t)

	_, err := f.svc.ReviewEntry(context.Background(), entryID, payroll.ReviewEntryRequest{
		Status: string(payroll.EntryVerified),
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotSubmitted)
}

func TestReviewEntryRequiresRemarksOnRejection(t *testing.T) {
	f := newFixture()
	periodID, entryID := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)

	_, err = f.svc.ReviewEntry(context.Background(), entryID, payroll.ReviewEntryRequest{
		Status: string(payroll.EntryRejected),
	})
	assert.Error(t, err)
}

func TestReviewEntryOnlyOnce(t *testing.T) {
	f := newFixture()
	periodID, entryID := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)

	_, err = f.svc.ReviewEntry(context.Background(), entryID, payroll.ReviewEntryRequest{
		Status: string(payroll.EntryVerified),
	})
	require.NoError(t, err)

	_, err = f.svc.ReviewEntry(context.Background(), entryID, payroll.ReviewEntryRequest{
		Status:  string(payroll.EntryRejected),
		Remarks: "second look",
	})
	assert.ErrorIs(t, err, payroll.ErrEntryNotPending)
}

// ========== LIFECYCLE ==========

func TestApprovePeriod(t *testing.T) {
	f := newFixture()
	periodID, _ := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)

	resp, err := f.svc.ApprovePeriod(context.Background(), periodID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodApproved), resp.Status)

	// Approval freezes the period for good.
	_, err = f.svc.ComputePeriod(context.Background(), periodID, "")
	assert.ErrorIs(t, err, payroll.ErrPeriodNotComputable)
	_, err = f.svc.ReopenPeriod(context.Background(), periodID)
	assert.ErrorIs(t, err, payroll.ErrPeriodApproved)
}

func TestApprovePeriodRequiresSubmitted(t *testing.T) {
	f := newFixture()
	periodID, _ := f.computedPeriod(t)

	_, err := f.svc.ApprovePeriod(context.Background(), periodID)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotSubmitted)
}

func TestRejectPeriodRecordsRemarksOnEveryEntry(t *testing.T) {
	f := newFixture()
	periodID, entryID := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)

	resp, err := f.svc.RejectPeriod(context.Background(), periodID, "holiday hours look wrong", "ana.reyes")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodRejected), resp.Status)

	history := f.txs.forEntry(entryID)
	require.Len(t, history, 3)
	assert.Equal(t, payroll.TxRejected, history[2].Type)
	assert.Equal(t, "holiday hours look wrong", history[2].Remarks)
	assert.Equal(t, "ana.reyes", history[2].PerformedBy)
}

func TestRejectedPeriodIsRecomputable(t *testing.T) {
	f := newFixture()
	periodID, entryID := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)
	_, err = f.svc.RejectPeriod(context.Background(), periodID, "redo it", "")
	require.NoError(t, err)

	result, err := f.svc.ComputePeriod(context.Background(), periodID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Computed)

	history := f.txs.forEntry(entryID)
	// CREATED, SUBMITTED, REJECTED, UPDATED.
	require.Len(t, history, 4)
	assert.Equal(t, payroll.TxUpdated, history[3].Type)
}

func TestReopenPeriod(t *testing.T) {
	f := newFixture()
	periodID, _ := f.computedPeriod(t)
	_, err := f.svc.SubmitPeriod(context.Background(), periodID, "")
	require.NoError(t, err)

	resp, err := f.svc.ReopenPeriod(context.Background(), periodID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodOpen), resp.Status)
}

func TestEntryHistory(t *testing.T) {
	f := newFixture()
	_, entryID := f.computedPeriod(t)

	history, err := f.svc.EntryHistory(context.Background(), entryID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(payroll.TxCreated), history[0].Type)

	_, err = f.svc.EntryHistory(context.Background(), "nope")
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)
}
