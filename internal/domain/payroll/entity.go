package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus tracks a pay period through its review lifecycle.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodProcessed PeriodStatus = "PROCESSED"
	PeriodSubmitted PeriodStatus = "SUBMITTED"
	PeriodApproved  PeriodStatus = "APPROVED"
	PeriodRejected  PeriodStatus = "REJECTED"
)

// Period is one payroll run window.
type Period struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	PayDate   time.Time
	Status    PeriodStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Computable reports whether entries for the period may be (re)computed.
// A submitted period must be reopened first; approval freezes it for good.
func (p *Period) Computable() bool {
	switch p.Status {
	case PeriodOpen, PeriodProcessed, PeriodRejected:
		return true
	}
	return false
}

// EntryStatus tracks a single employee's entry through verification.
type EntryStatus string

const (
	EntryPending           EntryStatus = "PENDING"
	EntryVerified          EntryStatus = "VERIFIED"
	EntryRejected          EntryStatus = "REJECTED"
	EntryRevisionRequested EntryStatus = "REVISION_REQUESTED"
)

// Entry is one employee's computed pay for one period. Every earnings and
// deduction line item is stored explicitly so the entry can be audited
// without rerunning the computation.
type Entry struct {
	ID         string
	PeriodID   string
	EmployeeID string

	DaysPresent            int
	RegularHours           float64
	OvertimeHours          float64
	NightDifferentialHours float64
	LateMinutes            int
	UndertimeMinutes       int

	BasicPay             decimal.Decimal
	OvertimePay          decimal.Decimal
	NightDifferentialPay decimal.Decimal
	HolidayPay           decimal.Decimal
	RestDayPay           decimal.Decimal

	// Manual adjustment fields. An accountant fills these after
	// computation; a recompute resets all of them to zero.
	Allowances           decimal.Decimal
	IncentivePay         decimal.Decimal
	VacationSickLeavePay decimal.Decimal
	SalaryAdjustment     decimal.Decimal
	CashAdvance          decimal.Decimal
	OtherDeductions      decimal.Decimal

	GrossPay            decimal.Decimal
	SSSDeduction        decimal.Decimal
	PhilHealthDeduction decimal.Decimal
	PagIBIGDeduction    decimal.Decimal
	TaxDeduction        decimal.Decimal
	LateDeduction       decimal.Decimal
	UndertimeDeduction  decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetPay              decimal.Decimal

	Status    EntryStatus
	Remarks   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransactionType labels one record in an entry's append-only history.
type TransactionType string

const (
	TxCreated           TransactionType = "CREATED"
	TxUpdated           TransactionType = "UPDATED"
	TxSubmitted         TransactionType = "SUBMITTED"
	TxVerified          TransactionType = "VERIFIED"
	TxRejected          TransactionType = "REJECTED"
	TxRevisionRequested TransactionType = "REVISION_REQUESTED"
)

// Transaction is one immutable history record for a payroll entry. Rows are
// only ever inserted; each captures the entry's status, gross pay and net
// pay before and after the event, plus who performed it. The previous
// fields are nil on the CREATED record, which has no prior state.
type Transaction struct {
	ID               string
	EntryID          string
	Type             TransactionType
	PreviousStatus   *EntryStatus
	NewStatus        EntryStatus
	PreviousGrossPay *decimal.Decimal
	NewGrossPay      decimal.Decimal
	PreviousNetPay   *decimal.Decimal
	NewNetPay        decimal.Decimal
	PerformedBy      string
	Remarks          string
	CreatedAt        time.Time
}
