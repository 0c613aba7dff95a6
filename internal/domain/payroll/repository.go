package payroll

import "context"

// PeriodRepository persists payroll periods.
type PeriodRepository interface {
	Create(ctx context.Context, period *Period) error
	GetByID(ctx context.Context, id string) (*Period, error)
	List(ctx context.Context) ([]Period, error)
	// UpdateStatus moves the period to status and bumps updated_at.
	UpdateStatus(ctx context.Context, id string, status PeriodStatus) error
	// HasOverlap reports whether any period intersects [start, end].
	HasOverlap(ctx context.Context, period *Period) (bool, error)
}

// EntryRepository persists payroll entries. Upsert is keyed on
// (period_id, employee_id): recomputing a period rewrites the figures in
// place instead of duplicating rows.
type EntryRepository interface {
	// Upsert inserts the entry or, when one already exists for the
	// period/employee pair, overwrites its computed figures and resets the
	// status to PENDING. It reports whether a new row was created and fills
	// in the entry ID either way.
	Upsert(ctx context.Context, entry *Entry) (created bool, err error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	GetByPeriodAndEmployee(ctx context.Context, periodID, employeeID string) (*Entry, error)
	// ListByPeriod returns all entries for the period ordered by the
	// employee code of their owner.
	ListByPeriod(ctx context.Context, periodID string) ([]Entry, error)
	UpdateStatus(ctx context.Context, id string, status EntryStatus, remarks string) error
}

// TransactionRepository is the append-only history store. There is no update
// or delete: corrections are expressed as new records.
type TransactionRepository interface {
	Append(ctx context.Context, tx *Transaction) error
	ListByEntry(ctx context.Context, entryID string) ([]Transaction, error)
}
