package payroll

import "context"

// PayrollService orchestrates payroll periods, batch computation and entry
// review.
type PayrollService interface {
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)

	// ComputePeriod computes entries for every active employee in the
	// period. Individual failures are collected, not fatal; the period
	// moves to PROCESSED when at least one entry computes. performedBy is
	// recorded on every history record the run appends.
	ComputePeriod(ctx context.Context, periodID, performedBy string) (ComputePeriodResponse, error)

	// ComputeForEmployee recomputes a single employee's entry in the
	// period, overwriting any previous figures.
	ComputeForEmployee(ctx context.Context, periodID, employeeID, performedBy string) (EntryResponse, error)

	ListEntries(ctx context.Context, periodID string) ([]EntryResponse, error)
	GetEntry(ctx context.Context, entryID string) (EntryResponse, error)
	ReviewEntry(ctx context.Context, entryID string, req ReviewEntryRequest) (EntryResponse, error)
	EntryHistory(ctx context.Context, entryID string) ([]TransactionResponse, error)

	// SubmitPeriod moves a processed period to SUBMITTED and records a
	// SUBMITTED event on every entry's history.
	SubmitPeriod(ctx context.Context, periodID, performedBy string) (PeriodResponse, error)
	ApprovePeriod(ctx context.Context, periodID string) (PeriodResponse, error)
	RejectPeriod(ctx context.Context, periodID, remarks, performedBy string) (PeriodResponse, error)
	// ReopenPeriod returns a submitted or rejected period to OPEN for
	// recomputation. Approved periods are frozen.
	ReopenPeriod(ctx context.Context, periodID string) (PeriodResponse, error)
}
