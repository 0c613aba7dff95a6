package compliance

import (
	"context"
	"time"
)

// RateTableRepository persists uploaded rate-table metadata. Table documents
// themselves are kept on disk under the configured upload directory; the
// repository only records which document is effective when.
type RateTableRepository interface {
	// Create inserts a new rate table row. The caller assigns the version.
	Create(ctx context.Context, table *RateTable) error

	// Latest returns the table effective for asOf: the row with the most
	// recent effective_from not after asOf, ties broken by highest version.
	// Returns ErrRateTableNotFound when no uploaded table covers the date.
	Latest(ctx context.Context, typ Type, asOf time.Time) (*RateTable, error)

	// NextVersion returns one more than the highest stored version for the
	// type, starting at 1.
	NextVersion(ctx context.Context, typ Type) (int, error)

	// History lists all uploaded tables for the type, newest first.
	History(ctx context.Context, typ Type) ([]RateTable, error)
}
