package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
)

type rateTableRepository struct {
	db *database.DB
}

func NewRateTableRepository(db *database.DB) compliance.RateTableRepository {
	return &rateTableRepository{db: db}
}

// Create implements compliance.RateTableRepository.
func (r *rateTableRepository) Create(ctx context.Context, table *compliance.RateTable) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO compliance_rate_tables (type, name, effective_from, version, source_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		table.Type, table.Name, table.EffectiveFrom, table.Version, table.SourceRef,
	).Scan(&table.ID, &table.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create rate table: %w", err)
	}

	return nil
}

// Latest implements compliance.RateTableRepository.
func (r *rateTableRepository) Latest(ctx context.Context, typ compliance.Type, asOf time.Time) (*compliance.RateTable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, name, effective_from, version, source_ref, created_at
		FROM compliance_rate_tables
		WHERE type = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, version DESC
		LIMIT 1
	`

	var t compliance.RateTable
	err := q.QueryRow(ctx, query, typ, asOf).Scan(
		&t.ID, &t.Type, &t.Name, &t.EffectiveFrom, &t.Version, &t.SourceRef, &t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, compliance.ErrRateTableNotFound
		}
		return nil, fmt.Errorf("failed to get current rate table: %w", err)
	}

	return &t, nil
}

// NextVersion implements compliance.RateTableRepository.
func (r *rateTableRepository) NextVersion(ctx context.Context, typ compliance.Type) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COALESCE(MAX(version), 0) + 1 FROM compliance_rate_tables WHERE type = $1`

	var version int
	if err := q.QueryRow(ctx, query, typ).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get next rate table version: %w", err)
	}

	return version, nil
}

// History implements compliance.RateTableRepository.
func (r *rateTableRepository) History(ctx context.Context, typ compliance.Type) ([]compliance.RateTable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, name, effective_from, version, source_ref, created_at
		FROM compliance_rate_tables
		WHERE type = $1
		ORDER BY effective_from DESC, version DESC
	`

	rows, err := q.Query(ctx, query, typ)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tables: %w", err)
	}
	defer rows.Close()

	var tables []compliance.RateTable
	for rows.Next() {
		var t compliance.RateTable
		if err := rows.Scan(
			&t.ID, &t.Type, &t.Name, &t.EffectiveFrom, &t.Version, &t.SourceRef, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate table: %w", err)
		}
		tables = append(tables, t)
	}

	return tables, rows.Err()
}
