package compliance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
	"github.com/prolyhq/payroll-backend-go/internal/repository/postgresql"
)

type ComplianceServiceImpl struct {
	tables     compliance.RateTableRepository
	calculator *Calculator
	uploadDir  string

	// runTx executes fn inside a database transaction carried on the
	// context value read by the repositories.
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewComplianceService(db *database.DB, tables compliance.RateTableRepository, calculator *Calculator, uploadDir string) compliance.ComplianceService {
	return &ComplianceServiceImpl{
		tables:     tables,
		calculator: calculator,
		uploadDir:  uploadDir,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Upload implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) Upload(ctx context.Context, req compliance.UploadRateTableRequest, filename string, file io.Reader) (compliance.RateTableResponse, error) {
	if err := req.Validate(); err != nil {
		return compliance.RateTableResponse{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		return compliance.RateTableResponse{}, compliance.ErrUnsupportedFileFormat
	}

	typ := compliance.Type(req.Type)
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return compliance.RateTableResponse{}, compliance.ErrInvalidEffectiveDate
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return compliance.RateTableResponse{}, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	storedPath := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s%s", strings.ToLower(req.Type), uuid.NewString(), ext))
	if err := saveFile(storedPath, file); err != nil {
		return compliance.RateTableResponse{}, err
	}

	// Reject documents with no usable brackets up front so a bad upload
	// never silently flips the engine onto defaults.
	parsed, err := ParseFile(typ, storedPath)
	if err != nil || parsed.Empty() {
		if rmErr := os.Remove(storedPath); rmErr != nil {
			slog.Warn("Failed to remove rejected rate table file", "path", storedPath, "error", rmErr)
		}
		if err != nil {
			return compliance.RateTableResponse{}, fmt.Errorf("failed to parse rate table: %w", err)
		}
		return compliance.RateTableResponse{}, compliance.ErrEmptyRateTable
	}

	// Version assignment and the insert run in one transaction so two
	// concurrent uploads of the same type cannot claim the same version.
	table := &compliance.RateTable{
		Type:          typ,
		Name:          req.Name,
		EffectiveFrom: effectiveFrom,
		SourceRef:     storedPath,
	}
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		version, err := s.tables.NextVersion(txCtx, typ)
		if err != nil {
			return err
		}
		table.Version = version
		return s.tables.Create(txCtx, table)
	})
	if err != nil {
		return compliance.RateTableResponse{}, err
	}

	slog.Info("Uploaded rate table", "type", typ, "version", table.Version, "effective_from", req.EffectiveFrom)

	return toRateTableResponse(*table), nil
}

// History implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) History(ctx context.Context, typ string) ([]compliance.RateTableResponse, error) {
	t := compliance.Type(typ)
	if !t.Valid() {
		return nil, compliance.ErrInvalidComplianceType
	}

	tables, err := s.tables.History(ctx, t)
	if err != nil {
		return nil, err
	}

	responses := make([]compliance.RateTableResponse, 0, len(tables))
	for _, table := range tables {
		responses = append(responses, toRateTableResponse(table))
	}

	return responses, nil
}

// Preview implements compliance.ComplianceService.
func (s *ComplianceServiceImpl) Preview(ctx context.Context, grossPay string, asOf string) (compliance.DeductionPreviewResponse, error) {
	gross, err := decimal.NewFromString(grossPay)
	if err != nil || gross.IsNegative() {
		return compliance.DeductionPreviewResponse{}, validator.ValidationErrors{
			{Field: "gross_pay", Message: "must be a non-negative number"},
		}
	}

	date := time.Now()
	if asOf != "" {
		date, err = time.Parse("2006-01-02", asOf)
		if err != nil {
			return compliance.DeductionPreviewResponse{}, validator.ValidationErrors{
				{Field: "as_of", Message: "must be in YYYY-MM-DD format"},
			}
		}
	}

	deductions, resolutions, err := s.calculator.Calculate(ctx, gross, date)
	if err != nil {
		return compliance.DeductionPreviewResponse{}, err
	}

	resp := compliance.DeductionPreviewResponse{
		GrossPay:   gross,
		AsOf:       date.Format("2006-01-02"),
		SSS:        deductions.SSS,
		PhilHealth: deductions.PhilHealth,
		PagIBIG:    deductions.PagIBIG,
		Tax:        deductions.Tax,
		Total:      deductions.Total(),
	}
	for _, r := range resolutions {
		resp.Sources = append(resp.Sources, compliance.DeductionSourceDetail{
			Type:    string(r.Type),
			Source:  r.Source,
			TableID: r.TableID,
			Version: r.Version,
			Reason:  r.Fallback,
		})
	}

	return resp, nil
}

func saveFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to store rate table file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to store rate table file: %w", err)
	}
	return nil
}

func toRateTableResponse(t compliance.RateTable) compliance.RateTableResponse {
	return compliance.RateTableResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Name:          t.Name,
		EffectiveFrom: t.EffectiveFrom.Format("2006-01-02"),
		Version:       t.Version,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}
