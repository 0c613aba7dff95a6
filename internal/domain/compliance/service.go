package compliance

import (
	"context"
	"io"
)

// ComplianceService manages uploaded rate tables and previews deductions.
type ComplianceService interface {
	// Upload stores the document under the configured upload directory and
	// registers it as the next version for its type. The previous version
	// stays on record; effective-date resolution decides which one applies.
	Upload(ctx context.Context, req UploadRateTableRequest, filename string, file io.Reader) (RateTableResponse, error)

	History(ctx context.Context, typ string) ([]RateTableResponse, error)

	// Preview computes the deduction set a gross pay would incur as of a
	// date, without touching any payroll entry.
	Preview(ctx context.Context, grossPay string, asOf string) (DeductionPreviewResponse, error)
}
