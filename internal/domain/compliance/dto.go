package compliance

import (
	"github.com/prolyhq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UploadRateTableRequest struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	EffectiveFrom string `json:"effective_from"`
}

func (r *UploadRateTableRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'SSS', 'PHILHEALTH', 'PAGIBIG' or 'TAX'"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidDate(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateTableResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	EffectiveFrom string `json:"effective_from"`
	Version       int    `json:"version"`
	CreatedAt     string `json:"created_at"`
}

// DeductionPreviewResponse shows the deduction set a gross pay would incur
// on a date, with the rule source per type.
type DeductionPreviewResponse struct {
	GrossPay   decimal.Decimal         `json:"gross_pay"`
	AsOf       string                  `json:"as_of"`
	SSS        decimal.Decimal         `json:"sss"`
	PhilHealth decimal.Decimal         `json:"philhealth"`
	PagIBIG    decimal.Decimal         `json:"pagibig"`
	Tax        decimal.Decimal         `json:"tax"`
	Total      decimal.Decimal         `json:"total"`
	Sources    []DeductionSourceDetail `json:"sources"`
}

type DeductionSourceDetail struct {
	Type    string `json:"type"`
	Source  string `json:"source"`
	TableID string `json:"table_id,omitempty"`
	Version int    `json:"version,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
