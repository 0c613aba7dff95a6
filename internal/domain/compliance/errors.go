package compliance

import "errors"

var (
	ErrRateTableNotFound     = errors.New("rate table not found")
	ErrInvalidComplianceType = errors.New("invalid compliance type")
	ErrInvalidEffectiveDate  = errors.New("invalid effective date")
	ErrEmptyRateTable        = errors.New("rate table has no usable brackets")
	ErrUnsupportedFileFormat = errors.New("unsupported rate table file format")
)
