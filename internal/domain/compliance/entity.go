package compliance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type identifies a statutory deduction scheme. The set is closed: every
// switch over Type in this package and its consumers is exhaustive, and each
// type carries its own parser and built-in default table.
type Type string

const (
	TypeSSS        Type = "SSS"
	TypePhilHealth Type = "PHILHEALTH"
	TypePagIBIG    Type = "PAGIBIG"
	TypeTax        Type = "TAX"
)

// Types returns all compliance types in calculation order.
func Types() []Type {
	return []Type{TypeSSS, TypePhilHealth, TypePagIBIG, TypeTax}
}

func (t Type) Valid() bool {
	switch t {
	case TypeSSS, TypePhilHealth, TypePagIBIG, TypeTax:
		return true
	}
	return false
}

// RateTable is one uploaded, versioned rate-table document. The version is
// monotonically increasing per type; the current table for a date is the row
// with the latest effective_from not after that date, ties broken by the
// highest version.
type RateTable struct {
	ID            string
	Type          Type
	Name          string
	EffectiveFrom time.Time
	Version       int
	SourceRef     string
	CreatedAt     time.Time
}

// ContributionBracket maps a salary range to either a fixed employee share or
// a percentage rate. A nil Max means the range is open-ended upward.
type ContributionBracket struct {
	Min           decimal.Decimal
	Max           *decimal.Decimal
	EmployeeShare *decimal.Decimal
	EmployeeRate  *float64
	EmployerShare *decimal.Decimal
	EmployerRate  *float64
}

// Contains reports whether gross falls inside the bracket, inclusive on both
// ends.
func (b ContributionBracket) Contains(gross decimal.Decimal) bool {
	if gross.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || gross.LessThanOrEqual(*b.Max)
}

// TaxBracket maps a taxable-income range [From, To) to a base tax plus a rate
// over the excess. A nil To means the bracket is open-ended upward.
type TaxBracket struct {
	From    decimal.Decimal
	To      *decimal.Decimal
	BaseTax decimal.Decimal
	Rate    float64
}

// Contains reports whether taxable falls inside [From, To).
func (b TaxBracket) Contains(taxable decimal.Decimal) bool {
	if taxable.LessThan(b.From) {
		return false
	}
	return b.To == nil || taxable.LessThan(*b.To)
}

// BracketTable is the normalized output of parsing one rate-table document.
// Contribution is populated for SSS, PhilHealth and Pag-IBIG tables; Tax for
// BIR tax tables. MaxContribution applies to Pag-IBIG only.
type BracketTable struct {
	Type            Type
	Contribution    []ContributionBracket
	Tax             []TaxBracket
	MaxContribution decimal.Decimal
}

// Empty reports whether the table carries no usable brackets, in which case
// the caller falls back to the built-in defaults.
func (t BracketTable) Empty() bool {
	return len(t.Contribution) == 0 && len(t.Tax) == 0
}
