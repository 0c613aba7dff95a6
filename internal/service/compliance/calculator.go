package compliance

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
)

// Deductions is the employee-side statutory deduction set for one gross pay.
// Every amount is rounded to 2 decimal places and never negative.
type Deductions struct {
	SSS        decimal.Decimal
	PhilHealth decimal.Decimal
	PagIBIG    decimal.Decimal
	Tax        decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.SSS.Add(d.PhilHealth).Add(d.PagIBIG).Add(d.Tax)
}

// Resolution records which rule set produced one deduction, for audit.
type Resolution struct {
	Type     compliance.Type
	Source   string // "uploaded" or "default"
	TableID  string
	Version  int
	Fallback string // why an uploaded table was not used, when Source is "default"
}

// Calculator computes statutory deductions against the rate tables current
// for a date, falling back per type to the built-in defaults when no table
// is uploaded or the uploaded document cannot be used.
type Calculator struct {
	tables compliance.RateTableRepository
}

func NewCalculator(tables compliance.RateTableRepository) *Calculator {
	return &Calculator{tables: tables}
}

// Calculate resolves every compliance type as of asOf and computes the
// deduction set for grossPay. Taxable income is gross minus the three
// contributions; tax is looked up against its own table. The returned
// resolutions are in calculation order, one per type.
func (c *Calculator) Calculate(ctx context.Context, grossPay decimal.Decimal, asOf time.Time) (Deductions, []Resolution, error) {
	var (
		deductions  Deductions
		resolutions []Resolution
	)

	for _, typ := range compliance.Types() {
		amount := grossPay
		if typ == compliance.TypeTax {
			amount = grossPay.Sub(deductions.SSS).Sub(deductions.PhilHealth).Sub(deductions.PagIBIG)
		}

		value, res := c.calculateOne(ctx, typ, amount, asOf)
		resolutions = append(resolutions, res)

		switch typ {
		case compliance.TypeSSS:
			deductions.SSS = value
		case compliance.TypePhilHealth:
			deductions.PhilHealth = value
		case compliance.TypePagIBIG:
			deductions.PagIBIG = value
		case compliance.TypeTax:
			deductions.Tax = value
		}
	}

	return deductions, resolutions, nil
}

func (c *Calculator) calculateOne(ctx context.Context, typ compliance.Type, amount decimal.Decimal, asOf time.Time) (decimal.Decimal, Resolution) {
	res := Resolution{Type: typ, Source: "default"}

	table, err := c.tables.Latest(ctx, typ, asOf)
	if err != nil {
		if err != compliance.ErrRateTableNotFound {
			slog.Warn("Failed to resolve rate table, using defaults", "type", typ, "error", err)
			res.Fallback = "lookup failed"
		} else {
			res.Fallback = "no uploaded table"
		}
		return clamp(typ.CalculateDefault(amount)), res
	}

	brackets, err := ParseFile(typ, table.SourceRef)
	if err != nil || brackets.Empty() {
		if err != nil {
			slog.Warn("Failed to parse rate table, using defaults", "type", typ, "table_id", table.ID, "error", err)
			res.Fallback = "parse failed"
		} else {
			res.Fallback = "empty table"
		}
		return clamp(typ.CalculateDefault(amount)), res
	}

	value, matched := applyBrackets(brackets, amount)
	if !matched {
		// No bracket covers the amount; the document is authoritative, so
		// the deduction is zero rather than a default.
		value = decimal.Zero
	}

	res.Source = "uploaded"
	res.TableID = table.ID
	res.Version = table.Version
	return clamp(value), res
}

// applyBrackets evaluates the uploaded table for the amount. Contribution
// brackets are inclusive on both ends; tax brackets are [from, to).
func applyBrackets(table compliance.BracketTable, amount decimal.Decimal) (decimal.Decimal, bool) {
	if table.Type == compliance.TypeTax {
		for _, b := range table.Tax {
			if !b.Contains(amount) {
				continue
			}
			excess := amount.Sub(b.From)
			return b.BaseTax.Add(excess.Mul(decimal.NewFromFloat(b.Rate))).Round(2), true
		}
		return decimal.Zero, false
	}

	for _, b := range table.Contribution {
		if !b.Contains(amount) {
			continue
		}
		switch {
		case b.EmployeeShare != nil:
			return b.EmployeeShare.Round(2), true
		case b.EmployeeRate != nil:
			value := amount.Mul(decimal.NewFromFloat(*b.EmployeeRate))
			if table.Type == compliance.TypePagIBIG {
				value = decimal.Min(value, table.MaxContribution)
			}
			return value.Round(2), true
		}
		return decimal.Zero, true
	}
	return decimal.Zero, false
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
