package compliance

import "github.com/shopspring/decimal"

// Built-in default rate rules, used whenever no uploaded table is current or
// the current table cannot be parsed. The constants reproduce the de-facto
// legal minimum schedules for the modeled jurisdiction and must not drift:
// the majority of payroll runs in the field resolve against these.

var (
	sssFloorCeiling   = decimal.NewFromInt(3250)
	sssFloorAmount    = decimal.NewFromInt(135)
	sssSalaryCeiling  = decimal.NewFromInt(24750)
	sssMaxAmount      = decimal.NewFromInt(1125)
	sssRate           = decimal.NewFromFloat(0.045)
	phFloorCeiling    = decimal.NewFromInt(10000)
	phFloorAmount     = decimal.NewFromInt(300)
	phSalaryCeiling   = decimal.NewFromInt(80000)
	phMaxAmount       = decimal.NewFromInt(2400)
	phRate            = decimal.NewFromFloat(0.03)
	pagibigLowCeiling = decimal.NewFromInt(1500)
	pagibigLowRate    = decimal.NewFromFloat(0.01)
	pagibigRate       = decimal.NewFromFloat(0.02)
	pagibigMaxAmount  = decimal.NewFromInt(100)
)

// taxStep is one rung of the default withholding-tax ladder. Upper bounds are
// inclusive, matching the published monthly withholding schedule.
type taxStep struct {
	upTo    *decimal.Decimal
	from    decimal.Decimal
	baseTax decimal.Decimal
	rate    decimal.Decimal
}

var defaultTaxLadder = []taxStep{
	{upTo: dec(20833), from: decimal.Zero, baseTax: decimal.Zero, rate: decimal.Zero},
	{upTo: dec(33332), from: *dec(20833), baseTax: decimal.Zero, rate: decimal.NewFromFloat(0.20)},
	{upTo: dec(66666), from: *dec(33332), baseTax: *dec(2500), rate: decimal.NewFromFloat(0.25)},
	{upTo: dec(166666), from: *dec(66666), baseTax: *dec(10833), rate: decimal.NewFromFloat(0.30)},
	{upTo: nil, from: *dec(166666), baseTax: *dec(40833), rate: decimal.NewFromFloat(0.32)},
}

func dec(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// DefaultSSS returns the default employee SSS share for a gross pay.
func DefaultSSS(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.LessThanOrEqual(sssFloorCeiling):
		return sssFloorAmount
	case gross.LessThanOrEqual(sssSalaryCeiling):
		return decimal.Min(gross.Mul(sssRate), sssMaxAmount).Round(2)
	default:
		return sssMaxAmount
	}
}

// DefaultPhilHealth returns the default employee PhilHealth premium for a
// gross pay.
func DefaultPhilHealth(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.LessThanOrEqual(phFloorCeiling):
		return phFloorAmount
	case gross.LessThanOrEqual(phSalaryCeiling):
		return gross.Mul(phRate).Round(2)
	default:
		return phMaxAmount
	}
}

// DefaultPagIBIG returns the default employee Pag-IBIG contribution for a
// gross pay.
func DefaultPagIBIG(gross decimal.Decimal) decimal.Decimal {
	if gross.LessThanOrEqual(pagibigLowCeiling) {
		return gross.Mul(pagibigLowRate).Round(2)
	}
	return decimal.Min(gross.Mul(pagibigRate), pagibigMaxAmount).Round(2)
}

// DefaultTax returns the default monthly withholding tax for a taxable
// income. Negative taxable income yields zero.
func DefaultTax(taxable decimal.Decimal) decimal.Decimal {
	for _, step := range defaultTaxLadder {
		if step.upTo != nil && taxable.GreaterThan(*step.upTo) {
			continue
		}
		tax := step.baseTax.Add(taxable.Sub(step.from).Mul(step.rate)).Round(2)
		if tax.IsNegative() {
			return decimal.Zero
		}
		return tax
	}
	return decimal.Zero
}

// CalculateDefault applies the built-in rule for the type. The amount is
// gross pay for contribution types and taxable income for TAX.
func (t Type) CalculateDefault(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TypeSSS:
		return DefaultSSS(amount)
	case TypePhilHealth:
		return DefaultPhilHealth(amount)
	case TypePagIBIG:
		return DefaultPagIBIG(amount)
	case TypeTax:
		return DefaultTax(amount)
	default:
		return decimal.Zero
	}
}
