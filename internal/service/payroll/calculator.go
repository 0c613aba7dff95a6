package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/prolyhq/payroll-backend-go/internal/config"
	"github.com/prolyhq/payroll-backend-go/internal/domain/attendance"
)

var minutesPerHour = decimal.NewFromInt(60)

// PayComponents is the earnings side of one payroll entry plus the
// time-based deductions, every figure rounded to 2 decimal places.
type PayComponents struct {
	BasicPay             decimal.Decimal
	OvertimePay          decimal.Decimal
	NightDifferentialPay decimal.Decimal
	HolidayPay           decimal.Decimal
	RestDayPay           decimal.Decimal
	LateDeduction        decimal.Decimal
	UndertimeDeduction   decimal.Decimal
	GrossPay             decimal.Decimal
}

// CalculateComponents turns an attendance summary and an hourly rate into
// pay components under the company work settings. Holiday and rest-day pay
// are premiums on top of the basic pay already earned for those hours;
// late and undertime are deducted per minute at the plain hourly rate.
func CalculateComponents(summary attendance.PeriodSummary, hourlyRate decimal.Decimal, cfg config.PayrollConfig) PayComponents {
	var c PayComponents

	c.BasicPay = decimal.NewFromFloat(summary.RegularHours).Mul(hourlyRate).Round(2)
	c.OvertimePay = decimal.NewFromFloat(summary.OvertimeHours).
		Mul(hourlyRate).
		Mul(decimal.NewFromFloat(cfg.OvertimeRateMultiplier)).
		Round(2)
	c.NightDifferentialPay = decimal.NewFromFloat(summary.NightDifferentialHours).
		Mul(hourlyRate).
		Mul(decimal.NewFromFloat(cfg.NightDifferentialRate)).
		Round(2)
	c.HolidayPay = decimal.NewFromFloat(summary.HolidayHours).
		Mul(hourlyRate).
		Mul(decimal.NewFromFloat(cfg.HolidayRateMultiplier)).
		Round(2)
	c.RestDayPay = decimal.NewFromFloat(summary.RestDayHours).
		Mul(hourlyRate).
		Mul(decimal.NewFromFloat(cfg.RestDayRateMultiplier)).
		Round(2)

	perMinute := hourlyRate.Div(minutesPerHour)
	c.LateDeduction = decimal.NewFromInt(int64(summary.LateMinutes)).Mul(perMinute).Round(2)
	c.UndertimeDeduction = decimal.NewFromInt(int64(summary.UndertimeMinutes)).Mul(perMinute).Round(2)

	c.GrossPay = c.BasicPay.
		Add(c.OvertimePay).
		Add(c.NightDifferentialPay).
		Add(c.HolidayPay).
		Add(c.RestDayPay).
		Round(2)

	return c
}
