package attendance

// PeriodSummary is the aggregation of one employee's worked attendance rows
// over a payroll period. Holiday and rest-day hours are the regular hours of
// rows carrying the respective flag; they are counted in RegularHours as well,
// since the premium components pay on top of basic pay.
type PeriodSummary struct {
	DaysPresent            int
	RegularHours           float64
	OvertimeHours          float64
	NightDifferentialHours float64
	LateMinutes            int
	UndertimeMinutes       int
	HolidayHours           float64
	RestDayHours           float64
}

// Summarize folds attendance rows into a PeriodSummary. Rows whose status is
// not PRESENT or LATE contribute nothing; they are skipped, not rejected.
func Summarize(rows []Attendance) PeriodSummary {
	var sum PeriodSummary
	for _, row := range rows {
		if !row.Worked() {
			continue
		}
		sum.DaysPresent++
		sum.RegularHours += row.RegularHours
		sum.OvertimeHours += row.OvertimeHours
		sum.NightDifferentialHours += row.NightDifferentialHours
		sum.LateMinutes += row.LateMinutes
		sum.UndertimeMinutes += row.UndertimeMinutes
		if row.IsHoliday {
			sum.HolidayHours += row.RegularHours
		}
		if row.IsRestDay {
			sum.RestDayHours += row.RegularHours
		}
	}
	return sum
}
