package attendance

import (
	"math"
	"time"

	"github.com/prolyhq/payroll-backend-go/internal/config"
)

// dayBreakdown is the computed result of closing one attendance day.
type dayBreakdown struct {
	HoursWorked            float64
	RegularHours           float64
	OvertimeHours          float64
	NightDifferentialHours float64
	LateMinutes            int
	UndertimeMinutes       int
}

// breakdown computes the full hour and minute split for a closed day. All
// timestamps are anchored to the attendance date; a time-out earlier than the
// time-in is read as the next calendar day.
func breakdown(timeIn, timeOut time.Time, cfg config.PayrollConfig) dayBreakdown {
	if timeOut.Before(timeIn) {
		timeOut = timeOut.Add(24 * time.Hour)
	}

	scheduledStart := atClock(timeIn, cfg.RegularWorkStartTime)
	scheduledEnd := atClock(timeIn, cfg.RegularWorkEndTime)

	total := round2(timeOut.Sub(timeIn).Hours())

	b := dayBreakdown{
		HoursWorked:  total,
		RegularHours: math.Min(total, cfg.RegularWorkHoursPerDay),
	}

	if timeIn.After(scheduledStart) {
		b.LateMinutes = int(timeIn.Sub(scheduledStart).Minutes())
	}
	if timeOut.Before(scheduledEnd) {
		b.UndertimeMinutes = int(scheduledEnd.Sub(timeOut).Minutes())
	}
	if timeOut.After(scheduledEnd) {
		b.OvertimeHours = round2(timeOut.Sub(scheduledEnd).Hours())
	}

	b.NightDifferentialHours = nightHours(timeIn, timeOut, cfg.NightDifferentialStart, cfg.NightDifferentialEnd)

	return b
}

// nightHours walks the shift hour by hour and counts the hours whose start
// falls inside the night window. The window may span midnight (22:00-06:00).
func nightHours(timeIn, timeOut time.Time, windowStart, windowEnd string) float64 {
	startMin := clockMinutes(windowStart)
	endMin := clockMinutes(windowEnd)

	hours := 0.0
	for current := timeIn; current.Before(timeOut); current = current.Add(time.Hour) {
		if inNightWindow(current.Hour()*60+current.Minute(), startMin, endMin) {
			hours++
		}
	}

	return round2(math.Min(hours, timeOut.Sub(timeIn).Hours()))
}

func inNightWindow(minutes, start, end int) bool {
	if start > end { // spans midnight
		return minutes >= start || minutes < end
	}
	return minutes >= start && minutes < end
}

// atClock combines the date of anchor with an "HH:MM" clock string.
func atClock(anchor time.Time, clock string) time.Time {
	minutes := clockMinutes(clock)
	return time.Date(anchor.Year(), anchor.Month(), anchor.Day(), minutes/60, minutes%60, 0, 0, anchor.Location())
}

func clockMinutes(clock string) int {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
