package ephemeris

import (
	"math"

	"github.com/oshokin/almanac/internal/domain/solar"
)

// DayNumber returns the day of the year (1 for January 1st) using the almanac
// approximation. The mean anomaly baseline in Compute depends on this convention.
func DayNumber(date solar.CalendarDate) float64 {
	var (
		year  = float64(date.Year)
		month = float64(date.Month)
		day   = float64(date.Day)
	)

	n1 := math.Floor(275 * month / 9)
	n2 := math.Floor((month + 9) / 12)
	n3 := 1 + math.Floor((year-4*math.Floor(year/4)+2)/3)

	return n1 - n2*n3 + day - 30
}
