package ephemeris

import (
	"math"

	"github.com/oshokin/almanac/internal/domain/solar"
)

// SplitHours converts fractional hours into a wall clock. Minutes are rounded
// to the nearest whole minute; a rounded 60 carries into the hour and the hour
// wraps into [0, 24).
func SplitHours(hours float64) solar.Clock {
	hours = Normalize(hours, 24)

	hour := int(math.Floor(hours))
	minute := int(math.Round((hours - float64(hour)) * 60))

	if minute >= 60 {
		minute -= 60
		hour++
	}

	if hour < 0 {
		hour += 24
	}

	if hour >= 24 {
		hour -= 24
	}

	return solar.Clock{Hour: hour, Minute: minute}
}
