package ephemeris

import (
	"fmt"
	"math"

	"github.com/oshokin/almanac/internal/domain/solar"
)

const (
	// meanTimeRate and meanTimeBase convert apparent to local mean time.
	meanTimeRate = 0.06571
	meanTimeBase = 6.622
)

// Day pairs the rise and set results of one calendar day.
type Day struct {
	Date solar.CalendarDate
	Rise solar.Result
	Set  solar.Result
}

// Solve computes the local civil time of a single event. Input errors are
// returned before any trigonometry runs; a sun that never crosses the zenith
// is reported through Result.Degenerate, not as an error.
func Solve(q solar.Query) (solar.Result, error) {
	if err := q.Validate(); err != nil {
		return solar.Result{}, err
	}

	zenithDeg, err := q.Zenith.Degrees()
	if err != nil {
		return solar.Result{}, err
	}

	p := Compute(DayNumber(q.Date), q.Coordinate, zenithDeg, q.Event)

	switch {
	case p.CosH > 1:
		return solar.DegenerateResult(q.Event, q.Zenith, solar.DegenerateAlwaysBelow), nil
	case p.CosH < -1:
		return solar.DegenerateResult(q.Event, q.Zenith, solar.DegenerateAlwaysAbove), nil
	}

	h := degrees(math.Acos(p.CosH))
	if q.Event == solar.EventRise {
		h = 360 - h
	}

	h /= degreesPerHour

	meanTime := h + p.RAHours - meanTimeRate*p.T - meanTimeBase
	utc := Normalize(meanTime-p.LngHour, 24)
	local := Normalize(utc+q.UTCOffset, 24)

	return solar.Result{
		Event:      q.Event,
		Zenith:     q.Zenith,
		Clock:      SplitHours(local),
		Degenerate: solar.DegenerateNone,
		LocalHours: local,
		UTCHours:   utc,
	}, nil
}

// SolveDay computes both rise and set for one date.
func SolveDay(
	date solar.CalendarDate,
	coord solar.GeoCoordinate,
	zenith solar.ZenithKind,
	utcOffset float64,
) (Day, error) {
	q := solar.Query{
		Date:       date,
		Coordinate: coord,
		Zenith:     zenith,
		Event:      solar.EventRise,
		UTCOffset:  utcOffset,
	}

	rise, err := Solve(q)
	if err != nil {
		return Day{}, fmt.Errorf("solve rise: %w", err)
	}

	q.Event = solar.EventSet

	set, err := Solve(q)
	if err != nil {
		return Day{}, fmt.Errorf("solve set: %w", err)
	}

	return Day{Date: date, Rise: rise, Set: set}, nil
}

// UTCFromLocal undoes the offset applied by Solve.
func UTCFromLocal(localHours, utcOffset float64) float64 {
	return Normalize(localHours-utcOffset, 24)
}
