package provider

import (
	"context"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/ephemeris"
)

// sunCalcNames maps each zenith kind to the suncalc names of its rise and set.
//
//nolint:gochecknoglobals // Immutable lookup table.
var sunCalcNames = map[solar.ZenithKind][2]suncalc.DayTimeName{
	solar.ZenithOfficial:     {suncalc.Sunrise, suncalc.Sunset},
	solar.ZenithCivil:        {suncalc.Dawn, suncalc.Dusk},
	solar.ZenithNautical:     {suncalc.NauticalDawn, suncalc.NauticalDusk},
	solar.ZenithAstronomical: {suncalc.NightEnd, suncalc.Night},
}

// SunCalc computes events with the suncalc library. It serves as an
// independent cross-check of the almanac algorithm.
type SunCalc struct{}

// NewSunCalc returns the suncalc-backed provider.
func NewSunCalc() *SunCalc {
	return &SunCalc{}
}

// Name implements Provider.
func (*SunCalc) Name() string {
	return string(KindSunCalc)
}

// Event implements Provider.
func (*SunCalc) Event(_ context.Context, q solar.Query) (solar.Result, error) {
	if err := q.Validate(); err != nil {
		return solar.Result{}, err
	}

	zenithDeg, err := q.Zenith.Degrees()
	if err != nil {
		return solar.Result{}, err
	}

	var (
		loc   = offsetZone(q.UTCOffset)
		noon  = q.Date.Time(loc).Add(12 * time.Hour)
		times = suncalc.GetTimes(noon, q.Coordinate.Latitude, q.Coordinate.Longitude)
		names = sunCalcNames[q.Zenith]
	)

	name := names[1]
	if q.Event == solar.EventRise {
		name = names[0]
	}

	value := times[name].Value

	// suncalc yields a zero or wildly distant time when the sun never reaches
	// the requested altitude.
	if value.IsZero() || value.Sub(noon).Abs() > 36*time.Hour {
		transit := times[suncalc.SolarNoon].Value
		altitude := suncalc.GetPosition(transit, q.Coordinate.Latitude, q.Coordinate.Longitude).Altitude

		kind := solar.DegenerateAlwaysBelow
		if altitude*180/math.Pi > 90-zenithDeg {
			kind = solar.DegenerateAlwaysAbove
		}

		return solar.DegenerateResult(q.Event, q.Zenith, kind), nil
	}

	local := fractionalHours(value.In(loc))

	return solar.Result{
		Event:      q.Event,
		Zenith:     q.Zenith,
		Clock:      ephemeris.SplitHours(local),
		Degenerate: solar.DegenerateNone,
		LocalHours: local,
		UTCHours:   fractionalHours(value.UTC()),
	}, nil
}
