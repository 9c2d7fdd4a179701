package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/ephemeris"
)

// longIsland is the 2015-09-21 reference location.
func longIsland(event solar.EventKind) solar.Query {
	return solar.Query{
		Date:       solar.CalendarDate{Year: 2015, Month: 9, Day: 21},
		Coordinate: solar.GeoCoordinate{Latitude: 40.93, Longitude: -73.03},
		Zenith:     solar.ZenithOfficial,
		Event:      event,
		UTCOffset:  -4,
	}
}

// clockDiff returns the absolute distance between two clocks in minutes.
func clockDiff(a, b solar.Clock) int {
	diff := (a.Hour*60 + a.Minute) - (b.Hour*60 + b.Minute)
	if diff < 0 {
		diff = -diff
	}

	if diff > 12*60 {
		diff = 24*60 - diff
	}

	return diff
}

// TestParseKind accepts known kinds and rejects others.
func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		got, err := ParseKind(" " + string(kind) + " ")
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}

	_, err := ParseKind("oracle")
	require.ErrorIs(t, err, ErrUnknownProvider)
}

// TestNew builds every provider and reports missing AskGeo credentials.
func TestNew(t *testing.T) {
	t.Parallel()

	p, err := New(KindLocal, Options{})
	require.NoError(t, err)
	require.Equal(t, "local", p.Name())

	p, err = New(KindSunCalc, Options{})
	require.NoError(t, err)
	require.Equal(t, "suncalc", p.Name())

	_, err = New(KindAskGeo, Options{})
	require.ErrorIs(t, err, ErrMissingCredentials)

	p, err = New(KindAskGeo, Options{AskGeoAccountID: "1738", AskGeoAPIKey: "key"})
	require.NoError(t, err)
	require.Equal(t, "askgeo", p.Name())

	_, err = New("oracle", Options{})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

// TestLocalMatchesEphemeris ensures the local provider is a thin wrapper.
func TestLocalMatchesEphemeris(t *testing.T) {
	t.Parallel()

	q := longIsland(solar.EventRise)

	want, err := ephemeris.Solve(q)
	require.NoError(t, err)

	got, err := NewLocal().Event(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, want, got)

	q.Coordinate.Latitude = 95
	_, err = NewLocal().Event(context.Background(), q)
	require.ErrorIs(t, err, solar.ErrInvalidCoordinate)
}

// TestDay returns both events of a date.
func TestDay(t *testing.T) {
	t.Parallel()

	q := longIsland(solar.EventRise)

	rise, set, err := Day(context.Background(), NewLocal(), q.Date, q.Coordinate, q.Zenith, q.UTCOffset)
	require.NoError(t, err)
	require.Equal(t, solar.EventRise, rise.Event)
	require.Equal(t, solar.EventSet, set.Event)
	require.Less(t, rise.LocalHours, set.LocalHours)

	_, _, err = Day(context.Background(), NewLocal(), q.Date, q.Coordinate, "golden", q.UTCOffset)
	require.ErrorIs(t, err, solar.ErrInvalidZenithKind)
}

// TestOffsetZone names fixed zones for whole and fractional offsets.
func TestOffsetZone(t *testing.T) {
	t.Parallel()

	require.Equal(t, "UTC-04:00", offsetZone(-4).String())
	require.Equal(t, "UTC+05:45", offsetZone(5.75).String())
	require.Equal(t, "UTC+00:00", offsetZone(0).String())
}
