package solar

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the textual form accepted by ParseDate.
const DateLayout = "2006-01-02"

// HighLatitude is the latitude beyond which the almanac algorithm loses accuracy.
const HighLatitude = 60.0

// MaxUTCOffset bounds the UTC offset in hours (UTC-12 .. UTC+14 in practice).
const MaxUTCOffset = 14.0

// CalendarDate is a Gregorian calendar day.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
	}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return DateOf(t), nil
}

// Validate rejects month or day values that do not name a real day.
func (d CalendarDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, d.Month)
	}

	// time.Date normalizes overflowing days, so a round trip exposes them.
	t := d.Time(time.UTC)
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidDate, d)
	}

	return nil
}

// Time returns midnight of the date in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// String renders the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// GeoCoordinate is a point on Earth, longitude positive East.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// Validate rejects coordinates outside [-90, 90] x [-180, 180].
func (c GeoCoordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of [-90, 90]", ErrInvalidCoordinate, c.Latitude)
	}

	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of [-180, 180]", ErrInvalidCoordinate, c.Longitude)
	}

	return nil
}

// HighLatitude reports whether the coordinate lies beyond ±60°, where results
// are less accurate. Such coordinates are still accepted.
func (c GeoCoordinate) HighLatitude() bool {
	return math.Abs(c.Latitude) > HighLatitude
}

// String renders the coordinate as "lat,lon".
func (c GeoCoordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// ValidateOffset rejects non-finite offsets and offsets beyond ±14 hours.
func ValidateOffset(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || math.Abs(hours) > MaxUTCOffset {
		return fmt.Errorf("%w: %v hours", ErrInvalidOffset, hours)
	}

	return nil
}

// Query holds every input of a single event computation.
type Query struct {
	// Date is the calendar day of the event.
	Date CalendarDate
	// Coordinate is the observer location.
	Coordinate GeoCoordinate
	// Zenith selects the zenith angle.
	Zenith ZenithKind
	// Event selects rise or set.
	Event EventKind
	// UTCOffset is the local clock offset from UTC in hours.
	UTCOffset float64
}

// Validate checks every field of the query.
func (q Query) Validate() error {
	if err := q.Date.Validate(); err != nil {
		return err
	}

	if err := q.Coordinate.Validate(); err != nil {
		return err
	}

	if _, err := q.Zenith.Degrees(); err != nil {
		return err
	}

	if err := q.Event.Validate(); err != nil {
		return err
	}

	return ValidateOffset(q.UTCOffset)
}
