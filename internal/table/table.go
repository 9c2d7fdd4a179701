package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/provider"
)

const (
	// MaxDays bounds the length of a single table.
	MaxDays = 3660
	// workers bounds concurrent provider calls.
	workers = 8
)

// ErrInvalidRange is returned when the date range is empty or too long.
var ErrInvalidRange = errors.New("invalid date range")

// Request describes the table to build.
type Request struct {
	From       solar.CalendarDate
	To         solar.CalendarDate
	Coordinate solar.GeoCoordinate
	Zenith     solar.ZenithKind
	UTCOffset  float64
}

// Row holds both events of one date.
type Row struct {
	Date solar.CalendarDate
	Rise solar.Result
	Set  solar.Result
}

// Table is an almanac for a location over consecutive days.
type Table struct {
	// Provider is the name of the provider that computed the rows.
	Provider   string
	Coordinate solar.GeoCoordinate
	Zenith     solar.ZenithKind
	UTCOffset  float64
	Rows       []Row
}

// Dates expands the inclusive range [from, to] into consecutive days.
func Dates(from, to solar.CalendarDate) ([]solar.CalendarDate, error) {
	if err := from.Validate(); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	if err := to.Validate(); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	start, until := from.Time(time.UTC), to.Time(time.UTC)
	if until.Before(start) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, from, to)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start,
		Until:   until,
		Count:   MaxDays + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("daily rule: %w", err)
	}

	occurrences := rule.All()
	if len(occurrences) > MaxDays {
		return nil, fmt.Errorf("%w: more than %d days", ErrInvalidRange, MaxDays)
	}

	dates := make([]solar.CalendarDate, 0, len(occurrences))
	for _, day := range occurrences {
		dates = append(dates, solar.DateOf(day))
	}

	return dates, nil
}

// Build computes the table described by req with p.
func Build(ctx context.Context, p provider.Provider, req Request) (*Table, error) {
	if err := req.Coordinate.Validate(); err != nil {
		return nil, err
	}

	if _, err := req.Zenith.Degrees(); err != nil {
		return nil, err
	}

	if err := solar.ValidateOffset(req.UTCOffset); err != nil {
		return nil, err
	}

	dates, err := Dates(req.From, req.To)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows = make([]Row, len(dates))
		errs = make([]error, len(dates))
		sem  = make(chan struct{}, workers)
		wg   sync.WaitGroup
	)

	for i, date := range dates {
		wg.Go(func() {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()

				return
			}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[i] = err

				return
			}

			rise, set, err := provider.Day(ctx, p, date, req.Coordinate, req.Zenith, req.UTCOffset)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", date, err)

				return
			}

			rows[i] = Row{Date: date, Rise: rise, Set: set}
		})
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Table{
		Provider:   p.Name(),
		Coordinate: req.Coordinate,
		Zenith:     req.Zenith,
		UTCOffset:  req.UTCOffset,
		Rows:       rows,
	}, nil
}

// EventTime returns the instant of an occurring event, or false for a
// degenerate one.
//
// The instant is the UTC time of day of result placed on the day closest to
// the event's approximate solar time (06:00 for a rise, 18:00 for a set, at
// the coordinate's meridian). Its local calendar date may therefore differ
// from date when the offset is far from the meridian.
func EventTime(
	date solar.CalendarDate,
	coord solar.GeoCoordinate,
	utcOffset float64,
	result solar.Result,
) (time.Time, bool) {
	if !result.Occurs() {
		return time.Time{}, false
	}

	solarHours := 6.0
	if result.Event == solar.EventSet {
		solarHours = 18
	}

	approx := date.Time(time.UTC).Add(hours(solarHours - coord.Longitude/15))
	at := time.Date(approx.Year(), approx.Month(), approx.Day(), 0, 0, 0, 0, time.UTC).
		Add(hours(result.UTCHours).Round(time.Second))

	for _, days := range []int{-1, 1} {
		candidate := at.AddDate(0, 0, days)
		if candidate.Sub(approx).Abs() < at.Sub(approx).Abs() {
			at = candidate
		}
	}

	return at.In(time.FixedZone("", int(utcOffset*3600))), true
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
