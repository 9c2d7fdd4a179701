package solar

import (
	"fmt"
	"strings"
)

// EventKind selects which half of the diurnal solution is wanted.
type EventKind string

const (
	// EventRise is the crossing before solar transit.
	EventRise EventKind = "rise"
	// EventSet is the crossing after solar transit.
	EventSet EventKind = "set"
)

// ParseEventKind converts user input into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	switch kind := EventKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case EventRise, EventSet:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEventKind, s)
	}
}

// Validate checks that the event kind is rise or set.
func (k EventKind) Validate() error {
	if k != EventRise && k != EventSet {
		return fmt.Errorf("%w: %q", ErrInvalidEventKind, string(k))
	}

	return nil
}

// String implements fmt.Stringer.
func (k EventKind) String() string {
	return string(k)
}

// Degenerate tells whether the sun crosses the requested zenith at all.
type Degenerate int

const (
	// DegenerateNone means the event happens and the clock is meaningful.
	DegenerateNone Degenerate = iota
	// DegenerateAlwaysAbove means the sun stays above the zenith all day.
	DegenerateAlwaysAbove
	// DegenerateAlwaysBelow means the sun stays below the zenith all day.
	DegenerateAlwaysBelow
)

// String implements fmt.Stringer.
func (d Degenerate) String() string {
	switch d {
	case DegenerateNone:
		return "none"
	case DegenerateAlwaysAbove:
		return "always_above"
	case DegenerateAlwaysBelow:
		return "always_below"
	default:
		return "unknown"
	}
}

// ParseDegenerate is the inverse of Degenerate.String.
func ParseDegenerate(s string) (Degenerate, bool) {
	switch s {
	case "", "none":
		return DegenerateNone, true
	case "always_above":
		return DegenerateAlwaysAbove, true
	case "always_below":
		return DegenerateAlwaysBelow, true
	default:
		return DegenerateNone, false
	}
}

// Clock is a wall-clock time of day with minute resolution.
type Clock struct {
	// Hour is in [0, 23].
	Hour int
	// Minute is in [0, 59].
	Minute int
}

// Sentinel clocks reported for degenerate events.
//
//nolint:gochecknoglobals // Read-only values.
var (
	NeverRisesClock = Clock{Hour: 0, Minute: 0}
	NeverSetsClock  = Clock{Hour: 23, Minute: 59}
)

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Result is the outcome of a single rise or set computation.
type Result struct {
	// Event is the requested event kind.
	Event EventKind
	// Zenith is the zenith kind the event was measured against.
	Zenith ZenithKind
	// Clock is the local civil time of the event.
	// For degenerate results it holds NeverRisesClock or NeverSetsClock.
	Clock Clock
	// Degenerate is set when the sun never crosses the zenith that day.
	Degenerate Degenerate
	// LocalHours is the fractional local time in [0, 24).
	LocalHours float64
	// UTCHours is the fractional UTC time in [0, 24).
	UTCHours float64
}

// Occurs reports whether the event actually happens.
func (r Result) Occurs() bool {
	return r.Degenerate == DegenerateNone
}

// DegenerateResult builds the marker result for an event that never happens.
func DegenerateResult(event EventKind, zenith ZenithKind, kind Degenerate) Result {
	clock := NeverSetsClock
	if event == EventRise {
		clock = NeverRisesClock
	}

	return Result{
		Event:      event,
		Zenith:     zenith,
		Clock:      clock,
		Degenerate: kind,
	}
}
