package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oshokin/almanac/internal/domain/solar"
)

// Provider computes a single rise or set event.
type Provider interface {
	// Name returns the provider name for display and logging.
	Name() string

	// Event returns the event described by q. Input validation errors wrap the
	// solar sentinel errors; an event that does not happen is reported through
	// Result.Degenerate.
	Event(ctx context.Context, q solar.Query) (solar.Result, error)
}

// Kind names a provider implementation.
type Kind string

const (
	// KindLocal runs the built-in almanac algorithm.
	KindLocal Kind = "local"
	// KindSunCalc uses the suncalc library.
	KindSunCalc Kind = "suncalc"
	// KindAskGeo queries the AskGeo web API.
	KindAskGeo Kind = "askgeo"
)

// Kinds returns every known provider kind.
func Kinds() []Kind {
	return []Kind{KindLocal, KindSunCalc, KindAskGeo}
}

// ErrUnknownProvider is returned for an unrecognized provider name.
var ErrUnknownProvider = errors.New("unknown provider")

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if kind == known {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// Options carries the settings a provider may need.
type Options struct {
	// Timeout bounds remote requests.
	Timeout time.Duration
	// HTTPClient overrides the client used for remote requests.
	HTTPClient *http.Client
	// AskGeoBaseURL is the AskGeo API root.
	AskGeoBaseURL string
	// AskGeoAccountID and AskGeoAPIKey authenticate AskGeo requests.
	AskGeoAccountID string
	AskGeoAPIKey    string
}

// New builds the provider of the given kind.
//
//nolint:ireturn // Callers pick the implementation at runtime.
func New(kind Kind, opts Options) (Provider, error) {
	switch kind {
	case KindLocal:
		return NewLocal(), nil
	case KindSunCalc:
		return NewSunCalc(), nil
	case KindAskGeo:
		return NewAskGeo(opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, string(kind))
	}
}

// Day asks p for both the rise and the set of one date.
func Day(
	ctx context.Context,
	p Provider,
	date solar.CalendarDate,
	coord solar.GeoCoordinate,
	zenith solar.ZenithKind,
	utcOffset float64,
) (rise, set solar.Result, err error) {
	q := solar.Query{
		Date:       date,
		Coordinate: coord,
		Zenith:     zenith,
		Event:      solar.EventRise,
		UTCOffset:  utcOffset,
	}

	rise, err = p.Event(ctx, q)
	if err != nil {
		return solar.Result{}, solar.Result{}, fmt.Errorf("%s rise: %w", p.Name(), err)
	}

	q.Event = solar.EventSet

	set, err = p.Event(ctx, q)
	if err != nil {
		return solar.Result{}, solar.Result{}, fmt.Errorf("%s set: %w", p.Name(), err)
	}

	return rise, set, nil
}

// offsetZone returns a fixed zone for a UTC offset in hours.
func offsetZone(hours float64) *time.Location {
	seconds := int(hours * 3600)

	sign := '+'
	if seconds < 0 {
		sign = '-'
	}

	abs := seconds
	if abs < 0 {
		abs = -abs
	}

	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, abs%3600/60), seconds)
}

// fractionalHours returns the time of day of t as fractional hours.
func fractionalHours(t time.Time) float64 {
	return float64(t.Hour()) +
		float64(t.Minute())/60 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600
}
