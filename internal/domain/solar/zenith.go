package solar

import (
	"fmt"
	"strings"
)

// ZenithKind names the zenith angle at which an event is measured.
type ZenithKind string

const (
	// ZenithOfficial is the visible upper limb touching the horizon (90°50').
	ZenithOfficial ZenithKind = "official"
	// ZenithCivil is the civil twilight boundary.
	ZenithCivil ZenithKind = "civil"
	// ZenithNautical is the nautical twilight boundary.
	ZenithNautical ZenithKind = "nautical"
	// ZenithAstronomical is the astronomical twilight boundary.
	ZenithAstronomical ZenithKind = "astronomical"
)

// zenithDegrees maps every known zenith kind to its angle in degrees.
//
//nolint:gochecknoglobals // Immutable lookup table.
var zenithDegrees = map[ZenithKind]float64{
	ZenithOfficial:     90 + 50.0/60.0,
	ZenithCivil:        96,
	ZenithNautical:     102,
	ZenithAstronomical: 108,
}

// ZenithKinds returns the known zenith kinds in increasing angle order.
func ZenithKinds() []ZenithKind {
	return []ZenithKind{ZenithOfficial, ZenithCivil, ZenithNautical, ZenithAstronomical}
}

// ParseZenithKind converts user input into a ZenithKind.
func ParseZenithKind(s string) (ZenithKind, error) {
	kind := ZenithKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := zenithDegrees[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidZenithKind, s)
	}

	return kind, nil
}

// Degrees returns the zenith angle in degrees.
func (k ZenithKind) Degrees() (float64, error) {
	degrees, ok := zenithDegrees[k]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidZenithKind, string(k))
	}

	return degrees, nil
}

// String implements fmt.Stringer.
func (k ZenithKind) String() string {
	return string(k)
}
