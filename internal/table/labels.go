package table

import "github.com/oshokin/almanac/internal/domain/solar"

// eventLabels names the rise and set of every zenith kind.
//
//nolint:gochecknoglobals // Immutable lookup table.
var eventLabels = map[solar.ZenithKind][2]string{
	solar.ZenithOfficial:     {"Sunrise", "Sunset"},
	solar.ZenithCivil:        {"Civil dawn", "Civil dusk"},
	solar.ZenithNautical:     {"Nautical dawn", "Nautical dusk"},
	solar.ZenithAstronomical: {"Astronomical dawn", "Astronomical dusk"},
}

// EventLabel returns the human name of an event, e.g. "Sunrise" or "Civil dusk".
func EventLabel(zenith solar.ZenithKind, event solar.EventKind) string {
	labels, ok := eventLabels[zenith]
	if !ok {
		labels = eventLabels[solar.ZenithOfficial]
	}

	if event == solar.EventRise {
		return labels[0]
	}

	return labels[1]
}

// Describe renders a result as HH:MM or explains why the event does not occur.
func Describe(result solar.Result) string {
	switch result.Degenerate {
	case solar.DegenerateAlwaysAbove:
		return "does not occur (sun stays above the " + result.Zenith.String() + " zenith all day)"
	case solar.DegenerateAlwaysBelow:
		return "does not occur (sun stays below the " + result.Zenith.String() + " zenith all day)"
	default:
		return result.Clock.String()
	}
}

// cell is the short form of a result used in table columns.
func cell(result solar.Result) string {
	switch result.Degenerate {
	case solar.DegenerateAlwaysAbove:
		return "up"
	case solar.DegenerateAlwaysBelow:
		return "down"
	default:
		return result.Clock.String()
	}
}
