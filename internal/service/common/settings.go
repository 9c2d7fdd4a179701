//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"io"
	"time"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/table"
)

// LoadSettings reads the configuration, applies command line overrides and
// switches the global logger to the configured level.
func LoadSettings(path string, overrides config.Overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := overrides.Apply(cfg); err != nil {
		return nil, fmt.Errorf("apply flags: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	return cfg, nil
}

// ResolveDate parses s, or returns the date of now at the given UTC offset
// when s is empty.
func ResolveDate(s string, utcOffset float64, now time.Time) (solar.CalendarDate, error) {
	if s == "" {
		return solar.DateOf(now.In(time.FixedZone("", int(utcOffset*3600)))), nil
	}

	date, err := solar.ParseDate(s)
	if err != nil {
		return solar.CalendarDate{}, err
	}

	if err := date.Validate(); err != nil {
		return solar.CalendarDate{}, err
	}

	return date, nil
}

// ParseEvents converts event arguments. No arguments means rise and set.
// Duplicates are dropped.
func ParseEvents(args []string) ([]solar.EventKind, error) {
	if len(args) == 0 {
		return []solar.EventKind{solar.EventRise, solar.EventSet}, nil
	}

	var (
		events = make([]solar.EventKind, 0, len(args))
		seen   = make(map[solar.EventKind]bool, len(args))
	)

	for _, arg := range args {
		event, err := solar.ParseEventKind(arg)
		if err != nil {
			return nil, err
		}

		if seen[event] {
			continue
		}

		seen[event] = true
		events = append(events, event)
	}

	return events, nil
}

// PrintResult writes one line such as "Sunrise 06:38" or
// "Civil dusk does not occur (...)".
func PrintResult(w io.Writer, result solar.Result) error {
	_, err := fmt.Fprintf(w, "%s %s\n", table.EventLabel(result.Zenith, result.Event), table.Describe(result))
	if err != nil {
		return fmt.Errorf("print result: %w", err)
	}

	return nil
}
