package event

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/provider"
	"github.com/oshokin/almanac/internal/service/common"
)

// Options controls a single almanac lookup.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Overrides holds flag values that take precedence over the file.
	Overrides config.Overrides
	// Date is YYYY-MM-DD; empty means today at the configured offset.
	Date string
	// Events lists the requested events; empty means rise and set.
	Events []string
	// Output receives the result lines, stdout when nil.
	Output io.Writer
	// Now returns the current time, time.Now when nil.
	Now func() time.Time
}

// Run computes and prints the requested events.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "almanac")

	cfg, err := common.LoadSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	date, err := common.ResolveDate(opts.Date, cfg.UTCOffset, now())
	if err != nil {
		return err
	}

	events, err := common.ParseEvents(opts.Events)
	if err != nil {
		return err
	}

	kind, err := provider.ParseKind(cfg.Provider)
	if err != nil {
		return err
	}

	p, err := provider.New(kind, cfg.ProviderOptions())
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	ctx = logger.WithKV(ctx, "provider", p.Name(), "date", date.String(), "location", cfg.Location().String())

	for _, event := range events {
		q := solar.Query{
			Date:       date,
			Coordinate: cfg.Location(),
			Zenith:     cfg.ZenithKind(),
			Event:      event,
			UTCOffset:  cfg.UTCOffset,
		}

		result, err := p.Event(ctx, q)
		if err != nil {
			return fmt.Errorf("compute %s: %w", event, err)
		}

		logger.DebugKV(ctx, "Event computed", "event", event, "local_hours", result.LocalHours, "utc_hours", result.UTCHours)

		if err := common.PrintResult(output, result); err != nil {
			return err
		}
	}

	return nil
}
