package query

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/service/common"
)

// Options controls a remote almanac lookup.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress overrides the server address from config when specified.
	ServerAddress string
	// Overrides holds flag values that take precedence over the file.
	// The provider is chosen by the server and ignored here.
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

// Run asks the server and prints the answer.
//
//nolint:cyclop // One branch per request shape.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "almanac-query")

	cfg, err := common.LoadSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
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

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	q := solar.Query{
		Date:       date,
		Coordinate: cfg.Location(),
		Zenith:     cfg.ZenithKind(),
		UTCOffset:  cfg.UTCOffset,
	}

	logger.InfoKV(ctx, "Querying almanac server", "server_address", serverAddress, "date", date, "location", q.Coordinate)

	var (
		results      []solar.Result
		providerName string
	)

	if len(events) == 2 {
		row, name, err := client.ComputeDay(ctx, q)
		if err != nil {
			return err
		}

		providerName = name

		for _, event := range events {
			if event == solar.EventRise {
				results = append(results, row.Rise)
			} else {
				results = append(results, row.Set)
			}
		}
	} else {
		q.Event = events[0]

		result, name, err := client.ComputeEvent(ctx, q)
		if err != nil {
			return err
		}

		providerName = name
		results = append(results, result)
	}

	logger.DebugKV(ctx, "Server answered", "provider", providerName)

	for _, result := range results {
		if err := common.PrintResult(output, result); err != nil {
			return fmt.Errorf("print %s: %w", result.Event, err)
		}
	}

	return nil
}
