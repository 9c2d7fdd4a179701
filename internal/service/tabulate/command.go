package tabulate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oshokin/almanac/internal/codec"
	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/provider"
	"github.com/oshokin/almanac/internal/service/common"
	"github.com/oshokin/almanac/internal/table"
)

// Format selects the table rendering.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat converts user input into a Format. Empty input means text.
func ParseFormat(s string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(s))); format {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatICS:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options controls table generation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Overrides holds flag values that take precedence over the file.
	Overrides config.Overrides
	// From is the first date, today when empty.
	From string
	// To is the last date, From plus table_days minus one when empty.
	To string
	// Format is text, json or ics.
	Format string
	// Out is the destination file; stdout (or Output) when empty.
	Out string
	// Output receives the table when Out is empty, stdout when nil.
	Output io.Writer
	// Now returns the current time, time.Now when nil.
	Now func() time.Time
}

// Run builds the table and writes it.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "almanac-table")

	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	cfg, err := common.LoadSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	stamp := now()

	from, err := common.ResolveDate(opts.From, cfg.UTCOffset, stamp)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}

	to := opts.To
	if to == "" {
		to = from.Time(time.UTC).AddDate(0, 0, cfg.TableDays-1).Format(time.DateOnly)
	}

	until, err := common.ResolveDate(to, cfg.UTCOffset, stamp)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}

	kind, err := provider.ParseKind(cfg.Provider)
	if err != nil {
		return err
	}

	p, err := provider.New(kind, cfg.ProviderOptions())
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	logger.InfoKV(ctx, "Building table", "from", from, "to", until, "provider", p.Name(), "zenith", cfg.Zenith)

	built, err := table.Build(ctx, p, table.Request{
		From:       from,
		To:         until,
		Coordinate: cfg.Location(),
		Zenith:     cfg.ZenithKind(),
		UTCOffset:  cfg.UTCOffset,
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render(&buf, format, built, stamp); err != nil {
		return err
	}

	return write(ctx, opts, buf.Bytes())
}

func render(w io.Writer, format Format, t *table.Table, stamp time.Time) error {
	switch format {
	case FormatJSON:
		data, err := codec.MarshalTableJSON(t, stamp)
		if err != nil {
			return err
		}

		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write table: %w", err)
		}

		return nil
	case FormatICS:
		return table.WriteICS(w, t, stamp)
	default:
		return table.WriteText(w, t)
	}
}

func write(ctx context.Context, opts *Options, data []byte) error {
	if opts.Out == "" {
		output := opts.Output
		if output == nil {
			output = os.Stdout
		}

		if _, err := output.Write(data); err != nil {
			return fmt.Errorf("write table: %w", err)
		}

		return nil
	}

	path := filepath.Clean(opts.Out)
	if err := os.WriteFile(path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.InfoKV(ctx, "Table written", "path", path, "bytes", len(data))

	return nil
}
