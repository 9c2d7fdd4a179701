package event

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/provider"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestRun_LongIsland prints both events for the reference date.
func TestRun_LongIsland(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: writeSettings(t, "latitude: 40.93\nlongitude: -73.03\nutc_offset: -4\n"),
		Date:       "2015-09-21",
		Output:     &out,
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	require.Contains(t, string(lines[0]), "Sunrise ")
	require.Contains(t, string(lines[1]), "Sunset ")
}

// TestRun_DefaultDate uses the injected clock when no date is given.
func TestRun_DefaultDate(t *testing.T) {
	t.Parallel()

	lat, lon := 85.0, 0.0

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: writeSettings(t, "log_level: error\n"),
		Overrides:  config.Overrides{Latitude: &lat, Longitude: &lon},
		Events:     []string{"set"},
		Output:     &out,
		Now:        func() time.Time { return time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	require.Equal(t, "Sunset does not occur (sun stays above the official zenith all day)\n", out.String())
}

// TestRun_Errors surfaces validation errors before any output.
func TestRun_Errors(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "latitude: 40.93\n")

	var out bytes.Buffer

	err := Run(context.Background(), &Options{ConfigPath: path, Date: "2015-02-30", Output: &out})
	require.ErrorIs(t, err, solar.ErrInvalidDate)

	err = Run(context.Background(), &Options{ConfigPath: path, Date: "2015-09-21", Events: []string{"noon"}, Output: &out})
	require.ErrorIs(t, err, solar.ErrInvalidEventKind)

	err = Run(context.Background(), &Options{
		ConfigPath: path,
		Overrides:  config.Overrides{Provider: "askgeo"},
		Date:       "2015-09-21",
		Output:     &out,
	})
	require.ErrorIs(t, err, provider.ErrMissingCredentials)

	require.Empty(t, out.String())
}
