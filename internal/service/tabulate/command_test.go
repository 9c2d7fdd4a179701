package tabulate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/almanac/internal/codec"
	"github.com/oshokin/almanac/internal/table"
)

func writeSettings(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := "latitude: 40.93\nlongitude: -73.03\nutc_offset: -4\ntable_days: 5\nlog_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func fixedNow() time.Time {
	return time.Date(2015, 9, 21, 12, 0, 0, 0, time.UTC)
}

// TestParseFormat accepts the three formats case-insensitively.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " ics ": FormatICS} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseFormat("csv")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

// TestRun_TextDefaults covers the default range of table_days days from today.
func TestRun_TextDefaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		Output:     &out,
		Now:        fixedNow,
	}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	require.True(t, strings.HasPrefix(lines[2], "2015-09-21"))
	require.True(t, strings.HasPrefix(lines[6], "2015-09-25"))
}

// TestRun_JSONFile writes JSON that decodes back into the table.
func TestRun_JSONFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "table.json")

	require.NoError(t, Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		From:       "2015-09-21",
		To:         "2015-09-22",
		Format:     "json",
		Out:        out,
		Now:        fixedNow,
	}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	got, generatedAt, err := codec.UnmarshalTableJSON(data)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	require.Equal(t, "local", got.Provider)
	require.True(t, fixedNow().Equal(generatedAt))
}

// TestRun_ICS emits one VEVENT per event.
func TestRun_ICS(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		From:       "2015-09-21",
		To:         "2015-09-21",
		Format:     "ics",
		Output:     &out,
		Now:        fixedNow,
	}))

	require.Equal(t, 2, strings.Count(out.String(), "BEGIN:VEVENT"))
}

// TestRun_Errors rejects bad formats and ranges.
func TestRun_Errors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{ConfigPath: writeSettings(t), Format: "csv", Output: &out})
	require.ErrorIs(t, err, ErrUnknownFormat)

	err = Run(context.Background(), &Options{
		ConfigPath: writeSettings(t),
		From:       "2015-09-22",
		To:         "2015-09-21",
		Output:     &out,
	})
	require.ErrorIs(t, err, table.ErrInvalidRange)

	require.Empty(t, out.String())
}
