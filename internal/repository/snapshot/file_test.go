package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/table"
)

func sampleTable() *table.Table {
	date := solar.CalendarDate{Year: 2015, Month: 9, Day: 21}

	return &table.Table{
		Provider:   "local",
		Coordinate: solar.GeoCoordinate{Latitude: 40.93, Longitude: -73.03},
		Zenith:     solar.ZenithOfficial,
		UTCOffset:  -4,
		Rows: []table.Row{{
			Date: date,
			Rise: solar.Result{
				Event:      solar.EventRise,
				Zenith:     solar.ZenithOfficial,
				Clock:      solar.Clock{Hour: 6, Minute: 38},
				LocalHours: 6.6384,
				UTCHours:   10.6384,
			},
			Set: solar.DegenerateResult(solar.EventSet, solar.ZenithOfficial, solar.DegenerateAlwaysAbove),
		}},
	}
}

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))
	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns an equal snapshot.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "table.json")
	repo := NewFileRepository(file)

	want := &Snapshot{
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Table:       sampleTable(),
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
	require.Equal(t, want.Table, got.Table)

	_, err = os.Stat(file)
	require.NoError(t, err)

	_, err = os.Stat(file + ".tmp")
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestFileRepository_Overwrite checks that a second Save replaces the first one.
func TestFileRepository_Overwrite(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "table.json"))

	first := sampleTable()
	second := sampleTable()
	second.Provider = "suncalc"

	require.NoError(t, repo.Save(context.Background(), &Snapshot{GeneratedAt: time.Unix(0, 0), Table: first}))
	require.NoError(t, repo.Save(context.Background(), &Snapshot{GeneratedAt: time.Unix(60, 0), Table: second}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "suncalc", got.Table.Provider)
	require.Equal(t, int64(60), got.GeneratedAt.Unix())
}

// TestFileRepository_Corrupt ensures a damaged file is reported, not ignored.
func TestFileRepository_Corrupt(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

// TestFileRepository_SaveNil rejects empty snapshots.
func TestFileRepository_SaveNil(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "table.json"))
	require.ErrorIs(t, repo.Save(context.Background(), nil), ErrEmptySnapshot)
	require.ErrorIs(t, repo.Save(context.Background(), &Snapshot{}), ErrEmptySnapshot)
}
