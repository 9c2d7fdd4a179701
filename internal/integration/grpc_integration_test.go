package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/ephemeris"
	repository "github.com/oshokin/almanac/internal/repository/snapshot"
	"github.com/oshokin/almanac/internal/service/common"
	"github.com/oshokin/almanac/internal/service/server"
)

// startGRPC starts a gRPC server with temporary config and table file.
// Returns a stop function that shuts the server down and waits for it.
func startGRPC(t *testing.T, cfg *config.Config, tablePath string) (stop func()) {
	t.Helper()

	// Create cancellable context for server lifecycle.
	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	// Create temporary configuration file.
	require.NoError(t, config.Save(cfgPath, cfg))

	done := make(chan error, 1)

	// Start server in background goroutine.
	go func() {
		options := &server.Options{
			ConfigPath:    cfgPath,
			ListenAddress: cfg.ServerAddress,
			TableFile:     tablePath,
		}

		done <- server.Run(ctx, options)
	}()

	return func() {
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	}
}

// freeAddress reserves a loopback port for the test server.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := new(net.ListenConfig).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// TestGRPC_Roundtrip starts the real server and checks answers and the persisted table.
func TestGRPC_Roundtrip(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	tablePath := filepath.Join(t.TempDir(), "table.json")

	cfg := &config.Config{
		Latitude:        40.93,
		Longitude:       -73.03,
		UTCOffset:       -4,
		LogLevel:        "error",
		ServerAddress:   addr,
		Timeout:         3 * time.Second,
		TableDays:       2,
		RefreshSchedule: "@hourly",
	}

	stop := startGRPC(t, cfg, tablePath)
	defer stop()

	ctx := context.Background()

	// The table is written during startup, before the listener opens.
	repo := repository.NewFileRepository(tablePath)

	require.Eventually(t, func() bool {
		_, err := repo.Load(ctx)

		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	snapshot, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Table.Rows, 2)

	// Failed dials make gRPC fail fast, so wait for the listener.
	require.Eventually(t, func() bool {
		conn, err := new(net.Dialer).DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}

		_ = conn.Close()

		return true
	}, 5*time.Second, 20*time.Millisecond)

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	q := solar.Query{
		Date:       solar.CalendarDate{Year: 2015, Month: 9, Day: 21},
		Coordinate: cfg.Location(),
		Zenith:     solar.ZenithOfficial,
		Event:      solar.EventRise,
		UTCOffset:  -4,
	}

	want, err := ephemeris.Solve(q)
	require.NoError(t, err)

	got, providerName, err := c.ComputeEvent(ctx, q)
	require.NoError(t, err)
	require.Equal(t, "local", providerName)
	require.Equal(t, want.Clock, got.Clock)

	// A whole-day request carries no event, as `almanac query` sends it.
	q.Event = ""

	row, _, err := c.ComputeDay(ctx, q)
	require.NoError(t, err)
	require.Equal(t, want.Clock, row.Rise.Clock)
	require.True(t, row.Set.Occurs())

	// The first snapshot row is today and must agree with a direct computation.
	today := snapshot.Table.Rows[0]
	q.Date = today.Date

	row, _, err = c.ComputeDay(ctx, q)
	require.NoError(t, err)
	require.Equal(t, today, row)
}
