package query

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/almanac/internal/api/grpc/almanac"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/provider"
	"github.com/oshokin/almanac/internal/table"
)

// localService serves queries with the built-in algorithm.
type localService struct {
	p *provider.Local
}

func (s localService) ProviderName() string { return s.p.Name() }

func (s localService) ComputeEvent(ctx context.Context, q solar.Query) (solar.Result, error) {
	return s.p.Event(ctx, q)
}

func (s localService) ComputeDay(ctx context.Context, q solar.Query) (table.Row, error) {
	rise, set, err := provider.Day(ctx, s.p, q.Date, q.Coordinate, q.Zenith, q.UTCOffset)

	return table.Row{Date: q.Date, Rise: rise, Set: set}, err
}

// startServer serves the almanac API on a loopback port and returns its address.
func startServer(t *testing.T) string {
	t.Helper()

	lis, err := new(net.ListenConfig).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grpcServer := grpc.NewServer()
	api.RegisterAlmanacServiceServer(grpcServer, api.NewServer(localService{p: provider.NewLocal()}))

	go func() {
		_ = grpcServer.Serve(lis)
	}()

	t.Cleanup(grpcServer.Stop)

	return lis.Addr().String()
}

func writeSettings(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestRun_Day asks for both events and keeps the requested order.
func TestRun_Day(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{
		ConfigPath:    writeSettings(t, "latitude: 40.93\nlongitude: -73.03\nutc_offset: -4\nlog_level: error\n"),
		ServerAddress: startServer(t),
		Date:          "2015-09-21",
		Events:        []string{"set", "rise"},
		Output:        &out,
	}))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	require.Contains(t, string(lines[0]), "Sunset ")
	require.Contains(t, string(lines[1]), "Sunrise ")
}

// TestRun_SingleEvent reports degenerate events from the server.
func TestRun_SingleEvent(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{
		ConfigPath:    writeSettings(t, "latitude: 85\nlongitude: 0\nlog_level: error\n"),
		ServerAddress: startServer(t),
		Date:          "2024-06-21",
		Events:        []string{"rise"},
		Output:        &out,
	}))

	require.Equal(t, "Sunrise does not occur (sun stays above the official zenith all day)\n", out.String())
}

// TestRun_Unreachable reports an unavailable server.
func TestRun_Unreachable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: writeSettings(t, "latitude: 40.93\nlog_level: error\n"),
		Date:       "2015-09-21",
		Output:     &out,
		// Nothing listens on port 1.
		ServerAddress: "127.0.0.1:1",
	})
	require.Equal(t, codes.Unavailable, status.Code(err))
	require.Empty(t, out.String())
}
