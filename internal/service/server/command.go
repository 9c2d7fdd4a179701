package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/robfig/cron/v3"
	"google.golang.org/grpc"

	api "github.com/oshokin/almanac/internal/api/grpc/almanac"
	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/provider"
	repository "github.com/oshokin/almanac/internal/repository/snapshot"
)

// Options controls the almanac-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// TableFile specifies the path to persist the precomputed table JSON.
	TableFile string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server and blocks until context is canceled or server stops.
// Loads configuration first, then determines listen address from config or override.
//
//nolint:funlen // Startup wiring reads best in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "almanac-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Use TableFile from config unless overridden by command line option.
	tableFile := settings.TableFile
	if opts.TableFile != "" {
		tableFile = opts.TableFile
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	kind, err := provider.ParseKind(settings.Provider)
	if err != nil {
		return err
	}

	p, err := provider.New(kind, settings.ProviderOptions())
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	// Initialize snapshot repository for table persistence.
	repo := repository.NewFileRepository(tableFile)

	svc, err := newService(ctx, p, repo, site{
		coordinate: settings.Location(),
		zenith:     settings.ZenithKind(),
		utcOffset:  settings.UTCOffset,
		days:       settings.TableDays,
	})
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	// A failed refresh only costs the cache, queries still reach the provider.
	if err := svc.refresh(ctx); err != nil {
		logger.ErrorKV(ctx, "Initial table refresh failed", "error", err)
	}

	scheduler := cron.New(cron.WithLogger(logger.CronLogger(ctx)))
	if _, err := scheduler.AddFunc(settings.RefreshSchedule, func() {
		if err := svc.refresh(ctx); err != nil {
			logger.ErrorKV(ctx, "Scheduled table refresh failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	// Create and configure gRPC server with almanac service.
	grpcServer := grpc.NewServer()
	api.RegisterAlmanacServiceServer(grpcServer, api.NewServer(svc))

	scheduler.Start()

	logger.InfoKV(
		ctx,
		"Almanac server listening",
		"listen_address", listenAddress,
		"provider", p.Name(),
		"table_file", tableFile,
		"refresh_schedule", settings.RefreshSchedule,
	)

	return serve(ctx, grpcServer, lis, scheduler)
}

// jobScheduler is the part of *cron.Cron that serve stops.
type jobScheduler interface {
	Stop() context.Context
}

// serve runs grpcServer on lis until ctx is canceled or serving fails.
// Either way the scheduler is stopped and the server drained before it returns.
func serve(ctx context.Context, grpcServer *grpc.Server, lis net.Listener, jobs jobScheduler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		<-jobs.Stop().Done()
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		cancel()
		<-done

		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
