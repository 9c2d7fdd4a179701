package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/service/server"
	"github.com/oshokin/almanac/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// tableFile path where the precomputed table is persisted.
	tableFile string

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "almanac-server [listen-address]",
		Short: "Run the almanac gRPC server.",
		Long: `Starts the gRPC almanac server that answers rise and set queries.

The server listens on the specified address or uses settings from configuration file.
Only the port from server_addr config is used for listening (e.g., :50061).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:8080).
A table for the configured location is recomputed on refresh_schedule and
persisted to a JSON file; queries for that location are answered from it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				TableFile:     tableFile,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the almanac-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.Flags().
		StringVarP(&tableFile, "table-file", "t", "", "path to persist the precomputed table (default from config)")
}
