package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/service/query"
)

var (
	// queryDate is the date asked for, today when empty.
	queryDate string
	// queryEvents restricts the answer to some events.
	queryEvents []string

	// queryCmd asks a running almanac-server.
	queryCmd = &cobra.Command{
		Use:   "query [server-address]",
		Short: "Ask a running almanac-server for rise and set times.",
		Long: `Sends the configured location to almanac-server over gRPC and prints the answer.

The server address comes from the configuration file unless given as an argument.
The server picks the provider; the --provider flag has no effect here.`,
		Example: `  almanac query 127.0.0.1:50061 --date 2015-09-21 --event set`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			options := &query.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				Overrides:     overrides(cmd),
				Date:          queryDate,
				Events:        queryEvents,
				Output:        cmd.OutOrStdout(),
			}

			return query.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	queryCmd.Flags().StringVarP(&queryDate, "date", "d", "", "date as YYYY-MM-DD (default today)")
	queryCmd.Flags().StringSliceVarP(&queryEvents, "event", "e", nil,
		"events to ask for: "+string(solar.EventRise)+", "+string(solar.EventSet)+" (default both)")

	rootCmd.AddCommand(queryCmd)
}
