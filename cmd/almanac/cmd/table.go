package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/almanac/internal/service/tabulate"
)

var (
	// from and to bound the table, both inclusive.
	from, to string
	// format of the output.
	format string
	// out is the destination file.
	out string

	// tableCmd builds a day-by-day table.
	tableCmd = &cobra.Command{
		Use:   "table",
		Short: "Print rise and set times for a range of dates.",
		Long: `Builds one row per day with the rise and set for the configured zenith.

The range defaults to table_days days starting today. Output is an aligned text
table, the JSON document also used by almanac-server, or an iCalendar file with
one event per rise and set.`,
		Example: `  almanac table --from 2024-06-01 --to 2024-06-30
  almanac table --format ics --out sunrise.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &tabulate.Options{
				ConfigPath: configPath,
				Overrides:  overrides(cmd),
				From:       from,
				To:         to,
				Format:     format,
				Out:        out,
				Output:     cmd.OutOrStdout(),
			}

			return tabulate.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	tableCmd.Flags().StringVar(&from, "from", "", "first date as YYYY-MM-DD (default today)")
	tableCmd.Flags().StringVar(&to, "to", "", "last date as YYYY-MM-DD (default from + table_days - 1)")
	tableCmd.Flags().StringVarP(&format, "format", "f", string(tabulate.FormatText), "output format: text, json, ics")
	tableCmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(tableCmd)
}
