package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/provider"
	"github.com/oshokin/almanac/internal/service/event"
	"github.com/oshokin/almanac/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// date of the lookup, today when empty.
	date string
	// latitude, longitude and utcOffset override the configured location.
	latitude, longitude, utcOffset float64
	// zenith overrides the configured zenith kind.
	zenith string
	// providerName overrides the configured provider.
	providerName string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for a single lookup.
	rootCmd = &cobra.Command{
		Use:   "almanac [rise|set]...",
		Short: "Print sunrise, sunset and twilight times for a date and place.",
		Long: `Computes when the sun crosses the requested zenith for one date, using the
low-precision almanac algorithm or another configured provider.

Without arguments both the rise and the set are printed. Location, UTC offset,
zenith and provider come from the configuration file and can be overridden by
flags. Days on which the sun never crosses the zenith are reported as such.`,
		Example: `  almanac --lat 40.9 --lon -74.3 --offset -4 --date 2015-09-21
  almanac set --zenith civil`,
		Args:      cobra.OnlyValidArgs,
		ValidArgs: []string{string(solar.EventRise), string(solar.EventSet)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &event.Options{
				ConfigPath: configPath,
				Overrides:  overrides(cmd),
				Date:       date,
				Events:     args,
				Output:     cmd.OutOrStdout(),
			}

			return event.Run(ctx, options)
		},
	}
)

// Execute runs the almanac CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// overrides collects the location flags the user actually set.
func overrides(cmd *cobra.Command) config.Overrides {
	var result config.Overrides

	flags := cmd.Flags()

	if flags.Changed("lat") {
		result.Latitude = &latitude
	}

	if flags.Changed("lon") {
		result.Longitude = &longitude
	}

	if flags.Changed("offset") {
		result.UTCOffset = &utcOffset
	}

	result.Zenith = zenith
	result.Provider = providerName
	result.LogLevel = logLevel

	return result
}

// kindNames joins a list of names for flag help.
func kindNames[T ~string](kinds []T) string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}

	return strings.Join(names, ", ")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	flags.Float64Var(&latitude, "lat", 0, "latitude in degrees, north positive")
	flags.Float64Var(&longitude, "lon", 0, "longitude in degrees, east positive")
	flags.Float64Var(&utcOffset, "offset", 0, "local UTC offset in hours, e.g. -4 or 5.5")
	flags.StringVarP(&zenith, "zenith", "z", "", "zenith kind: "+kindNames(solar.ZenithKinds()))
	flags.StringVarP(&providerName, "provider", "p", "", "provider: "+kindNames(provider.Kinds()))
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default today)")
}
