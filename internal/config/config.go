package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/provider"
)

// Config holds settings shared by the almanac binaries.
type Config struct {
	// Latitude of the default observer, degrees North.
	Latitude float64 `yaml:"latitude"`
	// Longitude of the default observer, degrees East (West is negative).
	Longitude float64 `yaml:"longitude"`
	// UTCOffset is the local clock offset from UTC in hours.
	UTCOffset float64 `yaml:"utc_offset"`
	// Zenith is the default zenith kind (official, civil, nautical, astronomical).
	Zenith string `yaml:"zenith"`
	// Provider selects the ephemeris source (local, suncalc, askgeo).
	Provider string `yaml:"provider"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level"`
	// ServerAddress is the gRPC address of almanac-server.
	ServerAddress string `yaml:"server_addr"`
	// Timeout bounds network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// TableFile is where almanac-server persists the refreshed table.
	TableFile string `yaml:"table_file"`
	// TableDays is how many days the refreshed table covers, starting today.
	TableDays int `yaml:"table_days"`
	// RefreshSchedule is a cron spec for refreshing the table.
	RefreshSchedule string `yaml:"refresh_schedule"`
	// AskGeo holds credentials for the remote astronomy provider.
	AskGeo AskGeo `yaml:"askgeo"`
}

// AskGeo configures the remote AskGeo astronomy lookup.
type AskGeo struct {
	BaseURL   string `yaml:"base_url"`
	AccountID string `yaml:"account_id"`
	APIKey    string `yaml:"api_key"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "almanac-settings.yaml"

	// DefaultTableFilename is the default filename for the persisted table.
	DefaultTableFilename = "almanac-table.json"

	// DefaultServerAddress is used when no server address is configured.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTableDays is the default length of the refreshed table.
	DefaultTableDays = 7

	// DefaultRefreshSchedule refreshes the table once a day at midnight.
	DefaultRefreshSchedule = "@daily"

	// DefaultAskGeoURL is the AskGeo web API root.
	DefaultAskGeoURL = "http://api.askgeo.com/v1"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600

	// Royal Observatory, Greenwich.
	DefaultLatitude  = 51.4770228
	DefaultLongitude = -0.0001147
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration for the Greenwich observatory.
func Default() *Config {
	cfg := &Config{
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
	}

	//nolint:errcheck // Defaults are valid by construction.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default path yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Config{
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
	}
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// AskGeo API keys live in this file, so keep it private.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := cfg.Location().Validate(); err != nil {
		return err
	}

	if err := solar.ValidateOffset(cfg.UTCOffset); err != nil {
		return err
	}

	if cfg.Zenith == "" {
		cfg.Zenith = string(solar.ZenithOfficial)
	}

	zenith, err := solar.ParseZenithKind(cfg.Zenith)
	if err != nil {
		return err
	}

	cfg.Zenith = string(zenith)

	if cfg.Provider == "" {
		cfg.Provider = string(provider.KindLocal)
	}

	kind, err := provider.ParseKind(cfg.Provider)
	if err != nil {
		return err
	}

	cfg.Provider = string(kind)

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.TableFile == "" {
		cfg.TableFile = DefaultTableFilename
	}

	if cfg.TableDays <= 0 {
		cfg.TableDays = DefaultTableDays
	}

	if cfg.RefreshSchedule == "" {
		cfg.RefreshSchedule = DefaultRefreshSchedule
	}

	if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid refresh schedule: %w", err)
	}

	if cfg.AskGeo.BaseURL == "" {
		cfg.AskGeo.BaseURL = DefaultAskGeoURL
	}

	if _, err := url.ParseRequestURI(cfg.AskGeo.BaseURL); err != nil {
		return fmt.Errorf("invalid askgeo base URL: %w", err)
	}

	return nil
}

// Location returns the configured observer coordinate.
func (c *Config) Location() solar.GeoCoordinate {
	return solar.GeoCoordinate{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

// ZenithKind returns the configured zenith kind.
// It must only be called on a validated configuration.
func (c *Config) ZenithKind() solar.ZenithKind {
	return solar.ZenithKind(c.Zenith)
}

// ProviderOptions builds the provider options from the settings.
func (c *Config) ProviderOptions() provider.Options {
	return provider.Options{
		Timeout:         c.Timeout,
		AskGeoBaseURL:   c.AskGeo.BaseURL,
		AskGeoAccountID: c.AskGeo.AccountID,
		AskGeoAPIKey:    c.AskGeo.APIKey,
	}
}
