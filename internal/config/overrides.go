package config

// Overrides holds command line values that take precedence over the file.
// Nil or empty fields keep the configured value.
type Overrides struct {
	Latitude  *float64
	Longitude *float64
	UTCOffset *float64
	Zenith    string
	Provider  string
	LogLevel  string
}

// Apply copies the set overrides into cfg and validates the result.
func (o Overrides) Apply(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if o.Latitude != nil {
		cfg.Latitude = *o.Latitude
	}

	if o.Longitude != nil {
		cfg.Longitude = *o.Longitude
	}

	if o.UTCOffset != nil {
		cfg.UTCOffset = *o.UTCOffset
	}

	if o.Zenith != "" {
		cfg.Zenith = o.Zenith
	}

	if o.Provider != "" {
		cfg.Provider = o.Provider
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	return Validate(cfg)
}
