// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered loading.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MatchThreshold is the minimum similarity score the event matcher
	// accepts; see the match package for the score ladder.
	MatchThreshold float64 `koanf:"match_threshold"`

	// Timezone names the reference zone rooting urgency is evaluated in.
	Timezone string `koanf:"timezone"`

	// MaxUpcoming caps the upcoming-events list reported for the
	// aggregate overall category.
	MaxUpcoming int `koanf:"max_upcoming"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		MatchThreshold: 0.64,
		Timezone:       "Europe/Rome",
		MaxUpcoming:    10,
	}
}
