// Package config assembles the runtime settings of the Notelance CLI from
// defaults, an optional JSON file, environment variables, and command-line
// flags — later sources take precedence.
package config

import "time"

// Config holds runtime settings for the Notelance CLI.
//
// Fields:
//   - RemoteBaseURL: base URL of the remote note service.
//   - RemoteAPIKey: bearer token attached to every remote request.
//   - DatabasePath: path (or DSN) of the local SQLite database.
//   - RequestTimeout: per-request network timeout; a timed-out batch is a
//     failed batch.
type Config struct {
	RemoteBaseURL  string
	RemoteAPIKey   string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "notelance.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
