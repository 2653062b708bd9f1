package config

import "os"

// Environment variable names.
const (
	EnvRemoteBaseURL = "NOTELANCE_REMOTE_URL"
	EnvRemoteAPIKey  = "NOTELANCE_API_KEY"
	EnvDatabasePath  = "NOTELANCE_DB"
)

// parseEnv overlays Config with values from the environment. Unset or empty
// variables leave the current value alone.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvRemoteBaseURL); v != "" {
		cfg.RemoteBaseURL = v
	}
	if v := os.Getenv(EnvRemoteAPIKey); v != "" {
		cfg.RemoteAPIKey = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
}
