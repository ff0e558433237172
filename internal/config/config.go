package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the syncbox
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the log file path and
	// the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the remote row-store endpoint settings used by the
	// adapter layer.
	Remote Remote `envPrefix:"REMOTE_"`

	// Sync holds synchronization policy settings: the table list, the
	// background interval, page limits, and the retry ceiling.
	Sync Sync `envPrefix:"SYNC_"`

	// Status holds settings for the local sync-status HTTP surface.
	Status Status `envPrefix:"STATUS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogPath is the path of the rotating daemon log file. When empty,
	// logs go to stdout.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path used for the local record store
	// (e.g. "/var/lib/syncbox/local.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Remote holds the remote row-store endpoint settings.
type Remote struct {
	// Address is the base URL of the remote row-store API
	// (e.g. "https://api.example.com").
	// Env: REMOTE_ADDRESS
	Address string `env:"ADDRESS"`

	// APIToken is the opaque bearer token attached to every outbound
	// request. Authentication itself is handled by an external
	// collaborator; the sync layer only forwards the token.
	// Env: REMOTE_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// RequestTimeout is the per-call timeout for outbound requests
	// (e.g. "30s"). A timed-out call is treated like any other delivery
	// failure.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds synchronization policy settings.
type Sync struct {
	// Tables lists the synchronized tables in priority order: the most
	// operationally critical tables first, reference data last. Full
	// syncs process tables in this order.
	// Env: SYNC_TABLES (comma-separated)
	Tables []string `env:"TABLES"`

	// Interval is the background sync period (e.g. "5m").
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// PageLimit bounds the number of rows fetched per table in a single
	// pull.
	// Env: SYNC_PAGE_LIMIT
	PageLimit int `env:"PAGE_LIMIT"`

	// MaxRetries is the retry ceiling after which a queued mutation is
	// flagged for manual intervention. Exhausted items stay queued; they
	// are never discarded automatically.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// ProbeInterval is the connectivity probe period for the network
	// monitor (e.g. "15s").
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Status holds settings for the local status HTTP surface.
type Status struct {
	// Address is the TCP address the status server listens on, in
	// "host:port" format. Empty disables the status server.
	// Env: STATUS_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
