package config

import (
	"flag"
	"strings"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-r remote row-store base URL
//	-d local database file path
//	-c/-config json file path with configs
//	-api-token remote API bearer token
//	-tables comma-separated synchronized tables in priority order
//	-sync-interval background sync period (e.g., "5m")
//	-page-limit per-table pull page size
//	-max-retries mutation retry ceiling
//	-probe-interval connectivity probe period (e.g., "15s")
//	-request-timeout outbound request timeout (e.g., "30s")
//	-status-address local status server address host:port
//	-log-path rotating daemon log file path
func ParseFlags() *StructuredConfig {
	var remoteAddress string
	var databaseDSN string
	var jsonConfigPath string
	var apiToken string
	var tables string
	var syncInterval time.Duration
	var pageLimit int
	var maxRetries int
	var probeInterval time.Duration
	var requestTimeout time.Duration
	var statusAddress string
	var logPath string

	flag.StringVar(&remoteAddress, "r", "", "Remote row-store base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&apiToken, "api-token", "", "Remote API bearer token")
	flag.StringVar(&tables, "tables", "", "Comma-separated synchronized tables in priority order")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 5m)")
	flag.IntVar(&pageLimit, "page-limit", 0, "Per-table pull page size")
	flag.IntVar(&maxRetries, "max-retries", 0, "Mutation retry ceiling")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe period (e.g., 15s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s)")
	flag.StringVar(&statusAddress, "status-address", "", "Status server address host:port")
	flag.StringVar(&logPath, "log-path", "", "Rotating daemon log file path")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogPath: logPath,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Remote: Remote{
			Address:        remoteAddress,
			APIToken:       apiToken,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Tables:        splitTables(tables),
			Interval:      syncInterval,
			PageLimit:     pageLimit,
			MaxRetries:    maxRetries,
			ProbeInterval: probeInterval,
		},
		Status: Status{
			Address: statusAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// splitTables converts a comma-separated table list into a slice, dropping
// empty entries and surrounding whitespace.
func splitTables(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	tables := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tables = append(tables, p)
		}
	}
	return tables
}
