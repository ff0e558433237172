package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when the merged configuration leaves
// a policy value unset.
const (
	defaultSyncInterval   = 5 * time.Minute
	defaultProbeInterval  = 15 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultPageLimit      = 500
	defaultMaxRetries     = 3
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// LogPath is the rotating log file path; empty means stdout.
	LogPath string
	// Version is the application version string.
	Version string
}

// ClientRemote holds network settings used by the remote adapter layer.
type ClientRemote struct {
	// Address is the remote row-store base URL.
	Address string
	// APIToken is the opaque bearer token forwarded with every request.
	APIToken string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the local store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains synchronization policy settings.
type ClientSync struct {
	// Tables is the synchronized table list in priority order.
	Tables []string
	// Interval defines how often the background sync job runs.
	Interval time.Duration
	// PageLimit bounds rows fetched per table per pull.
	PageLimit int
	// MaxRetries is the mutation retry ceiling before an item is flagged
	// for manual intervention.
	MaxRetries int
	// ProbeInterval defines how often the network monitor probes
	// connectivity.
	ProbeInterval time.Duration
}

// ClientStatus contains local status-surface settings.
type ClientStatus struct {
	// Address is the status server listen address; empty disables it.
	Address string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Remote contains remote row-store endpoint settings.
	Remote ClientRemote
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains synchronization policy settings.
	Sync ClientSync
	// Status contains status surface settings.
	Status ClientStatus
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies defaults for unset policy values,
// and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			LogPath: cfg.App.LogPath,
			Version: cfg.App.Version,
		},
		Remote: ClientRemote{
			Address:        cfg.Remote.Address,
			APIToken:       cfg.Remote.APIToken,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Tables:        cfg.Sync.Tables,
			Interval:      cfg.Sync.Interval,
			PageLimit:     cfg.Sync.PageLimit,
			MaxRetries:    cfg.Sync.MaxRetries,
			ProbeInterval: cfg.Sync.ProbeInterval,
		},
		Status: ClientStatus{
			Address: cfg.Status.Address,
		},
	}

	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = defaultSyncInterval
	}
	if cfg.Sync.ProbeInterval <= 0 {
		cfg.Sync.ProbeInterval = defaultProbeInterval
	}
	if cfg.Sync.PageLimit <= 0 {
		cfg.Sync.PageLimit = defaultPageLimit
	}
	if cfg.Sync.MaxRetries <= 0 {
		cfg.Sync.MaxRetries = defaultMaxRetries
	}
	if cfg.Remote.RequestTimeout <= 0 {
		cfg.Remote.RequestTimeout = defaultRequestTimeout
	}
}
