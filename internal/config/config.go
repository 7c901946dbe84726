package config

import "time"

// Config holds runtime settings for the podlift CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API (no trailing slash).
//   - RequestTimeout: per-request timeout for API calls.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - CacheTTL: how long a fetched record counts as fresh before going stale.
//   - DataFile: path of the local SQLite file holding snapshots and auth metadata.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	CacheTTL            time.Duration
	DataFile            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.RequestTimeout = 12 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.CacheTTL = 30 * time.Second
	c.DataFile = "podlift.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
