// Package config assembles runtime settings for the AdminFiles CLI.
package config

// Config holds runtime settings for the AdminFiles CLI.
//
// Fields:
//   - APIBaseURL: origin of the backend, e.g. "http://localhost:8080".
//   - DatabaseFile: path of the local SQLite file holding the session token.
//   - DownloadDir: directory (relative to the working dir) downloads go to.
type Config struct {
	APIBaseURL   string
	DatabaseFile string
	DownloadDir  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DatabaseFile = "adminfiles.db"
	c.DownloadDir = "downloads"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
