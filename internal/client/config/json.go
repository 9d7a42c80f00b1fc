package config

import (
	"encoding/json"
	"os"

	"github.com/adminfiles/cli/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type jsonConfig struct {
	APIBaseURL   string `json:"api_base_url"`
	DatabaseFile string `json:"database_file"`
	DownloadDir  string `json:"download_dir"`
}

// parseJSON overlays cfg with values from the JSON file named by the -c or
// -config flag. No flag, no JSON stage. Read or unmarshal errors panic;
// a config file that exists but cannot be used is a misconfiguration, not a
// condition to continue past.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
}
