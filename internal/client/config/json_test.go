package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o660))
	return path
}

func TestParseJSON_NoFlagIsNoop(t *testing.T) {
	withArgs(t)

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
}

func TestParseJSON_OverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_base_url": "http://files.local:9090",
		"download_dir": "incoming"
	}`)
	withArgs(t, "-c", path)

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, "http://files.local:9090", cfg.APIBaseURL)
	assert.Equal(t, "incoming", cfg.DownloadDir)
	assert.Equal(t, "adminfiles.db", cfg.DatabaseFile, "unset fields keep defaults")
}

func TestParseJSON_PanicsOnMissingFile(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))

	var cfg Config
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJSON(&cfg) })
}

func TestParseJSON_PanicsOnBadJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	withArgs(t, "-c", path)

	var cfg Config
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJSON(&cfg) })
}
