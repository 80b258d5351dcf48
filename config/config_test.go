package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Timing.AmazonTitleWait)
	assert.Equal(t, 2*time.Second, cfg.Timing.PcComponentesSettle)
	assert.Equal(t, 8*time.Second, cfg.Timing.ElCorteInglesSettle)
	assert.Equal(t, 10*time.Second, cfg.Timing.ElCorteInglesChallenge)
	assert.Equal(t, 20*time.Second, cfg.Timing.ElCorteInglesTitleWait)
	assert.Equal(t, 9000, cfg.Browser.DebugPortMin)
	assert.Equal(t, 9999, cfg.Browser.DebugPortMax)
	assert.Equal(t, DefaultSystemBins, cfg.Browser.SystemBins)
	assert.False(t, cfg.Browser.AllowDownload)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRICESCOUT_BROWSER_BIN", "/opt/chrome/chrome")
	t.Setenv("PRICESCOUT_ECI_SETTLE", "3s")
	t.Setenv("PRICESCOUT_DEBUG_PORT_MIN", "9100")
	t.Setenv("PRICESCOUT_BLOCKED_RESOURCES", "Font, Media")
	t.Setenv("PRICESCOUT_BROWSER_DOWNLOAD", "true")
	t.Setenv("PRICESCOUT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/opt/chrome/chrome", cfg.Browser.BrowserBin)
	assert.Equal(t, 3*time.Second, cfg.Timing.ElCorteInglesSettle)
	assert.Equal(t, 9100, cfg.Browser.DebugPortMin)
	assert.Equal(t, []string{"Font", "Media"}, cfg.Browser.BlockedResourceTypes)
	assert.True(t, cfg.Browser.AllowDownload)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidEnvKeepsDefault(t *testing.T) {
	t.Setenv("PRICESCOUT_NAV_TIMEOUT", "soon")
	t.Setenv("PRICESCOUT_DEBUG_PORT_MAX", "many")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.Timing.NavigationTimeout)
	assert.Equal(t, 9999, cfg.Browser.DebugPortMax)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricescout.yml")
	yml := `
browser:
  browser_bin: /usr/local/bin/chromium
  window_size: "1280,800"
timing:
  amazon_title_wait: 4s
  elcorteingles_challenge: 15s
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("PRICESCOUT_ECI_CHALLENGE_DELAY", "12s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/chromium", cfg.Browser.BrowserBin)
	assert.Equal(t, "1280,800", cfg.Browser.WindowSize)
	assert.Equal(t, 4*time.Second, cfg.Timing.AmazonTitleWait)
	assert.Equal(t, 12*time.Second, cfg.Timing.ElCorteInglesChallenge)
	assert.Equal(t, "json", cfg.Log.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 8*time.Second, cfg.Timing.ElCorteInglesSettle)
}

func TestLoad_ConfigFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("PRICESCOUT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("timing: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
