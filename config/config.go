package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Timing  TimingConfig  `yaml:"timing"`
	Log     LogConfig     `yaml:"log"`
}

// BrowserConfig controls how the Chromium session is launched.
type BrowserConfig struct {
	// BrowserBin overrides the Chromium binary path. When empty the binary
	// is resolved from the bundled and system candidate paths.
	BrowserBin string `yaml:"browser_bin"`

	// SystemBins is the ordered list of system install locations probed
	// after the bundled browser.
	SystemBins []string `yaml:"system_bins"`

	// AllowDownload lets rod download a managed Chromium when no local
	// binary can be found. default: false
	AllowDownload bool `yaml:"allow_download"`

	// NoSandbox disables Chrome's sandbox. default: true
	NoSandbox bool `yaml:"no_sandbox"`

	// UserAgent is sent instead of the headless default.
	UserAgent string `yaml:"user_agent"`

	// AcceptLanguage is sent with every request and used as the browser locale.
	AcceptLanguage string `yaml:"accept_language"`

	// Accept is sent as an extra header on every request.
	Accept string `yaml:"accept"`

	// WindowSize is the "width,height" passed to --window-size.
	WindowSize string `yaml:"window_size"`

	// DebugPortMin and DebugPortMax bound the random remote debugging port.
	DebugPortMin int `yaml:"debug_port_min"` // default: 9000
	DebugPortMax int `yaml:"debug_port_max"` // default: 9999

	// BlockedResourceTypes lists resource types to block, e.g. "Font", "Media".
	// default: none
	BlockedResourceTypes []string `yaml:"blocked_resource_types"`
}

// TimingConfig holds the waits and fixed delays of each site.
type TimingConfig struct {
	// NavigationTimeout bounds navigation plus the load event.
	NavigationTimeout time.Duration `yaml:"navigation_timeout"` // default: 60s

	// AmazonTitleWait bounds the wait for #productTitle.
	AmazonTitleWait time.Duration `yaml:"amazon_title_wait"` // default: 10s

	// PcComponentesSettle is the fixed delay after navigation.
	PcComponentesSettle time.Duration `yaml:"pccomponentes_settle"` // default: 2s

	// ElCorteInglesSettle is the fixed delay after navigation.
	ElCorteInglesSettle time.Duration `yaml:"elcorteingles_settle"` // default: 8s

	// ElCorteInglesChallenge is the extra delay when a bot challenge is seen.
	ElCorteInglesChallenge time.Duration `yaml:"elcorteingles_challenge"` // default: 10s

	// ElCorteInglesTitleWait bounds the wait for #product_detail_title.
	ElCorteInglesTitleWait time.Duration `yaml:"elcorteingles_title_wait"` // default: 20s
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "info"
	Format string `yaml:"format"` // "json" or "text"; default: "text"
}

// DefaultSystemBins is the fixed probe order for installed browsers.
var DefaultSystemBins = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/snap/bin/chromium",
	"C:/Program Files/Google/Chrome/Application/chrome.exe",
	"C:/Program Files (x86)/Google/Chrome/Application/chrome.exe",
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			SystemBins:     append([]string(nil), DefaultSystemBins...),
			NoSandbox:      true,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
			AcceptLanguage: "es-ES,es;q=0.9",
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			WindowSize:     "1920,1080",
			DebugPortMin:   9000,
			DebugPortMax:   9999,
		},
		Timing: TimingConfig{
			NavigationTimeout:      60 * time.Second,
			AmazonTitleWait:        10 * time.Second,
			PcComponentesSettle:    2 * time.Second,
			ElCorteInglesSettle:    8 * time.Second,
			ElCorteInglesChallenge: 10 * time.Second,
			ElCorteInglesTitleWait: 20 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration: defaults, then a .env file in the working
// directory, then the YAML file at path (or $PRICESCOUT_CONFIG when path is
// empty), then environment variables.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("PRICESCOUT_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	b := &c.Browser
	b.BrowserBin = envOr("PRICESCOUT_BROWSER_BIN", b.BrowserBin)
	b.SystemBins = envSliceOr("PRICESCOUT_SYSTEM_BINS", b.SystemBins)
	b.AllowDownload = envBoolOr("PRICESCOUT_BROWSER_DOWNLOAD", b.AllowDownload)
	b.NoSandbox = envBoolOr("PRICESCOUT_NO_SANDBOX", b.NoSandbox)
	b.UserAgent = envOr("PRICESCOUT_USER_AGENT", b.UserAgent)
	b.AcceptLanguage = envOr("PRICESCOUT_ACCEPT_LANGUAGE", b.AcceptLanguage)
	b.Accept = envOr("PRICESCOUT_ACCEPT", b.Accept)
	b.WindowSize = envOr("PRICESCOUT_WINDOW_SIZE", b.WindowSize)
	b.DebugPortMin = envIntOr("PRICESCOUT_DEBUG_PORT_MIN", b.DebugPortMin)
	b.DebugPortMax = envIntOr("PRICESCOUT_DEBUG_PORT_MAX", b.DebugPortMax)
	b.BlockedResourceTypes = envSliceOr("PRICESCOUT_BLOCKED_RESOURCES", b.BlockedResourceTypes)

	t := &c.Timing
	t.NavigationTimeout = envDurationOr("PRICESCOUT_NAV_TIMEOUT", t.NavigationTimeout)
	t.AmazonTitleWait = envDurationOr("PRICESCOUT_AMAZON_TITLE_WAIT", t.AmazonTitleWait)
	t.PcComponentesSettle = envDurationOr("PRICESCOUT_PCCOMPONENTES_SETTLE", t.PcComponentesSettle)
	t.ElCorteInglesSettle = envDurationOr("PRICESCOUT_ECI_SETTLE", t.ElCorteInglesSettle)
	t.ElCorteInglesChallenge = envDurationOr("PRICESCOUT_ECI_CHALLENGE_DELAY", t.ElCorteInglesChallenge)
	t.ElCorteInglesTitleWait = envDurationOr("PRICESCOUT_ECI_TITLE_WAIT", t.ElCorteInglesTitleWait)

	c.Log.Level = envOr("PRICESCOUT_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOr("PRICESCOUT_LOG_FORMAT", c.Log.Format)
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
