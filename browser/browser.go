// Package browser launches and drives the Chromium session a run extracts
// from.
package browser

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
)

// hideWebdriver removes the navigator.webdriver marker on every new document.
const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// errNoBrowser is returned when no Chromium binary is found and downloading
// is disabled.
var errNoBrowser = errors.New("no Chromium binary found; set PRICESCOUT_BROWSER_BIN or PRICESCOUT_BROWSER_DOWNLOAD=true")

// Manager launches browser sessions with a fixed configuration.
type Manager struct {
	cfg        config.BrowserConfig
	navTimeout time.Duration
}

// NewManager creates a Manager. navTimeout bounds each Session.Navigate.
func NewManager(cfg config.BrowserConfig, navTimeout time.Duration) *Manager {
	return &Manager{cfg: cfg, navTimeout: navTimeout}
}

// Acquire launches Chromium, connects to it and opens the page the run will
// use. Any failure is a DRIVER_INIT ScrapeError and leaves no process behind.
// The caller must Close the returned session.
func (m *Manager) Acquire(ctx context.Context, headless bool) (*Session, error) {
	bin, err := resolveBin(m.cfg, executableDir(), fileExists, launcher.LookPath)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeDriverInit, "failed to locate browser", err)
	}

	port := debugPort(m.cfg.DebugPortMin, m.cfg.DebugPortMax)
	l := launcher.New().
		Context(ctx).
		NoSandbox(m.cfg.NoSandbox).
		RemoteDebuggingPort(port)
	if bin != "" {
		l = l.Bin(bin)
	}

	if headless {
		l.Set(flags.Headless, "new")
		slog.Info("browser mode: headless")
	} else {
		l.Headless(false)
		slog.Info("browser mode: visible window")
	}

	// ── Fingerprint reduction ────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("disable-software-rasterizer"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-notifications"))
	l.Set(flags.Flag("no-first-run"))
	if m.cfg.WindowSize != "" {
		l.Set(flags.Flag("window-size"), m.cfg.WindowSize)
	}
	if m.cfg.UserAgent != "" {
		l.Set(flags.Flag("user-agent"), m.cfg.UserAgent)
	}
	if lang := primaryLanguage(m.cfg.AcceptLanguage); lang != "" {
		l.Set(flags.Flag("lang"), lang)
	}
	l.Preferences(preferences())

	controlURL, err := l.Launch()
	if err != nil {
		_ = os.RemoveAll(l.Get(flags.UserDataDir))
		return nil, models.NewScrapeError(models.ErrCodeDriverInit, "failed to launch browser", err)
	}
	slog.Debug("browser launched", "bin", bin, "port", port, "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, models.NewScrapeError(models.ErrCodeDriverInit, "failed to connect to browser", err)
	}

	s := &Session{
		launcher:   l,
		browser:    b,
		navTimeout: m.navTimeout,
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, models.NewScrapeError(models.ErrCodeDriverInit, "failed to open page", err)
	}
	s.page = page

	m.preparePage(page)
	s.router = setupHijack(page, m.cfg.BlockedResourceTypes)

	return s, nil
}

// preparePage installs the stealth scripts and request headers. It must run
// before the first navigation. Failures are logged and tolerated.
func (m *Manager) preparePage(page *rod.Page) {
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}
	if _, err := page.EvalOnNewDocument(hideWebdriver); err != nil {
		slog.Warn("webdriver masking failed", "error", err)
	}

	if m.cfg.UserAgent != "" || m.cfg.AcceptLanguage != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      m.cfg.UserAgent,
			AcceptLanguage: m.cfg.AcceptLanguage,
		}); err != nil {
			slog.Warn("user agent override failed", "error", err)
		}
	}

	headers := map[string]string{}
	if m.cfg.Accept != "" {
		headers["Accept"] = m.cfg.Accept
	}
	if m.cfg.AcceptLanguage != "" {
		headers["Accept-Language"] = m.cfg.AcceptLanguage
	}
	if len(headers) > 0 {
		if err := (proto.NetworkSetExtraHTTPHeaders{Headers: toHeadersMap(headers)}).Call(page); err != nil {
			slog.Warn("extra headers failed", "error", err)
		}
	}
}

// resolveBin picks the Chromium binary. The explicit override wins, then a
// browser bundled next to the executable, then the system install locations
// in order, then rod's own lookup. An empty result with a nil error means
// rod may download a managed browser.
func resolveBin(cfg config.BrowserConfig, exeDir string, exists func(string) bool, lookPath func() (string, bool)) (string, error) {
	if cfg.BrowserBin != "" {
		if !exists(cfg.BrowserBin) {
			return "", errors.New("configured browser binary does not exist: " + cfg.BrowserBin)
		}
		return cfg.BrowserBin, nil
	}

	var candidates []string
	if exeDir != "" {
		candidates = append(candidates,
			filepath.Join(exeDir, "chrome"),
			filepath.Join(exeDir, "chromium"),
			filepath.Join(exeDir, "chrome-linux", "chrome"),
			filepath.Join(exeDir, "chrome-win", "chrome.exe"),
		)
	}
	candidates = append(candidates, cfg.SystemBins...)

	for _, c := range candidates {
		if exists(c) {
			return c, nil
		}
	}

	if found, ok := lookPath(); ok {
		return found, nil
	}
	if cfg.AllowDownload {
		return "", nil
	}
	return "", errNoBrowser
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// debugPort picks a random port in [lo, hi] so parallel runs on one host do
// not collide.
func debugPort(lo, hi int) int {
	if lo <= 0 {
		lo = 9000
	}
	if hi < lo {
		hi = lo
	}
	return lo + rand.Intn(hi-lo+1)
}

// primaryLanguage returns the first tag of an Accept-Language value.
func primaryLanguage(acceptLanguage string) string {
	tag, _, _ := strings.Cut(acceptLanguage, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.TrimSpace(tag)
}

// preferences disables the password manager and notification prompts.
func preferences() string {
	return gson.New(map[string]any{
		"credentials_enable_service": false,
		"profile": map[string]any{
			"password_manager_enabled": false,
			"default_content_setting_values": map[string]any{
				"notifications": 2,
			},
		},
	}).JSON("", "")
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
