package browser

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/use-agent/pricescout/extractor"
	"github.com/use-agent/pricescout/models"
)

// Session owns one launched Chromium process and the single page a run
// uses. It is not safe for concurrent use.
type Session struct {
	launcher   *launcher.Launcher
	browser    *rod.Browser
	page       *rod.Page
	router     *rod.HijackRouter
	navTimeout time.Duration
	url        string
	closed     bool
}

// Navigate loads url and waits for the load event, bounded by the
// configured navigation timeout.
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx)
	if s.navTimeout > 0 {
		p = p.Timeout(s.navTimeout)
		defer p.CancelTimeout()
	}

	slog.Info("navigating", "url", url)
	if err := p.Navigate(url); err != nil {
		return categorizeError(err, "navigation to target URL failed")
	}
	if err := p.WaitLoad(); err != nil {
		return categorizeError(err, "page did not finish loading")
	}
	s.url = url
	return nil
}

// Page exposes the loaded page to the extractors. Calls made through it
// are bound to ctx.
func (s *Session) Page(ctx context.Context) extractor.Page {
	return &page{page: s.page.Context(ctx), url: s.url}
}

// Close disconnects from the browser, kills the process and removes its
// temporary profile. Calling it more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.router != nil {
		_ = s.router.Stop()
	}

	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
	slog.Debug("browser released")
	return err
}

// categorizeError wraps raw errors into typed ScrapeErrors.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "run canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
