package models

import (
	"net/url"
	"strings"
)

// ExtractionRequest is the input of a single run. It is built once by the
// CLI and never modified afterwards.
type ExtractionRequest struct {
	// URL is the product page to extract. Required.
	URL string

	// Headless controls whether the browser window is hidden.
	// Default: true; the --no-headless flag turns it off.
	Headless bool

	// SnapshotPath, when set, replays extraction against a saved HTML
	// document instead of launching a browser.
	SnapshotPath string
}

// Validate checks that the URL is present and looks like an http(s) URL.
func (r ExtractionRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return NewScrapeError(ErrCodeMissingArgument, "URL not provided", nil)
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return NewScrapeError(ErrCodeInvalidInput, "invalid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewScrapeError(ErrCodeInvalidInput, "URL must use http or https", nil)
	}
	return nil
}
