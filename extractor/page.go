package extractor

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Page.WaitFor when no element matched in time.
var ErrNotFound = errors.New("element not found")

// Page is a rendered document the extractors query. The live browser and
// saved HTML snapshots both implement it.
type Page interface {
	// Find returns the first element matching the CSS selector without
	// waiting for it to appear.
	Find(selector string) (Element, bool)

	// WaitFor blocks up to timeout for an element matching selector.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error)

	// HTML returns the current serialised document.
	HTML() (string, error)

	// URL is the address the page was loaded from.
	URL() string

	// Sleep pauses for d, returning early with ctx's error when ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// Element is a single matched node. Reads never fail; a value that cannot be
// read comes back empty.
type Element interface {
	// Text is the rendered text of the element.
	Text() string

	// TextContent is the raw text of the element and its descendants,
	// including visually hidden nodes.
	TextContent() string

	// Attr returns the named attribute, or "" when absent.
	Attr(name string) string
}
