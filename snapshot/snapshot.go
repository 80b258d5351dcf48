// Package snapshot serves saved HTML documents through the extractor.Page
// interface so extraction can be replayed without a browser.
package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/pricescout/extractor"
)

// Page is a static, already rendered document.
type Page struct {
	doc     *goquery.Document
	rawHTML string
	url     string
	base    *url.URL
}

var _ extractor.Page = (*Page)(nil)

// Load reads the HTML file at path. sourceURL is reported as the page URL
// and used to resolve relative src and href attributes.
func Load(path, sourceURL string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Parse(string(data), sourceURL)
}

// Parse builds a Page from raw HTML.
func Parse(rawHTML, sourceURL string) (*Page, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	base, _ := url.Parse(sourceURL)
	return &Page{
		doc:     goquery.NewDocumentFromNode(root),
		rawHTML: rawHTML,
		url:     sourceURL,
		base:    base,
	}, nil
}

// Find returns the first element in document order matching selector.
// Selectors that do not compile match nothing.
func (p *Page) Find(selector string) (extractor.Element, bool) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, false
	}
	sel := p.doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &element{sel: sel, base: p.base}, true
}

// WaitFor does not wait: a static document never changes.
func (p *Page) WaitFor(_ context.Context, selector string, _ time.Duration) (extractor.Element, error) {
	if el, ok := p.Find(selector); ok {
		return el, nil
	}
	return nil, fmt.Errorf("%w: %s", extractor.ErrNotFound, selector)
}

// HTML returns the document as it was loaded.
func (p *Page) HTML() (string, error) {
	return p.rawHTML, nil
}

// URL returns the source URL given to Load or Parse.
func (p *Page) URL() string {
	return p.url
}

// Sleep skips settle delays; only a done context is reported.
func (p *Page) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type element struct {
	sel  *goquery.Selection
	base *url.URL
}

func (e *element) Text() string {
	return e.sel.Text()
}

func (e *element) TextContent() string {
	return e.sel.Text()
}

// Attr resolves src and href against the page URL, as a browser reports them.
func (e *element) Attr(name string) string {
	v, ok := e.sel.Attr(name)
	if !ok {
		return ""
	}
	if (name == "src" || name == "href") && e.base != nil && v != "" {
		if ref, err := url.Parse(v); err == nil {
			return e.base.ResolveReference(ref).String()
		}
	}
	return v
}
