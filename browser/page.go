package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"github.com/use-agent/pricescout/extractor"
)

// page adapts a live rod page to extractor.Page.
type page struct {
	page *rod.Page
	url  string
}

var _ extractor.Page = (*page)(nil)

// Find queries the current DOM once, without rod's retry sleeper.
func (p *page) Find(selector string) (extractor.Element, bool) {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return nil, false
	}
	return &element{el: el}, true
}

func (p *page) WaitFor(ctx context.Context, selector string, timeout time.Duration) (extractor.Element, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := p.page.Context(waitCtx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", extractor.ErrNotFound, selector, err)
	}
	// Detach the element from the wait deadline before handing it out.
	return &element{el: el.Context(ctx)}, nil
}

func (p *page) HTML() (string, error) {
	return p.page.HTML()
}

func (p *page) URL() string {
	return p.url
}

func (p *page) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// element adapts a rod element. Read errors yield empty strings.
type element struct {
	el *rod.Element
}

func (e *element) Text() string {
	s, err := e.el.Text()
	if err != nil {
		return ""
	}
	return s
}

func (e *element) TextContent() string {
	v, err := e.el.Property("textContent")
	if err != nil || v.Nil() {
		return ""
	}
	return v.Str()
}

// Attr prefers the DOM property, which holds resolved URLs for src and
// href, and falls back to the raw attribute.
func (e *element) Attr(name string) string {
	if v, err := e.el.Property(name); err == nil && !v.Nil() {
		if s := v.Str(); s != "" {
			return s
		}
	}
	a, err := e.el.Attribute(name)
	if err != nil || a == nil {
		return ""
	}
	return *a
}
