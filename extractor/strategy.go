package extractor

import (
	"context"
	"strings"
	"time"
)

// Strategy is one way of reading a field. It reports false when the element
// is missing or its value is empty or unparsable.
type Strategy[T any] func() (T, bool)

// First runs the strategies in order and returns the first value produced.
func First[T any](strategies ...Strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// opt turns a (value, ok) pair into an optional field.
func opt[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// reader picks which text of an element a strategy reads.
type reader func(Element) string

func readText(el Element) string { return el.Text() }

// readContentOrText prefers textContent, which includes visually hidden
// price spans, and falls back to the rendered text.
func readContentOrText(el Element) string {
	if s := strings.TrimSpace(el.TextContent()); s != "" {
		return s
	}
	return el.Text()
}

// textOf reads the trimmed text of the first element matching sel.
func textOf(page Page, sel string, read reader) Strategy[string] {
	return func() (string, bool) {
		el, ok := page.Find(sel)
		if !ok {
			return "", false
		}
		s := strings.TrimSpace(read(el))
		return s, s != ""
	}
}

// waitText waits up to timeout for sel and reads its trimmed text.
func waitText(ctx context.Context, page Page, sel string, timeout time.Duration) Strategy[string] {
	return func() (string, bool) {
		el, err := page.WaitFor(ctx, sel, timeout)
		if err != nil {
			return "", false
		}
		s := strings.TrimSpace(el.Text())
		return s, s != ""
	}
}

// priceAt parses the first element matching sel as a positive price.
func priceAt(page Page, sel string, read reader) Strategy[float64] {
	return func() (float64, bool) {
		el, ok := page.Find(sel)
		if !ok {
			return 0, false
		}
		p, ok := ParsePrice(read(el))
		return p, ok && p > 0
	}
}

// discountAt parses the first element matching sel as a positive percentage.
func discountAt(page Page, sel string) Strategy[float64] {
	return func() (float64, bool) {
		el, ok := page.Find(sel)
		if !ok {
			return 0, false
		}
		d, ok := ParseDiscount(el.Text())
		return d, ok && d > 0
	}
}

// attrOf reads attribute name of the first element matching sel. accept,
// when set, must approve the value.
func attrOf(page Page, sel, name string, accept func(string) bool) Strategy[string] {
	return func() (string, bool) {
		el, ok := page.Find(sel)
		if !ok {
			return "", false
		}
		v := strings.TrimSpace(el.Attr(name))
		if v == "" {
			return "", false
		}
		if accept != nil && !accept(v) {
			return "", false
		}
		return v, true
	}
}
