package extractor

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// Last-resort strategies shared by every store. Product pages usually carry
// Open Graph tags even when the visible layout changes.

func metaContent(page Page, property string) Strategy[string] {
	return attrOf(page, `meta[property="`+property+`"]`, "content", nil)
}

func metaTitle(page Page) Strategy[string] {
	return metaContent(page, "og:title")
}

func metaImage(page Page) Strategy[string] {
	return metaContent(page, "og:image")
}

// metaPrice reads og:price:amount, then product:price:amount.
func metaPrice(page Page) Strategy[float64] {
	return func() (float64, bool) {
		for _, prop := range []string{"og:price:amount", "product:price:amount"} {
			raw, ok := metaContent(page, prop)()
			if !ok {
				continue
			}
			if p, ok := parseMetaPrice(raw); ok && p > 0 {
				return p, true
			}
		}
		return 0, false
	}
}

// readableTitle runs Readability over the rendered document and returns the
// article title it settles on.
func readableTitle(page Page) Strategy[string] {
	return func() (string, bool) {
		rawHTML, err := page.HTML()
		if err != nil || rawHTML == "" {
			return "", false
		}
		parsedURL, err := nurl.Parse(page.URL())
		if err != nil {
			return "", false
		}
		article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
		if err != nil {
			slog.Debug("readability: title extraction failed", "url", page.URL(), "error", err)
			return "", false
		}
		title := strings.TrimSpace(article.Title)
		return title, title != ""
	}
}
