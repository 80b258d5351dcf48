package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
)

type elCorteIngles struct {
	timing config.TimingConfig
}

func newElCorteIngles(timing config.TimingConfig) *elCorteIngles {
	return &elCorteIngles{timing: timing}
}

func (x *elCorteIngles) Store() models.Store { return models.StoreElCorteIngles }

func (x *elCorteIngles) Extract(ctx context.Context, page Page) (p models.Product, err error) {
	defer recoverInto(&err)

	slog.Info("waiting for El Corte Inglés to render", "delay", x.timing.ElCorteInglesSettle)
	if err := settle(ctx, page, x.timing.ElCorteInglesSettle); err != nil {
		return p, err
	}

	content, err := page.HTML()
	if err != nil {
		return p, fmt.Errorf("reading page content: %w", err)
	}
	if challenged(content) {
		slog.Warn("bot challenge detected, waiting for it to resolve",
			"delay", x.timing.ElCorteInglesChallenge,
		)
		if err := settle(ctx, page, x.timing.ElCorteInglesChallenge); err != nil {
			return p, err
		}
	}

	p.Title = opt(First(
		waitText(ctx, page, "#product_detail_title", x.timing.ElCorteInglesTitleWait),
		textOf(page, "h1.product-title, h1", readText),
		metaTitle(page),
		readableTitle(page),
	))
	if p.Title != nil {
		slog.Info("title found", "title", truncate(*p.Title, 50))
	} else {
		slog.Warn("title not found")
	}

	p.Price = opt(First(
		priceAt(page, ".price-sale", readText),
		priceAt(page, "[class*='price']", readText),
		metaPrice(page),
	))

	p.DiscountPercent = opt(First(
		discountAt(page, ".price-discount"),
	))

	p.Image = opt(First(
		attrOf(page, "picture img", "src", isRasterImage),
		metaImage(page),
	))

	return p, nil
}

// challenged reports whether the rendered page looks like an Akamai
// interstitial rather than the product page.
func challenged(content string) bool {
	return strings.Contains(content, "Access Denied") ||
		strings.Contains(strings.ToLower(content), "akam")
}

// isRasterImage filters out placeholder SVGs and data URIs.
func isRasterImage(src string) bool {
	return strings.Contains(src, ".jpg") || strings.Contains(src, ".png")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
