package extractor

import (
	"context"

	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
)

type pcComponentes struct {
	timing config.TimingConfig
}

func newPcComponentes(timing config.TimingConfig) *pcComponentes {
	return &pcComponentes{timing: timing}
}

func (x *pcComponentes) Store() models.Store { return models.StorePcComponentes }

func (x *pcComponentes) Extract(ctx context.Context, page Page) (p models.Product, err error) {
	defer recoverInto(&err)

	// Prices are rendered client-side shortly after the load event.
	if err := settle(ctx, page, x.timing.PcComponentesSettle); err != nil {
		return p, err
	}

	p.Title = opt(First(
		textOf(page, "h1.h1, h1[data-name='product-title']", readText),
		metaTitle(page),
		readableTitle(page),
	))

	p.Price = opt(First(
		priceAt(page, "#precio-main", readText),
		priceAt(page, ".precio-main", readText),
		priceAt(page, "[data-name='product-price']", readText),
		priceAt(page, ".price", readText),
		metaPrice(page),
	))

	p.Image = opt(First(
		attrOf(page, "#preview img, .product-image img, img[data-name='product-image']", "src", nil),
		metaImage(page),
	))

	return p, nil
}
