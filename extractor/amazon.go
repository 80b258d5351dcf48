package extractor

import (
	"context"

	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
)

type amazon struct {
	timing config.TimingConfig
}

func newAmazon(timing config.TimingConfig) *amazon {
	return &amazon{timing: timing}
}

func (a *amazon) Store() models.Store { return models.StoreAmazon }

func (a *amazon) Extract(ctx context.Context, page Page) (p models.Product, err error) {
	defer recoverInto(&err)

	p.Title = opt(First(
		waitText(ctx, page, "#productTitle", a.timing.AmazonTitleWait),
		metaTitle(page),
		readableTitle(page),
	))

	p.Price = opt(First(
		priceAt(page, ".a-price-whole", readContentOrText),
		priceAt(page, ".a-price .a-offscreen", readContentOrText),
		priceAt(page, "#priceblock_ourprice", readContentOrText),
		priceAt(page, "#priceblock_dealprice", readContentOrText),
		metaPrice(page),
	))

	// The strike-through list price; Reconcile drops it unless it is above
	// the current price.
	p.OriginalPrice = opt(First(
		priceAt(page, ".a-price.a-text-price span.a-offscreen", readContentOrText),
	))

	p.DiscountPercent = opt(First(
		discountAt(page, ".savingsPercentage"),
	))

	p.Image = opt(First(
		attrOf(page, "#landingImage", "src", nil),
		attrOf(page, "#imageBlock img", "src", nil),
		metaImage(page),
	))

	return p, nil
}
