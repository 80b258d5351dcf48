package extractor

import "github.com/use-agent/pricescout/models"

// Reconcile settles the original price against the current price and
// discount:
//   - an explicit original price is kept only when it is above the price,
//     since strike-through selectors sometimes hit the current price;
//   - with a price and a discount but no original price, the original price
//     is derived as price / (1 - discount/100), rounded to cents.
func Reconcile(p models.Product) models.Product {
	if p.OriginalPrice != nil && (p.Price == nil || *p.OriginalPrice <= *p.Price) {
		p.OriginalPrice = nil
	}

	if p.OriginalPrice == nil && p.Price != nil && p.DiscountPercent != nil {
		d := *p.DiscountPercent
		if d > 0 && d < 100 {
			orig := round2(*p.Price / (1 - d/100))
			p.OriginalPrice = &orig
		}
	}
	return p
}
