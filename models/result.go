package models

// Store identifies the site variant a URL belongs to.
type Store string

// Known stores. StoreUnknown has no extractor.
const (
	StoreAmazon        Store = "amazon"
	StorePcComponentes Store = "pccomponentes"
	StoreElCorteIngles Store = "elcorteingles"
	StoreUnknown       Store = "unknown"
)

// Product is a partial set of product fields. Extractors return one per run;
// a nil field means no strategy produced a value for it.
type Product struct {
	Title           *string
	Price           *float64
	OriginalPrice   *float64
	DiscountPercent *float64
	Image           *string
}

// ExtractionResult is the single JSON object printed per run.
// Every key is always present; absent values serialise as null.
type ExtractionResult struct {
	// Success is true iff Price is set and no fatal error occurred.
	Success bool `json:"success"`

	// Error describes why the run failed or what went wrong during extraction.
	Error *string `json:"error"`

	Title *string  `json:"title"`
	Price *float64 `json:"price"`

	// OriginalPrice is the pre-discount price, explicit or derived.
	OriginalPrice *float64 `json:"original_price"`

	// DiscountPercent is the discount in percent (20 means 20%).
	DiscountPercent *float64 `json:"discount"`

	Image *string `json:"image"`
	Store Store   `json:"store"`
}

// NewResult returns an empty result for the given store.
func NewResult(store Store) ExtractionResult {
	return ExtractionResult{Store: store}
}

// Merge copies every field set in p into the result. Fields already set on
// the result are overwritten.
func (r *ExtractionResult) Merge(p Product) {
	if p.Title != nil {
		r.Title = p.Title
	}
	if p.Price != nil {
		r.Price = p.Price
	}
	if p.OriginalPrice != nil {
		r.OriginalPrice = p.OriginalPrice
	}
	if p.DiscountPercent != nil {
		r.DiscountPercent = p.DiscountPercent
	}
	if p.Image != nil {
		r.Image = p.Image
	}
}

// Fail records msg as the result's error. It does not touch Success.
func (r *ExtractionResult) Fail(msg string) {
	r.Error = &msg
}

// MsgPriceNotFound is recorded when a run ends without a price and without
// a more specific error.
const MsgPriceNotFound = "price not found"

// Finalize sets Success from the presence of a price. When the run failed
// and no error has been recorded yet, MsgPriceNotFound is recorded.
func (r *ExtractionResult) Finalize(fatal bool) {
	r.Success = !fatal && r.Price != nil
	if !r.Success && r.Error == nil {
		r.Fail(MsgPriceNotFound)
	}
}
