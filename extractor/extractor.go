// Package extractor holds the per-store extraction routines and the shared
// selection, parsing and reconciliation rules they are built from.
package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/models"
	"github.com/use-agent/pricescout/site"
)

// Extractor reads product fields from a page that is already loaded.
// Extract returns whatever fields it collected even when it also returns an
// error.
type Extractor interface {
	Store() models.Store
	Extract(ctx context.Context, page Page) (models.Product, error)
}

// Registry maps each supported store to its extractor.
type Registry map[models.Store]Extractor

// NewRegistry builds the registry of every supported store.
func NewRegistry(timing config.TimingConfig) Registry {
	r := Registry{}
	for _, ex := range []Extractor{
		newAmazon(timing),
		newPcComponentes(timing),
		newElCorteIngles(timing),
	} {
		r[ex.Store()] = ex
	}
	return r
}

// Lookup returns the extractor for store.
func (r Registry) Lookup(store models.Store) (Extractor, bool) {
	ex, ok := r[store]
	return ex, ok
}

// Run executes ex against page and reconciles the prices it found. Any error
// is wrapped as an EXTRACTION_FAILED ScrapeError naming the store; the
// fields collected before the failure are still returned.
func Run(ctx context.Context, ex Extractor, page Page) (models.Product, error) {
	p, err := ex.Extract(ctx, page)
	p = Reconcile(p)
	if err != nil {
		return p, models.NewScrapeError(
			models.ErrCodeExtraction,
			"error extracting "+site.DisplayName(ex.Store()),
			err,
		)
	}
	return p, nil
}

// recoverInto converts a panic in an extraction routine into *err so the
// routine's named results are still returned. Use as
// `defer recoverInto(&err)`.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}

// settle pauses the run for d. A zero or negative d is a no-op.
func settle(ctx context.Context, page Page, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	return page.Sleep(ctx, d)
}
