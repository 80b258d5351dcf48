// Package runner drives a single extraction run from URL to result.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/pricescout/extractor"
	"github.com/use-agent/pricescout/models"
	"github.com/use-agent/pricescout/site"
	"github.com/use-agent/pricescout/snapshot"
)

// Session is a launched browser holding one page.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Page(ctx context.Context) extractor.Page
	Close() error
}

// AcquireFunc launches a browser session.
type AcquireFunc func(ctx context.Context, headless bool) (Session, error)

// state is a step of a run. Runs only move forward.
type state int

const (
	stateInit state = iota
	stateSessionAcquired
	stateNavigated
	stateExtracted
	stateFinalized
)

var stateNames = [...]string{"init", "session_acquired", "navigated", "extracted", "finalized"}

func (s state) String() string { return stateNames[s] }

// Runner executes runs. A Runner holds no per-run state.
type Runner struct {
	acquire  AcquireFunc
	registry extractor.Registry
}

// New creates a Runner.
func New(acquire AcquireFunc, registry extractor.Registry) *Runner {
	return &Runner{acquire: acquire, registry: registry}
}

// Run performs one extraction and always returns a finalized result. Every
// failure is reported through the result's Error field. A browser session,
// once acquired, is released before Run returns.
func (r *Runner) Run(ctx context.Context, req models.ExtractionRequest) models.ExtractionResult {
	store := site.Classify(req.URL)
	result := models.NewResult(store)

	log := slog.With("run_id", uuid.NewString(), "store", store)
	log.Info("run started", "url", req.URL, "headless", req.Headless)
	start := time.Now()
	defer func() {
		log.Info("run finished",
			"success", result.Success,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}()

	r.step(log, stateInit)

	if err := req.Validate(); err != nil {
		r.fail(log, &result, err, true)
		return result
	}

	ex, ok := r.registry.Lookup(store)
	if !ok {
		err := models.NewScrapeError(models.ErrCodeUnsupportedSite,
			fmt.Sprintf("store not supported: %s", store), nil)
		r.fail(log, &result, err, false)
		return result
	}

	if req.SnapshotPath != "" {
		page, err := snapshot.Load(req.SnapshotPath, req.URL)
		if err != nil {
			r.fail(log, &result, models.NewScrapeError(models.ErrCodeInvalidInput, "failed to load snapshot", err), true)
			return result
		}
		r.extract(ctx, log, ex, page, &result)
		return result
	}

	session, err := r.acquire(ctx, req.Headless)
	if err != nil {
		r.fail(log, &result, asScrapeError(err, models.ErrCodeDriverInit, "failed to start browser"), true)
		return result
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("browser release reported an error", "error", err)
		}
	}()
	r.step(log, stateSessionAcquired)

	if err := session.Navigate(ctx, req.URL); err != nil {
		r.fail(log, &result, asScrapeError(err, models.ErrCodeNavigation, "navigation failed"), true)
		return result
	}
	r.step(log, stateNavigated)

	r.extract(ctx, log, ex, session.Page(ctx), &result)
	return result
}

// extract runs the store's extractor, merges what it found and finalizes.
func (r *Runner) extract(ctx context.Context, log *slog.Logger, ex extractor.Extractor, page extractor.Page, result *models.ExtractionResult) {
	product, err := extractor.Run(ctx, ex, page)
	result.Merge(product)
	if err != nil {
		log.Warn("extraction error", "error", err)
		result.Fail(describe(err))
	}
	r.step(log, stateExtracted)

	result.Finalize(false)
	r.step(log, stateFinalized)
	if !result.Success {
		log.Warn("no price extracted", "error", *result.Error)
	}
}

// fail records err on the result and finalizes it.
func (r *Runner) fail(log *slog.Logger, result *models.ExtractionResult, err error, fatal bool) {
	log.Error("run failed", "error", err)
	result.Fail(describe(err))
	result.Finalize(fatal)
	r.step(log, stateFinalized)
}

func (r *Runner) step(log *slog.Logger, s state) {
	log.Debug("state", "state", s.String())
}

// asScrapeError keeps typed errors as they are and wraps anything else.
func asScrapeError(err error, code, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return models.NewScrapeError(code, msg, err)
}

// describe renders err for the result's error field.
func describe(err error) string {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se.Describe()
	}
	return err.Error()
}
