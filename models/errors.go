package models

import "fmt"

// Error codes used in the result's error field and in diagnostic logs.
const (
	ErrCodeMissingArgument = "MISSING_ARGUMENT"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeDriverInit      = "DRIVER_INIT"
	ErrCodeNavigation      = "NAVIGATION_FAILED"
	ErrCodeTimeout         = "SCRAPE_TIMEOUT"
	ErrCodeUnsupportedSite = "UNSUPPORTED_SITE"
	ErrCodeExtraction      = "EXTRACTION_FAILED"
	ErrCodePriceNotFound   = "PRICE_NOT_FOUND"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// Describe renders the error the way it is reported to the caller:
// the human message followed by the cause, without the code.
func (e *ScrapeError) Describe() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
