package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents page navigation and load errors
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeExtract represents single-item extraction errors
	ErrorTypeExtract ErrorType = "extract"
	// ErrorTypePipeline represents unexpected errors inside one retailer's pipeline
	ErrorTypePipeline ErrorType = "pipeline"
	// ErrorTypeExport represents report export errors
	ErrorTypeExport ErrorType = "export"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a retailer-scoped scraping error
type ScrapeError struct {
	Type     ErrorType
	Retailer string
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Retailer, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Retailer, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch:
		return true
	case ErrorTypeRateLimit:
		return false
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, retailer, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:     errType,
		Retailer: retailer,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(retailer, message string, err error) *ScrapeError {
	return New(ErrorTypeFetch, retailer, message, err)
}

// NewExtract creates a new extraction error
func NewExtract(retailer, message string, err error) *ScrapeError {
	return New(ErrorTypeExtract, retailer, message, err)
}

// NewPipeline creates a new pipeline error
func NewPipeline(retailer, message string, err error) *ScrapeError {
	return New(ErrorTypePipeline, retailer, message, err)
}

// NewExport creates a new export error
func NewExport(message string, err error) *ScrapeError {
	return New(ErrorTypeExport, "", message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(retailer string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, retailer, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// IsRetryableError reports whether err allows another fetch attempt.
// Errors outside the taxonomy are treated as retryable.
func IsRetryableError(err error) bool {
	var se *ScrapeError
	if stderrors.As(err, &se) {
		return se.IsRetryable()
	}
	return true
}
