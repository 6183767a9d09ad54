package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeFetch represents page fetch errors after exhausting retries
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeProbe represents existence probe errors
	ErrorTypeProbe ErrorType = "probe"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypePersistence represents database write errors
	ErrorTypePersistence ErrorType = "persistence"
)

// ScrapeError represents a harvester-specific error
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error must terminate the run
func (e *ScrapeError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeConfiguration, ErrorTypeFetch, ErrorTypePersistence:
		return true
	default:
		return false
	}
}

// AsScrapeError returns the ScrapeError in err's chain, if any
func AsScrapeError(err error) (*ScrapeError, bool) {
	var serr *ScrapeError
	if stderrors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// NewFetch creates a new fetch error
func NewFetch(url, message string, err error) *ScrapeError {
	return New(ErrorTypeFetch, url, message, err)
}

// NewProbe creates a new probe error
func NewProbe(url, message string, err error) *ScrapeError {
	return New(ErrorTypeProbe, url, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(url, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, url, message, err)
}

// NewPersistence creates a new persistence error
func NewPersistence(table, message string, err error) *ScrapeError {
	return New(ErrorTypePersistence, table, message, err)
}
