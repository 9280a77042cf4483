package dataflows

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure.
type Kind string

const (
	// KindDataUnavailable: ticker not found or empty price history. Fatal
	// for the analysis run.
	KindDataUnavailable Kind = "data_unavailable"
	// KindNewsUnavailable: every news source came back empty. Non-fatal,
	// the news section is simply absent.
	KindNewsUnavailable Kind = "news_unavailable"
	// KindIndicatorFailed: price data could not feed the indicator math.
	KindIndicatorFailed Kind = "indicator_computation_failed"
)

// Error is a tagged failure surfaced to the presentation layer instead of
// a panic or bare error string.
type Error struct {
	Kind    Kind
	Ticker  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Ticker != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Ticker, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a tagged error.
func NewError(kind Kind, ticker, message string, err error) *Error {
	return &Error{Kind: kind, Ticker: ticker, Message: message, Err: err}
}

// KindOf extracts the failure kind from an error chain, or "" if the error
// is not a gateway failure.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
