// Package errors defines the typed error taxonomy for the carworth
// pipeline. Errors fall into three families: validation errors raised
// before any network access, fetch errors that abort a partially executed
// window plan, and the no-data error raised when an entire range produced
// nothing usable. Every error carries the offending range or window so
// callers can produce an actionable message without re-deriving context.
package errors

import (
	"errors"
	"fmt"

	"github.com/carworth/carworth/internal/dates"
)

// ValidationKind classifies a date-range validation failure.
type ValidationKind string

const (
	// InvalidFormat means a raw date string did not parse as YYYY-MM-DD.
	InvalidFormat ValidationKind = "invalid_format"
	// InvalidOrder means the start date is after the end date.
	InvalidOrder ValidationKind = "invalid_order"
	// TooOld means the start date is more than the maximum lookback before today.
	TooOld ValidationKind = "too_old"
	// FutureEnd means the end date is strictly after today.
	FutureEnd ValidationKind = "future_end"
)

// ValidationError reports a rejected date range. It is raised before any
// network access and has no side effects and no wrapped cause.
type ValidationError struct {
	Kind   ValidationKind
	Input  string // the raw value that was rejected, when one exists
	Detail string // human-readable constraint that was violated
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid date range (%s): %s: %q", e.Kind, e.Detail, e.Input)
	}
	return fmt.Sprintf("invalid date range (%s): %s", e.Kind, e.Detail)
}

// Is matches any *ValidationError of the same kind, so tests and callers
// can use errors.Is with a kind-only target.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && e.Kind == t.Kind
}

// NewValidationError builds a ValidationError for the given kind.
func NewValidationError(kind ValidationKind, input, detail string) *ValidationError {
	return &ValidationError{Kind: kind, Input: input, Detail: detail}
}

// FetchKind classifies a fatal per-window fetch failure.
type FetchKind string

const (
	// FetchNetwork covers transport failures and unexpected HTTP statuses.
	FetchNetwork FetchKind = "network"
	// FetchAuth means the session credential was rejected.
	FetchAuth FetchKind = "auth"
	// FetchRateLimit means the provider throttled the request.
	FetchRateLimit FetchKind = "rate_limit"
	// FetchParse means the response could not be read as price points.
	FetchParse FetchKind = "parse"
)

// FetchError reports a failed window fetch. It aborts the remaining plan:
// the orchestrator never produces partial output from a partially fetched
// range. Window identifies which fetch failed; Err is the underlying cause.
type FetchError struct {
	Kind   FetchKind
	Window dates.Range
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching window %s: %s: %v", e.Window, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches any *FetchError of the same kind, in addition to the usual
// unwrap chain.
func (e *FetchError) Is(target error) bool {
	if t, ok := target.(*FetchError); ok {
		return e.Kind == t.Kind
	}
	return errors.Is(e.Err, target)
}

// NewFetchError wraps cause as a FetchError for the given window.
func NewFetchError(kind FetchKind, window dates.Range, cause error) *FetchError {
	return &FetchError{Kind: kind, Window: window, Err: cause}
}

// NoDataError is raised after all windows were attempted and the merged
// series is still empty. It is the one condition that hard-stops the
// pipeline instead of forward-filling.
type NoDataError struct {
	Range dates.Range
}

// Error implements the error interface.
func (e *NoDataError) Error() string {
	return fmt.Sprintf("no price data available for %s", e.Range)
}

// NewNoDataError builds a NoDataError for the given range.
func NewNoDataError(r dates.Range) *NoDataError {
	return &NoDataError{Range: r}
}

// AsValidation extracts a *ValidationError from err's chain, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// AsFetch extracts a *FetchError from err's chain, or nil.
func AsFetch(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// IsNoData reports whether err's chain contains a *NoDataError.
func IsNoData(err error) bool {
	var nd *NoDataError
	return errors.As(err, &nd)
}
