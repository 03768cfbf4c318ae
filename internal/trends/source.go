// Package trends provides access to the CarGurus price-trends feed: the
// Source interface the pipeline fetches through, the HTTP client that
// implements it, and the parser for listing URLs that people paste from
// their browser.
//
// The provider reports vehicle prices per calendar day but only accepts
// window-bounded queries, so callers fetch one planned window at a time.
// Pacing between requests and retry of transient transport failures are
// owned by the client; the pipeline above it never retries.
package trends

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carworth/carworth/internal/models"
)

// Point is one raw dated price as reported by the provider. DateMs is the
// provider's epoch-millisecond day stamp; precision of Price is whatever
// the feed carried, rounding happens later at the merge boundary.
type Point struct {
	DateMs int64
	Price  decimal.Decimal
}

// FetchRequest identifies one window fetch. EntityID, ModelPath and
// SessionCookie are opaque pass-through values supplied by the caller; the
// client forwards them without discovery or validation.
type FetchRequest struct {
	Window        models.Window
	EntityID      string
	ModelPath     string
	SessionCookie string
}

// Source fetches the price points the provider reports for one window.
//
// A successful fetch with no points is a valid, empty result: the window
// simply has no observations and downstream fill logic handles it. Any
// failure is returned as a *errors.FetchError (network, auth, rate limit
// or parse) carrying the window, and aborts the caller's plan.
type Source interface {
	Fetch(ctx context.Context, req FetchRequest) ([]Point, error)
}
