// Package gaps turns the sparse merged price series into a gapless daily
// series over the requested range. The provider reports a price only on
// days it repriced a listing, so most calendar days have no observation;
// personal-finance importers want a balance for every day. Fill walks the
// range day by day and carries the last observed price forward across the
// quiet days. Days before the first observation have nothing to carry;
// a LeadingPolicy decides whether they are omitted or backfilled.
package gaps

import (
	"github.com/carworth/carworth/internal/dates"
	apperrors "github.com/carworth/carworth/internal/errors"
	"github.com/carworth/carworth/internal/models"
)

// LeadingPolicy selects what happens to range days that precede the first
// observation. The provider reports nothing before it first saw a listing,
// so a requested range can start earlier than the data does.
type LeadingPolicy string

const (
	// LeadingOmit drops leading days, so the output starts at the first
	// observation. This is the default.
	LeadingOmit LeadingPolicy = "omit"
	// LeadingBackfill repeats the first observed price onto leading days,
	// so the output covers the whole range.
	LeadingBackfill LeadingPolicy = "backfill"
)

// Stats describes what filling a range did. The collector folds these
// numbers into its run summary and user-facing notices.
type Stats struct {
	// Observed counts days inside the range with a real price point.
	Observed int
	// Filled counts days whose price was carried forward.
	Filled int
	// Leading counts days before the first observation, omitted or
	// backfilled per the policy.
	Leading int
	// FirstDate is the first emitted day. Zero when nothing was emitted.
	FirstDate dates.Date
	// FirstObserved is the first day with a real observation.
	FirstObserved dates.Date
	// LastObserved is the last day with a real observation. Days after it
	// up to the range end hold a carried price.
	LastObserved dates.Date
}

// Fill produces one price per day over r, carrying the most recent
// observation forward across unobserved days. Days before the first
// observation follow policy: LeadingOmit drops them, so the output may
// start later than r.Start; LeadingBackfill sets them to the first
// observed price. Observations outside r never contribute. When the range
// holds no observations at all Fill returns a *NoDataError regardless of
// policy.
func Fill(series *models.Series, r dates.Range, policy LeadingPolicy) ([]models.PricePoint, Stats, error) {
	var (
		out     []models.PricePoint
		stats   Stats
		carry   models.PricePoint
		carried bool
	)

	for day := r.Start; !day.After(r.End); day = day.AddDays(1) {
		if price, ok := series.Get(day); ok {
			if !carried {
				stats.FirstObserved = day
			}
			carry = models.PricePoint{Date: day, Price: price}
			carried = true
			stats.Observed++
			stats.LastObserved = day
		} else if !carried {
			stats.Leading++
			continue
		} else {
			stats.Filled++
		}

		if len(out) == 0 {
			stats.FirstDate = day
		}
		out = append(out, models.PricePoint{Date: day, Price: carry.Price})
	}

	if len(out) == 0 {
		return nil, Stats{}, apperrors.NewNoDataError(r)
	}

	if policy == LeadingBackfill && stats.Leading > 0 {
		head := make([]models.PricePoint, 0, stats.Leading+len(out))
		for day := r.Start; day.Before(stats.FirstObserved); day = day.AddDays(1) {
			head = append(head, models.PricePoint{Date: day, Price: out[0].Price})
		}
		out = append(head, out...)
		stats.FirstDate = r.Start
	}
	return out, stats, nil
}
