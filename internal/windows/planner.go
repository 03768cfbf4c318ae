// Package windows plans the provider fetch schedule. The price-trends
// provider reports at calendar-month granularity, so a validated date range
// is split into month-aligned windows: the first window may start mid-month
// at the range start and the last may end mid-month at the range end, and
// every window in between covers a whole calendar month.
package windows

import (
	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/models"
)

// Plan splits a validated range into an ordered, contiguous, non-empty
// sequence of monthly fetch windows whose union is exactly the range.
//
// The walk is a plain cursor: each window runs from the cursor to the end
// of the cursor's month or the range end, whichever comes first, and the
// cursor then moves to the day after the window. Planning is deterministic
// and a one-day range still yields one one-day window.
func Plan(r dates.Range) []models.Window {
	var planned []models.Window

	cursor := r.Start
	for !cursor.After(r.End) {
		end := cursor.EndOfMonth()
		if end.After(r.End) {
			end = r.End
		}
		planned = append(planned, models.NewWindow(cursor, end))
		cursor = end.AddDays(1)
	}

	return planned
}
