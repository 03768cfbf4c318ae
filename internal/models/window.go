// Package models provides the data structures moved through the carworth
// pipeline: fetch windows, price points, the date-keyed series built during
// merging, and the output rows handed to the sink.
package models

import (
	"github.com/carworth/carworth/internal/dates"
)

// Window is one provider-sized sub-range of a requested date range. Start
// and End are inclusive calendar dates; StartMs and EndMs are the epoch
// millisecond bounds the provider expects, where StartMs is midnight UTC of
// Start and EndMs is the final millisecond of End (one short of the next
// day). A planned window list is ordered, contiguous and never empty.
type Window struct {
	Start   dates.Date
	End     dates.Date
	StartMs int64
	EndMs   int64
}

// NewWindow builds a Window over the inclusive date span [start, end],
// deriving the epoch millisecond bounds.
func NewWindow(start, end dates.Date) Window {
	return Window{
		Start:   start,
		End:     end,
		StartMs: start.UnixMilli(),
		EndMs:   end.LastUnixMilli(),
	}
}

// Range returns the window's span as a date range.
func (w Window) Range() dates.Range {
	return dates.Range{Start: w.Start, End: w.End}
}

// Days returns the inclusive number of days the window covers.
func (w Window) Days() int {
	return w.Range().Days()
}

// String formats the window by its date bounds.
func (w Window) String() string {
	return w.Range().String()
}
