// Package dates provides the calendar types used throughout carworth.
// A Date is a plain calendar day with no time-of-day and no timezone; the
// provider reports prices per day and the output CSV is keyed per day, so
// day granularity is the unit of the whole pipeline. Conversions to epoch
// milliseconds are anchored to UTC so that window planning is deterministic
// regardless of the machine's local zone.
package dates

import (
	"fmt"
	"time"
)

// Format is the canonical textual form of a Date, ISO-8601 calendar dates.
const Format = "2006-01-02"

// millisPerDay is the span of one calendar day in epoch milliseconds.
const millisPerDay = 24 * 60 * 60 * 1000

// Date represents a calendar date with day granularity.
// The zero value is not a valid date; use New, Parse or FromTime.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
// Out-of-range components are normalized the way time.Date normalizes them,
// so New(2024, time.January, 32) is February 1st, 2024.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Parse parses a Date from its canonical YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %s: %w", s, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compile-time constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	return New(t.Date())
}

// FromUnixMilli returns the UTC calendar date containing the given epoch
// millisecond instant.
func FromUnixMilli(ms int64) Date {
	return New(time.UnixMilli(ms).UTC().Date())
}

// time returns the canonical representation of the date, midnight UTC.
func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare orders two dates: -1 when d is before x, 0 when equal, +1 after.
func (d Date) Compare(x Date) int {
	return d.time().Compare(x.time())
}

// AddDays returns the date n days after d (or before, for negative n).
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// DaysUntil returns the number of days from d to x. It is positive when x
// is after d, zero when they are equal.
func (d Date) DaysUntil(x Date) int {
	return int(x.time().Sub(d.time()) / (24 * time.Hour))
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return New(d.y, d.m+1, 0)
}

// UnixMilli returns the first epoch millisecond of the date, midnight UTC.
func (d Date) UnixMilli() int64 {
	return d.time().UnixMilli()
}

// LastUnixMilli returns the final epoch millisecond of the date,
// 23:59:59.999 UTC, one millisecond short of the next day.
func (d Date) LastUnixMilli() int64 {
	return d.UnixMilli() + millisPerDay - 1
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is an inclusive span of calendar dates.
type Range struct {
	Start Date
	End   Date
}

// Days returns the inclusive number of days covered by the range.
func (r Range) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Contains reports whether d falls within the range, bounds included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// String formats the range as "start to end".
func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start, r.End)
}
