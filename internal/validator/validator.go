// Package validator normalizes and validates the requested date range
// before any network access happens. Validation is pure: the caller
// injects "today" instead of the validator reading the wall clock, so
// every rule is reproducible in tests.
package validator

import (
	"fmt"

	"github.com/carworth/carworth/internal/dates"
	apperrors "github.com/carworth/carworth/internal/errors"
)

// MaxLookbackDays is how far back from today the range may start. The
// provider keeps roughly one year of trend history.
const MaxLookbackDays = 365

// Validate builds the effective date range from the raw CLI inputs.
//
// An empty rawStart defaults to today minus MaxLookbackDays; an empty
// rawEnd defaults to yesterday, since the provider has no same-day data.
// The returned range satisfies start <= end, end <= today and
// today-start <= MaxLookbackDays; any violation is reported as a
// *errors.ValidationError with the matching kind.
func Validate(rawStart, rawEnd string, today dates.Date) (dates.Range, error) {
	start := today.AddDays(-MaxLookbackDays)
	if rawStart != "" {
		parsed, err := dates.Parse(rawStart)
		if err != nil {
			return dates.Range{}, apperrors.NewValidationError(
				apperrors.InvalidFormat, rawStart,
				fmt.Sprintf("start date must be %s", dates.Format))
		}
		start = parsed
	}

	end := today.AddDays(-1)
	if rawEnd != "" {
		parsed, err := dates.Parse(rawEnd)
		if err != nil {
			return dates.Range{}, apperrors.NewValidationError(
				apperrors.InvalidFormat, rawEnd,
				fmt.Sprintf("end date must be %s", dates.Format))
		}
		end = parsed
	}

	if start.After(end) {
		return dates.Range{}, apperrors.NewValidationError(
			apperrors.InvalidOrder, "",
			fmt.Sprintf("start date %s is after end date %s", start, end))
	}
	if start.DaysUntil(today) > MaxLookbackDays {
		return dates.Range{}, apperrors.NewValidationError(
			apperrors.TooOld, start.String(),
			fmt.Sprintf("start date is more than %d days before today (%s), earliest allowed is %s",
				MaxLookbackDays, today, today.AddDays(-MaxLookbackDays)))
	}
	if end.After(today) {
		return dates.Range{}, apperrors.NewValidationError(
			apperrors.FutureEnd, end.String(),
			fmt.Sprintf("end date is after today (%s)", today))
	}

	return dates.Range{Start: start, End: end}, nil
}
