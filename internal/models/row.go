package models

import (
	"github.com/carworth/carworth/internal/dates"
)

// OutputRow is one line of the balance-history output: the calendar date,
// the balance already rendered as a fixed two-decimal string, and the
// account name copied verbatim from the caller. The sink owns CSV quoting
// and persistence; rows carry no formatting concerns beyond the balance
// precision.
type OutputRow struct {
	Date    dates.Date
	Balance string
	Account string
}
