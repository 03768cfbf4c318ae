// Package export renders the filled daily series as a Monarch Money
// balance-history CSV. The importer expects a Date,Balance,Account header,
// ISO dates, and balances with exactly two decimal places.
package export

import (
	"regexp"
	"strings"

	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/models"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns       = regexp.MustCompile(`\s+`)
)

// Rows converts daily price points to output rows for account. Balances
// are already rounded when the series is merged; formatting pins them to
// two decimal places.
func Rows(points []models.PricePoint, account string) []models.OutputRow {
	rows := make([]models.OutputRow, len(points))
	for i, p := range points {
		rows[i] = models.OutputRow{
			Date:    p.Date,
			Balance: p.Price.StringFixed(2),
			Account: account,
		}
	}
	return rows
}

// Filename derives the CSV file name from the account name and the
// requested range: the account with filesystem-hostile characters and
// whitespace runs replaced by underscores, then the range bounds.
func Filename(account string, r dates.Range) string {
	sanitized := invalidFilenameChars.ReplaceAllString(account, "_")
	sanitized = whitespaceRuns.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_")
	return sanitized + "_" + r.Start.String() + "_" + r.End.String() + ".csv"
}
