package collector

import (
	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/models"
	"github.com/carworth/carworth/internal/trends"
)

// mergePoints folds the per-window fetch results into one daily series.
// Prices are rounded to cents on entry so every later stage sees the
// exported precision. Batches arrive in window order; when two windows
// report the same day, the later fetch wins.
func mergePoints(batches [][]trends.Point) *models.Series {
	series := &models.Series{}
	for _, batch := range batches {
		for _, p := range batch {
			series.Put(dates.FromUnixMilli(p.DateMs), p.Price.Round(2))
		}
	}
	return series
}
