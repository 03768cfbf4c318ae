// Package benchmark measures the hot paths of the pipeline over year-sized
// date ranges: window planning, series insertion, gap filling and row
// formatting.
package benchmark

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/export"
	"github.com/carworth/carworth/internal/gaps"
	"github.com/carworth/carworth/internal/models"
	"github.com/carworth/carworth/internal/windows"
)

func mustRange(b *testing.B, start, end string) dates.Range {
	b.Helper()
	s, err := dates.Parse(start)
	if err != nil {
		b.Fatalf("parse %s: %v", start, err)
	}
	e, err := dates.Parse(end)
	if err != nil {
		b.Fatalf("parse %s: %v", end, err)
	}
	return dates.Range{Start: s, End: e}
}

// weeklySeries returns a series with one observation every seventh day of r.
func weeklySeries(r dates.Range) *models.Series {
	series := &models.Series{}
	price := decimal.NewFromFloat(31000.50)
	for d, i := r.Start, 0; !d.After(r.End); d, i = d.AddDays(7), i+1 {
		series.Put(d, price.Sub(decimal.NewFromInt(int64(i))))
	}
	return series
}

func BenchmarkPlanYear(b *testing.B) {
	r := mustRange(b, "2023-07-02", "2024-06-30")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if plan := windows.Plan(r); len(plan) != 12 {
			b.Fatalf("expected 12 windows, got %d", len(plan))
		}
	}
}

func BenchmarkSeriesPutYear(b *testing.B) {
	r := mustRange(b, "2023-07-02", "2024-06-30")
	days := make([]dates.Date, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	price := decimal.NewFromFloat(28500.25)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		series := &models.Series{}
		for _, d := range days {
			series.Put(d, price)
		}
		if series.Len() != len(days) {
			b.Fatalf("expected %d points, got %d", len(days), series.Len())
		}
	}
}

func BenchmarkFillYear(b *testing.B) {
	r := mustRange(b, "2023-07-02", "2024-06-30")
	series := weeklySeries(r)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		points, _, err := gaps.Fill(series, r, gaps.LeadingOmit)
		if err != nil {
			b.Fatalf("fill: %v", err)
		}
		if len(points) != r.Days() {
			b.Fatalf("expected %d points, got %d", r.Days(), len(points))
		}
	}
}

func BenchmarkRowsYear(b *testing.B) {
	r := mustRange(b, "2023-07-02", "2024-06-30")
	points, _, err := gaps.Fill(weeklySeries(r), r, gaps.LeadingOmit)
	if err != nil {
		b.Fatalf("fill: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rows := export.Rows(points, "2021 Tesla Model 3")
		if len(rows) != len(points) {
			b.Fatalf("expected %d rows, got %d", len(points), len(rows))
		}
	}
}
