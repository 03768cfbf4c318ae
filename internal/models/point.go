package models

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/carworth/carworth/internal/dates"
)

// PricePoint is one dated price in the merged series. Prices are rounded
// to two decimal places at the merge boundary, so a PricePoint always
// carries final output precision.
type PricePoint struct {
	Date  dates.Date
	Price decimal.Decimal
}

// Series is an ordered mapping from calendar date to price. Dates are
// unique and kept in ascending order; Put replaces the value when a date is
// inserted twice. The zero value is an empty series ready for use.
type Series struct {
	days   []dates.Date
	prices []decimal.Decimal
}

// Put inserts price under date, replacing any existing value for that date.
func (s *Series) Put(date dates.Date, price decimal.Decimal) {
	idx, found := slices.BinarySearchFunc(s.days, date, dates.Date.Compare)
	if found {
		s.prices[idx] = price
		return
	}
	s.days = slices.Insert(s.days, idx, date)
	s.prices = slices.Insert(s.prices, idx, price)
}

// Get returns the price stored for date, if any.
func (s *Series) Get(date dates.Date) (decimal.Decimal, bool) {
	idx, found := slices.BinarySearchFunc(s.days, date, dates.Date.Compare)
	if !found {
		return decimal.Decimal{}, false
	}
	return s.prices[idx], true
}

// Len returns the number of dated prices in the series.
func (s *Series) Len() int {
	return len(s.days)
}

// First returns the earliest point in the series.
func (s *Series) First() (PricePoint, bool) {
	if len(s.days) == 0 {
		return PricePoint{}, false
	}
	return PricePoint{Date: s.days[0], Price: s.prices[0]}, true
}

// Last returns the latest point in the series.
func (s *Series) Last() (PricePoint, bool) {
	if len(s.days) == 0 {
		return PricePoint{}, false
	}
	n := len(s.days) - 1
	return PricePoint{Date: s.days[n], Price: s.prices[n]}, true
}

// Points returns the series content in ascending date order. The returned
// slice is a copy; mutating it does not affect the series.
func (s *Series) Points() []PricePoint {
	points := make([]PricePoint, len(s.days))
	for i, d := range s.days {
		points[i] = PricePoint{Date: d, Price: s.prices[i]}
	}
	return points
}
