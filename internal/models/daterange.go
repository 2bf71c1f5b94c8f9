package models

import (
	"errors"
	"time"
)

// ErrInvertedRange is returned when a range starts after it ends.
var ErrInvertedRange = errors.New("date range start is after its end")

// DateRange is an inclusive calendar-day interval. From and To are normalised to midnight of their
// day in the location they carry.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a range truncated to whole days and rejects inverted bounds.
func NewDateRange(from, to time.Time) (DateRange, error) {
	r := DateRange{From: startOfDay(from), To: startOfDay(to)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// MonthRange returns the range covering the given calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) DateRange {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return DateRange{From: first, To: first.AddDate(0, 1, -1)}
}

// Validate rejects ranges whose start is after their end. Zero-length ranges are valid.
func (r DateRange) Validate() error {
	if r.From.After(r.To) {
		return ErrInvertedRange
	}
	return nil
}

// Bounds returns provider-friendly bounds: inclusive start and inclusive end day.
func (r DateRange) Bounds() (*time.Time, *time.Time) {
	from, to := r.From, r.To
	return &from, &to
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := startOfDay(t.In(r.From.Location()))
	return !day.Before(r.From) && !day.After(r.To)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
