package analytics

import (
	"strings"
	"time"
)

// UnknownLabel names the bucket that collects records with a missing optional key field.
const UnknownLabel = "Unknown"

// NullString is a comparable optional string for composite keys. The zero value is the unknown bucket.
type NullString struct {
	Value string
	Valid bool
}

// StringKey turns an optional column into a key field. Blank strings count as missing.
func StringKey(p *string) NullString {
	if p == nil || strings.TrimSpace(*p) == "" {
		return NullString{}
	}
	return NullString{Value: *p, Valid: true}
}

// Label renders the key for output.
func (n NullString) Label() string {
	if !n.Valid {
		return UnknownLabel
	}
	return n.Value
}

// Day is a calendar date with value equality.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf truncates t to its calendar date in loc. A nil loc keeps t's own location.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// DateOf reads a date-only value such as a Postgres date column. No zone conversion is applied,
// since lib/pq decodes those as midnight UTC and shifting them would move the date.
func DateOf(t time.Time) Day {
	return DayOf(t, nil)
}

func (d Day) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// After reports whether d is a later calendar date than other.
func (d Day) After(other Day) bool {
	return d.midnight().After(other.midnight())
}

// Before reports whether d is an earlier calendar date than other.
func (d Day) Before(other Day) bool {
	return d.midnight().Before(other.midnight())
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.midnight().Format("2006-01-02")
}

// DaysBetween returns the whole number of calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b Day) int {
	return int(b.midnight().Sub(a.midnight()).Hours() / 24)
}

// NullDay is a comparable optional calendar date.
type NullDay struct {
	Day   Day
	Valid bool
}

// DayKey turns an optional timestamp into a key field.
func DayKey(t *time.Time, loc *time.Location) NullDay {
	if t == nil || t.IsZero() {
		return NullDay{}
	}
	return NullDay{Day: DayOf(*t, loc), Valid: true}
}
