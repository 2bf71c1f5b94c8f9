package analytics

import (
	"math"
	"time"
)

// Grade bands, evaluated top-down with inclusive lower bounds.
const (
	GradeAPlus = "A+"
	GradeA     = "A"
	GradeBPlus = "B+"
	GradeB     = "B"
	GradeC     = "C"
	GradeD     = "D"
	GradeF     = "F"
)

var gradeBands = []struct {
	min   float64
	grade string
}{
	{90, GradeAPlus},
	{80, GradeA},
	{70, GradeBPlus},
	{60, GradeB},
	{50, GradeC},
	{40, GradeD},
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func rawPercentage(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator * 100
}

// Percentage returns numerator/denominator*100 rounded to two decimals, or 0 when denominator <= 0.
func Percentage(numerator, denominator float64) float64 {
	return Round2(rawPercentage(numerator, denominator))
}

// CompletionRate is the percentage of completed items.
func CompletionRate(completed, total int) float64 {
	return Percentage(float64(completed), float64(total))
}

// SubmissionRate is the percentage of submitted items.
func SubmissionRate(submitted, total int) float64 {
	return Percentage(float64(submitted), float64(total))
}

// SafeRatio divides without ever producing NaN or Inf.
func SafeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// GradeFor maps a percentage onto its letter band. Pass the unrounded value: 89.999 is an A.
func GradeFor(percentage float64) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return GradeF
}

// Interval is a start/end instant pair.
type Interval struct {
	Start time.Time
	End   time.Time
}

// AverageElapsedDays is the mean calendar-day distance across intervals, evaluated in loc. Empty input yields 0.
func AverageElapsedDays(intervals []Interval, loc *time.Location) float64 {
	if len(intervals) == 0 {
		return 0
	}
	total := 0
	for _, iv := range intervals {
		total += DaysBetween(DayOf(iv.Start, loc), DayOf(iv.End, loc))
	}
	return Round2(float64(total) / float64(len(intervals)))
}

// Stats describes a sample of values.
type Stats struct {
	Count int
	Mean  float64
	Max   float64
	Min   float64
}

// Describe computes count, unrounded mean, max and min. Empty input yields zeroes.
func Describe(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{Count: len(values), Max: values[0], Min: values[0]}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
	}
	s.Mean = sum / float64(len(values))
	return s
}
