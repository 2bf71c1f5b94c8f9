package analytics

import "sort"

// SortByRollNumber orders items by roll number using plain string comparison. Missing or blank roll
// numbers sort after all present ones; equal keys keep their input order.
func SortByRollNumber[T any](items []T, roll func(T) *string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := roll(items[i]), roll(items[j])
		aOK := a != nil && *a != ""
		bOK := b != nil && *b != ""
		switch {
		case aOK && bOK:
			return *a < *b
		case aOK:
			return true
		default:
			return false
		}
	})
}
