package bsearch

import "cmp"

// NotFound is returned when no element equals the target.
const NotFound = -1

// Search returns the index of an element of s equal to target, or NotFound.
// s must be sorted ascending. Runs in O(log n) comparisons.
func Search[S ~[]E, E cmp.Ordered](s S, target E) int {
	start, end := 0, len(s)-1
	for start <= end {
		mid := start + (end-start)/2
		switch {
		case s[mid] == target:
			return mid
		case s[mid] < target:
			start = mid + 1
		default:
			end = mid - 1
		}
	}
	return NotFound
}

// SearchFunc is like Search but compares with cmp, which must return a
// negative number when the element sorts before target, zero when they are
// equal, and a positive number when it sorts after.
func SearchFunc[S ~[]E, E, T any](s S, target T, cmp func(E, T) int) int {
	start, end := 0, len(s)-1
	for start <= end {
		mid := start + (end-start)/2
		c := cmp(s[mid], target)
		switch {
		case c == 0:
			return mid
		case c < 0:
			start = mid + 1
		default:
			end = mid - 1
		}
	}
	return NotFound
}

// Contains reports whether target occurs in the ascending sequence s.
func Contains[S ~[]E, E cmp.Ordered](s S, target E) bool {
	return Search(s, target) != NotFound
}
