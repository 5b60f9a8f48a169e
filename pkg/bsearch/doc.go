// Package bsearch provides binary search over ascending, randomly indexable
// sequences.
//
// The search keeps a closed interval [start, end] over the sequence and halves
// it on every comparison, returning the first midpoint whose element equals
// the target:
//
//	i := bsearch.Search([]int{1, 3, 5, 7, 9}, 5) // 2
//	j := bsearch.Search([]int{1, 3, 5, 7, 9}, 10) // bsearch.NotFound
//
// # Preconditions
//
// The sequence must be sorted ascending under the same ordering used to
// compare the target. This is not validated; an unsorted sequence yields an
// unspecified result.
//
// # Duplicates
//
// When the target occurs more than once, the returned index is some index of
// a matching element, not necessarily the lowest or highest. Callers that
// need the first occurrence should use [slices.BinarySearch] instead.
//
// # Concurrency
//
// All functions are pure. They never mutate or retain the sequence, so
// concurrent calls sharing the same read-only slice are safe.
package bsearch
