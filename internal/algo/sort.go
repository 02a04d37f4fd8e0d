package algo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// PivotStrategy selects which element quick sort moves to the partition boundary.
type PivotStrategy int

const (
	PivotRandom PivotStrategy = iota
	PivotFirst
	PivotLast
)

func (p PivotStrategy) String() string {
	switch p {
	case PivotFirst:
		return "first"
	case PivotLast:
		return "last"
	default:
		return "random"
	}
}

// ParsePivotStrategy accepts "first", "last" or "random" (case-insensitive).
func ParsePivotStrategy(s string) (PivotStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return PivotFirst, nil
	case "last":
		return PivotLast, nil
	case "random", "":
		return PivotRandom, nil
	}
	return PivotRandom, fmt.Errorf("unknown pivot strategy %q", s)
}

// MergeSort sorts data in place in non-decreasing order. It is stable.
func MergeSort(data []int) {
	MergeSortFunc(data, func(a, b int) bool { return a < b })
}

// MergeSortFunc is MergeSort over any element type ordered by less.
// Elements for which neither less(a, b) nor less(b, a) holds keep their relative order.
func MergeSortFunc[T any](data []T, less func(a, b T) bool) {
	if len(data) < 2 {
		return
	}
	mergeSort(data, 0, len(data)-1, less)
}

func mergeSort[T any](data []T, left, right int, less func(a, b T) bool) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2
	mergeSort(data, left, mid, less)
	mergeSort(data, mid+1, right, less)
	merge(data, left, mid, right, less)
}

func merge[T any](data []T, left, mid, right int, less func(a, b T) bool) {
	l := make([]T, mid-left+1)
	r := make([]T, right-mid)
	copy(l, data[left:mid+1])
	copy(r, data[mid+1:right+1])

	i, j, k := 0, 0, left
	for i < len(l) && j < len(r) {
		// Take from the left run on ties to keep the sort stable.
		if !less(r[j], l[i]) {
			data[k] = l[i]
			i++
		} else {
			data[k] = r[j]
			j++
		}
		k++
	}
	k += copy(data[k:], l[i:])
	copy(data[k:], r[j:])
}

// QuickSort sorts data[low..high] (inclusive) in place using Lomuto partitioning.
// The pivot chosen by strategy is swapped to data[high] before each scan.
// rng is only consulted for PivotRandom; nil means a time-seeded source.
//
// PivotLast on already sorted or reverse sorted input degrades to O(n²).
func QuickSort(data []int, low, high int, strategy PivotStrategy, rng *rand.Rand) {
	if low >= high {
		return
	}
	if strategy == PivotRandom && rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	quickSort(data, low, high, strategy, rng)
}

func quickSort(data []int, low, high int, strategy PivotStrategy, rng *rand.Rand) {
	// Recurse into the smaller side and loop on the larger one so the
	// O(n²) worst case does not also cost O(n) stack depth.
	for low < high {
		p := partition(data, low, high, strategy, rng)
		if p-low < high-p {
			quickSort(data, low, p-1, strategy, rng)
			low = p + 1
		} else {
			quickSort(data, p+1, high, strategy, rng)
			high = p - 1
		}
	}
}

func partition(data []int, low, high int, strategy PivotStrategy, rng *rand.Rand) int {
	var pivotIdx int
	switch strategy {
	case PivotFirst:
		pivotIdx = low
	case PivotLast:
		pivotIdx = high
	default:
		pivotIdx = low + rng.Intn(high-low+1)
	}
	data[pivotIdx], data[high] = data[high], data[pivotIdx]
	pivot := data[high]

	i := low - 1
	for j := low; j < high; j++ {
		if data[j] < pivot {
			i++
			data[i], data[j] = data[j], data[i]
		}
	}
	data[i+1], data[high] = data[high], data[i+1]
	return i + 1
}
