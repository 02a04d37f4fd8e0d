package algo

import "math/bits"

// NotFound is returned by the search functions when target is absent.
const NotFound = -1

// BinarySearch returns an index i with data[i] == target, or NotFound.
//
// data must be sorted in non-decreasing order. On unsorted input the result
// is unspecified (some index or NotFound) but the call never panics.
func BinarySearch(data []int, target int) int {
	left, right := 0, len(data)-1
	for left <= right {
		mid := left + (right-left)/2
		switch {
		case data[mid] == target:
			return mid
		case data[mid] < target:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return NotFound
}

// InterpolationSearch probes once per iteration at the position linearly
// interpolated between data[lo] and data[hi]. There is no binary fallback probe,
// so expected O(log log n) on uniform data degrades to O(n) on skewed data.
//
// data must be sorted in non-decreasing order; see BinarySearch for the caveat.
func InterpolationSearch(data []int, target int) int {
	lo, hi := 0, len(data)-1
	for lo <= hi && target >= data[lo] && target <= data[hi] {
		if data[lo] == data[hi] {
			// Zero-width range, nothing to interpolate.
			if data[lo] == target {
				return lo
			}
			return NotFound
		}

		pos := lo + interpolate(data[lo], data[hi], target, hi-lo)
		if pos > hi {
			pos = hi
		}

		switch {
		case data[pos] == target:
			return pos
		case data[pos] < target:
			lo = pos + 1
		default:
			hi = pos - 1
		}
	}
	return NotFound
}

// interpolate returns (target-low)*width/(high-low) for low <= target <= high
// and low < high. The differences are taken unsigned and the product kept at
// 128 bits, so values near the int limits cannot overflow. The result lies in
// [0, width].
func interpolate(low, high, target, width int) int {
	span := uint64(high) - uint64(low)
	delta := uint64(target) - uint64(low)
	prodHi, prodLo := bits.Mul64(delta, uint64(width))
	quo, _ := bits.Div64(prodHi, prodLo, span)
	return int(quo)
}
