package harness

import (
	"math/rand"
	"sort"

	"algobench/internal/algo"
)

// Input is the synthesized data for one (mode, case, size) combination.
// Target is only meaningful for searching.
type Input struct {
	Data   []int
	Target int
}

// SortingInput builds sorting data: Best is ascending 0..n-1, Worst is
// descending n-1..0, Average is uniform random in [0, 2n].
func SortingInput(c Case, n int, rng *rand.Rand) Input {
	data := make([]int, n)
	switch c {
	case Best:
		for i := range data {
			data[i] = i
		}
	case Worst:
		for i := range data {
			data[i] = n - 1 - i
		}
	default:
		for i := range data {
			data[i] = rng.Intn(2*n + 1)
		}
	}
	return Input{Data: data}
}

// SearchingInput builds sorted search data and a target that is always present.
//
// Best: ascending 0..n-1, target is the middle element.
// Average: sorted uniform random values in [-n, n], target is a uniformly
// chosen existing element.
// Worst: ascending from -n/2, target is the last element, so halving search
// needs the maximal number of probes before it reaches it.
func SearchingInput(c Case, n int, rng *rand.Rand) Input {
	data := make([]int, n)
	if n == 0 {
		return Input{Data: data, Target: 0}
	}
	switch c {
	case Best:
		for i := range data {
			data[i] = i
		}
		return Input{Data: data, Target: data[n/2]}
	case Worst:
		for i := range data {
			data[i] = i - n/2
		}
		return Input{Data: data, Target: data[n-1]}
	default:
		for i := range data {
			data[i] = rng.Intn(2*n+1) - n
		}
		sort.Ints(data)
		return Input{Data: data, Target: data[rng.Intn(n)]}
	}
}

// runEnv carries the per-harness knobs an algorithm call may need.
type runEnv struct {
	rng   *rand.Rand
	pivot algo.PivotStrategy
}

type algorithmSpec struct {
	name string
	run  func(in Input, c Case, env runEnv) int
}

func algorithmsFor(m Mode) []algorithmSpec {
	switch m {
	case Sorting:
		return []algorithmSpec{
			{name: "Merge Sort", run: func(in Input, _ Case, _ runEnv) int {
				algo.MergeSort(in.Data)
				return len(in.Data)
			}},
			{name: "Quick Sort", run: func(in Input, c Case, env runEnv) int {
				algo.QuickSort(in.Data, 0, len(in.Data)-1, quickSortPivot(c, env.pivot), env.rng)
				return len(in.Data)
			}},
		}
	case Searching:
		return []algorithmSpec{
			{name: "Binary Search", run: func(in Input, _ Case, _ runEnv) int {
				return algo.BinarySearch(in.Data, in.Target)
			}},
			{name: "Interpolation Search", run: func(in Input, _ Case, _ runEnv) int {
				return algo.InterpolationSearch(in.Data, in.Target)
			}},
		}
	}
	return nil
}

// quickSortPivot picks the last element on the worst case to exhibit O(n²)
// on already ordered input, and the configured strategy otherwise.
func quickSortPivot(c Case, configured algo.PivotStrategy) algo.PivotStrategy {
	if c == Worst {
		return algo.PivotLast
	}
	return configured
}

func inputFor(m Mode, c Case, n int, rng *rand.Rand) Input {
	if m == Searching {
		return SearchingInput(c, n, rng)
	}
	return SortingInput(c, n, rng)
}
