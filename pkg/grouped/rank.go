package grouped

import "sort"

// DenseRanks assigns each value its dense rank: the count of distinct
// values strictly smaller than it. Ties share a rank and the next
// distinct value increments the rank by exactly one, so for
// [3, 1, 1, 2] the ranks are [2, 0, 0, 1].
func DenseRanks(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]int, len(values))
	r := 0
	for k := 1; k < len(order); k++ {
		if values[order[k]] != values[order[k-1]] {
			r++
		}
		ranks[order[k]] = r
	}
	return ranks
}

// MaxRank returns the largest rank in a rank array, or -1 for an
// empty array.
func MaxRank(ranks []int) int {
	max := -1
	for _, r := range ranks {
		if r > max {
			max = r
		}
	}
	return max
}
