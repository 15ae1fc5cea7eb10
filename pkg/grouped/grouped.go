// Package grouped provides label-wise reductions over flat sample
// arrays, dense rank computation, and summary statistics for
// per-object vectors. Labels are positive contiguous integers 1..n;
// 0 and out-of-range ids are ignored.
package grouped

// Sum returns the per-label sum of values, ordered by label id.
// Labels with no contributing samples report 0.
func Sum(values []float64, labels []int, n int) []float64 {
	out := make([]float64, n)
	for i, id := range labels {
		if id < 1 || id > n {
			continue
		}
		out[id-1] += values[i]
	}
	return out
}

// Count returns the number of samples carrying each label.
func Count(labels []int, n int) []int {
	out := make([]int, n)
	for _, id := range labels {
		if id < 1 || id > n {
			continue
		}
		out[id-1]++
	}
	return out
}

// Mean returns the per-label mean of values. A label with no samples
// reports NaN (0/0), as the consequence of the division.
func Mean(values []float64, labels []int, n int) []float64 {
	out := Sum(values, labels, n)
	counts := Count(labels, n)
	for k := range out {
		out[k] /= float64(counts[k])
	}
	return out
}

// Max returns the per-label maximum of values. A label with no
// samples reports 0.
func Max(values []float64, labels []int, n int) []float64 {
	out := make([]float64, n)
	seen := make([]bool, n)
	for i, id := range labels {
		if id < 1 || id > n {
			continue
		}
		k := id - 1
		if !seen[k] || values[i] > out[k] {
			out[k] = values[i]
			seen[k] = true
		}
	}
	return out
}

// Variance returns the per-label sample variance (N-1 denominator) of
// values. Labels with fewer than two samples report the result of the
// degenerate division rather than an injected sentinel.
func Variance(values []float64, labels []int, n int) []float64 {
	means := Mean(values, labels, n)
	counts := Count(labels, n)
	ss := make([]float64, n)
	for i, id := range labels {
		if id < 1 || id > n {
			continue
		}
		d := values[i] - means[id-1]
		ss[id-1] += d * d
	}
	for k := range ss {
		ss[k] /= float64(counts[k] - 1)
	}
	return ss
}
