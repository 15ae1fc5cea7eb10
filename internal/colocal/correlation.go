// Package colocal implements the colocalization statistics kernels:
// Pearson correlation and regression slope, the Manders, Overlap, K
// and rank-weighted (RWC) threshold coefficients, and the Costes
// automated threshold search. Kernels never mutate their inputs and
// never fail: degenerate populations resolve to NaN (correlation
// family) or 0 (threshold family).
package colocal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"coloc-meter/pkg/grouped"
)

// Correlation returns the Pearson correlation coefficient of the
// paired samples, or NaN when the population is too small or has no
// variance in either channel.
func Correlation(fi, si []float64) float64 {
	if len(fi) < 2 {
		return math.NaN()
	}
	return stat.Correlation(fi, si, nil)
}

// Slope returns the ordinary least-squares slope a of si = a*fi + b,
// or NaN for a degenerate population.
func Slope(fi, si []float64) float64 {
	if len(fi) < 2 {
		return math.NaN()
	}
	_, beta := stat.LinearRegression(fi, si, nil, false)
	return beta
}

// ObjectCorrelation returns the per-object Pearson correlation as an
// n-length vector ordered by label id. Each pixel contributes
// (fi-mean1)(si-mean2)/(std1*std2) to its object, where the stds are
// the square roots of the grouped sums of squared deviations. Objects
// with no contributing pixels report NaN.
func ObjectCorrelation(fi, si []float64, labels []int, n int) []float64 {
	mean1 := grouped.Mean(fi, labels, n)
	mean2 := grouped.Mean(si, labels, n)

	dev1 := make([]float64, len(fi))
	dev2 := make([]float64, len(si))
	for i, id := range labels {
		k := id - 1
		d1 := fi[i] - mean1[k]
		d2 := si[i] - mean2[k]
		dev1[i] = d1 * d1
		dev2[i] = d2 * d2
	}
	std1 := grouped.Sum(dev1, labels, n)
	std2 := grouped.Sum(dev2, labels, n)
	for k := range std1 {
		std1[k] = math.Sqrt(std1[k])
		std2[k] = math.Sqrt(std2[k])
	}

	contrib := make([]float64, len(fi))
	for i, id := range labels {
		k := id - 1
		contrib[i] = (fi[i] - mean1[k]) * (si[i] - mean2[k]) / (std1[k] * std2[k])
	}
	corr := grouped.Sum(contrib, labels, n)

	counts := grouped.Count(labels, n)
	for k := range corr {
		if counts[k] == 0 {
			corr[k] = math.NaN()
		}
	}
	return corr
}
