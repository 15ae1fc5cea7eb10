package colocal

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// costesStep is the search decrement, 1/255 of the normalized
// intensity range.
const costesStep = 1.0 / 255

// CostesThresholds derives the automated threshold pair for a sample
// with intensities normalized to [0, 1]. An orthogonal regression
// line si = a*fi + b is fitted to the population where either channel
// is positive; trial thresholds (i, a*i+b) then step down from i = 1
// until the Pearson correlation of the below-threshold pixels drops
// to zero or can no longer be computed. The search is deterministic,
// runs at most 255 iterations, and never fails: a near-singular
// covariance terminates immediately with the no-thresholding pair
// (1, 1).
func CostesThresholds(fi, si []float64) (tfi, tsi float64) {
	var nzFI, nzSI, z []float64
	for i := range fi {
		if fi[i] > 0 || si[i] > 0 {
			nzFI = append(nzFI, fi[i])
			nzSI = append(nzSI, si[i])
			z = append(z, fi[i]+si[i])
		}
	}
	if len(nzFI) < 2 {
		return 1, 1
	}

	varF := stat.Variance(nzFI, nil)
	varS := stat.Variance(nzSI, nil)
	varZ := stat.Variance(z, nil)
	meanF := stat.Mean(nzFI, nil)
	meanS := stat.Mean(nzSI, nil)
	cov := 0.5 * (varZ - (varF + varS))
	if math.Abs(cov) < 1e-12 {
		return 1, 1
	}
	d := varS - varF
	a := (d + math.Sqrt(d*d+4*cov*cov)) / (2 * cov)
	b := meanS - a*meanF
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return 1, 1
	}

	var belowFI, belowSI []float64
	for i := 1.0; i > costesStep; i -= costesStep {
		tfi = i
		tsi = a*i + b
		belowFI = belowFI[:0]
		belowSI = belowSI[:0]
		for j := range fi {
			if fi[j] < tfi || si[j] < tsi {
				belowFI = append(belowFI, fi[j])
				belowSI = append(belowSI, si[j])
			}
		}
		r := Correlation(belowFI, belowSI)
		if math.IsNaN(r) || r <= 0 {
			break
		}
	}
	return tfi, tsi
}

// CostesManders returns the whole-image Costes coefficients C1, C2:
// Manders with the automated threshold pair, own-population
// denominators, strict comparison throughout. An empty joint
// population reports 0.
func CostesManders(fi, si []float64, tfi, tsi float64) (c1, c2 float64) {
	var jf, js, totFI, totSI float64
	joint := 0
	for i := range fi {
		if fi[i] > tfi && si[i] > tsi {
			jf += fi[i]
			js += si[i]
			joint++
		}
		if fi[i] > tfi {
			totFI += fi[i]
		}
		if si[i] > tsi {
			totSI += si[i]
		}
	}
	if joint == 0 {
		return 0, 0
	}
	return jf / totFI, js / totSI
}

// ObjectCostesManders returns the per-object Costes coefficient
// vectors using a threshold pair derived once at whole-image
// granularity and shared by every object of the pair. The joint
// population uses strict comparison while the per-object denominators
// use non-strict comparison, matching the per-object Manders
// convention. Objects whose joint population is empty report 0.
func ObjectCostesManders(fi, si []float64, labels []int, n int, tfi, tsi float64) (c1, c2 []float64) {
	c1 = make([]float64, n)
	c2 = make([]float64, n)
	jf := make([]float64, n)
	js := make([]float64, n)
	totFI := make([]float64, n)
	totSI := make([]float64, n)
	joint := make([]int, n)
	for i, id := range labels {
		k := id - 1
		if fi[i] > tfi && si[i] > tsi {
			jf[k] += fi[i]
			js[k] += si[i]
			joint[k]++
		}
		if fi[i] >= tfi {
			totFI[k] += fi[i]
		}
		if si[i] >= tsi {
			totSI[k] += si[i]
		}
	}
	for k := 0; k < n; k++ {
		if joint[k] > 0 {
			c1[k] = jf[k] / totFI[k]
			c2[k] = js[k] / totSI[k]
		}
	}
	return c1, c2
}
