package colocal

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"coloc-meter/pkg/grouped"
)

// Threshold captures the jointly above-threshold population of a
// whole-image sample. Cutoffs are a percentage of each channel's
// maximum and the comparison is strict; the per-object analogue
// (ObjectThreshold) uses non-strict comparison. The asymmetry is
// deliberate and must not be unified.
type Threshold struct {
	fi, si []float64
	joint  []int
	totFI  float64
	totSI  float64
}

// NewThreshold computes the cutoff pair at pct percent of each
// channel's maximum and collects the joint population (both channels
// strictly above their cutoff) plus the per-channel own-population
// sums that serve as Manders/RWC denominators.
func NewThreshold(fi, si []float64, pct float64) *Threshold {
	t := &Threshold{fi: fi, si: si}
	if len(fi) == 0 {
		return t
	}
	thrFI := pct / 100 * floats.Max(fi)
	thrSI := pct / 100 * floats.Max(si)
	for i := range fi {
		if fi[i] > thrFI && si[i] > thrSI {
			t.joint = append(t.joint, i)
		}
		if fi[i] > thrFI {
			t.totFI += fi[i]
		}
		if si[i] > thrSI {
			t.totSI += si[i]
		}
	}
	return t
}

// Manders returns M1 and M2: each channel's joint-population sum over
// its own above-threshold sum. An empty joint population reports 0.
func (t *Threshold) Manders() (m1, m2 float64) {
	if len(t.joint) == 0 {
		return 0, 0
	}
	var sf, ss float64
	for _, i := range t.joint {
		sf += t.fi[i]
		ss += t.si[i]
	}
	return sf / t.totFI, ss / t.totSI
}

// Overlap returns the overlap coefficient and K1, K2, all restricted
// to the joint population. An empty joint population reports 0.
func (t *Threshold) Overlap() (overlap, k1, k2 float64) {
	if len(t.joint) == 0 {
		return 0, 0, 0
	}
	var sfs, sff, sss float64
	for _, i := range t.joint {
		sfs += t.fi[i] * t.si[i]
		sff += t.fi[i] * t.fi[i]
		sss += t.si[i] * t.si[i]
	}
	return sfs / math.Sqrt(sff*sss), sfs / sff, sfs / sss
}

// RWC returns the rank-weighted colocalization coefficients. Ranks
// are dense ranks over the whole sample; each sample's weight is
// (R - |rank1 - rank2|) / R with R one more than the largest rank in
// either channel. An empty joint population reports 0.
func (t *Threshold) RWC() (rwc1, rwc2 float64) {
	if len(t.joint) == 0 {
		return 0, 0
	}
	rank1 := grouped.DenseRanks(t.fi)
	rank2 := grouped.DenseRanks(t.si)
	r := 1 + max(grouped.MaxRank(rank1), grouped.MaxRank(rank2))
	var s1, s2 float64
	for _, i := range t.joint {
		di := rank1[i] - rank2[i]
		if di < 0 {
			di = -di
		}
		w := float64(r-di) / float64(r)
		s1 += t.fi[i] * w
		s2 += t.si[i] * w
	}
	return s1 / t.totFI, s2 / t.totSI
}

// ObjectThreshold is the per-object analogue of Threshold: cutoffs
// are per-object maxima broadcast back to member pixels and the
// comparison is non-strict (>=).
type ObjectThreshold struct {
	fi, si []float64
	labels []int
	n      int

	joint      []bool
	jointCount []int
	totFI      []float64
	totSI      []float64
}

// NewObjectThreshold computes per-object cutoffs at pct percent of
// each object's channel maximum and collects the per-object joint
// populations and own-population denominator sums.
func NewObjectThreshold(fi, si []float64, labels []int, n int, pct float64) *ObjectThreshold {
	t := &ObjectThreshold{
		fi:         fi,
		si:         si,
		labels:     labels,
		n:          n,
		joint:      make([]bool, len(fi)),
		jointCount: make([]int, n),
		totFI:      make([]float64, n),
		totSI:      make([]float64, n),
	}
	tff := grouped.Max(fi, labels, n)
	tss := grouped.Max(si, labels, n)
	for k := range tff {
		tff[k] *= pct / 100
		tss[k] *= pct / 100
	}
	for i, id := range labels {
		k := id - 1
		if fi[i] >= tff[k] && si[i] >= tss[k] {
			t.joint[i] = true
			t.jointCount[k]++
		}
		if fi[i] >= tff[k] {
			t.totFI[k] += fi[i]
		}
		if si[i] >= tss[k] {
			t.totSI[k] += si[i]
		}
	}
	return t
}

// Manders returns the per-object M1 and M2 vectors. Objects whose
// joint population is empty report 0.
func (t *ObjectThreshold) Manders() (m1, m2 []float64) {
	m1 = make([]float64, t.n)
	m2 = make([]float64, t.n)
	jf := make([]float64, t.n)
	js := make([]float64, t.n)
	for i, ok := range t.joint {
		if !ok {
			continue
		}
		k := t.labels[i] - 1
		jf[k] += t.fi[i]
		js[k] += t.si[i]
	}
	for k := 0; k < t.n; k++ {
		if t.jointCount[k] > 0 {
			m1[k] = jf[k] / t.totFI[k]
			m2[k] = js[k] / t.totSI[k]
		}
	}
	return m1, m2
}

// Overlap returns the per-object overlap, K1 and K2 vectors, all
// restricted to the joint population. Objects whose joint population
// is empty report 0.
func (t *ObjectThreshold) Overlap() (overlap, k1, k2 []float64) {
	overlap = make([]float64, t.n)
	k1 = make([]float64, t.n)
	k2 = make([]float64, t.n)
	sfs := make([]float64, t.n)
	sff := make([]float64, t.n)
	sss := make([]float64, t.n)
	for i, ok := range t.joint {
		if !ok {
			continue
		}
		k := t.labels[i] - 1
		sfs[k] += t.fi[i] * t.si[i]
		sff[k] += t.fi[i] * t.fi[i]
		sss[k] += t.si[i] * t.si[i]
	}
	for k := 0; k < t.n; k++ {
		if t.jointCount[k] > 0 {
			overlap[k] = sfs[k] / math.Sqrt(sff[k]*sss[k])
			k1[k] = sfs[k] / sff[k]
			k2[k] = sfs[k] / sss[k]
		}
	}
	return overlap, k1, k2
}

// RWC returns the per-object rank-weighted colocalization vectors.
// Ranks and R are computed over the pooled sample, not per object.
// Objects whose joint population is empty report 0.
func (t *ObjectThreshold) RWC() (rwc1, rwc2 []float64) {
	rwc1 = make([]float64, t.n)
	rwc2 = make([]float64, t.n)
	if len(t.fi) == 0 {
		return rwc1, rwc2
	}
	rank1 := grouped.DenseRanks(t.fi)
	rank2 := grouped.DenseRanks(t.si)
	r := 1 + max(grouped.MaxRank(rank1), grouped.MaxRank(rank2))
	s1 := make([]float64, t.n)
	s2 := make([]float64, t.n)
	for i, ok := range t.joint {
		if !ok {
			continue
		}
		k := t.labels[i] - 1
		di := rank1[i] - rank2[i]
		if di < 0 {
			di = -di
		}
		w := float64(r-di) / float64(r)
		s1[k] += t.fi[i] * w
		s2[k] += t.si[i] * w
	}
	for k := 0; k < t.n; k++ {
		if t.jointCount[k] > 0 {
			rwc1[k] = s1[k] / t.totFI[k]
			rwc2[k] = s2[k] / t.totSI[k]
		}
	}
	return rwc1, rwc2
}
