package grouped

import (
	"math"
	"testing"
)

func closeEnough(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSum(t *testing.T) {
	got := Sum([]float64{1, 2, 3, 4}, []int{1, 1, 2, 2}, 2)
	want := []float64{3, 7}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("Sum[%d] = %v, want %v", k, got[k], want[k])
		}
	}
}

func TestSumIgnoresBackgroundAndOutOfRange(t *testing.T) {
	got := Sum([]float64{5, 6, 7, 8}, []int{0, 1, 3, -1}, 2)
	if got[0] != 6 || got[1] != 0 {
		t.Errorf("Sum = %v, want [6 0]", got)
	}
}

func TestSumEmptyLabelReportsZero(t *testing.T) {
	got := Sum([]float64{1, 2}, []int{1, 1}, 3)
	if got[1] != 0 || got[2] != 0 {
		t.Errorf("empty labels should report 0, got %v", got)
	}
}

func TestMean(t *testing.T) {
	got := Mean([]float64{1, 2, 3, 4}, []int{1, 1, 2, 2}, 2)
	if got[0] != 1.5 || got[1] != 3.5 {
		t.Errorf("Mean = %v, want [1.5 3.5]", got)
	}
}

func TestMeanEmptyLabelIsNaN(t *testing.T) {
	got := Mean([]float64{1, 2}, []int{1, 1}, 2)
	if !math.IsNaN(got[1]) {
		t.Errorf("mean of empty label = %v, want NaN", got[1])
	}
}

func TestMax(t *testing.T) {
	got := Max([]float64{1, 5, 2, -3}, []int{1, 1, 2, 2}, 3)
	want := []float64{5, 2, 0}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("Max[%d] = %v, want %v", k, got[k], want[k])
		}
	}
}

func TestVariance(t *testing.T) {
	got := Variance([]float64{1, 2, 3, 5}, []int{1, 1, 2, 2}, 2)
	if !closeEnough(got[0], 0.5, 1e-12) {
		t.Errorf("Variance[0] = %v, want 0.5", got[0])
	}
	if !closeEnough(got[1], 2.0, 1e-12) {
		t.Errorf("Variance[1] = %v, want 2.0", got[1])
	}
}

func TestCount(t *testing.T) {
	got := Count([]int{1, 1, 1, 2, 0}, 3)
	if got[0] != 3 || got[1] != 1 || got[2] != 0 {
		t.Errorf("Count = %v, want [3 1 0]", got)
	}
}

func TestDenseRanks(t *testing.T) {
	tests := []struct {
		values []float64
		want   []int
	}{
		{[]float64{3, 1, 1, 2}, []int{2, 0, 0, 1}},
		{[]float64{1, 2, 3, 4}, []int{0, 1, 2, 3}},
		{[]float64{7, 7, 7}, []int{0, 0, 0}},
		{[]float64{}, []int{}},
		{[]float64{5}, []int{0}},
	}
	for _, tt := range tests {
		got := DenseRanks(tt.values)
		if len(got) != len(tt.want) {
			t.Errorf("DenseRanks(%v) length = %d, want %d", tt.values, len(got), len(tt.want))
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("DenseRanks(%v)[%d] = %d, want %d", tt.values, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMaxRank(t *testing.T) {
	if got := MaxRank([]int{2, 0, 0, 1}); got != 2 {
		t.Errorf("MaxRank = %d, want 2", got)
	}
	if got := MaxRank(nil); got != -1 {
		t.Errorf("MaxRank(nil) = %d, want -1", got)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{2, 4, 6})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Mean != 4 || s.Median != 4 || s.Min != 2 || s.Max != 6 {
		t.Errorf("Summarize = %+v, want mean/median/min/max = 4/4/2/6", s)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s, err := Summarize([]float64{5})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Mean != 5 || s.Median != 5 || s.Min != 5 || s.Max != 5 {
		t.Errorf("Summarize = %+v, want all 5", s)
	}
}

func TestSummarizeEmptyIsError(t *testing.T) {
	if _, err := Summarize(nil); err == nil {
		t.Error("Summarize(nil) should report no data, got nil error")
	}
}
