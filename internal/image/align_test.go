package image

import (
	"math"
	"testing"
)

func mustImage(t *testing.T, pixels []float64, mask []bool, shape []int) *Image {
	t.Helper()
	im, err := New(pixels, mask, shape)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return im
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]float64{1, 2}, FullMask(2), []int{3}); err == nil {
		t.Error("pixel/shape mismatch should error")
	}
	if _, err := New([]float64{1, 2, 3}, FullMask(2), []int{3}); err == nil {
		t.Error("mask/shape mismatch should error")
	}
	if _, err := New(nil, nil, nil); err == nil {
		t.Error("empty shape should error")
	}
}

func TestNewLabelMapCount(t *testing.T) {
	lm, err := NewLabelMap([]int{0, 1, 3, 2}, []int{2, 2})
	if err != nil {
		t.Fatalf("NewLabelMap: %v", err)
	}
	if lm.Count != 3 {
		t.Errorf("Count = %d, want 3", lm.Count)
	}
	if _, err := NewLabelMap([]int{0, -1, 0, 0}, []int{2, 2}); err == nil {
		t.Error("negative label should error")
	}
}

func TestResizeToCrop(t *testing.T) {
	// 3x3 block 0..8, cropped to the top-left 2x2.
	im := mustImage(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, FullMask(9), []int{3, 3})
	out, err := ResizeTo(im, []int{2, 2})
	if err != nil {
		t.Fatalf("ResizeTo: %v", err)
	}
	want := []float64{0, 1, 3, 4}
	for i := range want {
		if out.Pixels[i] != want[i] {
			t.Errorf("Pixels[%d] = %v, want %v", i, out.Pixels[i], want[i])
		}
		if !out.Mask[i] {
			t.Errorf("Mask[%d] should stay defined", i)
		}
	}
}

func TestResizeToPadMasksOut(t *testing.T) {
	// 2x2 grown to 2x3: the new column is masked out.
	im := mustImage(t, []float64{1, 2, 3, 4}, FullMask(4), []int{2, 2})
	out, err := ResizeTo(im, []int{2, 3})
	if err != nil {
		t.Fatalf("ResizeTo: %v", err)
	}
	wantPix := []float64{1, 2, 0, 3, 4, 0}
	wantMask := []bool{true, true, false, true, true, false}
	for i := range wantPix {
		if out.Pixels[i] != wantPix[i] {
			t.Errorf("Pixels[%d] = %v, want %v", i, out.Pixels[i], wantPix[i])
		}
		if out.Mask[i] != wantMask[i] {
			t.Errorf("Mask[%d] = %v, want %v", i, out.Mask[i], wantMask[i])
		}
	}
}

func TestResizeToRankMismatch(t *testing.T) {
	im := mustImage(t, []float64{1, 2, 3, 4}, FullMask(4), []int{2, 2})
	if _, err := ResizeTo(im, []int{4}); err == nil {
		t.Error("rank mismatch should error")
	}
}

func TestAlignPairCropsLarger(t *testing.T) {
	a := mustImage(t, []float64{0, 1, 2, 3, 4, 5}, FullMask(6), []int{2, 3})
	b := mustImage(t, []float64{9, 8, 7, 6}, FullMask(4), []int{2, 2})
	fa, fb, valid, err := AlignPair(a, b)
	if err != nil {
		t.Fatalf("AlignPair: %v", err)
	}
	if fa.PixelCount() != 4 || fb.PixelCount() != 4 {
		t.Fatalf("common shape = %v / %v, want 2x2 both", fa.Shape, fb.Shape)
	}
	wantA := []float64{0, 1, 3, 4}
	for i := range wantA {
		if fa.Pixels[i] != wantA[i] {
			t.Errorf("cropped Pixels[%d] = %v, want %v", i, fa.Pixels[i], wantA[i])
		}
		if !valid[i] {
			t.Errorf("valid[%d] = false, want true", i)
		}
	}
}

func TestAlignPairValidityMask(t *testing.T) {
	a := mustImage(t, []float64{1, math.NaN(), 3, 4}, []bool{true, true, false, true}, []int{2, 2})
	b := mustImage(t, []float64{1, 2, 3, math.Inf(1)}, []bool{true, true, true, true}, []int{2, 2})
	_, _, valid, err := AlignPair(a, b)
	if err != nil {
		t.Fatalf("AlignPair: %v", err)
	}
	want := []bool{true, false, false, false}
	for i := range want {
		if valid[i] != want[i] {
			t.Errorf("valid[%d] = %v, want %v", i, valid[i], want[i])
		}
	}
}

func TestAlignPairRankMismatch(t *testing.T) {
	a := mustImage(t, []float64{1, 2, 3, 4}, FullMask(4), []int{2, 2})
	b := mustImage(t, []float64{1, 2, 3, 4}, FullMask(4), []int{4})
	if _, _, _, err := AlignPair(a, b); err == nil {
		t.Error("rank mismatch should error")
	}
}
