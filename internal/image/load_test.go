package image

import (
	stdimage "image"
	"image/color"
	"testing"
)

func TestLabelsFromGrayImage(t *testing.T) {
	img := stdimage.NewGray(stdimage.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 1})
	img.SetGray(1, 0, color.Gray{Y: 1})
	img.SetGray(0, 1, color.Gray{Y: 0})
	img.SetGray(1, 1, color.Gray{Y: 3})

	lm, err := labelsFromImage(img)
	if err != nil {
		t.Fatalf("labelsFromImage: %v", err)
	}
	want := []int{1, 1, 0, 3}
	for i, id := range lm.Labels {
		if id != want[i] {
			t.Errorf("label[%d] = %d, want %d", i, id, want[i])
		}
	}
	if lm.Count != 3 {
		t.Errorf("Count = %d, want 3", lm.Count)
	}
	if lm.Shape[0] != 2 || lm.Shape[1] != 2 {
		t.Errorf("Shape = %v, want [2 2]", lm.Shape)
	}
}

func TestLabelsFromGray16Image(t *testing.T) {
	img := stdimage.NewGray16(stdimage.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 300})
	img.SetGray16(1, 0, color.Gray16{Y: 0})

	lm, err := labelsFromImage(img)
	if err != nil {
		t.Fatalf("labelsFromImage: %v", err)
	}
	if lm.Labels[0] != 300 || lm.Labels[1] != 0 {
		t.Errorf("labels = %v, want [300 0]", lm.Labels)
	}
	if lm.Count != 300 {
		t.Errorf("Count = %d, want 300", lm.Count)
	}
}
