// Package image defines the grayscale image and label-map inputs to
// the colocalization engine and reconciles image pairs of mismatched
// shapes into a common valid-pixel domain.
package image

import "fmt"

// Image is an n-dimensional grayscale intensity array stored flat in
// row-major order, with a co-sized boolean mask marking defined
// pixels. Images forming a pair may differ in shape but must share
// rank.
type Image struct {
	Pixels []float64
	Mask   []bool
	Shape  []int
}

// New validates the buffer sizes against the shape and wraps them.
func New(pixels []float64, mask []bool, shape []int) (*Image, error) {
	n := Size(shape)
	if len(shape) == 0 || n <= 0 {
		return nil, fmt.Errorf("invalid shape %v", shape)
	}
	if len(pixels) != n {
		return nil, fmt.Errorf("pixel buffer has %d entries, shape %v needs %d", len(pixels), shape, n)
	}
	if len(mask) != n {
		return nil, fmt.Errorf("mask has %d entries, shape %v needs %d", len(mask), shape, n)
	}
	return &Image{Pixels: pixels, Mask: mask, Shape: shape}, nil
}

// PixelCount returns the total number of pixels.
func (im *Image) PixelCount() int {
	return Size(im.Shape)
}

// Size returns the pixel count of a shape.
func Size(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0
		}
		n *= d
	}
	return n
}

// FullMask returns a mask with every one of n pixels defined.
func FullMask(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

// LabelMap assigns each pixel an object id over the same row-major
// layout as an Image. 0 is background; objects carry contiguous ids
// 1..Count.
type LabelMap struct {
	Labels []int
	Shape  []int
	Count  int
}

// NewLabelMap validates the label buffer and derives the object count
// as the largest id present.
func NewLabelMap(labels []int, shape []int) (*LabelMap, error) {
	n := Size(shape)
	if len(shape) == 0 || n <= 0 {
		return nil, fmt.Errorf("invalid shape %v", shape)
	}
	if len(labels) != n {
		return nil, fmt.Errorf("label buffer has %d entries, shape %v needs %d", len(labels), shape, n)
	}
	count := 0
	for _, id := range labels {
		if id < 0 {
			return nil, fmt.Errorf("negative label id %d", id)
		}
		if id > count {
			count = id
		}
	}
	return &LabelMap{Labels: labels, Shape: shape, Count: count}, nil
}
