package image

import (
	"fmt"
	"math"
)

// strides returns the row-major stride of each axis.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// ResizeTo reshapes an image to the target extent, origin-anchored on
// every axis: axes where the image is larger are cropped, axes where
// it is smaller are padded with masked-out zero pixels. The target
// must have the same rank as the image.
func ResizeTo(im *Image, shape []int) (*Image, error) {
	if len(shape) != len(im.Shape) {
		return nil, fmt.Errorf("rank mismatch: image shape %v, target %v", im.Shape, shape)
	}
	n := Size(shape)
	pixels := make([]float64, n)
	mask := make([]bool, n)
	srcStride := strides(im.Shape)
	coord := make([]int, len(shape))
	for dst := 0; dst < n; dst++ {
		src := 0
		inside := true
		for ax := range coord {
			if coord[ax] >= im.Shape[ax] {
				inside = false
				break
			}
			src += coord[ax] * srcStride[ax]
		}
		if inside {
			pixels[dst] = im.Pixels[src]
			mask[dst] = im.Mask[src]
		}
		for ax := len(coord) - 1; ax >= 0; ax-- {
			coord[ax]++
			if coord[ax] < shape[ax] {
				break
			}
			coord[ax] = 0
		}
	}
	out := append([]int(nil), shape...)
	return &Image{Pixels: pixels, Mask: mask, Shape: out}, nil
}

// AlignPair reconciles a pair of possibly differently shaped images:
// the image with the strictly larger pixel count is cropped to the
// extent of the smaller, origin-anchored per axis. It returns both
// images at the common shape together with the combined validity
// mask, true where the pixel is defined in both masks and finite in
// both channels.
func AlignPair(a, b *Image) (*Image, *Image, []bool, error) {
	if len(a.Shape) != len(b.Shape) {
		return nil, nil, nil, fmt.Errorf("rank mismatch: %v vs %v", a.Shape, b.Shape)
	}

	var err error
	switch {
	case a.PixelCount() < b.PixelCount():
		b, err = ResizeTo(b, a.Shape)
	case b.PixelCount() < a.PixelCount():
		a, err = ResizeTo(a, b.Shape)
	default:
		if !sameShape(a.Shape, b.Shape) {
			err = fmt.Errorf("equal pixel counts but incompatible shapes %v vs %v", a.Shape, b.Shape)
		}
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("align pair: %w", err)
	}

	valid := make([]bool, a.PixelCount())
	for i := range valid {
		valid[i] = a.Mask[i] && b.Mask[i] && isFinite(a.Pixels[i]) && isFinite(b.Pixels[i])
	}
	return a, b, valid, nil
}

func sameShape(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
