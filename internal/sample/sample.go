// Package sample extracts paired 1-D intensity samples from aligned
// image pairs, over whole images or per labeled object.
package sample

import (
	"fmt"

	"coloc-meter/internal/image"
)

// Pair holds index-aligned intensity samples from two images: index i
// in FI, SI (and Labels, in object mode) refers to the same spatial
// location. Labels is nil in whole-image mode; in object mode
// Labels[i] is the object id of sample i and Objects is the object
// count N of the label map, including objects without samples.
type Pair struct {
	FI      []float64
	SI      []float64
	Labels  []int
	Objects int
}

// Empty reports whether no valid samples were extracted.
func (p *Pair) Empty() bool {
	return len(p.FI) == 0
}

// FromImages aligns a pair of images and extracts the valid-pixel
// samples in row-major order.
func FromImages(a, b *image.Image) (*Pair, error) {
	fa, fb, valid, err := image.AlignPair(a, b)
	if err != nil {
		return nil, fmt.Errorf("extract image samples: %w", err)
	}
	p := &Pair{}
	for i, ok := range valid {
		if !ok {
			continue
		}
		p.FI = append(p.FI, fa.Pixels[i])
		p.SI = append(p.SI, fb.Pixels[i])
	}
	return p, nil
}

// FromObjects extracts per-object samples over the label domain.
// Each image and its mask is independently cropped or padded to the
// label shape; a sample is kept where the label is positive and both
// masks are defined there.
func FromObjects(a, b *image.Image, lm *image.LabelMap) (*Pair, error) {
	ra, err := image.ResizeTo(a, lm.Shape)
	if err != nil {
		return nil, fmt.Errorf("extract object samples: %w", err)
	}
	rb, err := image.ResizeTo(b, lm.Shape)
	if err != nil {
		return nil, fmt.Errorf("extract object samples: %w", err)
	}
	p := &Pair{Objects: lm.Count}
	for i, id := range lm.Labels {
		if id <= 0 || !ra.Mask[i] || !rb.Mask[i] {
			continue
		}
		p.FI = append(p.FI, ra.Pixels[i])
		p.SI = append(p.SI, rb.Pixels[i])
		p.Labels = append(p.Labels, id)
	}
	return p, nil
}
