package image

import (
	"fmt"
	stdimage "image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"
)

// LoadGrayscale reads an image file as a single intensity channel
// normalized to [0, 1], with every pixel valid.
func LoadGrayscale(path string) (*Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	if mat.Empty() {
		return nil, fmt.Errorf("read %s: missing or unsupported image", path)
	}
	defer mat.Close()

	rows, cols := mat.Rows(), mat.Cols()
	pixels := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pixels[y*cols+x] = float64(mat.GetUCharAt(y, x)) / 255.0
		}
	}
	return New(pixels, FullMask(rows*cols), []int{rows, cols})
}

// LoadLabelMap reads a label image where each pixel value is the id of
// the object covering it and 0 is background. 16-bit grayscale files
// keep ids above 255 intact.
func LoadLabelMap(path string) (*LabelMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := stdimage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	lm, err := labelsFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return lm, nil
}

func labelsFromImage(img stdimage.Image) (*LabelMap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	labels := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var id int
			switch im := img.(type) {
			case *stdimage.Gray:
				id = int(im.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			case *stdimage.Gray16:
				id = int(im.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			default:
				// RGBA() yields 16-bit channels; shift back to the
				// stored 8-bit value.
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				id = int(((r + g + b) / 3) >> 8)
			}
			labels[y*w+x] = id
		}
	}
	return NewLabelMap(labels, []int{h, w})
}
