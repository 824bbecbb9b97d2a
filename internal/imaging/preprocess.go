package imaging

import (
	"fmt"

	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// Options configures Preprocess. It mirrors spec.md §4.1's Preprocessor
// configuration options plus the EXIF orientation supplement.
type Options struct {
	MaxDimension  int
	Filter        ResizeFilter
	BlurRadius    float64
	ContrastBoost float64
	Orientation   int // EXIF tag value, 0 or 1 means "no correction"
}

// ResizeFilter mirrors the top-level package's enum without importing it,
// keeping this package import-cycle-free; the top-level package converts.
type ResizeFilter int

const (
	FilterLanczos ResizeFilter = iota
	FilterBilinear
)

// Preprocess decodes, normalizes, and prepares raw image bytes for
// quantization and edge detection, per spec.md §4.1.
func Preprocess(raw []byte, maxPixels int64, opts Options, pool *workerpool.Pool) (*Image, error) {
	decoded, err := Decode(raw, maxPixels)
	if err != nil {
		return nil, err
	}
	img := fromNRGBACompositeWhite(decoded)
	// Drop the decoded buffer as soon as the next representation exists, per
	// spec.md §5's peak-memory guidance.
	decoded = nil

	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("non-positive dimensions: %dx%d", img.Width, img.Height)
	}

	img = Normalize(img, opts.Orientation)

	if opts.MaxDimension > 0 {
		larger := img.Width
		if img.Height > larger {
			larger = img.Height
		}
		if larger > opts.MaxDimension {
			scale := float64(opts.MaxDimension) / float64(larger)
			newW := maxInt(1, int(float64(img.Width)*scale+0.5))
			newH := maxInt(1, int(float64(img.Height)*scale+0.5))
			switch opts.Filter {
			case FilterBilinear:
				img = ResampleBilinear(img, newW, newH)
			default:
				img = ResampleLanczos(img, newW, newH)
			}
		}
	}

	if opts.BlurRadius > 0 {
		img = GaussianBlur(img, opts.BlurRadius, pool)
	}
	if opts.ContrastBoost != 1.0 {
		img = ContrastBoost(img, opts.ContrastBoost, pool)
	}

	return img, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
