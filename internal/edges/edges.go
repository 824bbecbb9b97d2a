// Package edges computes a binary edge mask from a preprocessed image, per
// spec.md §4.3. The Sobel gradient computation is adapted from the image
// editor's EdgeEx; Canny-style hysteresis reuses the flood-fill package's
// stack-of-seeds/bitset-visited shape, generalized from color matching to
// "strong edge reachable from weak edge."
package edges

import (
	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// Variant selects the edge-detection algorithm.
type Variant int

const (
	Sobel Variant = iota
	Canny
	AiEnhanced
)

// Mask is a binary edge image: each cell is 0 or 255.
type Mask struct {
	Width, Height int
	Pix           []uint8
}

func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

func (m *Mask) At(x, y int) uint8 { return m.Pix[y*m.Width+x] }
func (m *Mask) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v
}

// Config carries the knobs spec.md §4.3 lists for the detector.
type Config struct {
	LowThreshold, HighThreshold float64
}

// Detector produces a binary EdgeMask from a preprocessed image. Hot-swap
// targets (the AiEnhanced variant's external oracle) satisfy the same
// interface, selected once at pipeline construction, per spec.md §9's
// dynamic-module-loading redesign note.
type Detector interface {
	Detect(img *imaging.Image, cfg Config, pool *workerpool.Pool) (*Mask, error)
}

// New returns the Detector for the requested variant. The zero Variant
// (Sobel) is the only one required for conformance; Canny and AiEnhanced add
// non-maximum suppression and hysteresis on top of the same gradient.
func New(v Variant) Detector {
	switch v {
	case Canny:
		return cannyDetector{}
	case AiEnhanced:
		return aiEnhancedDetector{}
	default:
		return sobelDetector{}
	}
}
