package edges

import (
	"fmt"

	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// aiEnhancedDetector implements the "AiEnhanced" variant: multi-scale Sobel
// (3x3 and 5x5) combined by pixelwise maximum, then Canny-style hysteresis.
// The name is historical - spec.md §4.3 is explicit that no neural inference
// is required for conformance, and that a hot-swapped external edge-mask
// oracle satisfying the Detector interface is an acceptable substitute. This
// type is that non-ML reference implementation.
type aiEnhancedDetector struct{}

func (aiEnhancedDetector) Detect(img *imaging.Image, cfg Config, pool *workerpool.Pool) (*Mask, error) {
	if img.Width < 3 || img.Height < 3 {
		return nil, fmt.Errorf("image smaller than 3x3: %dx%d", img.Width, img.Height)
	}
	if cfg.LowThreshold > cfg.HighThreshold {
		return nil, fmt.Errorf("low threshold %.1f exceeds high threshold %.1f", cfg.LowThreshold, cfg.HighThreshold)
	}

	g3 := computeGradient(img, pool)
	g5 := computeGradient5x5(img, pool)

	combined := &gradient{
		width:     g3.width,
		height:    g3.height,
		magnitude: make([]float64, len(g3.magnitude)),
		direction: make([]uint8, len(g3.direction)),
	}
	for i := range combined.magnitude {
		if g3.magnitude[i] >= g5.magnitude[i] {
			combined.magnitude[i] = g3.magnitude[i]
			combined.direction[i] = g3.direction[i]
		} else {
			combined.magnitude[i] = g5.magnitude[i]
			combined.direction[i] = g5.direction[i]
		}
	}

	thinned := nonMaxSuppress(combined, pool)
	return hysteresisLink(thinned, img.Width, img.Height, cfg.LowThreshold, cfg.HighThreshold), nil
}
