package edges

import (
	"fmt"

	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

type cannyDetector struct{}

// Detect implements the Canny variant: Sobel gradient, non-maximum
// suppression along the quantized gradient direction, then double-threshold
// hysteresis, per spec.md §4.3.
func (cannyDetector) Detect(img *imaging.Image, cfg Config, pool *workerpool.Pool) (*Mask, error) {
	if img.Width < 3 || img.Height < 3 {
		return nil, fmt.Errorf("image smaller than 3x3: %dx%d", img.Width, img.Height)
	}
	if cfg.LowThreshold > cfg.HighThreshold {
		return nil, fmt.Errorf("low threshold %.1f exceeds high threshold %.1f", cfg.LowThreshold, cfg.HighThreshold)
	}
	g := computeGradient(img, pool)
	thinned := nonMaxSuppress(g, pool)
	return hysteresisLink(thinned, img.Width, img.Height, cfg.LowThreshold, cfg.HighThreshold), nil
}
