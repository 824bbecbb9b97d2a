package edges

import (
	"fmt"

	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

type sobelDetector struct{}

// Detect implements the baseline Sobel variant: magnitude thresholded at
// HighThreshold, per spec.md §4.3.
func (sobelDetector) Detect(img *imaging.Image, cfg Config, pool *workerpool.Pool) (*Mask, error) {
	if img.Width < 3 || img.Height < 3 {
		return nil, fmt.Errorf("image smaller than 3x3: %dx%d", img.Width, img.Height)
	}
	if cfg.LowThreshold > cfg.HighThreshold {
		return nil, fmt.Errorf("low threshold %.1f exceeds high threshold %.1f", cfg.LowThreshold, cfg.HighThreshold)
	}
	g := computeGradient(img, pool)
	mask := NewMask(img.Width, img.Height)
	pool.ParallelRows(img.Height, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < img.Width; x++ {
				if g.magnitude[y*img.Width+x] >= cfg.HighThreshold {
					mask.Set(x, y, 255)
				}
			}
		}
	})
	return mask, nil
}
