package edges

import (
	"image/color"
	"testing"

	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

func splitImage(w, h, boundary int) *imaging.Image {
	img := imaging.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < boundary {
				img.Set(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}

func TestSobelDetectsVerticalBoundary(t *testing.T) {
	pool := workerpool.New(2)
	img := splitImage(20, 10, 10)
	mask, err := New(Sobel).Detect(img, Config{LowThreshold: 30, HighThreshold: 60}, pool)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	found := false
	for x := 7; x <= 12; x++ {
		if mask.At(x, 5) != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an edge pixel near the black/white boundary at x~10")
	}
	// Far from the boundary, the mask should stay clear.
	if mask.At(1, 5) != 0 {
		t.Errorf("unexpected edge pixel far from the boundary")
	}
}

func TestCannyOnUniformImageProducesNoEdges(t *testing.T) {
	pool := workerpool.New(2)
	img := imaging.NewImage(12, 12)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	mask, err := New(Canny).Detect(img, Config{LowThreshold: 10, HighThreshold: 40}, pool)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for i, v := range mask.Pix {
		if v != 0 {
			t.Fatalf("uniform image produced an edge pixel at index %d", i)
		}
	}
}

func TestDetectRejectsImageSmallerThan3x3(t *testing.T) {
	pool := workerpool.New(2)
	img := imaging.NewImage(2, 2)
	if _, err := New(Sobel).Detect(img, Config{LowThreshold: 10, HighThreshold: 20}, pool); err == nil {
		t.Error("expected an error for a 2x2 image")
	}
}

func TestDetectRejectsInvertedThresholds(t *testing.T) {
	pool := workerpool.New(2)
	img := imaging.NewImage(5, 5)
	if _, err := New(Canny).Detect(img, Config{LowThreshold: 90, HighThreshold: 30}, pool); err == nil {
		t.Error("expected an error when low threshold exceeds high threshold")
	}
}

func TestAiEnhancedAtLeastAsSensitiveAsSobel(t *testing.T) {
	pool := workerpool.New(2)
	img := splitImage(20, 10, 10)
	cfg := Config{LowThreshold: 30, HighThreshold: 60}
	sobelMask, err := New(Sobel).Detect(img, cfg, pool)
	if err != nil {
		t.Fatalf("sobel Detect: %v", err)
	}
	aiMask, err := New(AiEnhanced).Detect(img, cfg, pool)
	if err != nil {
		t.Fatalf("ai-enhanced Detect: %v", err)
	}
	sobelCount, aiCount := 0, 0
	for _, v := range sobelMask.Pix {
		if v != 0 {
			sobelCount++
		}
	}
	for _, v := range aiMask.Pix {
		if v != 0 {
			aiCount++
		}
	}
	if aiCount == 0 {
		t.Errorf("expected ai-enhanced detector to find the boundary")
	}
	if aiCount < sobelCount {
		t.Errorf("ai-enhanced marked %d edge pixels, fewer than sobel's %d", aiCount, sobelCount)
	}
}
