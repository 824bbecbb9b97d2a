package vectorize

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return encodePNG(t, img)
}

func splitPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 20, G: 20, B: 200, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 230, G: 230, B: 30, A: 255})
			}
		}
	}
	return encodePNG(t, img)
}

func checkerboardPNG(t *testing.T, w, h, cell int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return encodePNG(t, img)
}

func TestVectorizeSolidColorImageProducesValidSVG(t *testing.T) {
	data := solidPNG(t, 32, 32, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	result, err := Vectorize(context.Background(), data, FormatPNG, Config{Quality: QualityFast, K: 2})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	doc := string(result.SVG)
	if !strings.HasPrefix(strings.TrimSpace(doc), "<?xml") {
		t.Errorf("output does not start with an XML declaration: %s", doc)
	}
	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "</svg>") {
		t.Errorf("output is not a well-formed SVG document: %s", doc)
	}
}

func TestVectorizeTwoColorSplitProducesDistinctRegions(t *testing.T) {
	data := splitPNG(t, 40, 20)
	result, err := Vectorize(context.Background(), data, FormatPNG, Config{Quality: QualityFast, K: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	doc := string(result.SVG)
	if strings.Count(doc, "<path") < 2 {
		t.Errorf("expected a region path for each of the two halves, got: %s", doc)
	}
}

func TestVectorizeCheckerboardDoesNotErrorOrHang(t *testing.T) {
	data := checkerboardPNG(t, 16, 16, 2)
	result, err := Vectorize(context.Background(), data, FormatPNG, Config{Quality: QualityFast, K: 2, MinRegionPixels: 1})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if len(result.SVG) == 0 {
		t.Error("expected non-empty SVG output")
	}
}

func TestVectorizeRejectsEmptyInput(t *testing.T) {
	_, err := Vectorize(context.Background(), nil, FormatPNG, Config{})
	if err == nil {
		t.Fatal("expected an error for empty input")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a *Error: %v", err)
	}
	if verr.Kind != KindDecodeFailed {
		t.Errorf("Kind = %v, want KindDecodeFailed", verr.Kind)
	}
}

func TestVectorizeRejectsUndecodableInput(t *testing.T) {
	_, err := Vectorize(context.Background(), []byte("definitely not an image"), FormatPNG, Config{})
	if err == nil {
		t.Fatal("expected an error for undecodable input")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a *Error: %v", err)
	}
	if verr.Kind != KindDecodeFailed {
		t.Errorf("Kind = %v, want KindDecodeFailed", verr.Kind)
	}
}

func TestVectorizeReportsResourceExhausted(t *testing.T) {
	data := solidPNG(t, 64, 64, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	_, err := Vectorize(context.Background(), data, FormatPNG, Config{MaxPixels: 100})
	if err == nil {
		t.Fatal("expected an error when MaxPixels is exceeded")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a *Error: %v", err)
	}
	if verr.Kind != KindResourceExhausted {
		t.Errorf("Kind = %v, want KindResourceExhausted", verr.Kind)
	}
}

func TestVectorizeRespectsCancelToken(t *testing.T) {
	token := NewCancelToken()
	token.Cancel()
	data := solidPNG(t, 16, 16, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	_, err := Vectorize(context.Background(), data, FormatPNG, Config{CancelToken: token})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a *Error: %v", err)
	}
	if verr.Kind != KindCancelled {
		t.Errorf("Kind = %v, want KindCancelled", verr.Kind)
	}
}

func TestVectorizeRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := solidPNG(t, 16, 16, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	_, err := Vectorize(ctx, data, FormatPNG, Config{})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a *Error: %v", err)
	}
	if verr.Kind != KindCancelled {
		t.Errorf("Kind = %v, want KindCancelled", verr.Kind)
	}
}

func TestVectorizeRejectsOutOfRangeK(t *testing.T) {
	data := solidPNG(t, 8, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	_, err := Vectorize(context.Background(), data, FormatPNG, Config{K: 1000})
	if err == nil {
		t.Fatal("expected a configuration error for out-of-range K")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a *Error: %v", err)
	}
	if verr.Kind != KindInvalidConfiguration {
		t.Errorf("Kind = %v, want KindInvalidConfiguration", verr.Kind)
	}
}
