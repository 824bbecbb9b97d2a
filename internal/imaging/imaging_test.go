package imaging

import (
	"image/color"
	"testing"

	"github.com/Fepozopo/vectorize/internal/workerpool"
)

func solidImage(w, h int, c color.NRGBA) *Image {
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestGaussianBlurLeavesSolidColorUnchanged(t *testing.T) {
	pool := workerpool.New(2)
	src := solidImage(20, 20, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	dst := GaussianBlur(src, 2.0, pool)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			got := dst.At(x, y)
			if got.R != 100 || got.G != 150 || got.B != 200 {
				t.Fatalf("blurred solid image changed at (%d,%d): %v", x, y, got)
			}
		}
	}
}

func TestGaussianBlurZeroSigmaIsIdentity(t *testing.T) {
	pool := workerpool.New(2)
	src := solidImage(4, 4, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	dst := GaussianBlur(src, 0, pool)
	if dst.At(1, 1) != src.At(1, 1) {
		t.Errorf("zero-sigma blur should be identity")
	}
}

func TestContrastBoostPushesAwayFromMidpoint(t *testing.T) {
	pool := workerpool.New(2)
	src := solidImage(2, 2, color.NRGBA{R: 200, G: 50, B: 128, A: 255})
	dst := ContrastBoost(src, 1.5, pool)
	got := dst.At(0, 0)
	if got.R <= 200 {
		t.Errorf("expected value above 128 to move further from 128, got R=%d", got.R)
	}
	if got.G >= 50 {
		t.Errorf("expected value below 128 to move further from 128, got G=%d", got.G)
	}
	if got.B != 128 {
		t.Errorf("midpoint value should be unaffected by contrast stretch, got B=%d", got.B)
	}
}

func TestNormalizeRotate90CWSwapsDimensions(t *testing.T) {
	src := NewImage(4, 2)
	src.Set(0, 0, color.NRGBA{R: 1, A: 255})
	out := Normalize(src, OrientationRotated90CW)
	if out.Width != 2 || out.Height != 4 {
		t.Fatalf("rotated dimensions = %dx%d, want 2x4", out.Width, out.Height)
	}
}

func TestNormalizeIdentityForOrientation1(t *testing.T) {
	src := solidImage(3, 3, color.NRGBA{R: 5, G: 6, B: 7, A: 255})
	out := Normalize(src, OrientationNormal)
	if out != src {
		t.Errorf("orientation 1 should return the same image unchanged")
	}
}

func TestResampleLanczosPreservesSolidColor(t *testing.T) {
	src := solidImage(10, 10, color.NRGBA{R: 42, G: 42, B: 42, A: 255})
	dst := ResampleLanczos(src, 5, 5)
	c := dst.At(2, 2)
	if c.R < 40 || c.R > 44 {
		t.Errorf("downscaled solid color drifted: got R=%d, want ~42", c.R)
	}
}

func TestResampleBilinearDimensions(t *testing.T) {
	src := solidImage(8, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	dst := ResampleBilinear(src, 16, 4)
	if dst.Width != 16 || dst.Height != 4 {
		t.Fatalf("ResampleBilinear size = %dx%d, want 16x4", dst.Width, dst.Height)
	}
}

func TestReadJPEGOrientationNoExifReturnsZero(t *testing.T) {
	if got := ReadJPEGOrientation([]byte{0xFF, 0xD8, 0xFF, 0xD9}); got != 0 {
		t.Errorf("ReadJPEGOrientation on bare JPEG markers = %d, want 0", got)
	}
}

func TestPreprocessRejectsUndecodableInput(t *testing.T) {
	pool := workerpool.New(2)
	_, err := Preprocess([]byte("not an image"), 0, Options{}, pool)
	if err == nil {
		t.Fatal("expected an error for undecodable input")
	}
}
