package edges

import (
	"math"

	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// gradient holds per-pixel Sobel magnitude and quantized direction, computed
// once and shared by every variant.
type gradient struct {
	width, height int
	magnitude     []float64 // clamped to [0,255]
	direction     []uint8   // quantized to 0=0deg,1=45deg,2=90deg,3=135deg
}

var sobelGx = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
var sobelGy = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

func luminance(c imaging.Image, x, y int) float64 {
	p := c.At(x, y)
	return 0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B)
}

// computeGradient convolves img with the standard 3x3 Sobel kernels.
// AiEnhanced's multi-scale pass combines this with computeGradient5x5, see
// aienhanced.go.
func computeGradient(img *imaging.Image, pool *workerpool.Pool) *gradient {
	w, h := img.Width, img.Height
	g := &gradient{width: w, height: h, magnitude: make([]float64, w*h), direction: make([]uint8, w*h)}

	lum := make([]float64, w*h)
	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				lum[y*w+x] = luminance(*img, x, y)
			}
		}
	})

	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				var sumX, sumY float64
				for ky := -1; ky <= 1; ky++ {
					iy := clampInt(y+ky, 0, h-1)
					for kx := -1; kx <= 1; kx++ {
						ix := clampInt(x+kx, 0, w-1)
						l := lum[iy*w+ix]
						sumX += l * sobelGx[ky+1][kx+1]
						sumY += l * sobelGy[ky+1][kx+1]
					}
				}
				mag := math.Sqrt(sumX*sumX + sumY*sumY)
				if mag > 255 {
					mag = 255
				}
				i := y*w + x
				g.magnitude[i] = mag
				g.direction[i] = quantizeDirection(sumX, sumY)
			}
		}
	})
	return g
}

// computeGradient5x5 uses the separable 5x5 Sobel kernel (smoothing
// [1 4 6 4 1] times derivative [-1 -2 0 2 1]), with the magnitude divided by
// 8 before clamping, for AiEnhanced's multi-scale combination.
func computeGradient5x5(img *imaging.Image, pool *workerpool.Pool) *gradient {
	w, h := img.Width, img.Height
	g := &gradient{width: w, height: h, magnitude: make([]float64, w*h), direction: make([]uint8, w*h)}

	gx5 := [5][5]float64{
		{-1, -2, 0, 2, 1},
		{-4, -8, 0, 8, 4},
		{-6, -12, 0, 12, 6},
		{-4, -8, 0, 8, 4},
		{-1, -2, 0, 2, 1},
	}
	var gy5 [5][5]float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			gy5[i][j] = gx5[j][i]
		}
	}

	lum := make([]float64, w*h)
	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				lum[y*w+x] = luminance(*img, x, y)
			}
		}
	})

	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				var sumX, sumY float64
				for ky := -2; ky <= 2; ky++ {
					iy := clampInt(y+ky, 0, h-1)
					for kx := -2; kx <= 2; kx++ {
						ix := clampInt(x+kx, 0, w-1)
						l := lum[iy*w+ix]
						sumX += l * gx5[ky+2][kx+2]
						sumY += l * gy5[ky+2][kx+2]
					}
				}
				mag := math.Sqrt(sumX*sumX+sumY*sumY) / 8.0
				if mag > 255 {
					mag = 255
				}
				i := y*w + x
				g.magnitude[i] = mag
				g.direction[i] = quantizeDirection(sumX, sumY)
			}
		}
	})
	return g
}

func quantizeDirection(gx, gy float64) uint8 {
	angle := math.Atan2(gy, gx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return 0 // 0 degrees
	case angle < 67.5:
		return 1 // 45 degrees
	case angle < 112.5:
		return 2 // 90 degrees
	default:
		return 3 // 135 degrees
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
