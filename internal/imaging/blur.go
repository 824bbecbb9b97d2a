package imaging

import (
	"math"

	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// gaussianKernel1D is adapted from the image editor's convolution.go.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	radius := int(math.Ceil(3 * sigma))
	sz := radius*2 + 1
	kern := make([]float64, sz)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

// GaussianBlur applies a separable Gaussian blur, parallel over rows in
// both passes, the same structure as the image editor's
// SeparableGaussianBlur.
func GaussianBlur(src *Image, sigma float64, pool *workerpool.Pool) *Image {
	if sigma <= 0 {
		out := NewImage(src.Width, src.Height)
		copy(out.Pix, src.Pix)
		return out
	}
	kern, radius := gaussianKernel1D(sigma)
	w, h := src.Width, src.Height
	tmp := NewImage(w, h)
	dst := NewImage(w, h)

	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				var sr, sg, sb, wsum float64
				for k := -radius; k <= radius; k++ {
					ix := clampInt(x+k, 0, w-1)
					c := src.At(ix, y)
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					wsum += wgt
				}
				tmp.Set(x, y, rgbColor(clampByte(sr/wsum), clampByte(sg/wsum), clampByte(sb/wsum)))
			}
		}
	})

	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				var sr, sg, sb, wsum float64
				for k := -radius; k <= radius; k++ {
					iy := clampInt(y+k, 0, h-1)
					c := tmp.At(x, iy)
					wgt := kern[k+radius]
					sr += float64(c.R) * wgt
					sg += float64(c.G) * wgt
					sb += float64(c.B) * wgt
					wsum += wgt
				}
				dst.Set(x, y, rgbColor(clampByte(sr/wsum), clampByte(sg/wsum), clampByte(sb/wsum)))
			}
		}
	})
	return dst
}
