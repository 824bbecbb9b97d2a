package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// sinc and lanczosKernel are adapted directly from the image editor's
// ResampleLanczos.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x = math.Pi * x
	return math.Sin(x) / x
}

func lanczosKernel(x, a float64) float64 {
	x = math.Abs(x)
	if x < 1e-12 {
		return 1
	}
	if x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

// ResampleLanczos resamples an RGB Image to dstW x dstH using Lanczos-3,
// the default high-quality downscale filter.
func ResampleLanczos(src *Image, dstW, dstH int) *Image {
	const a = 3.0
	dst := NewImage(dstW, dstH)
	if dstW == 0 || dstH == 0 {
		return dst
	}
	xScale := float64(src.Width) / float64(dstW)
	yScale := float64(src.Height) / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		yMin := int(math.Floor(sy - a + 1))
		yMax := int(math.Ceil(sy + a - 1))
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			xMin := int(math.Floor(sx - a + 1))
			xMax := int(math.Ceil(sx + a - 1))

			var sumR, sumG, sumB, weightSum float64
			for yi := yMin; yi <= yMax; yi++ {
				wy := lanczosKernel(float64(yi)-sy, a)
				cy := clampInt(yi, 0, src.Height-1)
				for xi := xMin; xi <= xMax; xi++ {
					wx := lanczosKernel(float64(xi)-sx, a)
					w := wx * wy
					cx := clampInt(xi, 0, src.Width-1)
					c := src.At(cx, cy)
					sumR += float64(c.R) * w
					sumG += float64(c.G) * w
					sumB += float64(c.B) * w
					weightSum += w
				}
			}
			if weightSum == 0 {
				weightSum = 1
			}
			dst.Set(x, y, rgbColor(
				clampByte(sumR/weightSum),
				clampByte(sumG/weightSum),
				clampByte(sumB/weightSum),
			))
		}
	}
	return dst
}

// ResampleBilinear downscales via golang.org/x/image/draw's CatmullRom
// kernel, the compatibility filter path.
func ResampleBilinear(src *Image, dstW, dstH int) *Image {
	srcImg := image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			c := src.At(x, y)
			i := srcImg.PixOffset(x, y)
			srcImg.Pix[i+0] = c.R
			srcImg.Pix[i+1] = c.G
			srcImg.Pix[i+2] = c.B
			srcImg.Pix[i+3] = 255
		}
	}
	dstImg := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Over, nil)

	dst := NewImage(dstW, dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			i := dstImg.PixOffset(x, y)
			dst.Set(x, y, rgbColor(dstImg.Pix[i+0], dstImg.Pix[i+1], dstImg.Pix[i+2]))
		}
	}
	return dst
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
