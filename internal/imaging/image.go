// Package imaging implements the vectorization pipeline's Preprocessor
// stage: decode, normalize to opaque RGB, optional downscale, blur, and
// contrast stretch.
//
// The pixel helpers here (ToNRGBA, clamped sampling, the separable Gaussian
// blur) are adapted from the image editor's pkg/stdimg package, which
// needed the same dense NRGBA buffer conventions for its filter chain.
package imaging

import (
	"image"
	"image/color"
)

// Image is a decoded, normalized RGB 8-bit pixel buffer: the Preprocessor's
// output and every later stage's input.
type Image struct {
	Width, Height int
	// Pix holds width*height*3 samples in row-major RGB order.
	Pix []uint8
}

// NewImage allocates a zeroed Image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
}

// At returns the pixel at (x,y).
func (im *Image) At(x, y int) color.NRGBA {
	i := (y*im.Width + x) * 3
	return color.NRGBA{R: im.Pix[i], G: im.Pix[i+1], B: im.Pix[i+2], A: 255}
}

// Set writes the pixel at (x,y).
func (im *Image) Set(x, y int, c color.NRGBA) {
	i := (y*im.Width + x) * 3
	im.Pix[i] = c.R
	im.Pix[i+1] = c.G
	im.Pix[i+2] = c.B
}

// toNRGBA converts any image.Image to a *image.NRGBA, copying rather than
// aliasing when the source is already NRGBA so callers may mutate freely.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		out := image.NewNRGBA(n.Rect)
		copy(out.Pix, n.Pix)
		return out
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(bl >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

// fromNRGBACompositeWhite flattens an NRGBA buffer to opaque RGB by
// compositing each pixel over solid white, per spec.md: "Alpha, if present,
// is composited onto opaque white."
func fromNRGBACompositeWhite(src *image.NRGBA) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			sr := float64(src.Pix[i+0])
			sg := float64(src.Pix[i+1])
			sb := float64(src.Pix[i+2])
			sa := float64(src.Pix[i+3]) / 255.0

			r := sr*sa + 255.0*(1.0-sa)
			g := sg*sa + 255.0*(1.0-sa)
			bch := sb*sa + 255.0*(1.0-sa)

			oi := (y*w + x) * 3
			out.Pix[oi+0] = clampByte(r)
			out.Pix[oi+1] = clampByte(g)
			out.Pix[oi+2] = clampByte(bch)
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func samplePixelClamped(src *image.NRGBA, x, y int) color.NRGBA {
	b := src.Bounds()
	if x < b.Min.X {
		x = b.Min.X
	} else if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	} else if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	i := src.PixOffset(x, y)
	return color.NRGBA{R: src.Pix[i+0], G: src.Pix[i+1], B: src.Pix[i+2], A: src.Pix[i+3]}
}
