// Package colorspace converts between sRGB, linear RGB, and CIE L*a*b*.
//
// The arithmetic here is adapted from the image editor's flood-fill fuzz
// matching, which already needed a perceptual distance between two colors
// and so carried the same sRGB -> linear -> XYZ -> Lab pipeline.
package colorspace

import "math"

// Lab is a color in CIE L*a*b* (D65 white point).
type Lab struct {
	L, A, B float64
}

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R, G, B uint8
}

func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSrgb(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	var s float64
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	return uint8(math.Round(s * 255.0))
}

func linearToXyz(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

func xyzToLinear(x, y, z float64) (r, g, b float64) {
	r = 3.2404542*x - 1.5371385*y - 0.4985314*z
	g = -0.9692660*x + 1.8760108*y + 0.0415560*z
	b = 0.0556434*x - 0.2040259*y + 1.0572252*z
	return
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787037*t + 16.0/116.0
}

func labFInv(t float64) float64 {
	if t*t*t > 0.008856 {
		return t * t * t
	}
	return (t - 16.0/116.0) / 7.787037
}

func xyzToLab(x, y, z float64) Lab {
	xr := x / 0.95047
	yr := y / 1.00000
	zr := z / 1.08883
	fx := labF(xr)
	fy := labF(yr)
	fz := labF(zr)
	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

func labToXyz(lab Lab) (x, y, z float64) {
	fy := (lab.L + 16.0) / 116.0
	fx := fy + lab.A/500.0
	fz := fy - lab.B/200.0
	x = 0.95047 * labFInv(fx)
	y = 1.00000 * labFInv(fy)
	z = 1.08883 * labFInv(fz)
	return
}

// ToLab converts an 8-bit sRGB color to CIE L*a*b*.
func ToLab(c RGB) Lab {
	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	b := srgbToLinear(c.B)
	x, y, z := linearToXyz(r, g, b)
	return xyzToLab(x, y, z)
}

// FromLab converts a CIE L*a*b* color back to 8-bit sRGB, clamping out-of-gamut
// results.
func FromLab(lab Lab) RGB {
	x, y, z := labToXyz(lab)
	r, g, b := xyzToLinear(x, y, z)
	return RGB{R: linearToSrgb(r), G: linearToSrgb(g), B: linearToSrgb(b)}
}

// ToLinear converts an 8-bit sRGB color to linear RGB components in [0,1].
func ToLinear(c RGB) (r, g, b float64) {
	return srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)
}

// FromLinear converts linear RGB components in [0,1] back to 8-bit sRGB.
func FromLinear(r, g, b float64) RGB {
	return RGB{R: linearToSrgb(r), G: linearToSrgb(g), B: linearToSrgb(b)}
}

// DistanceSq returns the squared Euclidean distance between two Lab colors.
func (l Lab) DistanceSq(o Lab) float64 {
	dl := l.L - o.L
	da := l.A - o.A
	db := l.B - o.B
	return dl*dl + da*da + db*db
}

// Luminance returns the Rec. 709 relative luminance of an sRGB color, used to
// sort the palette dark-to-light for deterministic SVG emission.
func Luminance(c RGB) float64 {
	r, g, b := ToLinear(c)
	return 0.2126*r + 0.7152*g + 0.0722*b
}
