package imaging

// Orientation values follow the EXIF orientation tag (1..8). Normalize is a
// supplement to spec.md's Preprocessor: the original vectorization source
// never wires EXIF handling, but a real-world photo pipeline needs it before
// blurring/resizing, otherwise rotated phone photos vectorize sideways.
const (
	OrientationNormal      = 1
	OrientationFlopped     = 2
	OrientationRotated180  = 3
	OrientationFlipped     = 4
	OrientationTransposed  = 5
	OrientationRotated90CW = 6
	OrientationTransverse  = 7
	OrientationRotated90CC = 8
)

// Normalize applies the EXIF orientation transform to img, returning img
// unchanged for orientation 1 or any value outside [1,8].
func Normalize(img *Image, orientation int) *Image {
	switch orientation {
	case OrientationFlopped:
		return flop(img)
	case OrientationRotated180:
		return rotate180(img)
	case OrientationFlipped:
		return flip(img)
	case OrientationTransposed:
		return flop(rotate90CW(img))
	case OrientationRotated90CW:
		return rotate90CW(img)
	case OrientationTransverse:
		return flop(rotate90CCW(img))
	case OrientationRotated90CC:
		return rotate90CCW(img)
	default:
		return img
	}
}

func flip(src *Image) *Image {
	out := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			out.Set(x, src.Height-1-y, src.At(x, y))
		}
	}
	return out
}

func flop(src *Image) *Image {
	out := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			out.Set(src.Width-1-x, y, src.At(x, y))
		}
	}
	return out
}

func rotate180(src *Image) *Image {
	out := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			out.Set(src.Width-1-x, src.Height-1-y, src.At(x, y))
		}
	}
	return out
}

func rotate90CW(src *Image) *Image {
	out := NewImage(src.Height, src.Width)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			out.Set(src.Height-1-y, x, src.At(x, y))
		}
	}
	return out
}

func rotate90CCW(src *Image) *Image {
	out := NewImage(src.Height, src.Width)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			out.Set(y, src.Width-1-x, src.At(x, y))
		}
	}
	return out
}
