package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// DecodeError is returned when the input bytes cannot be decoded as an
// image header or body.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return e.Reason }

// ResourceExhaustedError is returned when a decoded image would exceed a
// caller-supplied pixel budget.
type ResourceExhaustedError struct {
	Pixels, Limit int64
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("%d pixels exceeds limit of %d", e.Pixels, e.Limit)
}

// DecodeBounds reads just the image header to recover its dimensions,
// without decoding pixel data, so callers can resolve size-dependent
// configuration before paying for a full decode.
func DecodeBounds(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, &DecodeError{Reason: fmt.Sprintf("decode config: %v", err)}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, &DecodeError{Reason: "non-positive dimensions in header"}
	}
	return cfg.Width, cfg.Height, nil
}

// Decode parses PNG or JPEG bytes into an *image.NRGBA, rejecting inputs
// whose pixel count exceeds maxPixels (0 means unbounded).
func Decode(data []byte, maxPixels int64) (*image.NRGBA, error) {
	w, h, err := DecodeBounds(data)
	if err != nil {
		return nil, err
	}
	if maxPixels > 0 && int64(w)*int64(h) > maxPixels {
		return nil, &ResourceExhaustedError{Pixels: int64(w) * int64(h), Limit: maxPixels}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: fmt.Sprintf("decode: %v", err)}
	}
	return toNRGBA(img), nil
}
