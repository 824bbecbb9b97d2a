package colorspace

import "fmt"

// FormatHex renders an sRGB color as a lowercase "#rrggbb" string, the form
// required by the SVG fill attribute.
func FormatHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
