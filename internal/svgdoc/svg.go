// Package svgdoc assembles the final SVG document from fitted region paths,
// per spec.md §4.6.
package svgdoc

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Fepozopo/vectorize/internal/colorspace"
	"github.com/Fepozopo/vectorize/internal/edges"
	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/vectorpath"
)

// RegionPath pairs a fitted vector path with the source region's metadata,
// enough to order and paint it.
type RegionPath struct {
	PaletteIndex int
	PixelCount   int
	Path         vectorpath.Path
}

// EdgeOverlay configures the optional stroked overlay of the raw edge mask,
// per spec.md §4.6.
type EdgeOverlay struct {
	Mask        *edges.Mask
	Stroke      string
	StrokeWidth float64
	Opacity     float64
}

// Assemble renders the complete SVG document. Regions are painted in
// non-increasing pixel-count order, ties broken by ascending palette index,
// so larger regions paint first and smaller ones are drawn over them, per
// spec.md §4.6.
func Assemble(width, height int, pal quantize.Palette, regions []RegionPath, overlay *EdgeOverlay) string {
	sorted := make([]RegionPath, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PixelCount != sorted[j].PixelCount {
			return sorted[i].PixelCount > sorted[j].PixelCount
		}
		return sorted[i].PaletteIndex < sorted[j].PaletteIndex
	})

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	b.WriteString(strconv.Itoa(width))
	b.WriteString(`" height="`)
	b.WriteString(strconv.Itoa(height))
	b.WriteString(`" viewBox="0 0 `)
	b.WriteString(strconv.Itoa(width))
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(height))
	b.WriteString(`">` + "\n")

	if bg := backgroundColor(pal, regions); bg != "" {
		b.WriteString(`  <rect x="0" y="0" width="`)
		b.WriteString(strconv.Itoa(width))
		b.WriteString(`" height="`)
		b.WriteString(strconv.Itoa(height))
		b.WriteString(`" fill="`)
		b.WriteString(bg)
		b.WriteString(`"/>` + "\n")
	}

	for _, r := range sorted {
		if len(r.Path) == 0 {
			continue
		}
		b.WriteString(`  <path fill="`)
		b.WriteString(colorspace.FormatHex(pal[r.PaletteIndex]))
		b.WriteString(`" fill-rule="nonzero" d="`)
		b.WriteString(pathData(r.Path))
		b.WriteString(`"/>` + "\n")
	}

	if overlay != nil && overlay.Mask != nil {
		if d := overlayPathData(overlay.Mask); d != "" {
			b.WriteString(`  <path d="`)
			b.WriteString(d)
			b.WriteString(`" fill="none" stroke="`)
			b.WriteString(overlay.Stroke)
			b.WriteString(`" stroke-width="`)
			b.WriteString(formatNumber(overlay.StrokeWidth))
			b.WriteString(`" opacity="`)
			b.WriteString(formatNumber(overlay.Opacity))
			b.WriteString(`"/>` + "\n")
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// backgroundColor picks the palette color covering the most pixels across
// all regions, the practical proxy for "which color is the backdrop" since
// the quantizer doesn't track that explicitly.
func backgroundColor(pal quantize.Palette, regions []RegionPath) string {
	if len(pal) == 0 {
		return ""
	}
	totals := make([]int, len(pal))
	for _, r := range regions {
		if r.PaletteIndex >= 0 && r.PaletteIndex < len(totals) {
			totals[r.PaletteIndex] += r.PixelCount
		}
	}
	best := 0
	for i, t := range totals {
		if t > totals[best] {
			best = i
		}
	}
	return colorspace.FormatHex(pal[best])
}

func pathData(path vectorpath.Path) string {
	var b strings.Builder
	for i, cmd := range path {
		if i > 0 {
			b.WriteString(" ")
		}
		switch cmd.Kind {
		case vectorpath.CmdMove:
			b.WriteString("M")
			b.WriteString(formatNumber(cmd.X))
			b.WriteString(",")
			b.WriteString(formatNumber(cmd.Y))
		case vectorpath.CmdLine:
			b.WriteString("L")
			b.WriteString(formatNumber(cmd.X))
			b.WriteString(",")
			b.WriteString(formatNumber(cmd.Y))
		case vectorpath.CmdQuad:
			b.WriteString("Q")
			b.WriteString(formatNumber(cmd.CX))
			b.WriteString(",")
			b.WriteString(formatNumber(cmd.CY))
			b.WriteString(" ")
			b.WriteString(formatNumber(cmd.X))
			b.WriteString(",")
			b.WriteString(formatNumber(cmd.Y))
		case vectorpath.CmdClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// overlayPathData emits one M/L-only subpath per maximal horizontal run of
// set mask pixels; the overlay is a debugging aid, not a traced region, so
// it doesn't need boundary tracing or curve fitting.
func overlayPathData(mask *edges.Mask) string {
	var b strings.Builder
	for y := 0; y < mask.Height; y++ {
		x := 0
		for x < mask.Width {
			if mask.At(x, y) == 0 {
				x++
				continue
			}
			runStart := x
			for x < mask.Width && mask.At(x, y) != 0 {
				x++
			}
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString("M")
			b.WriteString(formatNumber(float64(runStart)))
			b.WriteString(",")
			b.WriteString(formatNumber(float64(y)))
			b.WriteString("L")
			b.WriteString(formatNumber(float64(x)))
			b.WriteString(",")
			b.WriteString(formatNumber(float64(y)))
		}
	}
	return b.String()
}

// formatNumber renders v with at most two fractional digits, trailing
// zeros stripped, and no decimal point at all for integral values, per
// spec.md §4.6's numeric formatting rule.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}
