package svgdoc

import (
	"strings"
	"testing"

	"github.com/Fepozopo/vectorize/internal/colorspace"
	"github.com/Fepozopo/vectorize/internal/edges"
	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/vectorpath"
)

func squarePath() vectorpath.Path {
	return vectorpath.Path{
		{Kind: vectorpath.CmdMove, X: 0, Y: 0},
		{Kind: vectorpath.CmdLine, X: 4, Y: 0},
		{Kind: vectorpath.CmdLine, X: 4, Y: 4},
		{Kind: vectorpath.CmdLine, X: 0, Y: 4},
		{Kind: vectorpath.CmdClose},
	}
}

func TestAssembleIncludesViewBoxAndOneRegionPath(t *testing.T) {
	pal := quantize.Palette{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}}
	regions := []RegionPath{{PaletteIndex: 1, PixelCount: 16, Path: squarePath()}}
	doc := Assemble(10, 10, pal, regions, nil)

	if !strings.Contains(doc, `viewBox="0 0 10 10"`) {
		t.Errorf("missing viewBox: %s", doc)
	}
	if !strings.Contains(doc, `fill="`+colorspace.FormatHex(pal[1])+`"`) {
		t.Errorf("region path not painted with its palette color: %s", doc)
	}
	if !strings.Contains(doc, "M0,0") {
		t.Errorf("missing expected path data: %s", doc)
	}
}

func TestAssembleBackgroundPicksLargestRegionColor(t *testing.T) {
	pal := quantize.Palette{{R: 1, G: 1, B: 1}, {R: 2, G: 2, B: 2}}
	regions := []RegionPath{
		{PaletteIndex: 0, PixelCount: 5, Path: squarePath()},
		{PaletteIndex: 1, PixelCount: 500, Path: squarePath()},
	}
	doc := Assemble(20, 20, pal, regions, nil)
	if !strings.Contains(doc, `<rect x="0" y="0" width="20" height="20" fill="`+colorspace.FormatHex(pal[1])+`"`) {
		t.Errorf("background rect should use the larger region's color: %s", doc)
	}
}

func TestAssembleOrdersRegionsByDescendingPixelCount(t *testing.T) {
	pal := quantize.Palette{{R: 0, G: 0, B: 0}, {R: 10, G: 10, B: 10}}
	regions := []RegionPath{
		{PaletteIndex: 0, PixelCount: 1, Path: squarePath()},
		{PaletteIndex: 1, PixelCount: 100, Path: squarePath()},
	}
	doc := Assemble(10, 10, pal, regions, nil)
	firstColor := colorspace.FormatHex(pal[1])
	secondColor := colorspace.FormatHex(pal[0])
	if strings.Index(doc, firstColor) > strings.Index(doc, secondColor) {
		t.Errorf("larger region should be painted before smaller region: %s", doc)
	}
}

func TestAssembleWithOverlayEmitsStrokedPath(t *testing.T) {
	pal := quantize.Palette{{R: 0, G: 0, B: 0}}
	mask := edges.NewMask(5, 5)
	mask.Set(1, 1, 255)
	mask.Set(2, 1, 255)
	overlay := &EdgeOverlay{Mask: mask, Stroke: "#ff0000", StrokeWidth: 0.5, Opacity: 0.8}
	doc := Assemble(5, 5, pal, nil, overlay)
	if !strings.Contains(doc, `stroke="#ff0000"`) {
		t.Errorf("missing overlay stroke: %s", doc)
	}
	if !strings.Contains(doc, "M1,1L3,1") {
		t.Errorf("overlay run not emitted as expected: %s", doc)
	}
}

func TestFormatNumberStripsTrailingZerosAndDecimalPoint(t *testing.T) {
	cases := map[float64]string{
		3.0:  "3",
		3.5:  "3.5",
		3.25: "3.25",
		0:    "0",
	}
	for in, want := range cases {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
