// Package quantize reduces an image to K representative colors and produces
// a per-pixel palette index map, per spec.md §4.2.
//
// The Quantizer interface shape (Quantize in, palette+indices out) mirrors
// github.com/soniakeys/quant's Quantizer interface from the example corpus
// (Quantize(image.Image, int) *image.Paletted), adapted to carry Lab-aware
// config and to return the index map alongside the palette instead of a
// single image.Paletted.
package quantize

import (
	"github.com/Fepozopo/vectorize/internal/colorspace"
	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// Palette is an ordered set of K colors, sorted by luminance ascending
// before being handed to later stages, per spec.md §4.2.
type Palette []colorspace.RGB

// IndexMap is a per-pixel palette index, same dimensions as the source
// Image.
type IndexMap struct {
	Width, Height int
	Index         []uint8 // len == Width*Height, values in [0, len(Palette))
}

func NewIndexMap(width, height int) *IndexMap {
	return &IndexMap{Width: width, Height: height, Index: make([]uint8, width*height)}
}

func (m *IndexMap) At(x, y int) int {
	return int(m.Index[y*m.Width+x])
}

func (m *IndexMap) Set(x, y int, idx int) {
	m.Index[y*m.Width+x] = uint8(idx)
}

// Config carries the knobs spec.md §4.2 lists for the quantizer.
type Config struct {
	K             int
	MaxIterations int
	Seed          uint64
	UseLab        bool
}

// Quantizer reduces img to Config.K colors.
type Quantizer interface {
	Quantize(img *imaging.Image, cfg Config, pool *workerpool.Pool) (Palette, *IndexMap, error)
}

// SortByLuminance reorders pal ascending by perceived luminance and remaps
// idx in place so every pixel still points at the same visual color, per
// spec.md §4.2's ordering rule ("sorted by perceived luminance ascending...
// to keep SVG output deterministic").
func SortByLuminance(pal Palette, idx *IndexMap) {
	type entry struct {
		color colorspace.RGB
		oldIx int
	}
	entries := make([]entry, len(pal))
	for i, c := range pal {
		entries[i] = entry{color: c, oldIx: i}
	}
	// Stable insertion sort: K is at most 256, and stability keeps
	// equal-luminance ties in their original (k-means++ seed) order, which
	// keeps the output deterministic across runs with the same seed.
	for i := 1; i < len(entries); i++ {
		j := i
		for j > 0 && colorspace.Luminance(entries[j].color) < colorspace.Luminance(entries[j-1].color) {
			entries[j], entries[j-1] = entries[j-1], entries[j]
			j--
		}
	}
	remap := make([]uint8, len(pal))
	for newIx, e := range entries {
		pal[newIx] = e.color
		remap[e.oldIx] = uint8(newIx)
	}
	for i, old := range idx.Index {
		idx.Index[i] = remap[old]
	}
}
