// Package regions partitions a quantizer's IndexMap into connected
// components per palette index and traces their oriented boundaries, per
// spec.md §4.4.
//
// The parallel striped first pass of the labeling step is grounded on the
// image editor's per-row-goroutine shape (SeparableGaussianBlur,
// FloodfillPaint); FloodfillPaint's stack-of-seeds/bitset-visited structure
// also grounds the hysteresis flood in the edges package, but region
// labeling itself needs true connected-components with canonical labels
// (not a single-seed flood), so it is implemented here as a two-pass
// union-find, the standard approach spec.md §4.4 calls for.
package regions

import (
	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// Point is an integer grid-vertex coordinate: (x, y) is the shared corner
// of pixels (x-1,y-1), (x,y-1), (x-1,y), and (x,y). Boundaries are closed
// polylines of these corners, walked along pixel edges rather than pixel
// centers, per spec.md §4.4, so each segment is an axis-aligned unit edge
// and the polyline exactly tiles the component; the later simplification
// and curve-fitting stage is what turns this stair-stepped polyline into
// smooth path commands.
type Point struct{ X, Y int }

// Region is a maximal connected component of one palette index.
type Region struct {
	PaletteIndex int
	PixelCount   int
	Outer        []Point   // closed, counter-clockwise
	Holes        [][]Point // closed, clockwise
}

// Config carries the knobs spec.md §4.4 lists for the extractor.
type Config struct {
	MinRegionPixels int
	MaxRegions      int
}

// Warning describes a non-fatal condition raised during extraction.
type Warning struct {
	Message string
}

// Extract partitions idx into regions and traces their boundaries. It may
// adaptively raise MinRegionPixels and retry if the raw component count
// exceeds MaxRegions, per spec.md §4.4's RegionBudgetExceeded behavior; in
// that case it returns a Warning alongside the (coarser) result.
func Extract(idx *quantize.IndexMap, pal quantize.Palette, cfg Config, pool *workerpool.Pool) ([]Region, *Warning, error) {
	minPixels := cfg.MinRegionPixels
	if minPixels <= 0 {
		minPixels = 8
	}
	maxRegions := cfg.MaxRegions
	if maxRegions <= 0 {
		maxRegions = 100000
	}

	var warning *Warning
	for attempt := 0; attempt < 6; attempt++ {
		labels, count := label(idx, pool)
		reassignOrphans(idx, pal, labels, count, minPixels)
		labels, count = label(idx, pool)

		if count > maxRegions {
			warning = &Warning{Message: "region count exceeded max_regions; min_region_pixels raised adaptively"}
			minPixels *= 2
			continue
		}

		regions := traceAll(idx, labels, count)
		return regions, warning, nil
	}

	// Budget still exceeded after repeated doubling: trace whatever the last
	// pass produced rather than looping forever.
	labels, count := label(idx, pool)
	regions := traceAll(idx, labels, count)
	return regions, warning, nil
}
