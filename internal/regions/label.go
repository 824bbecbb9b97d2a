package regions

import (
	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// unionFind is a standard disjoint-set structure with path halving and
// union-by-size, used to reconcile the row-striped provisional labels
// assigned during the parallel first labeling pass.
type unionFind struct {
	parent []int32
	size   []int32
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int32, n), size: make([]int32, n)}
	for i := range uf.parent {
		uf.parent[i] = int32(i)
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int32) int32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int32) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// findRO walks to the root without path compression, so it's safe to call
// concurrently once no more unions are in flight: every goroutine only reads
// uf.parent, and concurrent reads of already-written memory never race.
func (uf *unionFind) findRO(x int32) int32 {
	for uf.parent[x] != x {
		x = uf.parent[x]
	}
	return x
}

// label runs two-pass connected-components labeling over idx, 4-connected,
// merging only same-index neighbors. It returns a per-pixel canonical label
// (0-based, dense) and the number of distinct labels.
//
// The first pass stripes rows across the worker pool, one goroutine per
// stripe (grounded on the image editor's SeparableGaussianBlur row-striping
// shape), and unions same-index neighbors within each stripe; every
// goroutine only ever touches union-find entries for pixel indices inside
// its own stripe, so the unions themselves are race-free. Cross-stripe
// seams are then stitched with a short serial pass, since that part is
// inherently sequential and cheap (one row of unions per stripe boundary).
// Canonicalizing the result back into dense 0-based labels takes two
// passes: a serial pass numbers the union-find roots in pixel order, so the
// numbering does not depend on goroutine scheduling, and a parallel pass
// looks each pixel's label up from its root. Both passes only read
// uf.parent (no more unions happen past this point), so concurrent calls to
// findRO don't race.
func label(idx *quantize.IndexMap, pool *workerpool.Pool) ([]int32, int) {
	w, h := idx.Width, idx.Height
	n := w * h
	uf := newUnionFind(n)

	ranges := pool.RowRange(h)
	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				v := idx.Index[i]
				if x > 0 && idx.Index[i-1] == v {
					uf.union(int32(i), int32(i-1))
				}
				if y > yStart && idx.Index[i-w] == v {
					uf.union(int32(i), int32(i-w))
				}
			}
		}
	})

	// Stitch stripe boundaries: the parallel pass above already walked the
	// "y > yStart" case within its own stripe, so only the seam between
	// consecutive stripes needs a second look here.
	for s := 1; s < len(ranges); s++ {
		y := ranges[s][0]
		if y == 0 || y >= h {
			continue
		}
		for x := 0; x < w; x++ {
			i := y*w + x
			if idx.Index[i] == idx.Index[i-w] {
				uf.union(int32(i), int32(i-w))
			}
		}
	}

	compact := make([]int32, n)
	for i := range compact {
		compact[i] = -1
	}
	var nextLabel int32
	for i := 0; i < n; i++ {
		if uf.parent[i] == int32(i) {
			compact[i] = nextLabel
			nextLabel++
		}
	}

	labels := make([]int32, n)
	pool.ParallelN(n, func(i int) {
		root := uf.findRO(int32(i))
		labels[i] = compact[root]
	})

	return labels, int(nextLabel)
}
