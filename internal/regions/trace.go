package regions

import "github.com/Fepozopo/vectorize/internal/quantize"

type bbox struct {
	minX, minY, maxX, maxY int
}

func (b bbox) contains(o bbox) bool {
	return b.minX < o.minX && b.minY < o.minY && b.maxX > o.maxX && b.maxY > o.maxY
}

// traceAll builds one Region per label, tracing its outer boundary and any
// holes, per spec.md §4.4.
func traceAll(idx *quantize.IndexMap, labels []int32, count int) []Region {
	w, h := idx.Width, idx.Height

	pixelCount := make([]int, count)
	paletteOf := make([]int, count)
	boxes := make([]bbox, count)
	startX := make([]int, count)
	startY := make([]int, count)
	seen := make([]bool, count)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			l := labels[i]
			pixelCount[l]++
			paletteOf[l] = idx.At(x, y)
			if !seen[l] {
				seen[l] = true
				boxes[l] = bbox{minX: x, minY: y, maxX: x, maxY: y}
				startX[l] = x
				startY[l] = y
			} else {
				b := &boxes[l]
				if x < b.minX {
					b.minX = x
				}
				if x > b.maxX {
					b.maxX = x
				}
				if y < b.minY {
					b.minY = y
				}
				if y > b.maxY {
					b.maxY = y
				}
			}
		}
	}

	mask := func(label int32) func(x, y int) bool {
		return func(x, y int) bool {
			if x < 0 || x >= w || y < 0 || y >= h {
				return false
			}
			return labels[y*w+x] == label
		}
	}

	outers := make([][]Point, count)
	for l := 0; l < count; l++ {
		outers[l] = traceBoundary(mask(int32(l)), startX[l], startY[l], pixelCount[l])
	}

	regions := make([]Region, 0, count)
	for l := 0; l < count; l++ {
		region := Region{
			PaletteIndex: paletteOf[l],
			PixelCount:   pixelCount[l],
			Outer:        outers[l],
		}
		for other := 0; other < count; other++ {
			if other == l {
				continue
			}
			if !boxes[l].contains(boxes[other]) {
				continue
			}
			if !surroundedBy(labels, w, h, boxes[other], int32(l)) {
				continue
			}
			hole := make([]Point, len(outers[other]))
			copy(hole, outers[other])
			reverse(hole)
			region.Holes = append(region.Holes, hole)
		}
		regions = append(regions, region)
	}
	return regions
}

// surroundedBy reports whether every pixel in the ring one step outside b
// belongs to label, which confirms b's component is directly enclosed by
// label's component rather than merely sharing a bounding box with it.
func surroundedBy(labels []int32, w, h int, b bbox, label int32) bool {
	at := func(x, y int) int32 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return -1
		}
		return labels[y*w+x]
	}
	for x := b.minX - 1; x <= b.maxX+1; x++ {
		if at(x, b.minY-1) != label || at(x, b.maxY+1) != label {
			return false
		}
	}
	for y := b.minY - 1; y <= b.maxY+1; y++ {
		if at(b.minX-1, y) != label || at(b.maxX+1, y) != label {
			return false
		}
	}
	return true
}

func reverse(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// edgeDir is one of the four grid-edge directions leaving a vertex.
type edgeDir int8

const (
	edgeN edgeDir = iota
	edgeE
	edgeS
	edgeW
)

var edgeDelta = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (d edgeDir) opposite() edgeDir { return (d + 2) % 4 }

// traceBoundary walks the outer contour of a connected pixel mask along
// pixel edges rather than pixel centers, per spec.md §4.4: a vertex (x, y)
// is the shared corner of up to four pixels (NW at x-1,y-1; NE at x,y-1; SW
// at x-1,y; SE at x,y), and an edge leaving that vertex lies on the
// boundary exactly when the two pixels it separates disagree on mask
// membership. Following those edges produces a closed polyline of
// axis-aligned unit segments that exactly bounds the component, including
// around concave corners a pixel-center walk would cut across.
//
// (sx, sy) is the top-left corner of the topmost-then-leftmost pixel in the
// component, so starting east along its top edge is always a boundary
// edge. The walk terminates by Jacob's criterion generalized to edges:
// stop when it returns to the start vertex heading in the start direction,
// not merely on first revisiting the vertex, since a component can pinch
// through a single vertex and visit it more than once.
func traceBoundary(mask func(x, y int) bool, sx, sy, pixelCount int) []Point {
	if pixelCount <= 1 {
		return []Point{{sx, sy}, {sx, sy + 1}, {sx + 1, sy + 1}, {sx + 1, sy}}
	}

	isBoundary := func(gx, gy int, d edgeDir) bool {
		nw, ne := mask(gx-1, gy-1), mask(gx, gy-1)
		sw, se := mask(gx-1, gy), mask(gx, gy)
		switch d {
		case edgeN:
			return nw != ne
		case edgeE:
			return ne != se
		case edgeS:
			return sw != se
		default:
			return nw != sw
		}
	}

	const startDir = edgeE
	cx, cy, d := sx, sy, startDir

	var raw []Point
	for {
		raw = append(raw, Point{cx, cy})
		nx, ny := cx+edgeDelta[d][0], cy+edgeDelta[d][1]

		var candidates []edgeDir
		for _, cand := range [4]edgeDir{edgeN, edgeE, edgeS, edgeW} {
			if cand == d.opposite() {
				continue
			}
			if isBoundary(nx, ny, cand) {
				candidates = append(candidates, cand)
			}
		}
		if len(candidates) == 0 {
			// Fully isolated pixel despite pixelCount > 1 reporting
			// otherwise shouldn't happen, but guard against infinite loop.
			break
		}

		// Normally exactly one candidate remains. At a pinch point, where
		// the component meets itself only diagonally across the vertex,
		// all three remaining edges qualify; break the tie by preferring
		// to keep going straight, which crosses through the pinch.
		next := candidates[0]
		for _, cand := range candidates {
			if cand == d {
				next = cand
			}
		}

		cx, cy, d = nx, ny, next
		if cx == sx && cy == sy && d == startDir {
			break
		}
		if len(raw) > 4*pixelCount+8 {
			// Defensive bound: a valid simple boundary visits at most a
			// small multiple of the component's pixel count.
			break
		}
	}

	// The walk above starts east with the component on its right, which
	// traces a clockwise loop on screen (y grows downward); reverse it to the
	// counter-clockwise winding spec.md requires for outer boundaries.
	reverse(raw)
	return raw
}
