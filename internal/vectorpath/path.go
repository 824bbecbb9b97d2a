// Package vectorpath turns a raster region boundary into a simplified,
// curve-fitted vector path, per spec.md §4.5.
package vectorpath

import "github.com/Fepozopo/vectorize/internal/regions"

// CmdKind identifies a Path command.
type CmdKind int

const (
	CmdMove CmdKind = iota
	CmdLine
	CmdQuad
	CmdClose
)

// Cmd is one drawing command. Quad carries a control point (CX, CY) in
// addition to the endpoint (X, Y); Move, Line and Close only use X, Y (Close
// ignores both).
type Cmd struct {
	Kind   CmdKind
	X, Y   float64
	CX, CY float64
}

// Path is an ordered sequence of drawing commands, matching the subset of
// SVG path-data grammar spec.md §4.6 requires: M, L, Q and Z.
type Path []Cmd

// Config carries the knobs spec.md §4.5 lists for the simplifier.
type Config struct {
	Tolerance           float64
	CornerAngleDegrees  float64
	MinPointsForCurve   int // below this, emit straight lines only
}

// FitRegion builds the combined outer+hole path for a region. Returns false
// if the region's outer boundary is degenerate after simplification (fewer
// than 3 points), per spec.md §4.5's discard rule.
func FitRegion(r regions.Region, cfg Config, mustKeep func(regions.Point) bool) (Path, bool) {
	outer := fitLoop(r.Outer, cfg, mustKeep)
	if outer == nil {
		return nil, false
	}
	var path Path
	path = append(path, outer...)
	for _, hole := range r.Holes {
		fitted := fitLoop(hole, cfg, mustKeep)
		if fitted == nil {
			continue
		}
		path = append(path, fitted...)
	}
	return path, true
}

func fitLoop(points []regions.Point, cfg Config, mustKeep func(regions.Point) bool) Path {
	if len(points) < 3 {
		return nil
	}

	keep := make([]bool, len(points))
	for i, p := range points {
		if mustKeep != nil && mustKeep(p) {
			keep[i] = true
		}
	}
	simplified, simplifiedKeep := simplifyClosed(points, keep, cfg.Tolerance)
	if len(simplified) < 3 {
		return nil
	}

	minForCurve := cfg.MinPointsForCurve
	if minForCurve <= 0 {
		minForCurve = 5
	}
	if len(simplified) <= 4 {
		return polygonPath(simplified)
	}

	corners := classifyCorners(simplified, simplifiedKeep, cfg.CornerAngleDegrees)
	if len(simplified) < minForCurve {
		return polygonPath(simplified)
	}
	return curvedPath(simplified, corners)
}

func polygonPath(points []regions.Point) Path {
	path := make(Path, 0, len(points)+1)
	path = append(path, Cmd{Kind: CmdMove, X: float64(points[0].X), Y: float64(points[0].Y)})
	for _, p := range points[1:] {
		path = append(path, Cmd{Kind: CmdLine, X: float64(p.X), Y: float64(p.Y)})
	}
	path = append(path, Cmd{Kind: CmdClose})
	return path
}

// curvedPath walks the corner-anchored runs of a simplified closed polygon
// and emits a straight segment for zero-interior-point runs or a chain of
// TrueType-style quadratic segments otherwise, per spec.md §4.5.
func curvedPath(points []regions.Point, corner []bool) Path {
	n := len(points)
	anchors := make([]int, 0, n)
	for i, c := range corner {
		if c {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 0 {
		anchors = append(anchors, 0)
	}

	path := make(Path, 0, n+1)
	first := points[anchors[0]]
	path = append(path, Cmd{Kind: CmdMove, X: float64(first.X), Y: float64(first.Y)})

	for a := 0; a < len(anchors); a++ {
		start := anchors[a]
		end := anchors[(a+1)%len(anchors)]
		interior := interiorIndices(start, end, n)
		path = append(path, fitRun(points, start, interior, end)...)
	}
	path = append(path, Cmd{Kind: CmdClose})
	return path
}

func interiorIndices(start, end, n int) []int {
	var out []int
	i := (start + 1) % n
	for i != end {
		out = append(out, i)
		i = (i + 1) % n
	}
	return out
}

func fitRun(points []regions.Point, startIdx int, interior []int, endIdx int) Path {
	end := points[endIdx]
	endCmd := Cmd{X: float64(end.X), Y: float64(end.Y)}

	switch len(interior) {
	case 0:
		endCmd.Kind = CmdLine
		return Path{endCmd}
	case 1:
		ctrl := points[interior[0]]
		endCmd.Kind = CmdQuad
		endCmd.CX, endCmd.CY = float64(ctrl.X), float64(ctrl.Y)
		return Path{endCmd}
	}

	// Each interior point becomes an off-curve control point; consecutive
	// off-curve points imply an on-curve point at their midpoint, the
	// standard TrueType quadratic-spline construction.
	var path Path
	for i := 0; i < len(interior)-1; i++ {
		c := points[interior[i]]
		next := points[interior[i+1]]
		midX := float64(c.X+next.X) / 2
		midY := float64(c.Y+next.Y) / 2
		path = append(path, Cmd{
			Kind: CmdQuad,
			CX:   float64(c.X), CY: float64(c.Y),
			X: midX, Y: midY,
		})
	}
	last := points[interior[len(interior)-1]]
	path = append(path, Cmd{
		Kind: CmdQuad,
		CX:   float64(last.X), CY: float64(last.Y),
		X: endCmd.X, Y: endCmd.Y,
	})
	return path
}
