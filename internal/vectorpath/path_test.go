package vectorpath

import (
	"testing"

	"github.com/Fepozopo/vectorize/internal/regions"
)

func rectBoundary(x0, y0, x1, y1 int) []regions.Point {
	var pts []regions.Point
	for x := x0; x < x1; x++ {
		pts = append(pts, regions.Point{X: x, Y: y0})
	}
	for y := y0; y < y1; y++ {
		pts = append(pts, regions.Point{X: x1, Y: y})
	}
	for x := x1; x > x0; x-- {
		pts = append(pts, regions.Point{X: x, Y: y1})
	}
	for y := y1; y > y0; y-- {
		pts = append(pts, regions.Point{X: x0, Y: y})
	}
	return pts
}

func TestFitRegionUnitSquareProducesClosedPolygon(t *testing.T) {
	r := regions.Region{
		PaletteIndex: 0,
		PixelCount:   1,
		Outer:        []regions.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	path, ok := FitRegion(r, Config{Tolerance: 0.5, CornerAngleDegrees: 30, MinPointsForCurve: 5}, nil)
	if !ok {
		t.Fatal("expected a valid path for a unit square")
	}
	if path[0].Kind != CmdMove {
		t.Errorf("first command = %v, want CmdMove", path[0].Kind)
	}
	if path[len(path)-1].Kind != CmdClose {
		t.Errorf("last command = %v, want CmdClose", path[len(path)-1].Kind)
	}
}

func TestFitRegionDegenerateOuterReturnsFalse(t *testing.T) {
	r := regions.Region{Outer: []regions.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	_, ok := FitRegion(r, Config{Tolerance: 1}, nil)
	if ok {
		t.Error("expected a degenerate outer boundary to be rejected")
	}
}

func TestFitRegionIncludesHoles(t *testing.T) {
	r := regions.Region{
		Outer: rectBoundary(0, 0, 10, 10),
		Holes: [][]regions.Point{{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 5, Y: 5}, {X: 4, Y: 5}}},
	}
	path, ok := FitRegion(r, Config{Tolerance: 0.5, CornerAngleDegrees: 30, MinPointsForCurve: 5}, nil)
	if !ok {
		t.Fatal("expected a valid combined path")
	}
	moves := 0
	for _, c := range path {
		if c.Kind == CmdMove {
			moves++
		}
	}
	if moves != 2 {
		t.Errorf("got %d Move commands, want 2 (outer + one hole)", moves)
	}
}

func TestSimplifyClosedCollapsesCollinearPoints(t *testing.T) {
	points := rectBoundary(0, 0, 8, 4)
	keep := make([]bool, len(points))
	simplified, _ := simplifyClosed(points, keep, 0.5)
	if len(simplified) >= len(points) {
		t.Fatalf("simplification did not reduce point count: %d -> %d", len(points), len(simplified))
	}
	if len(simplified) < 4 {
		t.Errorf("simplification lost a corner: got %d points", len(simplified))
	}
}

func TestSimplifyClosedNeverDropsMustKeepPoints(t *testing.T) {
	points := rectBoundary(0, 0, 8, 4)
	keep := make([]bool, len(points))
	keep[3] = true
	_, resultKeep := simplifyClosed(points, keep, 1000) // huge tolerance, would drop everything else
	found := false
	for _, k := range resultKeep {
		if k {
			found = true
		}
	}
	if !found {
		t.Error("a must-keep point was dropped by simplification")
	}
}

func TestClassifyCornersFlagsRightAngle(t *testing.T) {
	points := []regions.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}
	keep := make([]bool, len(points))
	corners := classifyCorners(points, keep, 45)
	if !corners[1] {
		t.Error("expected the 90-degree turn at index 1 to be flagged as a corner")
	}
}
