package vectorpath

import (
	"math"

	"github.com/Fepozopo/vectorize/internal/regions"
)

type taggedPoint struct {
	p    regions.Point
	keep bool
}

// simplifyClosed runs Douglas-Peucker over a closed polygon, never dropping
// a point flagged in keep, per spec.md §4.5. Index 0 is always treated as a
// must-keep anchor so a closed loop with no other flagged points still has
// a well-defined start point to open the path at.
func simplifyClosed(points []regions.Point, keep []bool, tolerance float64) ([]regions.Point, []bool) {
	n := len(points)
	anchors := []int{0}
	for i := 1; i < n; i++ {
		if keep[i] {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 1 && n > 2 {
		anchors = append(anchors, n/2)
	}

	var result []regions.Point
	var resultKeep []bool
	for a := 0; a < len(anchors); a++ {
		start := anchors[a]
		end := anchors[(a+1)%len(anchors)]
		chain := extractChain(points, keep, start, end)
		kept := douglasPeucker(chain, tolerance)
		// Drop the chain's last point: it's the next anchor, added as that
		// next segment's first point instead, except for the final
		// wraparound segment whose "next anchor" is index 0, already the
		// very first point emitted.
		for i := 0; i < len(kept)-1; i++ {
			result = append(result, kept[i].p)
			resultKeep = append(resultKeep, kept[i].keep)
		}
	}
	return result, resultKeep
}

// extractChain returns the points from start to end inclusive, walking
// forward with wraparound.
func extractChain(points []regions.Point, keep []bool, start, end int) []taggedPoint {
	n := len(points)
	var chain []taggedPoint
	i := start
	for {
		chain = append(chain, taggedPoint{p: points[i], keep: keep[i]})
		if i == end {
			break
		}
		i = (i + 1) % n
	}
	return chain
}

// douglasPeucker simplifies an open chain, always keeping both endpoints.
func douglasPeucker(points []taggedPoint, tolerance float64) []taggedPoint {
	if len(points) < 3 {
		return points
	}
	maxDist := -1.0
	maxIdx := 0
	a, b := points[0].p, points[len(points)-1].p
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i].p, a, b)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= tolerance {
		return []taggedPoint{points[0], points[len(points)-1]}
	}
	left := douglasPeucker(points[:maxIdx+1], tolerance)
	right := douglasPeucker(points[maxIdx:], tolerance)
	return append(left[:len(left)-1], right...)
}

func perpendicularDistance(p, a, b regions.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	if dx == 0 && dy == 0 {
		ex := float64(p.X - a.X)
		ey := float64(p.Y - a.Y)
		return math.Hypot(ex, ey)
	}
	num := math.Abs(dy*float64(p.X-a.X) - dx*float64(p.Y-a.Y))
	den := math.Hypot(dx, dy)
	return num / den
}

// classifyCorners flags points whose turning angle exceeds thresholdDeg, or
// that are already must-keep anchors, as on-curve corner anchors.
func classifyCorners(points []regions.Point, keep []bool, thresholdDeg float64) []bool {
	n := len(points)
	corner := make([]bool, n)
	for i := 0; i < n; i++ {
		if i < len(keep) && keep[i] {
			corner[i] = true
			continue
		}
		prev := points[(i-1+n)%n]
		cur := points[i]
		next := points[(i+1)%n]
		in := [2]float64{float64(cur.X - prev.X), float64(cur.Y - prev.Y)}
		out := [2]float64{float64(next.X - cur.X), float64(next.Y - cur.Y)}
		inLen := math.Hypot(in[0], in[1])
		outLen := math.Hypot(out[0], out[1])
		if inLen == 0 || outLen == 0 {
			continue
		}
		cos := (in[0]*out[0] + in[1]*out[1]) / (inLen * outLen)
		cos = math.Max(-1, math.Min(1, cos))
		angle := math.Acos(cos) * 180 / math.Pi
		if angle >= thresholdDeg {
			corner[i] = true
		}
	}
	return corner
}
