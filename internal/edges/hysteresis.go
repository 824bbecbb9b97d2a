package edges

import "github.com/Fepozopo/vectorize/internal/workerpool"

// nonMaxSuppress zeroes any gradient magnitude that isn't a local maximum
// along its quantized gradient direction, the classic Canny thinning step.
func nonMaxSuppress(g *gradient, pool *workerpool.Pool) []float64 {
	w, h := g.width, g.height
	out := make([]float64, w*h)
	pool.ParallelRows(h, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				mag := g.magnitude[i]
				if mag == 0 {
					continue
				}
				var dx1, dy1, dx2, dy2 int
				switch g.direction[i] {
				case 0: // 0 degrees: compare east/west
					dx1, dy1, dx2, dy2 = 1, 0, -1, 0
				case 1: // 45 degrees
					dx1, dy1, dx2, dy2 = 1, 1, -1, -1
				case 2: // 90 degrees: compare north/south
					dx1, dy1, dx2, dy2 = 0, 1, 0, -1
				default: // 135 degrees
					dx1, dy1, dx2, dy2 = 1, -1, -1, 1
				}
				n1 := sampleMag(g, x+dx1, y+dy1)
				n2 := sampleMag(g, x+dx2, y+dy2)
				if mag >= n1 && mag >= n2 {
					out[i] = mag
				}
			}
		}
	})
	return out
}

func sampleMag(g *gradient, x, y int) float64 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.magnitude[y*g.width+x]
}

// hysteresisLink implements double-threshold hysteresis: pixels above high
// are "strong" and always kept; pixels between low and high are "weak" and
// kept only if reachable from a strong pixel through other weak pixels.
//
// The reachability flood is structured like the image editor's
// FloodfillPaint - a stack of seed points plus a visited bitset - adapted
// from "same perceptual color, 8-connected" to "weak edge adjacent to a
// pixel already known strong-connected, 8-connected."
func hysteresisLink(mag []float64, width, height int, low, high float64) *Mask {
	out := NewMask(width, height)
	visited := make([]bool, width*height)

	type seed struct{ x, y int }
	var stack []seed

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if mag[i] >= high && !visited[i] {
				visited[i] = true
				out.Pix[i] = 255
				stack = append(stack, seed{x, y})
			}
		}
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := s.x+dx, s.y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				ni := ny*width + nx
				if visited[ni] {
					continue
				}
				if mag[ni] >= low {
					visited[ni] = true
					out.Pix[ni] = 255
					stack = append(stack, seed{nx, ny})
				}
			}
		}
	}
	return out
}
