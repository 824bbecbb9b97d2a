package quantize

import (
	"math"
	"sync"

	"github.com/Fepozopo/vectorize/internal/colorspace"
	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// point is a pixel's position in the space clustering operates in: either
// Lab (L, a, b) or linear RGB (r, g, b), depending on Config.UseLab.
type point [3]float64

// KMeans implements Quantizer with perceptual k-means, per spec.md §4.2.
type KMeans struct{}

// lcg is a tiny deterministic linear-congruential generator, used instead of
// math/rand so a given Config.Seed reproduces byte-identical output across
// Go versions without depending on math/rand's internal algorithm staying
// fixed. Parameters are Knuth's MMIX constants.
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed*2 + 1} }

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

func (g *lcg) float64() float64 {
	return float64(g.next()>>11) / float64(1<<53)
}

func (g *lcg) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.next() % uint64(n))
}

func toPoint(c colorspace.RGB, useLab bool) point {
	if useLab {
		lab := colorspace.ToLab(c)
		return point{lab.L, lab.A, lab.B}
	}
	r, g, b := colorspace.ToLinear(c)
	return point{r, g, b}
}

func fromPoint(p point, useLab bool) colorspace.RGB {
	if useLab {
		return colorspace.FromLab(colorspace.Lab{L: p[0], A: p[1], B: p[2]})
	}
	return colorspace.FromLinear(p[0], p[1], p[2])
}

func distSq(a, b point) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return d0*d0 + d1*d1 + d2*d2
}

// Quantize implements Quantizer.
func (KMeans) Quantize(img *imaging.Image, cfg Config, pool *workerpool.Pool) (Palette, *IndexMap, error) {
	n := img.Width * img.Height
	pixels := make([]point, n)
	pool.ParallelRows(img.Height, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < img.Width; x++ {
				c := img.At(x, y)
				pixels[y*img.Width+x] = toPoint(colorspace.RGB{R: c.R, G: c.G, B: c.B}, cfg.UseLab)
			}
		}
	})

	centroids := seedPlusPlus(pixels, cfg.K, cfg.Seed)

	assignments := make([]int, n)
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 10
	}

	for iter := 0; iter < maxIter; iter++ {
		assignParallel(pixels, centroids, assignments, pool)

		sums := make([]point, len(centroids))
		counts := make([]int, len(centroids))
		reduceAssignments(pixels, assignments, sums, counts, pool)

		var maxMove float64
		for k := range centroids {
			if counts[k] == 0 {
				continue // empty clusters retain their previous centroid
			}
			newCentroid := point{
				sums[k][0] / float64(counts[k]),
				sums[k][1] / float64(counts[k]),
				sums[k][2] / float64(counts[k]),
			}
			move := math.Sqrt(distSq(newCentroid, centroids[k]))
			if move > maxMove {
				maxMove = move
			}
			centroids[k] = newCentroid
		}
		if maxMove < 1e-3 {
			break
		}
	}

	// Final assignment pass so the index map matches the converged
	// centroids exactly.
	assignParallel(pixels, centroids, assignments, pool)

	pal := make(Palette, len(centroids))
	for i, c := range centroids {
		pal[i] = fromPoint(c, cfg.UseLab)
	}

	idx := NewIndexMap(img.Width, img.Height)
	for i, a := range assignments {
		idx.Index[i] = uint8(a)
	}

	SortByLuminance(pal, idx)
	return pal, idx, nil
}

// seedPlusPlus implements k-means++ seeding: the first centroid is picked
// uniformly at random (seeded), each subsequent one with probability
// proportional to its squared distance from the nearest already-chosen
// centroid.
func seedPlusPlus(pixels []point, k int, seed uint64) []point {
	rng := newLCG(seed)
	centroids := make([]point, 0, k)
	if len(pixels) == 0 {
		for i := 0; i < k; i++ {
			centroids = append(centroids, point{})
		}
		return centroids
	}

	first := pixels[rng.intn(len(pixels))]
	centroids = append(centroids, first)

	dist := make([]float64, len(pixels))
	for i, p := range pixels {
		dist[i] = distSq(p, first)
	}

	for len(centroids) < k {
		var total float64
		for _, d := range dist {
			total += d
		}
		var chosen point
		if total <= 0 {
			// All remaining pixels coincide with a chosen centroid; fall
			// back to a fixed-stride pick for reproducibility.
			chosen = pixels[(len(centroids)*7919)%len(pixels)]
		} else {
			target := rng.float64() * total
			var acc float64
			chosenIdx := len(pixels) - 1
			for i, d := range dist {
				acc += d
				if acc >= target {
					chosenIdx = i
					break
				}
			}
			chosen = pixels[chosenIdx]
		}
		centroids = append(centroids, chosen)
		for i, p := range pixels {
			if d := distSq(p, chosen); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centroids
}

// assignParallel assigns every pixel to its nearest centroid, lower index
// wins ties, parallel over pixel rows with each worker writing to a
// disjoint output range - no locks on the hot path.
func assignParallel(pixels []point, centroids []point, out []int, pool *workerpool.Pool) {
	pool.ParallelRows(len(pixels), func(start, end int) {
		for i := start; i < end; i++ {
			best := 0
			bestDist := distSq(pixels[i], centroids[0])
			for k := 1; k < len(centroids); k++ {
				d := distSq(pixels[i], centroids[k])
				if d < bestDist {
					bestDist = d
					best = k
				}
			}
			out[i] = best
		}
	})
}

// reduceAssignments computes per-cluster sum and count. Each worker
// accumulates into a thread-local buffer; a single serial merge combines
// them, per spec.md §5.
func reduceAssignments(pixels []point, assignments []int, sums []point, counts []int, pool *workerpool.Pool) {
	ranges := pool.RowRange(len(pixels))
	partialSums := make([][]point, len(ranges))
	partialCounts := make([][]int, len(ranges))

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for ri, r := range ranges {
		go func(ri, start, end int) {
			defer wg.Done()
			localSums := make([]point, len(sums))
			localCounts := make([]int, len(counts))
			for i := start; i < end; i++ {
				k := assignments[i]
				localSums[k][0] += pixels[i][0]
				localSums[k][1] += pixels[i][1]
				localSums[k][2] += pixels[i][2]
				localCounts[k]++
			}
			partialSums[ri] = localSums
			partialCounts[ri] = localCounts
		}(ri, r[0], r[1])
	}
	wg.Wait()

	for ri := range ranges {
		for k := range sums {
			sums[k][0] += partialSums[ri][k][0]
			sums[k][1] += partialSums[ri][k][1]
			sums[k][2] += partialSums[ri][k][2]
			counts[k] += partialCounts[ri][k]
		}
	}
}
