package quantize

import (
	"container/heap"
	"sort"

	"github.com/Fepozopo/vectorize/internal/colorspace"
	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// MedianCut implements Quantizer with median-cut clustering: repeatedly
// split the cluster with the most pixels along its widest channel, which is
// cheaper than Lloyd iteration. The pipeline does not use it (every quality
// preset uses KMeans); it is available to callers who construct it directly.
//
// The split-by-widest-channel-then-heap-by-size structure is grounded on
// github.com/soniakeys/quant/median from the example corpus; this version
// operates on the pipeline's Lab/linear-RGB point space instead of raw
// uint16 image channels so it still clusters perceptually when UseLab is
// set.
type MedianCut struct{}

type mcCluster struct {
	pixels   []int // indices into the shared points slice
	widestCh int
}

type mcQueue []*mcCluster

func (q mcQueue) Len() int            { return len(q) }
func (q mcQueue) Less(i, j int) bool  { return len(q[i].pixels) > len(q[j].pixels) } // max-heap by size
func (q mcQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *mcQueue) Push(x interface{}) { *q = append(*q, x.(*mcCluster)) }
func (q *mcQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// setWidestChannel finds the channel (0,1,2) with the largest value range in
// c and reports whether the cluster has any variation left to split on.
func setWidestChannel(c *mcCluster, points []point) bool {
	if len(c.pixels) < 2 {
		return false
	}
	var lo, hi [3]float64
	lo = points[c.pixels[0]]
	hi = lo
	for _, pi := range c.pixels[1:] {
		p := points[pi]
		for ch := 0; ch < 3; ch++ {
			if p[ch] < lo[ch] {
				lo[ch] = p[ch]
			}
			if p[ch] > hi[ch] {
				hi[ch] = p[ch]
			}
		}
	}
	widest := 0
	widestRange := hi[0] - lo[0]
	for ch := 1; ch < 3; ch++ {
		if r := hi[ch] - lo[ch]; r > widestRange {
			widestRange = r
			widest = ch
		}
	}
	if widestRange <= 0 {
		return false
	}
	c.widestCh = widest
	return true
}

func (MedianCut) Quantize(img *imaging.Image, cfg Config, pool *workerpool.Pool) (Palette, *IndexMap, error) {
	n := img.Width * img.Height
	points := make([]point, n)
	pool.ParallelRows(img.Height, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < img.Width; x++ {
				c := img.At(x, y)
				points[y*img.Width+x] = toPoint(colorspace.RGB{R: c.R, G: c.G, B: c.B}, cfg.UseLab)
			}
		}
	})

	root := &mcCluster{pixels: make([]int, n)}
	for i := range root.pixels {
		root.pixels[i] = i
	}

	clusters := []*mcCluster{root}
	pq := new(mcQueue)
	if setWidestChannel(root, points) {
		heap.Push(pq, root)
	}

	for len(clusters) < cfg.K && pq.Len() > 0 {
		widest := heap.Pop(pq).(*mcCluster)
		sort.Slice(widest.pixels, func(i, j int) bool {
			return points[widest.pixels[i]][widest.widestCh] < points[widest.pixels[j]][widest.widestCh]
		})
		mid := len(widest.pixels) / 2
		left := &mcCluster{pixels: widest.pixels[:mid]}
		right := &mcCluster{pixels: widest.pixels[mid:]}

		clusters = replaceCluster(clusters, widest, left, right)

		if setWidestChannel(left, points) {
			heap.Push(pq, left)
		}
		if setWidestChannel(right, points) {
			heap.Push(pq, right)
		}
	}

	pal := make(Palette, len(clusters))
	idx := NewIndexMap(img.Width, img.Height)
	for ci, c := range clusters {
		var sum point
		for _, pi := range c.pixels {
			sum[0] += points[pi][0]
			sum[1] += points[pi][1]
			sum[2] += points[pi][2]
		}
		count := float64(len(c.pixels))
		if count == 0 {
			count = 1
		}
		mean := point{sum[0] / count, sum[1] / count, sum[2] / count}
		pal[ci] = fromPoint(mean, cfg.UseLab)
		for _, pi := range c.pixels {
			idx.Index[pi] = uint8(ci)
		}
	}

	SortByLuminance(pal, idx)
	return pal, idx, nil
}

func replaceCluster(clusters []*mcCluster, old, a, b *mcCluster) []*mcCluster {
	out := make([]*mcCluster, 0, len(clusters)+1)
	for _, c := range clusters {
		if c == old {
			continue
		}
		out = append(out, c)
	}
	return append(out, a, b)
}
