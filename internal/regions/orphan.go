package regions

import (
	"github.com/Fepozopo/vectorize/internal/colorspace"
	"github.com/Fepozopo/vectorize/internal/quantize"
)

// reassignOrphans folds any component smaller than minPixels into a
// neighboring component, per spec.md §4.4's orphan-pixel handling: too-small
// regions are noise, not intentional detail, so they're absorbed rather
// than traced and emitted as their own path.
//
// For each orphan component the candidate neighbor is the largest
// 4-connected adjacent component; ties are broken by the smallest Lab
// distance between the orphan's palette color and the candidate's, so that
// when two equally large neighbors compete the visually closer one wins.
func reassignOrphans(idx *quantize.IndexMap, pal quantize.Palette, labels []int32, labelCount int, minPixels int) {
	w, h := idx.Width, idx.Height
	n := w * h

	pixelCount := make([]int, labelCount)
	paletteOf := make([]int, labelCount)
	for i := 0; i < n; i++ {
		l := labels[i]
		pixelCount[l]++
		paletteOf[l] = idx.At(i%w, i/w)
	}

	orphan := make([]bool, labelCount)
	any := false
	for l, c := range pixelCount {
		if c < minPixels {
			orphan[l] = true
			any = true
		}
	}
	if !any {
		return
	}

	// neighborBest[l] tracks the best non-orphan neighbor seen so far for
	// orphan label l: its label, pixel count and Lab color.
	type best struct {
		label     int32
		count     int
		found     bool
		labFields colorspace.Lab
	}
	neighborBest := make([]best, labelCount)

	consider := func(orphanLabel, neighborLabel int32) {
		if orphan[neighborLabel] {
			return
		}
		b := &neighborBest[orphanLabel]
		neighborCount := pixelCount[neighborLabel]
		neighborLab := colorspace.ToLab(pal[paletteOf[neighborLabel]])
		orphanLab := colorspace.ToLab(pal[paletteOf[orphanLabel]])
		if !b.found {
			*b = best{label: neighborLabel, count: neighborCount, found: true, labFields: neighborLab}
			return
		}
		if neighborCount > b.count {
			*b = best{label: neighborLabel, count: neighborCount, found: true, labFields: neighborLab}
			return
		}
		if neighborCount == b.count {
			if neighborLab.DistanceSq(orphanLab) < b.labFields.DistanceSq(orphanLab) {
				*b = best{label: neighborLabel, count: neighborCount, found: true, labFields: neighborLab}
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			l := labels[i]
			if !orphan[l] {
				continue
			}
			if x > 0 {
				consider(l, labels[i-1])
			}
			if x < w-1 {
				consider(l, labels[i+1])
			}
			if y > 0 {
				consider(l, labels[i-w])
			}
			if y < h-1 {
				consider(l, labels[i+w])
			}
		}
	}

	for i := 0; i < n; i++ {
		l := labels[i]
		if !orphan[l] {
			continue
		}
		b := neighborBest[l]
		if !b.found {
			// Fully isolated orphan (e.g. the whole image is one tiny
			// region): nothing to absorb into, leave it as-is.
			continue
		}
		idx.Set(i%w, i/w, int(paletteOf[b.label]))
	}
}
