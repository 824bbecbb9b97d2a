package regions

import (
	"testing"

	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

func solidIndexMap(w, h int) *quantize.IndexMap {
	return quantize.NewIndexMap(w, h)
}

func TestExtractSolidImageProducesOneRegion(t *testing.T) {
	pool := workerpool.New(2)
	idx := solidIndexMap(10, 6)
	pal := quantize.Palette{{R: 1, G: 2, B: 3}}
	regions, warning, err := Extract(idx, pal, Config{MinRegionPixels: 1, MaxRegions: 100}, pool)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if warning != nil {
		t.Errorf("unexpected warning: %v", warning.Message)
	}
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].PixelCount != 60 {
		t.Errorf("PixelCount = %d, want 60", regions[0].PixelCount)
	}
	if len(regions[0].Outer) < 4 {
		t.Errorf("outer boundary too short: %v", regions[0].Outer)
	}
}

func TestExtractTwoColorSplitProducesTwoRegions(t *testing.T) {
	pool := workerpool.New(2)
	idx := quantize.NewIndexMap(10, 4)
	for y := 0; y < 4; y++ {
		for x := 5; x < 10; x++ {
			idx.Set(x, y, 1)
		}
	}
	pal := quantize.Palette{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}
	regionList, _, err := Extract(idx, pal, Config{MinRegionPixels: 1, MaxRegions: 100}, pool)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(regionList) != 2 {
		t.Fatalf("got %d regions, want 2", len(regionList))
	}
	total := 0
	for _, r := range regionList {
		total += r.PixelCount
		if r.PixelCount != 20 {
			t.Errorf("region %+v has PixelCount %d, want 20", r, r.PixelCount)
		}
	}
	if total != 40 {
		t.Errorf("total pixel count = %d, want 40", total)
	}
}

func TestExtractDetectsHole(t *testing.T) {
	pool := workerpool.New(2)
	idx := quantize.NewIndexMap(5, 5)
	idx.Set(2, 2, 1)
	pal := quantize.Palette{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}

	regionList, _, err := Extract(idx, pal, Config{MinRegionPixels: 1, MaxRegions: 100}, pool)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(regionList) != 2 {
		t.Fatalf("got %d regions, want 2", len(regionList))
	}
	var outer *Region
	for i := range regionList {
		if regionList[i].PaletteIndex == 0 {
			outer = &regionList[i]
		}
	}
	if outer == nil {
		t.Fatal("outer region (palette index 0) not found")
	}
	if len(outer.Holes) != 1 {
		t.Fatalf("outer region has %d holes, want 1", len(outer.Holes))
	}
}

func TestExtractReassignsOrphanToLargerNeighbor(t *testing.T) {
	pool := workerpool.New(2)
	idx := quantize.NewIndexMap(5, 5)
	idx.Set(2, 2, 1) // single stray pixel, smaller than min_region_pixels
	pal := quantize.Palette{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}

	regionList, _, err := Extract(idx, pal, Config{MinRegionPixels: 4, MaxRegions: 100}, pool)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(regionList) != 1 {
		t.Fatalf("got %d regions after orphan reassignment, want 1: %+v", len(regionList), regionList)
	}
	if regionList[0].PixelCount != 25 {
		t.Errorf("merged region PixelCount = %d, want 25", regionList[0].PixelCount)
	}
}
