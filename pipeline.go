package vectorize

import (
	"github.com/Fepozopo/vectorize/internal/edges"
	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/workerpool"
)

// pipeline bundles the pool and stage implementations a single Vectorize
// call uses, so they're constructed once, explicitly, and threaded through
// every stage rather than read off a package-level global, per spec.md
// §9's redesign note against process-wide state.
type pipeline struct {
	pool      *workerpool.Pool
	quantizer quantize.Quantizer
	detector  edges.Detector
}

func newPipeline(cfg resolvedConfig) *pipeline {
	// K-means++ (seeded init, Lloyd iteration, Lab or linear-RGB distance)
	// is the mandated quantizer for every quality preset and every K,
	// including the K=2 boundary case whose palette must be the two
	// cluster centroids. quantize.MedianCut remains exported for callers
	// who explicitly want the cheaper box-splitting heuristic instead, but
	// the pipeline never substitutes it silently.
	quantizer := quantize.KMeans{}

	var detector edges.Detector
	switch cfg.edgeVariant {
	case EdgeCanny:
		detector = edges.New(edges.Canny)
	case EdgeAiEnhanced:
		detector = edges.New(edges.AiEnhanced)
	case EdgeSobel:
		detector = edges.New(edges.Sobel)
	default:
		detector = nil
	}

	return &pipeline{
		pool:      workerpool.New(cfg.workers),
		quantizer: quantizer,
		detector:  detector,
	}
}

func toImagingFilter(f ResizeFilter) imaging.ResizeFilter {
	if f == ResizeBilinear {
		return imaging.FilterBilinear
	}
	return imaging.FilterLanczos
}
