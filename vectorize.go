// Package vectorize converts a raster image into an SVG approximation by
// quantizing it to a small palette, tracing the resulting regions, and
// fitting simplified vector paths to their boundaries.
package vectorize

import (
	"context"

	"github.com/Fepozopo/vectorize/internal/edges"
	"github.com/Fepozopo/vectorize/internal/imaging"
	"github.com/Fepozopo/vectorize/internal/quantize"
	"github.com/Fepozopo/vectorize/internal/regions"
	"github.com/Fepozopo/vectorize/internal/svgdoc"
	"github.com/Fepozopo/vectorize/internal/vectorpath"
)

// Result is the output of a successful Vectorize call.
type Result struct {
	SVG      []byte
	Warnings []string
}

// Vectorize runs the full five-stage pipeline over raw image bytes and
// returns an SVG document, per spec.md §6.
//
// ctx is checked once per stage boundary in addition to cfg.CancelToken, so
// callers that already thread a context through their request handling
// don't also need to wire a separate CancelToken just to cancel this call.
func Vectorize(ctx context.Context, data []byte, format Format, cfg Config) (Result, error) {
	if len(data) == 0 {
		return Result{}, newError(KindDecodeFailed, "empty input")
	}

	probeW, probeH, probeErr := imaging.DecodeBounds(data)
	if probeErr != nil {
		return Result{}, wrapError(KindDecodeFailed, "reading image bounds", probeErr)
	}
	resolved, cfgErr := cfg.resolve(probeW, probeH)
	if cfgErr != nil {
		return Result{}, cfgErr
	}

	if err := checkCancel(ctx, resolved); err != nil {
		return Result{}, err
	}

	pipe := newPipeline(resolved)
	resolved.logger.Printf("preprocess: decoding %d bytes", len(data))

	orientation := 0
	if format == FormatJPEG {
		orientation = imaging.ReadJPEGOrientation(data)
	}

	img, err := imaging.Preprocess(data, resolved.maxPixels, imaging.Options{
		MaxDimension:  resolved.maxDimension,
		Filter:        toImagingFilter(resolved.resizeFilter),
		BlurRadius:    resolved.blurRadius,
		ContrastBoost: resolved.contrastBoost,
		Orientation:   orientation,
	}, pipe.pool)
	if err != nil {
		if _, ok := err.(*imaging.ResourceExhaustedError); ok {
			return Result{}, wrapError(KindResourceExhausted, "preprocessing image", err)
		}
		return Result{}, wrapError(KindDecodeFailed, "preprocessing image", err)
	}
	if img.Width < 3 || img.Height < 3 {
		return Result{}, newError(KindInvalidDimensions, "image smaller than 3x3 after preprocessing")
	}

	if err := checkCancel(ctx, resolved); err != nil {
		return Result{}, err
	}

	resolved.logger.Printf("quantize: k=%d lab=%v", resolved.k, resolved.useLab)
	pal, idx, qerr := pipe.quantizer.Quantize(img, quantize.Config{
		K:             resolved.k,
		MaxIterations: resolved.maxIterations,
		Seed:          resolved.seed,
		UseLab:        resolved.useLab,
	}, pipe.pool)
	if qerr != nil {
		return Result{}, wrapError(KindInternal, "quantizing image", qerr)
	}
	quantize.SortByLuminance(pal, idx)

	if err := checkCancel(ctx, resolved); err != nil {
		return Result{}, err
	}

	var edgeMask *edges.Mask
	if pipe.detector != nil {
		resolved.logger.Printf("edges: low=%.1f high=%.1f", resolved.edgeLow, resolved.edgeHigh)
		edgeMask, err = pipe.detector.Detect(img, edges.Config{
			LowThreshold:  resolved.edgeLow,
			HighThreshold: resolved.edgeHigh,
		}, pipe.pool)
		if err != nil {
			return Result{}, wrapError(KindInternal, "detecting edges", err)
		}
	}

	if err := checkCancel(ctx, resolved); err != nil {
		return Result{}, err
	}

	resolved.logger.Printf("regions: min_pixels=%d max_regions=%d", resolved.minRegionPixels, resolved.maxRegions)
	rawRegions, warning, rerr := regions.Extract(idx, pal, regions.Config{
		MinRegionPixels: resolved.minRegionPixels,
		MaxRegions:      resolved.maxRegions,
	}, pipe.pool)
	if rerr != nil {
		return Result{}, wrapError(KindInternal, "extracting regions", rerr)
	}

	var warnings []string
	if warning != nil {
		warnings = append(warnings, warning.Message)
		resolved.logger.Printf("warning: %s", warning.Message)
	}

	if err := checkCancel(ctx, resolved); err != nil {
		return Result{}, err
	}

	resolved.logger.Printf("vectorpath: fitting %d regions", len(rawRegions))
	mustKeep := edgeKeepPredicate(edgeMask)
	pathCfg := vectorpath.Config{
		Tolerance:          resolved.dpTolerance,
		CornerAngleDegrees: resolved.cornerAngleThresholdDegrees,
		MinPointsForCurve:  5,
	}
	regionPaths := make([]svgdoc.RegionPath, 0, len(rawRegions))
	for _, r := range rawRegions {
		path, ok := vectorpath.FitRegion(r, pathCfg, mustKeep)
		if !ok {
			continue
		}
		regionPaths = append(regionPaths, svgdoc.RegionPath{
			PaletteIndex: r.PaletteIndex,
			PixelCount:   r.PixelCount,
			Path:         path,
		})
	}

	var overlay *svgdoc.EdgeOverlay
	if resolved.edgeOverlay && edgeMask != nil {
		overlay = &svgdoc.EdgeOverlay{
			Mask:        edgeMask,
			Stroke:      "#000",
			StrokeWidth: 0.5,
			Opacity:     resolved.edgeOverlayOpacity,
		}
	}

	doc := svgdoc.Assemble(img.Width, img.Height, pal, regionPaths, overlay)
	resolved.logger.Printf("assemble: %d paths, %d bytes", len(regionPaths), len(doc))

	return Result{SVG: []byte(doc), Warnings: warnings}, nil
}

// edgeKeepPredicate reports, for a traced boundary point, whether it
// coincides with a detected edge pixel and so should survive simplification
// even if Douglas-Peucker would otherwise drop it, per spec.md §4.5.
func edgeKeepPredicate(mask *edges.Mask) func(regions.Point) bool {
	if mask == nil {
		return nil
	}
	return func(p regions.Point) bool {
		if p.X < 0 || p.X >= mask.Width || p.Y < 0 || p.Y >= mask.Height {
			return false
		}
		return mask.At(p.X, p.Y) != 0
	}
}

func checkCancel(ctx context.Context, cfg resolvedConfig) *Error {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return wrapError(KindCancelled, "context cancelled", ctx.Err())
		default:
		}
	}
	if cfg.cancel != nil && cfg.cancel.Cancelled() {
		return newError(KindCancelled, "cancel token fired")
	}
	return nil
}
