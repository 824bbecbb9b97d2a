package vectorize

import (
	"fmt"
	"log"
)

// Format tags the encoding of the input byte buffer.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

// Quality is a preset that sets the quantizer's K and the simplifier's
// Douglas-Peucker tolerance. Callers can also set the underlying knobs
// directly; Quality only supplies defaults when those are left at zero.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityHigh
	QualityUltra
)

// EdgeVariant selects the edge-detection algorithm.
type EdgeVariant int

const (
	EdgeNone EdgeVariant = iota
	EdgeSobel
	EdgeCanny
	EdgeAiEnhanced
)

// ResizeFilter selects the downscale filter the Preprocessor uses when
// MaxDimension is set.
type ResizeFilter int

const (
	// ResizeLanczos is the default: a hand-rolled separable Lanczos-3 filter.
	ResizeLanczos ResizeFilter = iota
	// ResizeBilinear uses golang.org/x/image/draw's CatmullRom scaler, kept
	// as a compatibility path that exercises the ecosystem resampler.
	ResizeBilinear
)

// CancelToken is a cooperative cancellation handle. Vectorize polls it at
// each stage boundary; the stages' inner loops do not poll it, so a running
// stage finishes before cancellation is noticed.
type CancelToken struct {
	ch chan struct{}
}

// NewCancelToken returns a CancelToken that has not fired.
func NewCancelToken() *CancelToken {
	return &CancelToken{ch: make(chan struct{})}
}

// Cancel fires the token. Safe to call more than once.
func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	select {
	case <-t.ch:
	default:
		close(t.ch)
	}
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.ch:
		return true
	default:
		return false
	}
}

// Config configures a single Vectorize call.
type Config struct {
	Quality Quality

	// UseLab selects CIE L*a*b* clustering over linear RGB. Defaults to true
	// (the zero value is overridden in resolve()).
	UseLab *bool

	// K overrides the palette size the Quality preset would otherwise pick.
	K int
	// MaxIterations overrides the k-means iteration cap (default 10).
	MaxIterations int
	// Seed seeds k-means++ for reproducible runs.
	Seed uint64

	// DPTolerance overrides the Douglas-Peucker epsilon the Quality preset
	// would otherwise pick.
	DPTolerance float64
	// CornerAngleThresholdDegrees overrides the corner/smooth split angle
	// (default 60 degrees).
	CornerAngleThresholdDegrees float64

	// EdgeVariant selects the edge detector. Zero value resolves from
	// Quality (None for Fast/Balanced/High, AiEnhanced for Ultra, unless the
	// caller set it explicitly - see resolve()).
	EdgeVariant EdgeVariant
	// EdgeLowThreshold / EdgeHighThreshold override the hysteresis
	// thresholds (defaults 30, 90).
	EdgeLowThreshold, EdgeHighThreshold float64

	// MaxDimension caps the larger input side; zero means unbounded.
	MaxDimension int
	// ResizeFilter selects the downscale filter.
	ResizeFilter ResizeFilter
	// BlurRadius is the pre-quantization Gaussian blur sigma (default 0.5).
	BlurRadius *float64
	// ContrastBoost is a linear stretch factor around 128 (default 1.0).
	ContrastBoost *float64

	// MinRegionPixels overrides the minimum component size (default
	// max(8, 0.0001*W*H)).
	MinRegionPixels int
	// MaxRegions caps the number of traced regions (default 100000).
	MaxRegions int

	// EdgeOverlay, when true, appends a stroked <path> of detected edges to
	// the output.
	EdgeOverlay bool
	// EdgeOverlayOpacity sets the overlay path's opacity (default 1.0).
	EdgeOverlayOpacity float64

	// MaxPixels bounds width*height after decode; exceeding it is
	// ResourceExhausted. Zero means unbounded.
	MaxPixels int64

	// Workers bounds the size of the internal worker pool; zero uses
	// runtime.NumCPU().
	Workers int

	// CancelToken, if set, is polled between stages (not inside a stage).
	CancelToken *CancelToken

	// Logger receives terse progress lines ("quantize: k=32 lab=true").
	// Defaults to a no-op sink: the core never writes to stdout/stderr on
	// its own.
	Logger *log.Logger
}

type resolvedConfig struct {
	useLab                      bool
	k                           int
	maxIterations               int
	seed                        uint64
	dpTolerance                 float64
	cornerAngleThresholdDegrees float64
	edgeVariant                 EdgeVariant
	edgeLow, edgeHigh           float64
	maxDimension                int
	resizeFilter                ResizeFilter
	blurRadius                  float64
	contrastBoost               float64
	minRegionPixels             int
	maxRegions                  int
	edgeOverlay                 bool
	edgeOverlayOpacity          float64
	maxPixels                   int64
	workers                     int
	cancel                      *CancelToken
	logger                      *log.Logger
}

func qualityDefaults(q Quality) (k int, tol float64, edge EdgeVariant) {
	switch q {
	case QualityFast:
		return 16, 3.0, EdgeNone
	case QualityHigh:
		return 64, 1.5, EdgeNone
	case QualityUltra:
		return 128, 1.0, EdgeAiEnhanced
	default: // QualityBalanced
		return 32, 2.0, EdgeNone
	}
}

func (c Config) resolve(width, height int) (resolvedConfig, *Error) {
	k, tol, edge := qualityDefaults(c.Quality)
	if c.K != 0 {
		k = c.K
	}
	if c.DPTolerance != 0 {
		tol = c.DPTolerance
	}
	if c.EdgeVariant != EdgeNone {
		edge = c.EdgeVariant
	}

	if k < 2 || k > 256 {
		return resolvedConfig{}, newError(KindInvalidConfiguration, fmt.Sprintf("K must be in [2,256], got %d", k))
	}

	low, high := c.EdgeLowThreshold, c.EdgeHighThreshold
	if low == 0 && high == 0 {
		low, high = 30, 90
	}
	if low > high {
		return resolvedConfig{}, newError(KindInvalidConfiguration, fmt.Sprintf("edge low threshold %.1f exceeds high threshold %.1f", low, high))
	}

	useLab := true
	if c.UseLab != nil {
		useLab = *c.UseLab
	}

	maxIter := c.MaxIterations
	if maxIter <= 0 {
		maxIter = 10
	}

	cornerAngle := c.CornerAngleThresholdDegrees
	if cornerAngle <= 0 {
		cornerAngle = 60
	}

	blur := 0.5
	if c.BlurRadius != nil {
		blur = *c.BlurRadius
	}

	contrast := 1.0
	if c.ContrastBoost != nil {
		contrast = *c.ContrastBoost
	}
	if contrast < 0.5 || contrast > 2.0 {
		return resolvedConfig{}, newError(KindInvalidConfiguration, fmt.Sprintf("contrast boost must be in [0.5,2.0], got %.2f", contrast))
	}

	minRegion := c.MinRegionPixels
	if minRegion <= 0 {
		minRegion = width * height / 10000
		if minRegion < 8 {
			minRegion = 8
		}
	}

	maxRegions := c.MaxRegions
	if maxRegions <= 0 {
		maxRegions = 100000
	}

	overlayOpacity := c.EdgeOverlayOpacity
	if overlayOpacity <= 0 {
		overlayOpacity = 1.0
	}

	logger := c.Logger
	if logger == nil {
		logger = log.New(discard{}, "", 0)
	}

	return resolvedConfig{
		useLab:                      useLab,
		k:                           k,
		maxIterations:               maxIter,
		seed:                        c.Seed,
		dpTolerance:                 tol,
		cornerAngleThresholdDegrees: cornerAngle,
		edgeVariant:                 edge,
		edgeLow:                     low,
		edgeHigh:                    high,
		maxDimension:                c.MaxDimension,
		resizeFilter:                c.ResizeFilter,
		blurRadius:                  blur,
		contrastBoost:               contrast,
		minRegionPixels:             minRegion,
		maxRegions:                  maxRegions,
		edgeOverlay:                 c.EdgeOverlay,
		edgeOverlayOpacity:          overlayOpacity,
		maxPixels:                   c.MaxPixels,
		workers:                     c.Workers,
		cancel:                      c.CancelToken,
		logger:                      logger,
	}, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
