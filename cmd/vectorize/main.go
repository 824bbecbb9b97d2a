// Command vectorize converts a raster image into an SVG approximation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/vectorize"
	"github.com/Fepozopo/vectorize/internal/update"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.0.0-dev"

const repo = "Fepozopo/vectorize"

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: vectorize [flags] <input.png|input.jpg>")
	flag.PrintDefaults()
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	var (
		quality      = flag.String("quality", "balanced", "fast, balanced, high, or ultra")
		maxDimension = flag.Int("max-dimension", 0, "cap the larger input side, 0 for unbounded")
		seed         = flag.Uint64("seed", 0, "k-means++ seed, for reproducible runs")
		edgeVariant  = flag.String("edge", "", "none, sobel, canny, or ai-enhanced")
		edgeOverlay  = flag.Bool("edge-overlay", false, "append a stroked overlay of detected edges")
		out          = flag.String("out", "", "output path, defaults to the input path with its extension replaced by .svg")
		verbose      = flag.Bool("verbose", false, "log pipeline progress to stderr")
		checkUpdate  = flag.Bool("check-update", false, "check GitHub releases for a newer version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *checkUpdate {
		runCheckUpdate()
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("reading %s: %v", inputPath, err)
	}

	format := vectorize.FormatPNG
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".jpg", ".jpeg":
		format = vectorize.FormatJPEG
	}

	cfg := vectorize.Config{
		Quality:      parseQuality(*quality),
		MaxDimension: *maxDimension,
		Seed:         *seed,
		EdgeVariant:  parseEdgeVariant(*edgeVariant),
		EdgeOverlay:  *edgeOverlay,
	}
	if *verbose {
		cfg.Logger = log.New(os.Stderr, "vectorize: ", 0)
	}

	result, verr := vectorize.Vectorize(context.Background(), data, format, cfg)
	if verr != nil {
		log.Fatalf("vectorize: %v", verr)
	}
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".svg"
	}
	if err := os.WriteFile(outPath, result.SVG, 0o644); err != nil {
		log.Fatalf("writing %s: %v", outPath, err)
	}
	fmt.Println(outPath)
}

func parseQuality(s string) vectorize.Quality {
	switch strings.ToLower(s) {
	case "fast":
		return vectorize.QualityFast
	case "high":
		return vectorize.QualityHigh
	case "ultra":
		return vectorize.QualityUltra
	default:
		return vectorize.QualityBalanced
	}
}

func parseEdgeVariant(s string) vectorize.EdgeVariant {
	switch strings.ToLower(s) {
	case "sobel":
		return vectorize.EdgeSobel
	case "canny":
		return vectorize.EdgeCanny
	case "ai-enhanced", "aienhanced":
		return vectorize.EdgeAiEnhanced
	default:
		return vectorize.EdgeNone
	}
}

func runCheckUpdate() {
	fmt.Printf("Current version: %s\n", version)
	info, err := update.Check(repo, version)
	if err != nil {
		log.Fatalf("update check failed: %v", err)
	}
	if info.Latest == "" {
		fmt.Println("No release information available from GitHub.")
		return
	}
	fmt.Printf("Latest version: %s\n", info.Latest)
	if info.UpToDate {
		fmt.Println("You are already running the latest version.")
		return
	}
	if info.AssetURL == "" {
		fmt.Printf("A new version (%s) is available but there is no downloadable asset for this platform.\n", info.Latest)
		return
	}
	fmt.Printf("A new version (%s) is available. Run with the published installer or download %s.\n", info.Latest, info.AssetURL)
}
