package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/makalin/phantomframe"
	"github.com/makalin/phantomframe/limits"
)

// frameFeatures is one frame's row in the analysis report.
type frameFeatures struct {
	Frame             uint32  `json:"frame"`
	Blocks            int     `json:"blocks"`
	AggregateVariance float64 `json:"aggregate_variance"`
	Entropy           float64 `json:"entropy"`
	Variance          float64 `json:"variance"`
}

// analyzeReport is the JSON document of a feature extraction run.
type analyzeReport struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Frames []frameFeatures `json:"frames"`
}

// runAnalyze reports per-frame features of a raw grayscale frame dump
// without running the detectors, for tuning and inspection.
func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	var (
		input       = fs.String("input", "", "Raw 8-bit grayscale frame dump (width*height bytes per frame)")
		width       = fs.Int("width", 0, "Frame width in pixels")
		height      = fs.Int("height", 0, "Frame height in pixels")
		maxFrames   = fs.Int("max-frames", limits.DefaultMaxFrames, "Most frames to analyze")
		parallelism = fs.Int("parallelism", 1, "Tile-row analysis goroutines per frame")
		verbose     = fs.Bool("verbose", false, "Enable verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose)

	if *input == "" {
		return errors.New("missing -input")
	}
	if *width <= 0 || *height <= 0 {
		return errors.New("-width and -height are required")
	}

	f, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	cfg := phantomframe.NewExtractionConfig()
	cfg.MaxFrames = *maxFrames
	cfg.Parallelism = *parallelism

	ext, err := phantomframe.NewExtractor(cfg)
	if err != nil {
		return err
	}

	report := analyzeReport{
		Width:  *width,
		Height: *height,
		Frames: make([]frameFeatures, 0),
	}

	src := newRawFrameSource(f, *width, *height)
	for frame := uint32(0); len(report.Frames) < *maxFrames; frame++ {
		g, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read frame %d: %w", frame, err)
		}

		rec, err := ext.AnalyzeFrame(g, frame)
		if err != nil {
			continue
		}
		report.Frames = append(report.Frames, frameFeatures{
			Frame:             rec.FrameIndex,
			Blocks:            len(rec.BlockVariance),
			AggregateVariance: rec.AggregateVariance(),
			Entropy:           rec.Entropy,
			Variance:          rec.Variance,
		})
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(report)
}
