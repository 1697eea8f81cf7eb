package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/makalin/phantomframe"
	"github.com/makalin/phantomframe/detect"
	"github.com/makalin/phantomframe/limits"
)

// detectReport is the JSON verdict of one detection run.
type detectReport struct {
	AnalysisID     string    `json:"analysis_id"`
	Detected       bool      `json:"detected"`
	Confidence     float64   `json:"confidence"`
	Method         string    `json:"method"`
	Payload        string    `json:"payload,omitempty"`
	SeedGuess      uint32    `json:"seed_guess,omitempty"`
	FramesAnalyzed int       `json:"frames_analyzed"`
	Diagnostic     string    `json:"diagnostic,omitempty"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}

func reportFromResult(res detect.Result) detectReport {
	report := detectReport{
		AnalysisID:     res.AnalysisID.String(),
		Detected:       res.Detected,
		Confidence:     res.Confidence,
		Method:         res.Method.String(),
		FramesAnalyzed: res.FramesAnalyzed,
		Diagnostic:     res.Diagnostic,
		AnalyzedAt:     res.AnalyzedAt,
	}
	if res.HasPayload {
		report.Payload = res.Payload.String()
		report.SeedGuess = res.SeedGuess
	}
	return report
}

// runDetect reads raw 8-bit grayscale frames from a file and runs the
// full detection pipeline over them.
func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	var (
		input       = fs.String("input", "", "Raw 8-bit grayscale frame dump (width*height bytes per frame)")
		width       = fs.Int("width", 0, "Frame width in pixels")
		height      = fs.Int("height", 0, "Frame height in pixels")
		minFrames   = fs.Int("min-frames", limits.DefaultMinFrames, "Fewest frames the detectors decide on")
		maxFrames   = fs.Int("max-frames", limits.DefaultMaxFrames, "Most frames to collect")
		threshold   = fs.Float64("threshold", limits.DefaultConfidenceThreshold, "Detection confidence threshold")
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
	cfg.MinFrames = *minFrames
	cfg.MaxFrames = *maxFrames
	cfg.ConfidenceThreshold = *threshold
	cfg.Parallelism = *parallelism

	ext, err := phantomframe.NewExtractor(cfg)
	if err != nil {
		return err
	}

	res, err := ext.AnalyzeSource(context.Background(), newRawFrameSource(f, *width, *height))
	if err != nil {
		return err
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(reportFromResult(res))
}
