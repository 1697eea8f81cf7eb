package phantomframe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/makalin/phantomframe/detect"
	"github.com/makalin/phantomframe/features"
)

// FrameSource supplies frames to AnalyzeSource in stream order. Next
// returns io.EOF when the stream ends.
type FrameSource interface {
	Next() (*features.Grid, error)
}

// ExtractorStats is a point-in-time snapshot of extractor activity.
type ExtractorStats struct {
	// VideosProcessed counts completed detection runs.
	VideosProcessed uint64

	// FramesAnalyzed counts frames that produced a feature record.
	FramesAnalyzed uint64

	// WatermarksDetected counts runs whose verdict was positive.
	WatermarksDetected uint64
}

// Extractor analyzes frame sequences for embedded watermarks. It is safe
// for concurrent use; runs share only the activity counters.
type Extractor struct {
	features *features.Extractor
	cfg      ExtractionConfig

	videosProcessed    atomic.Uint64
	framesAnalyzed     atomic.Uint64
	watermarksDetected atomic.Uint64
}

// NewExtractor creates an extractor with the given bounds.
func NewExtractor(cfg ExtractionConfig) (*Extractor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fx := features.NewExtractor()
	fx.BlockSize = cfg.BlockSize
	if cfg.Parallelism > 0 {
		fx.Parallelism = cfg.Parallelism
	}
	return &Extractor{features: fx, cfg: cfg}, nil
}

// AnalyzeFrame extracts the feature record for one frame. An empty frame
// yields a zeroed record and ErrEmptyInput; batch callers skip the frame
// and keep going.
func (x *Extractor) AnalyzeFrame(g *features.Grid, frameIndex uint32) (features.Record, error) {
	rec, err := x.features.AnalyzeFrame(g, frameIndex)
	if err != nil {
		return rec, err
	}
	x.framesAnalyzed.Add(1)
	return rec, nil
}

// Extract runs the detectors over collected records. A negative verdict
// is a normal result, not an error.
func (x *Extractor) Extract(records []features.Record) detect.Result {
	res := detect.Extract(records, x.cfg.detectConfig())
	x.videosProcessed.Add(1)
	if res.Detected {
		x.watermarksDetected.Add(1)
	}
	return res
}

// ExtractContext is Extract honoring cancellation. A canceled context
// discards the run and returns the context's error; partial results are
// never returned.
func (x *Extractor) ExtractContext(ctx context.Context, records []features.Record) (detect.Result, error) {
	if err := ctx.Err(); err != nil {
		return detect.Result{}, err
	}

	res := x.Extract(records)

	if err := ctx.Err(); err != nil {
		return detect.Result{}, err
	}
	return res, nil
}

// AnalyzeSource pulls frames from the source until io.EOF or the
// MaxFrames cap, then runs detection over what was collected. Frames are
// numbered in arrival order. Empty frames are skipped, a failing source
// aborts the run, and a source that yields no frames at all is
// ErrInsufficientFrames; a merely short stream is an abstaining result.
func (x *Extractor) AnalyzeSource(ctx context.Context, src FrameSource) (detect.Result, error) {
	var records []features.Record

	frameIndex := uint32(0)
	for len(records) < x.cfg.MaxFrames {
		if err := ctx.Err(); err != nil {
			return detect.Result{}, err
		}

		g, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return detect.Result{}, fmt.Errorf("failed to read frame %d: %w", frameIndex, err)
		}

		rec, err := x.AnalyzeFrame(g, frameIndex)
		if err == nil {
			records = append(records, rec)
		}
		frameIndex++
	}

	if len(records) == 0 {
		return detect.Result{}, fmt.Errorf("%w: source yielded no frames", ErrInsufficientFrames)
	}

	logrus.WithFields(logrus.Fields{
		"function":  "AnalyzeSource",
		"collected": len(records),
		"pulled":    frameIndex,
	}).Info("Frame collection complete")

	return x.Extract(records), nil
}

// Stats returns current extractor statistics.
func (x *Extractor) Stats() ExtractorStats {
	return ExtractorStats{
		VideosProcessed:    x.videosProcessed.Load(),
		FramesAnalyzed:     x.framesAnalyzed.Load(),
		WatermarksDetected: x.watermarksDetected.Load(),
	}
}
