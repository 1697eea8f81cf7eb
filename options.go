package phantomframe

import (
	"fmt"

	"github.com/makalin/phantomframe/detect"
	"github.com/makalin/phantomframe/limits"
)

// ExtractionConfig bounds a detection run.
type ExtractionConfig struct {
	// MinFrames is the fewest frame records the detectors will decide on;
	// shorter sequences abstain.
	MinFrames int

	// MaxFrames caps how many frames AnalyzeSource collects before forcing
	// a decision.
	MaxFrames int

	// ConfidenceThreshold is the minimum confidence required to report a
	// watermark as detected.
	ConfidenceThreshold float64

	// BlockSize is the analysis tile side length in samples.
	BlockSize int

	// Parallelism is the number of goroutines analyzing each frame's tile
	// rows. Values below 2 analyze serially.
	Parallelism int

	// Scorer optionally replaces the built-in score-fusion scorer.
	Scorer detect.Scorer
}

// NewExtractionConfig returns the standard extraction bounds.
func NewExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		MinFrames:           limits.DefaultMinFrames,
		MaxFrames:           limits.DefaultMaxFrames,
		ConfidenceThreshold: limits.DefaultConfidenceThreshold,
		BlockSize:           limits.BlockSize,
		Parallelism:         1,
	}
}

func (c ExtractionConfig) validate() error {
	if err := limits.ValidateFrameWindow(c.MinFrames, c.MaxFrames); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if err := limits.ValidateConfidence(c.ConfidenceThreshold); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidParameters, c.BlockSize)
	}
	return nil
}

// detectConfig maps the facade bounds onto the detector configuration.
func (c ExtractionConfig) detectConfig() detect.Config {
	return detect.Config{
		MinFrames:           c.MinFrames,
		ConfidenceThreshold: c.ConfidenceThreshold,
		Scorer:              c.Scorer,
	}
}
