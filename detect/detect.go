// Package detect decides whether a frame-record sequence carries a
// periodic watermark signature and, when it does, reconstructs a payload.
//
// Two independent detectors run over the same records. The periodicity
// detector autocorrelates the per-frame aggregate variance series and is
// the primary path; the score-fusion detector projects the full feature
// vectors through a pluggable scorer and provides a secondary estimate.
// Extract composes them by priority: whichever path first reaches the
// confidence threshold is surfaced unchanged. The two are never merged.
//
// Both detectors favor false negatives. A short, flat, or ambiguous series
// abstains with a diagnostic instead of guessing.
package detect

import (
	"github.com/makalin/phantomframe/limits"
	"github.com/makalin/phantomframe/payload"
)

// Method identifies which detection path produced a verdict.
type Method int

const (
	// MethodNone means no detector reached the confidence threshold.
	MethodNone Method = iota

	// MethodPeriodicity is the autocorrelation path over the per-frame
	// aggregate series.
	MethodPeriodicity

	// MethodScoreFusion is the weighted-projection path over the full
	// feature vectors.
	MethodScoreFusion
)

// String returns the method name used in logs and reports.
func (m Method) String() string {
	switch m {
	case MethodPeriodicity:
		return "periodicity"
	case MethodScoreFusion:
		return "score-fusion"
	default:
		return "none"
	}
}

// Config bounds a detection run.
type Config struct {
	// MinFrames is the fewest frame records the detectors will decide on.
	// Shorter sequences abstain.
	MinFrames int

	// ConfidenceThreshold is the minimum confidence required to report a
	// watermark as detected.
	ConfidenceThreshold float64

	// Scorer overrides the built-in fixed-weight scorer on the fusion
	// path. Nil selects the built-in table.
	Scorer Scorer
}

// DefaultConfig returns the detection bounds the pipeline was tuned with.
func DefaultConfig() Config {
	return Config{
		MinFrames:           limits.DefaultMinFrames,
		ConfidenceThreshold: limits.DefaultConfidenceThreshold,
	}
}

// Validate reports unusable bounds immediately; nothing falls back
// silently.
func (c Config) Validate() error {
	if err := limits.ValidateMinFrames(c.MinFrames); err != nil {
		return err
	}
	return limits.ValidateConfidence(c.ConfidenceThreshold)
}

// Outcome is a single detector's verdict over a record sequence.
type Outcome struct {
	Method     Method
	Detected   bool
	Confidence float64

	// Payload is meaningful only when HasPayload is true, which in turn
	// requires Detected.
	Payload    payload.Payload
	HasPayload bool

	// SeedGuess is the detector's tentative estimate of the scheduling
	// seed. Zero when not detected.
	SeedGuess uint32

	// Diagnostic explains an abstention. Empty on detection.
	Diagnostic string
}
