package detect

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/makalin/phantomframe/features"
	"github.com/makalin/phantomframe/payload"
)

// Result is the terminal verdict of one detection run.
type Result struct {
	// AnalysisID uniquely identifies the run in logs and reports.
	AnalysisID uuid.UUID

	Detected   bool
	Confidence float64

	// Payload is meaningful only when HasPayload is true.
	Payload    payload.Payload
	HasPayload bool

	// SeedGuess is the surfaced detector's tentative scheduling seed
	// estimate.
	SeedGuess uint32

	// Method names the path that produced the verdict; MethodNone when no
	// path reached the threshold.
	Method Method

	FramesAnalyzed int
	Diagnostic     string
	AnalyzedAt     time.Time
}

// Extract composes the two detectors by priority. The periodicity verdict
// is surfaced when it reaches the threshold; otherwise the fusion verdict
// when it does; otherwise a negative result naming both confidences.
// Exactly one path's outcome is surfaced and confidences are never merged.
// A negative verdict is a normal outcome, not an error.
func Extract(records []features.Record, cfg Config) Result {
	res := Result{
		AnalysisID:     uuid.New(),
		Method:         MethodNone,
		FramesAnalyzed: len(records),
		AnalyzedAt:     defaultTimeProvider.Now(),
	}

	if len(records) < cfg.MinFrames {
		res.Diagnostic = fmt.Sprintf("insufficient frames: got %d, need %d", len(records), cfg.MinFrames)
		logrus.WithFields(logrus.Fields{
			"function": "Extract",
			"analysis": res.AnalysisID,
			"frames":   len(records),
			"needed":   cfg.MinFrames,
		}).Warn("Insufficient frames for detection")
		return res
	}

	periodic := Periodicity(records, cfg)
	if periodic.Detected {
		logrus.WithFields(logrus.Fields{
			"function":   "Extract",
			"analysis":   res.AnalysisID,
			"method":     periodic.Method.String(),
			"confidence": periodic.Confidence,
		}).Info("Watermark detected")
		return res.withOutcome(periodic)
	}

	fused := ScoreFusion(records, cfg)
	if fused.Detected {
		logrus.WithFields(logrus.Fields{
			"function":   "Extract",
			"analysis":   res.AnalysisID,
			"method":     fused.Method.String(),
			"confidence": fused.Confidence,
		}).Info("Watermark detected")
		return res.withOutcome(fused)
	}

	res.Diagnostic = fmt.Sprintf(
		"no detector reached threshold %.2f: periodicity %.3f, score fusion %.3f",
		cfg.ConfidenceThreshold, periodic.Confidence, fused.Confidence)

	logrus.WithFields(logrus.Fields{
		"function":     "Extract",
		"analysis":     res.AnalysisID,
		"periodicity":  periodic.Confidence,
		"score_fusion": fused.Confidence,
	}).Info("No watermark detected")
	return res
}

// withOutcome copies one detector's verdict onto the run result.
func (r Result) withOutcome(o Outcome) Result {
	r.Detected = o.Detected
	r.Confidence = o.Confidence
	r.Payload = o.Payload
	r.HasPayload = o.HasPayload
	r.SeedGuess = o.SeedGuess
	r.Method = o.Method
	r.Diagnostic = o.Diagnostic
	return r
}
