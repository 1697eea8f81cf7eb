package detect

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/makalin/phantomframe/features"
	"github.com/makalin/phantomframe/payload"
)

// fusionWeightCount is the size of the built-in weight table. Feature
// vectors longer than the table are truncated to it.
const fusionWeightCount = 1024

// Scorer maps a flattened feature vector to a confidence and payload
// guess. The built-in FixedWeightScorer is a reproducible stand-in; a
// trained model can replace it without changing the fusion contract.
type Scorer interface {
	Score(vec []float64) (confidence float64, p payload.Payload, seed uint32)
}

// FixedWeightScorer projects the feature vector through a deterministic
// sinusoidal weight table and squashes the dot product into [0, 1] with
// tanh.
type FixedWeightScorer struct {
	weights []float64
}

// NewFixedWeightScorer builds the standard weight table. The weights are a
// pure function of position, so every process scores identically.
func NewFixedWeightScorer() *FixedWeightScorer {
	w := make([]float64, fusionWeightCount)
	for i := range w {
		w[i] = math.Sin(float64(i)*0.1)*0.5 + 0.5
	}
	return &FixedWeightScorer{weights: w}
}

// Score implements Scorer.
func (s *FixedWeightScorer) Score(vec []float64) (float64, payload.Payload, uint32) {
	n := len(vec)
	if n > len(s.weights) {
		n = len(s.weights)
	}

	confidence := math.Tanh(floats.Dot(vec[:n], s.weights[:n]))*0.5 + 0.5

	// Payload and seed guesses pack the leading feature magnitudes into
	// byte-sized fields.
	var p payload.Payload
	for i := 0; i < payload.Size && i < len(vec); i++ {
		p[i] = quantizeByte(vec[i])
	}
	var seed uint32
	for i := 0; i < 4 && i < len(vec); i++ {
		seed |= uint32(quantizeByte(vec[i])) << (8 * i)
	}
	return confidence, p, seed
}

// quantizeByte maps a feature value onto one byte, clamping to [0, 1]
// first so out-of-range magnitudes cannot wrap.
func quantizeByte(v float64) byte {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255)
}

// defaultScorer is shared across runs; the weight table is immutable once
// built.
var defaultScorer Scorer = NewFixedWeightScorer()

// ScoreFusion runs the secondary detection path: every record's features
// are flattened into one vector and handed to the scorer. The verdict is
// independent of the periodicity path.
func ScoreFusion(records []features.Record, cfg Config) Outcome {
	out := Outcome{Method: MethodScoreFusion}

	n := len(records)
	if n < cfg.MinFrames {
		out.Diagnostic = fmt.Sprintf("insufficient frames: got %d, need %d", n, cfg.MinFrames)
		return out
	}

	scorer := cfg.Scorer
	if scorer == nil {
		scorer = defaultScorer
	}

	confidence, p, seed := scorer.Score(flatten(records))

	// External scorers are not trusted to respect the confidence range.
	if confidence < 0 || math.IsNaN(confidence) {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	logrus.WithFields(logrus.Fields{
		"function":   "ScoreFusion",
		"frames":     n,
		"confidence": confidence,
	}).Debug("Score fusion complete")

	out.Confidence = confidence
	out.Detected = confidence >= cfg.ConfidenceThreshold
	if !out.Detected {
		out.Diagnostic = fmt.Sprintf("fusion score below threshold: confidence %.3f", confidence)
		return out
	}

	out.Payload = p
	out.HasPayload = true
	out.SeedGuess = seed
	return out
}

// flatten concatenates each record's features in order: block variances,
// block energies, entropy, frame variance.
func flatten(records []features.Record) []float64 {
	size := 0
	for _, r := range records {
		size += len(r.BlockVariance) + len(r.BlockEnergy) + 2
	}

	vec := make([]float64, 0, size)
	for _, r := range records {
		vec = append(vec, r.BlockVariance...)
		vec = append(vec, r.BlockEnergy...)
		vec = append(vec, r.Entropy, r.Variance)
	}
	return vec
}
