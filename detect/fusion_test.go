package detect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/makalin/phantomframe/features"
	"github.com/makalin/phantomframe/payload"
)

func TestFixedWeightScorer_Bounds(t *testing.T) {
	s := NewFixedWeightScorer()

	conf, _, _ := s.Score(nil)
	assert.Equal(t, 0.5, conf, "an empty vector scores at the sigmoid midpoint")

	vec := make([]float64, 2000)
	for i := range vec {
		vec[i] = 1000
	}
	conf, _, _ = s.Score(vec)
	assert.GreaterOrEqual(t, conf, 0.0)
	assert.LessOrEqual(t, conf, 1.0)
}

func TestFixedWeightScorer_TruncatesLongVectors(t *testing.T) {
	s := NewFixedWeightScorer()

	long := make([]float64, 5000)
	for i := range long {
		long[i] = 0.001
	}
	confLong, _, _ := s.Score(long)
	confHead, _, _ := s.Score(long[:fusionWeightCount])

	assert.Equal(t, confHead, confLong, "features past the weight table must not contribute")
}

func TestScoreFusion_AllZeroFeatures(t *testing.T) {
	records := make([]features.Record, 20)
	for i := range records {
		records[i] = features.Record{
			FrameIndex:    uint32(i),
			BlockVariance: make([]float64, 4),
			BlockEnergy:   make([]float64, 4),
		}
	}

	out := ScoreFusion(records, DefaultConfig())

	assert.False(t, out.Detected)
	assert.Equal(t, 0.5, out.Confidence)
	assert.False(t, out.HasPayload)
	assert.NotEmpty(t, out.Diagnostic)
}

func TestScoreFusion_DetectsStrongSignal(t *testing.T) {
	records := make([]features.Record, 20)
	for i := range records {
		records[i] = features.Record{
			FrameIndex:    uint32(i),
			BlockVariance: []float64{5, 5, 5, 5},
			BlockEnergy:   []float64{5, 5, 5, 5},
			Entropy:       7.5,
			Variance:      5,
		}
	}

	out := ScoreFusion(records, DefaultConfig())

	assert.True(t, out.Detected)
	assert.Equal(t, MethodScoreFusion, out.Method)
	assert.Greater(t, out.Confidence, 0.99)
	assert.True(t, out.HasPayload)
	// Every leading feature is far above 1.0, so quantization saturates.
	assert.Equal(t, strings.Repeat("ff", 16), out.Payload.String())
	assert.Equal(t, uint32(0xffffffff), out.SeedGuess)
}

type staticScorer struct {
	confidence float64
	seed       uint32
}

func (s staticScorer) Score(_ []float64) (float64, payload.Payload, uint32) {
	return s.confidence, payload.FromText("static"), s.seed
}

func TestScoreFusion_CustomScorer(t *testing.T) {
	records := make([]features.Record, 12)
	for i := range records {
		records[i] = features.Record{FrameIndex: uint32(i)}
	}

	cfg := DefaultConfig()
	cfg.Scorer = staticScorer{confidence: 0.93, seed: 7}

	out := ScoreFusion(records, cfg)
	assert.True(t, out.Detected)
	assert.InDelta(t, 0.93, out.Confidence, 1e-12)
	assert.Equal(t, payload.FromText("static"), out.Payload)
	assert.Equal(t, uint32(7), out.SeedGuess)

	cfg.Scorer = staticScorer{confidence: 3, seed: 7}
	out = ScoreFusion(records, cfg)
	assert.Equal(t, 1.0, out.Confidence, "out-of-range scores are clamped")
	assert.True(t, out.Detected)
}

func TestScoreFusion_InsufficientFrames(t *testing.T) {
	records := make([]features.Record, 4)
	for i := range records {
		records[i] = features.Record{FrameIndex: uint32(i)}
	}

	out := ScoreFusion(records, DefaultConfig())

	assert.False(t, out.Detected)
	assert.Zero(t, out.Confidence)
	assert.Contains(t, out.Diagnostic, "insufficient frames")
}

func TestFlatten_OrdersFeaturesPerFrame(t *testing.T) {
	records := []features.Record{
		{
			FrameIndex:    0,
			BlockVariance: []float64{1, 2},
			BlockEnergy:   []float64{3, 4},
			Entropy:       5,
			Variance:      6,
		},
		{
			FrameIndex:    1,
			BlockVariance: []float64{7},
			BlockEnergy:   []float64{8},
			Entropy:       9,
			Variance:      10,
		},
	}

	vec := flatten(records)

	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, vec)
}
