package features

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFrame_UniformFrameScoresZero(t *testing.T) {
	g := NewGrid(64, 64)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}

	e := NewExtractor()
	rec, err := e.AnalyzeFrame(g, 3)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), rec.FrameIndex)
	require.Len(t, rec.BlockVariance, 64)
	require.Len(t, rec.BlockEnergy, 64)

	assert.Zero(t, rec.Entropy, "single-level histogram has zero entropy")
	assert.Zero(t, rec.Variance)
	for i := range rec.BlockVariance {
		assert.Zero(t, rec.BlockVariance[i], "block %d variance", i)
		assert.InDelta(t, 0, rec.BlockEnergy[i], 1e-9, "block %d energy", i)
	}
	assert.Zero(t, rec.AggregateVariance())
}

func TestAnalyzeFrame_EmptyInput(t *testing.T) {
	e := NewExtractor()

	rec, err := e.AnalyzeFrame(nil, 7)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, uint32(7), rec.FrameIndex)
	assert.Empty(t, rec.BlockVariance)

	rec, err = e.AnalyzeFrame(NewGrid(0, 0), 8)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, rec.Variance)
}

func TestAnalyzeFrame_TwoLevelEntropy(t *testing.T) {
	// Half the samples at 0 and half at 1 is exactly one bit of entropy.
	g := NewGrid(8, 8)
	for i := range g.Pix {
		if i%2 == 0 {
			g.Pix[i] = 1
		}
	}

	e := NewExtractor()
	rec, err := e.AnalyzeFrame(g, 0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, rec.Entropy, 1e-12)
	assert.InDelta(t, 0.25, rec.Variance, 1e-12)
}

func TestAnalyzeFrame_ClippedEdges(t *testing.T) {
	// 9x8 grid: a full 8x8 tile plus a clipped 1-wide column.
	g := NewGrid(9, 8)
	r := rand.New(rand.NewSource(1))
	for i := range g.Pix {
		g.Pix[i] = r.Float64()
	}

	e := NewExtractor()
	rec, err := e.AnalyzeFrame(g, 0)
	require.NoError(t, err)

	require.Len(t, rec.BlockVariance, 2)
	require.Len(t, rec.BlockEnergy, 2)
	for i := range rec.BlockEnergy {
		assert.False(t, math.IsNaN(rec.BlockEnergy[i]), "block %d energy is NaN", i)
		assert.GreaterOrEqual(t, rec.BlockVariance[i], 0.0)
	}
}

func TestAnalyzeFrame_ParallelMatchesSerial(t *testing.T) {
	g := NewGrid(160, 120)
	r := rand.New(rand.NewSource(42))
	for i := range g.Pix {
		g.Pix[i] = r.Float64()
	}

	serial := NewExtractor()
	parallel := NewExtractor()
	parallel.Parallelism = 4

	a, err := serial.AnalyzeFrame(g, 5)
	require.NoError(t, err)
	b, err := parallel.AnalyzeFrame(g, 5)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("parallel analysis diverged from serial (-serial +parallel):\n%s", diff)
	}
}

func TestAnalyzeFrame_ParallelismAboveRowCount(t *testing.T) {
	g := NewGrid(32, 8)
	for i := range g.Pix {
		g.Pix[i] = float64(i%7) / 7
	}

	e := NewExtractor()
	e.Parallelism = 16

	rec, err := e.AnalyzeFrame(g, 0)
	require.NoError(t, err)
	assert.Len(t, rec.BlockVariance, 4)
}

func TestRecord_AggregateVariance(t *testing.T) {
	rec := Record{BlockVariance: []float64{1, 2, 3}}
	assert.InDelta(t, 2.0, rec.AggregateVariance(), 1e-12)
	assert.Zero(t, Record{}.AggregateVariance())
}

func BenchmarkAnalyzeFrame480p(b *testing.B) {
	g := NewGrid(640, 480)
	r := rand.New(rand.NewSource(7))
	for i := range g.Pix {
		g.Pix[i] = r.Float64()
	}
	e := NewExtractor()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.AnalyzeFrame(g, uint32(i)); err != nil {
			b.Fatal(err)
		}
	}
}
