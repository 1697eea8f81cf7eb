package selector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makalin/phantomframe/limits"
)

func TestPermutation_Bijection(t *testing.T) {
	tests := []struct {
		name string
		seed uint32
		n    int
	}{
		{"single block", 1, 1},
		{"two blocks", 7, 2},
		{"odd count", 99, 17},
		{"hd grid row", 12345, 240},
		{"large grid", 12345, 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm := Permutation(tt.seed, tt.n)
			require.Len(t, perm, tt.n)

			seen := make([]bool, tt.n)
			for _, v := range perm {
				require.Less(t, int(v), tt.n, "index out of range")
				require.False(t, seen[v], "index %d appears twice", v)
				seen[v] = true
			}
		})
	}
}

func TestPermutation_Reproducible(t *testing.T) {
	a := Permutation(12345, 1000)
	b := Permutation(12345, 1000)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different permutations (-first +second):\n%s", diff)
	}
}

func TestPermutation_SeedSensitivity(t *testing.T) {
	a := Permutation(12345, 1000)
	b := Permutation(12346, 1000)
	assert.NotEqual(t, a, b, "distinct seeds should shuffle differently")
}

func TestPermutation_NonPositiveCount(t *testing.T) {
	assert.Empty(t, Permutation(1, 0))
	assert.Empty(t, Permutation(1, -5))
}

func TestPerturbation_Deterministic(t *testing.T) {
	for block := uint32(0); block < 50; block++ {
		for frame := uint32(0); frame < 5; frame++ {
			first := Perturbation(42, block, frame)
			second := Perturbation(42, block, frame)
			require.Equal(t, first, second, "block %d frame %d", block, frame)
		}
	}
}

func TestPerturbation_RangeAndBalance(t *testing.T) {
	counts := map[int8]int{}
	const draws = 3000
	for i := uint32(0); i < draws; i++ {
		v := Perturbation(7, i, i%30)
		require.Contains(t, []int8{-1, 0, 1}, v)
		counts[v]++
	}

	// Expect roughly a third each. The bound is loose enough that only a
	// broken mixer trips it.
	for _, v := range []int8{-1, 0, 1} {
		assert.Greater(t, counts[v], draws/5, "value %d is badly underrepresented", v)
	}
}

func TestNewState_Geometry(t *testing.T) {
	state, err := NewState(12345, 1920, 1080)
	require.NoError(t, err)

	assert.Equal(t, uint32(240), state.BlocksPerRow)
	assert.Equal(t, uint32(32400), state.TotalBlocks)
	assert.Len(t, state.Permutation, 32400)
}

func TestNewState_ClippedEdges(t *testing.T) {
	state, err := NewState(1, 17, 9)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), state.BlocksPerRow)
	assert.Equal(t, uint32(6), state.TotalBlocks)
}

func TestNewState_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"zero width", 0, 1080},
		{"zero height", 1920, 0},
		{"oversized width", limits.MaxFrameDimension + 1, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := NewState(1, tt.width, tt.height)
			assert.Nil(t, state)
			assert.ErrorIs(t, err, limits.ErrDimensionOutOfRange)
		})
	}
}

func TestBlockOrigin(t *testing.T) {
	state, err := NewState(12345, 1920, 1080)
	require.NoError(t, err)

	tests := []struct {
		index uint32
		x, y  uint32
	}{
		{0, 0, 0},
		{1, 8, 0},
		{239, 1912, 0},
		{240, 0, 8},
		{32399, 1912, 1072},
	}

	for _, tt := range tests {
		x, y := state.BlockOrigin(tt.index)
		assert.Equal(t, tt.x, x, "index %d x", tt.index)
		assert.Equal(t, tt.y, y, "index %d y", tt.index)
	}
}

func TestBlockOrigin_AllInBounds(t *testing.T) {
	// Clipped edges on both axes: ceil(100/8) x ceil(60/8) blocks.
	state, err := NewState(9, 100, 60)
	require.NoError(t, err)
	require.Equal(t, uint32(13*8), state.TotalBlocks)

	for _, idx := range state.Permutation {
		x, y := state.BlockOrigin(idx)
		assert.Less(t, x, state.Width)
		assert.Less(t, y, state.Height)
	}
}

func BenchmarkPermutation1080p(b *testing.B) {
	total := int(limits.TotalBlocks(1920, 1080))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Permutation(12345, total)
	}
}

func BenchmarkPerturbation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Perturbation(12345, uint32(i), uint32(i)%30)
	}
}
