package selector

import (
	"github.com/makalin/phantomframe/limits"
)

// State is the immutable selection snapshot for one stream geometry: the
// seed, the block grid derived from the frame dimensions, and the seeded
// permutation over that grid. A State is computed wholesale whenever the
// seed or the dimensions change; nothing is updated incrementally. Treat a
// constructed State as read-only.
type State struct {
	Seed         uint32
	Width        uint32
	Height       uint32
	BlocksPerRow uint32
	TotalBlocks  uint32
	Permutation  []uint32
}

// NewState validates the frame dimensions and computes the block grid and
// permutation for them. The block grid counts clipped partial blocks at the
// right and bottom edges.
func NewState(seed, width, height uint32) (*State, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	total := limits.TotalBlocks(width, height)
	return &State{
		Seed:         seed,
		Width:        width,
		Height:       height,
		BlocksPerRow: limits.BlocksPerRow(width),
		TotalBlocks:  total,
		Permutation:  Permutation(seed, int(total)),
	}, nil
}

// BlockOrigin converts a linear block index into the pixel coordinates of
// the block's top-left corner. Indices run row-major across the grid.
func (s *State) BlockOrigin(index uint32) (x, y uint32) {
	return (index % s.BlocksPerRow) * limits.BlockSize,
		(index / s.BlocksPerRow) * limits.BlockSize
}
