package features

import (
	"fmt"
)

// Grid is a rectangular sample grid in row-major order. Samples are float64
// in [0, 1]; GridFromLuma maps 8-bit luma onto that range.
type Grid struct {
	Width  int
	Height int
	Pix    []float64
}

// NewGrid allocates a zeroed grid. Nonpositive dimensions yield an empty
// grid, which analysis reports as ErrEmptyInput.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		return &Grid{}
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// GridFromLuma converts an 8-bit luma plane into a sample grid, mapping
// 0..255 onto [0, 1].
func GridFromLuma(luma []byte, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || len(luma) != width*height {
		return nil, fmt.Errorf("%w: %d luma bytes for %dx%d", ErrSampleCountMismatch, len(luma), width, height)
	}

	g := NewGrid(width, height)
	for i, v := range luma {
		g.Pix[i] = float64(v) / 255
	}
	return g, nil
}

// GridFromSamples wraps an existing sample slice as a grid. The grid takes
// ownership of the slice; the caller must not modify it afterwards.
func GridFromSamples(samples []float64, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || len(samples) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrSampleCountMismatch, len(samples), width, height)
	}
	return &Grid{Width: width, Height: height, Pix: samples}, nil
}

// At returns the sample at (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

// Set stores a sample at (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.Pix[y*g.Width+x] = v
}

// Empty reports whether the grid has no samples.
func (g *Grid) Empty() bool {
	return g == nil || len(g.Pix) == 0
}
