// Package features turns raw frames into the compact per-block and
// per-frame measurements the detection pipeline consumes.
//
// A frame arrives as a Grid of normalized samples and leaves as a Record:
// one variance and one transform-domain energy value per 8x8 block, plus
// whole-frame entropy and variance. Records are small and self-contained,
// so a detection run can hold hundreds of them without holding any frame
// data.
package features

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/makalin/phantomframe/limits"
)

// Record holds the features extracted from one frame. BlockVariance and
// BlockEnergy run row-major across the block grid.
type Record struct {
	FrameIndex    uint32
	BlockVariance []float64
	BlockEnergy   []float64
	Entropy       float64
	Variance      float64
}

// AggregateVariance returns the mean per-block variance, the scalar the
// periodicity detector tracks across frames. Zero for a record with no
// blocks.
func (r Record) AggregateVariance() float64 {
	if len(r.BlockVariance) == 0 {
		return 0
	}
	return stat.Mean(r.BlockVariance, nil)
}

// Extractor computes frame features over a fixed block grid.
type Extractor struct {
	// BlockSize is the tile side length in samples.
	BlockSize int

	// Parallelism is the number of goroutines splitting the tile rows of a
	// frame. Values below 2 select the serial path. Results are identical
	// either way.
	Parallelism int
}

// NewExtractor returns an extractor over the standard 8x8 block grid.
func NewExtractor() *Extractor {
	logrus.WithFields(logrus.Fields{
		"function":   "NewExtractor",
		"block_size": limits.BlockSize,
	}).Info("Creating feature extractor")

	return &Extractor{
		BlockSize:   limits.BlockSize,
		Parallelism: 1,
	}
}

// AnalyzeFrame computes the feature record for one frame. An empty grid
// yields a zeroed record and ErrEmptyInput so batch callers can skip the
// frame and continue.
func (e *Extractor) AnalyzeFrame(g *Grid, frameIndex uint32) (Record, error) {
	rec := Record{FrameIndex: frameIndex}
	if g.Empty() {
		logrus.WithFields(logrus.Fields{
			"function": "Extractor.AnalyzeFrame",
			"frame":    frameIndex,
		}).Warn("Skipping empty frame")
		return rec, ErrEmptyInput
	}

	bs := e.BlockSize
	if bs <= 0 {
		bs = limits.BlockSize
	}

	cols := (g.Width + bs - 1) / bs
	rows := (g.Height + bs - 1) / bs

	logrus.WithFields(logrus.Fields{
		"function":   "Extractor.AnalyzeFrame",
		"frame":      frameIndex,
		"width":      g.Width,
		"height":     g.Height,
		"block_rows": rows,
		"block_cols": cols,
	}).Debug("Analyzing frame")

	rec.BlockVariance = make([]float64, cols*rows)
	rec.BlockEnergy = make([]float64, cols*rows)

	workers := e.Parallelism
	if workers > rows {
		workers = rows
	}
	if workers < 2 {
		analyzeTileRows(g, bs, cols, 0, rows, rec.BlockVariance, rec.BlockEnergy)
	} else {
		var wg sync.WaitGroup
		per := (rows + workers - 1) / workers
		for lo := 0; lo < rows; lo += per {
			hi := lo + per
			if hi > rows {
				hi = rows
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				analyzeTileRows(g, bs, cols, lo, hi, rec.BlockVariance, rec.BlockEnergy)
			}(lo, hi)
		}
		wg.Wait()
	}

	rec.Entropy = histogramEntropy(g.Pix)
	rec.Variance = stat.PopVariance(g.Pix, nil)
	return rec, nil
}

// analyzeTileRows fills the feature slots for tile rows [loRow, hiRow).
// Each call owns its own scratch and writes disjoint slots, so concurrent
// calls over disjoint row ranges need no locking.
func analyzeTileRows(g *Grid, bs, cols, loRow, hiRow int, variance, energy []float64) {
	sc := newTileScratch(bs)
	for ty := loRow; ty < hiRow; ty++ {
		for tx := 0; tx < cols; tx++ {
			v, en := sc.analyze(g, tx*bs, ty*bs, bs)
			variance[ty*cols+tx] = v
			energy[ty*cols+tx] = en
		}
	}
}

// tileScratch carries per-goroutine working buffers and DCT plans so tile
// analysis allocates nothing per tile.
type tileScratch struct {
	tile   []float64
	coef   []float64
	colIn  []float64
	colOut []float64
	plans  map[int]*fourier.DCT
}

func newTileScratch(bs int) *tileScratch {
	return &tileScratch{
		tile:   make([]float64, 0, bs*bs),
		coef:   make([]float64, bs*bs),
		colIn:  make([]float64, bs),
		colOut: make([]float64, bs),
		plans:  make(map[int]*fourier.DCT),
	}
}

// analyze computes the variance and transform energy of the tile whose
// top-left corner is (x0, y0). Tiles at the right and bottom edges are
// clipped to the grid, not padded.
func (sc *tileScratch) analyze(g *Grid, x0, y0, bs int) (variance, energy float64) {
	w := g.Width - x0
	if w > bs {
		w = bs
	}
	h := g.Height - y0
	if h > bs {
		h = bs
	}

	sc.tile = sc.tile[:0]
	for y := y0; y < y0+h; y++ {
		start := y*g.Width + x0
		sc.tile = append(sc.tile, g.Pix[start:start+w]...)
	}

	return stat.PopVariance(sc.tile, nil), sc.dctEnergy(w, h)
}

// dctEnergy measures transform-domain detail as the mean magnitude of the
// AC coefficients of the tile's 2-D DCT-II, computed separably over rows
// then columns. Tiles too narrow for a transform fall back to the mean
// absolute deviation from the tile mean, which is likewise zero for flat
// content.
func (sc *tileScratch) dctEnergy(w, h int) float64 {
	tile := sc.tile
	if w < 2 || h < 2 {
		m := stat.Mean(tile, nil)
		var sum float64
		for _, v := range tile {
			sum += math.Abs(v - m)
		}
		return sum / float64(len(tile))
	}

	coef := sc.coef[:w*h]
	rowDCT := sc.plan(w)
	for y := 0; y < h; y++ {
		rowDCT.Transform(coef[y*w:(y+1)*w], tile[y*w:(y+1)*w])
	}

	colDCT := sc.plan(h)
	colIn := sc.colIn[:h]
	colOut := sc.colOut[:h]
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			colIn[y] = coef[y*w+x]
		}
		colDCT.Transform(colOut, colIn)
		for y := 0; y < h; y++ {
			coef[y*w+x] = colOut[y]
		}
	}

	// The first coefficient is the DC term and carries only the tile's
	// brightness; energy averages the rest.
	var sum float64
	for _, v := range coef[1:] {
		sum += math.Abs(v)
	}
	return sum / float64(len(coef)-1)
}

func (sc *tileScratch) plan(n int) *fourier.DCT {
	p, ok := sc.plans[n]
	if !ok {
		p = fourier.NewDCT(n)
		sc.plans[n] = p
	}
	return p
}

// histogramEntropy returns the Shannon entropy in bits of the 256-bin
// sample histogram, matching 8-bit luma quantization. A constant frame
// scores exactly zero.
func histogramEntropy(pix []float64) float64 {
	var hist [256]float64
	for _, v := range pix {
		bin := int(v * 255)
		if bin < 0 {
			bin = 0
		} else if bin > 255 {
			bin = 255
		}
		hist[bin]++
	}

	total := float64(len(pix))
	dist := make([]float64, 0, len(hist))
	for _, count := range hist {
		if count > 0 {
			dist = append(dist, count/total)
		}
	}
	return stat.Entropy(dist) / math.Ln2
}
