// Package limits provides centralized parameter bounds for the watermarking
// pipeline. This ensures consistent validation across different components of
// the system.
package limits

import (
	"errors"
	"fmt"
)

const (
	// BlockSize is the side length in pixels of a coding block, the unit of
	// embedding and analysis. Matches the 8x8 macroblock subdivision of the
	// codecs the embedding instructions are handed to.
	BlockSize = 8

	// PayloadBytes is the size of the embedded identifier (128 bits).
	PayloadBytes = 16

	// PayloadHexLen is the length of a payload rendered as lowercase
	// hexadecimal with no prefix.
	PayloadHexLen = PayloadBytes * 2

	// MaxFrameDimension is the largest width or height accepted for a stream.
	// Matches the VP8 frame size ceiling so block coordinates always fit in a
	// uint16-addressable picture.
	MaxFrameDimension = 16383

	// MinTemporalPeriod is the shortest allowed pattern repetition interval.
	MinTemporalPeriod = 1

	// MaxTemporalPeriod caps the repetition interval at one minute of 60fps
	// footage. Longer periods need more frames than any detection run collects.
	MaxTemporalPeriod = 3600

	// DefaultBlockDensity is the fraction of blocks carrying signal over one
	// full temporal period. 0.8% keeps the perturbation imperceptible on
	// typical content.
	DefaultBlockDensity = 0.008

	// DefaultTemporalPeriod is the default pattern repetition interval at
	// common frame rates (one second at 30fps).
	DefaultTemporalPeriod = 30

	// DefaultMinFrames is the fewest frame records a detector will analyze.
	// Autocorrelation over shorter sequences is dominated by noise.
	DefaultMinFrames = 10

	// DefaultMaxFrames bounds how many frames an analysis run collects before
	// forcing a decision.
	DefaultMaxFrames = 1000

	// DefaultConfidenceThreshold is the minimum detector confidence required
	// to report a watermark as present.
	DefaultConfidenceThreshold = 0.7
)

var (
	// ErrDensityOutOfRange indicates a block density outside (0, 1].
	ErrDensityOutOfRange = errors.New("block density out of range")

	// ErrPeriodOutOfRange indicates a temporal period outside the allowed bounds.
	ErrPeriodOutOfRange = errors.New("temporal period out of range")

	// ErrDimensionOutOfRange indicates a zero or oversized frame dimension.
	ErrDimensionOutOfRange = errors.New("frame dimension out of range")

	// ErrConfidenceOutOfRange indicates a confidence threshold outside [0, 1].
	ErrConfidenceOutOfRange = errors.New("confidence threshold out of range")

	// ErrFrameCountOutOfRange indicates an unusable frame-count bound.
	ErrFrameCountOutOfRange = errors.New("frame count out of range")
)

// ValidateDensity validates a block density against the half-open interval
// (0, 1]. Returns an error carrying the offending value for context.
func ValidateDensity(density float64) error {
	if density <= 0 || density > 1 {
		return fmt.Errorf("%w: %v not in (0, 1]", ErrDensityOutOfRange, density)
	}
	return nil
}

// ValidatePeriod validates a temporal period against
// [MinTemporalPeriod, MaxTemporalPeriod].
func ValidatePeriod(period uint32) error {
	if period < MinTemporalPeriod || period > MaxTemporalPeriod {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPeriodOutOfRange, period, MinTemporalPeriod, MaxTemporalPeriod)
	}
	return nil
}

// ValidateDimensions validates stream dimensions. Both width and height must
// be nonzero and no larger than MaxFrameDimension.
func ValidateDimensions(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d has a zero side", ErrDimensionOutOfRange, width, height)
	}
	if width > MaxFrameDimension || height > MaxFrameDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionOutOfRange, width, height, MaxFrameDimension)
	}
	return nil
}

// ValidateConfidence validates a confidence threshold against [0, 1].
func ValidateConfidence(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: %v not in [0, 1]", ErrConfidenceOutOfRange, threshold)
	}
	return nil
}

// ValidateMinFrames validates the minimum number of frame records a
// detection run will decide on.
func ValidateMinFrames(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: minimum %d is below 1", ErrFrameCountOutOfRange, n)
	}
	return nil
}

// ValidateFrameWindow validates a record collection window: the minimum
// must be at least 1 and the maximum at least the minimum.
func ValidateFrameWindow(minFrames, maxFrames int) error {
	if err := ValidateMinFrames(minFrames); err != nil {
		return err
	}
	if maxFrames < minFrames {
		return fmt.Errorf("%w: maximum %d is below minimum %d", ErrFrameCountOutOfRange, maxFrames, minFrames)
	}
	return nil
}

// BlocksPerRow returns the number of 8x8 blocks per row for a frame width,
// counting the clipped partial block at the right edge.
func BlocksPerRow(width uint32) uint32 {
	return (width + BlockSize - 1) / BlockSize
}

// BlockRows returns the number of block rows for a frame height, counting the
// clipped partial row at the bottom edge.
func BlockRows(height uint32) uint32 {
	return (height + BlockSize - 1) / BlockSize
}

// TotalBlocks returns the total number of 8x8 blocks for a frame, counting
// clipped partial blocks at the right and bottom edges.
func TotalBlocks(width, height uint32) uint32 {
	return BlocksPerRow(width) * BlockRows(height)
}
