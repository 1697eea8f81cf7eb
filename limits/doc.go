// Package limits provides centralized parameter bounds and validation
// functions for the PhantomFrame watermarking pipeline. This package ensures
// consistent enforcement of stream parameters across all components.
//
// # Parameter Hierarchy
//
// The package defines the fixed geometry of the embedding scheme and the
// tunable ranges of per-stream parameters:
//
//   - BlockSize (8): the side of a coding block, the unit of embedding and
//     analysis. The scheduler emits one instruction per selected 8x8 block.
//
//   - PayloadBytes (16): the embedded identifier is always 128 bits,
//     conventionally rendered as 32 lowercase hexadecimal characters.
//
//   - MaxFrameDimension (16383): the largest accepted width or height. This
//     keeps every block coordinate representable in compact codec-side
//     structures.
//
//   - MinTemporalPeriod / MaxTemporalPeriod (1 / 3600): the range of the
//     pattern repetition interval in frames.
//
// # Validation Functions
//
// Each validation function reports range violations with the offending value:
//
//	if err := limits.ValidateDensity(params.BlockDensity); err != nil {
//	    // errors.Is(err, limits.ErrDensityOutOfRange)
//	}
//
// # Defaults
//
// DefaultBlockDensity (0.008), DefaultTemporalPeriod (30), DefaultMinFrames
// (10), DefaultMaxFrames (1000) and DefaultConfidenceThreshold (0.7) mirror
// the values the embedding and detection sides were tuned with; callers may
// override any of them per stream.
package limits
