package phantomframe

import (
	"errors"

	"github.com/makalin/phantomframe/features"
)

var (
	// ErrInvalidParameters indicates a rejected stream parameter set.
	ErrInvalidParameters = errors.New("invalid stream parameters")

	// ErrInvalidDimensions indicates rejected frame dimensions.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrInsufficientFrames indicates a source that yielded no frames to
	// analyze.
	ErrInsufficientFrames = errors.New("insufficient frames")

	// ErrSealKeyMissing indicates a sealed payload export without a
	// passphrase.
	ErrSealKeyMissing = errors.New("payload sealing requires a key")

	// ErrEmptyInput indicates an empty frame grid.
	ErrEmptyInput = features.ErrEmptyInput
)
