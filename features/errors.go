package features

import "errors"

var (
	// ErrEmptyInput indicates a nil or zero-sample grid. Batch analysis
	// skips such frames and continues rather than aborting the run.
	ErrEmptyInput = errors.New("empty frame input")

	// ErrSampleCountMismatch indicates a sample slice whose length does not
	// match the stated frame dimensions.
	ErrSampleCountMismatch = errors.New("sample count does not match dimensions")
)
