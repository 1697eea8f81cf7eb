package phantomframe

import (
	"fmt"

	"github.com/makalin/phantomframe/embed"
	"github.com/makalin/phantomframe/seal"
)

// Encoder plans watermark embedding for one stream. It produces
// instructions, not pixels: the codec integration consuming them decides
// how each block perturbation is realized.
type Encoder struct {
	scheduler *embed.Scheduler
}

// NewEncoder creates an encoder for the given stream parameters.
func NewEncoder(params embed.StreamParameters) (*Encoder, error) {
	s, err := embed.NewScheduler(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return &Encoder{scheduler: s}, nil
}

// Initialize sets the stream geometry. It must be called before any frame
// is planned and may be called again when the stream is rescaled.
func (e *Encoder) Initialize(width, height uint32) error {
	if err := e.scheduler.Initialize(width, height); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	return nil
}

// InstructionsForFrame plans the block perturbations for one frame.
// Planning the same frame twice under the same parameters yields identical
// instructions; before Initialize the plan is empty.
func (e *Encoder) InstructionsForFrame(frameIndex uint32) []embed.Instruction {
	return e.scheduler.InstructionsForFrame(frameIndex)
}

// UpdateParameters replaces the stream parameters wholesale. Frames
// planned after the call follow the new schedule.
func (e *Encoder) UpdateParameters(params embed.StreamParameters) error {
	if err := e.scheduler.Configure(params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return nil
}

// Parameters returns the current stream parameters.
func (e *Encoder) Parameters() embed.StreamParameters {
	return e.scheduler.Parameters()
}

// Stats returns current scheduling statistics.
func (e *Encoder) Stats() embed.Stats {
	return e.scheduler.Stats()
}

// SealedPayload exports the payload for storage or reporting. With
// EncryptPayload set it is sealed under the configured passphrase;
// otherwise the plain payload bytes are returned. Scheduling is
// unaffected either way.
func (e *Encoder) SealedPayload() ([]byte, error) {
	params := e.scheduler.Parameters()
	if !params.EncryptPayload {
		return params.Payload.Bytes(), nil
	}
	if params.EncryptionKey == "" {
		return nil, ErrSealKeyMissing
	}

	sealed, err := seal.Seal(params.Payload, seal.DeriveKey(params.EncryptionKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to seal payload: %w", err)
	}
	return sealed, nil
}
