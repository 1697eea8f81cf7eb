package embed

import (
	"github.com/makalin/phantomframe/limits"
	"github.com/makalin/phantomframe/payload"
)

// StreamParameters configures the watermark carried by one stream. A
// parameter set is replaced wholesale, never field by field, so every
// schedule a reader observes was derived from one consistent set.
type StreamParameters struct {
	// Payload is the 128-bit identifier scheduled into the stream.
	Payload payload.Payload

	// Seed keys the block permutation and the per-block perturbation
	// directions. Streams with different seeds touch uncorrelated blocks.
	Seed uint32

	// BlockDensity is the fraction of the block grid carrying signal over
	// one full temporal period, in (0, 1].
	BlockDensity float64

	// TemporalPeriod is the frame count after which the block schedule
	// repeats.
	TemporalPeriod uint32

	// EncryptPayload seals the payload for export. Scheduling always works
	// on the plain payload; sealing only affects what leaves the process.
	EncryptPayload bool

	// EncryptionKey is the passphrase the sealed export derives its key
	// from. Ignored unless EncryptPayload is set.
	EncryptionKey string
}

// DefaultParameters returns a parameter set with the standard density and
// period. The payload and seed are zero; callers set their own before
// embedding anything traceable.
func DefaultParameters() StreamParameters {
	return StreamParameters{
		BlockDensity:   limits.DefaultBlockDensity,
		TemporalPeriod: limits.DefaultTemporalPeriod,
	}
}

// Validate reports the first out-of-range parameter. Parameters are never
// clamped or defaulted silently.
func (p StreamParameters) Validate() error {
	if err := limits.ValidateDensity(p.BlockDensity); err != nil {
		return err
	}
	return limits.ValidatePeriod(p.TemporalPeriod)
}
