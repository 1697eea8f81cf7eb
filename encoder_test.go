package phantomframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makalin/phantomframe/embed"
	"github.com/makalin/phantomframe/payload"
	"github.com/makalin/phantomframe/seal"
)

func encoderParams() embed.StreamParameters {
	p := embed.DefaultParameters()
	p.Payload = payload.FromText("stream under test")
	p.Seed = 12345
	return p
}

func TestNewEncoder_RejectsInvalidParameters(t *testing.T) {
	p := encoderParams()
	p.BlockDensity = 0

	_, err := NewEncoder(p)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestEncoder_PlanLifecycle(t *testing.T) {
	enc, err := NewEncoder(encoderParams())
	require.NoError(t, err)

	assert.Empty(t, enc.InstructionsForFrame(0), "no geometry, no plan")

	require.NoError(t, enc.Initialize(1920, 1080))

	ins := enc.InstructionsForFrame(0)
	assert.Len(t, ins, 8)

	stats := enc.Stats()
	assert.Equal(t, uint32(32400), stats.TotalBlocks)
	assert.Equal(t, uint64(1), stats.FramesPlanned)
}

func TestEncoder_InvalidDimensions(t *testing.T) {
	enc, err := NewEncoder(encoderParams())
	require.NoError(t, err)

	assert.ErrorIs(t, enc.Initialize(0, 1080), ErrInvalidDimensions)
	assert.ErrorIs(t, enc.Initialize(1920, 99999), ErrInvalidDimensions)
}

func TestEncoder_UpdateParameters(t *testing.T) {
	enc, err := NewEncoder(encoderParams())
	require.NoError(t, err)
	require.NoError(t, enc.Initialize(640, 480))

	p := encoderParams()
	p.BlockDensity = 0.5
	require.NoError(t, enc.UpdateParameters(p))
	assert.Len(t, enc.InstructionsForFrame(0), 80)

	bad := encoderParams()
	bad.TemporalPeriod = 0
	assert.ErrorIs(t, enc.UpdateParameters(bad), ErrInvalidParameters)
	assert.Len(t, enc.InstructionsForFrame(0), 80, "a rejected update must leave the schedule alone")
}

func TestEncoder_SealedPayloadPlain(t *testing.T) {
	p := encoderParams()
	enc, err := NewEncoder(p)
	require.NoError(t, err)

	plain, err := enc.SealedPayload()
	require.NoError(t, err)
	assert.Equal(t, p.Payload.Bytes(), plain, "sealing disabled exports the payload as-is")
}

func TestEncoder_SealedPayloadEncrypted(t *testing.T) {
	p := encoderParams()
	p.EncryptPayload = true
	p.EncryptionKey = "stream passphrase"

	enc, err := NewEncoder(p)
	require.NoError(t, err)

	sealed, err := enc.SealedPayload()
	require.NoError(t, err)
	require.Len(t, sealed, seal.SealedSize)

	opened, err := seal.Open(sealed, seal.DeriveKey(p.EncryptionKey))
	require.NoError(t, err)
	assert.Equal(t, p.Payload, opened)
}

func TestEncoder_SealedPayloadMissingKey(t *testing.T) {
	p := encoderParams()
	p.EncryptPayload = true

	enc, err := NewEncoder(p)
	require.NoError(t, err)

	_, err = enc.SealedPayload()
	assert.ErrorIs(t, err, ErrSealKeyMissing)
}
