package payload

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"all zeros", "00000000000000000000000000000000"},
		{"all ones", "ffffffffffffffffffffffffffffffff"},
		{"mixed", "00112233445566778899aabbccddeeff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, p.String())
		})
	}
}

func TestParse_UppercaseNormalizes(t *testing.T) {
	p, err := Parse("00112233445566778899AABBCCDDEEFF")
	require.NoError(t, err)
	assert.Equal(t, "00112233445566778899aabbccddeeff", p.String())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrInvalidLength},
		{"too short", "00112233", ErrInvalidLength},
		{"too long", strings.Repeat("ab", Size+1), ErrInvalidLength},
		{"prefixed", "0x112233445566778899aabbccddeeff", ErrInvalidEncoding},
		{"non-hex characters", "zz112233445566778899aabbccddeeff", ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			assert.True(t, p.IsZero(), "failed parse should return a zero payload")
		})
	}
}

func TestFromText_Deterministic(t *testing.T) {
	a := FromText("studio-7/creator-42")
	b := FromText("studio-7/creator-42")
	c := FromText("studio-7/creator-43")

	assert.Equal(t, a, b, "equal text must derive equal payloads")
	assert.NotEqual(t, a, c, "different text should derive different payloads")
	assert.False(t, a.IsZero())
}

func TestBytes_ReturnsCopy(t *testing.T) {
	p := FromText("copy semantics")
	b := p.Bytes()
	require.Len(t, b, Size)

	b[0] ^= 0xff
	assert.NotEqual(t, b[0], p[0], "mutating the slice must not reach the payload")
}

func TestRandomSource_DeterministicReader(t *testing.T) {
	data := []byte{
		0x78, 0x56, 0x34, 0x12,
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
		0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
	}
	src := NewRandomSource(bytes.NewReader(data))

	seed, err := src.NewSeed()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), seed, "seed bytes are read little-endian")

	p, err := src.NewPayload()
	require.NoError(t, err)
	assert.Equal(t, "00112233445566778899aabbccddeeff", p.String())
}

func TestRandomSource_ExhaustedReader(t *testing.T) {
	src := NewRandomSource(bytes.NewReader([]byte{0x01, 0x02}))

	_, err := src.NewSeed()
	assert.Error(t, err, "short reads must surface as errors")

	_, err = src.NewPayload()
	assert.Error(t, err)
}

func TestRandomSource_DefaultEntropy(t *testing.T) {
	src := NewRandomSource(nil)

	a, err := src.NewPayload()
	require.NoError(t, err)
	b, err := src.NewPayload()
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "consecutive draws should differ")
}
