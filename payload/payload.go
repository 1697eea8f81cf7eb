// Package payload defines the 128-bit identifier embedded into a video
// stream by the scheduler and recovered by the detectors.
//
// A payload renders as exactly 32 lowercase hexadecimal characters with no
// prefix. Payloads can be parsed from that form, derived deterministically
// from an identifier string, or drawn fresh from a RandomSource.
//
// Example:
//
//	p, err := payload.Parse("00112233445566778899aabbccddeeff")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.String())
package payload

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/makalin/phantomframe/limits"
)

// Size is the payload length in bytes.
const Size = limits.PayloadBytes

// Payload is a fixed 128-bit watermark payload.
type Payload [Size]byte

var (
	// ErrInvalidLength indicates a hex string that is not exactly
	// limits.PayloadHexLen characters long.
	ErrInvalidLength = errors.New("payload hex has wrong length")

	// ErrInvalidEncoding indicates characters outside the hexadecimal alphabet.
	ErrInvalidEncoding = errors.New("payload is not valid hexadecimal")
)

// Parse parses a payload from its 32-character hexadecimal representation.
// Both digit cases are accepted; no prefix is. Rendering back with String
// always yields lowercase.
func Parse(s string) (Payload, error) {
	var p Payload
	if len(s) != limits.PayloadHexLen {
		return p, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidLength, len(s), limits.PayloadHexLen)
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	copy(p[:], data)
	return p, nil
}

// FromText derives a payload from an arbitrary identifier string, such as a
// creator or session name. Equal strings map to equal payloads on every
// platform.
func FromText(text string) Payload {
	return FromDigest([]byte(text))
}

// FromDigest derives a payload from raw material as a BLAKE2b-256 digest
// truncated to the payload size. The mapping is pure and collision-resistant
// up to the truncated width.
func FromDigest(material []byte) Payload {
	var p Payload
	sum := blake2b.Sum256(material)
	copy(p[:], sum[:Size])
	return p
}

// String returns the payload as 32 lowercase hexadecimal characters with no
// prefix.
func (p Payload) String() string {
	return hex.EncodeToString(p[:])
}

// Bytes returns the payload as a freshly allocated byte slice.
func (p Payload) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, p[:])
	return b
}

// IsZero reports whether every payload byte is zero.
func (p Payload) IsZero() bool {
	return p == Payload{}
}
