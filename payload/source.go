package payload

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// RandomSource draws fresh scheduling seeds and payloads from an entropy
// reader. Each consumer owns its own instance; there is no process-wide
// generator. Injecting a deterministic reader makes generation reproducible
// in tests.
type RandomSource struct {
	reader io.Reader
}

// NewRandomSource returns a source reading from r. A nil r selects the
// operating system entropy pool.
func NewRandomSource(r io.Reader) *RandomSource {
	if r == nil {
		r = rand.Reader
	}
	return &RandomSource{reader: r}
}

// NewSeed draws a fresh 32-bit scheduling seed.
func (s *RandomSource) NewSeed() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s.reader, buf[:]); err != nil {
		return 0, fmt.Errorf("failed to draw seed: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// NewPayload draws a fresh random payload.
func (s *RandomSource) NewPayload() (Payload, error) {
	var p Payload
	if _, err := io.ReadFull(s.reader, p[:]); err != nil {
		return Payload{}, fmt.Errorf("failed to draw payload: %w", err)
	}
	return p, nil
}
