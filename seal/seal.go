// Package seal protects a payload for export outside the process.
//
// Scheduling and detection always work on the plain payload; sealing is
// for payloads that leave the pipeline, such as reports or CLI output.
// The construction is a random-nonce NaCl secretbox under a
// BLAKE2b-derived key, so a sealed payload is confidential and
// tamper-evident.
package seal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/makalin/phantomframe/payload"
)

// nonceSize is the secretbox nonce length.
const nonceSize = 24

// SealedSize is the exact length of a sealed payload: nonce, ciphertext,
// authentication tag.
const SealedSize = nonceSize + payload.Size + secretbox.Overhead

var (
	// ErrInvalidSealedLength indicates input that cannot be a sealed payload.
	ErrInvalidSealedLength = errors.New("invalid sealed payload length")

	// ErrOpenFailed indicates a wrong key or tampered ciphertext.
	ErrOpenFailed = errors.New("payload authentication failed")
)

// DeriveKey maps a passphrase onto a secretbox key.
func DeriveKey(passphrase string) [32]byte {
	return blake2b.Sum256([]byte(passphrase))
}

// Seal encrypts and authenticates a payload. A fresh nonce is drawn from
// the random source and prepended, so sealing the same payload twice
// yields different bytes. A nil source uses crypto/rand.
func Seal(p payload.Payload, key [32]byte, random io.Reader) ([]byte, error) {
	if random == nil {
		random = rand.Reader
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(random, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to draw nonce: %w", err)
	}

	out := make([]byte, nonceSize, SealedSize)
	copy(out, nonce[:])
	return secretbox.Seal(out, p[:], &nonce, &key), nil
}

// Open authenticates and decrypts a sealed payload.
func Open(sealed []byte, key [32]byte) (payload.Payload, error) {
	var p payload.Payload
	if len(sealed) != SealedSize {
		return p, fmt.Errorf("%w: got %d, want %d", ErrInvalidSealedLength, len(sealed), SealedSize)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &key)
	if !ok {
		return p, ErrOpenFailed
	}

	copy(p[:], plain)
	return p, nil
}
