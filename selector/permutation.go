// Package selector implements the deterministic block selection core of the
// watermarking pipeline: a seeded permutation over a stream's block grid and
// a pure per-block perturbation function.
//
// Everything in this package is a pure function of its inputs. Equal seeds
// and geometry produce bit-identical results in every process on every
// platform, which is what lets an embedder and a detector that never
// communicate agree on where the signal lives.
//
// Example:
//
//	state, err := selector.NewState(12345, 1920, 1080)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	first := state.Permutation[0]
//	x, y := state.BlockOrigin(first)
//	fmt.Println(x, y, selector.Perturbation(12345, first, 0))
package selector

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// keyContext separates this keystream from any other use of the same seed
// material. Changing it changes every permutation.
const keyContext = "phantomframe/selector/v1"

// Permutation returns the visit order of a stream's blocks for the given
// seed: a permutation of [0, totalBlocks) produced by a single Fisher-Yates
// pass over the identity sequence, driven by a ChaCha20 keystream. The RFC
// 8439 stream cipher gives the same bytes everywhere, so the permutation is
// reproducible across processes and platforms. Returns nil when totalBlocks
// is not positive.
func Permutation(seed uint32, totalBlocks int) []uint32 {
	if totalBlocks <= 0 {
		return nil
	}

	perm := make([]uint32, totalBlocks)
	for i := range perm {
		perm[i] = uint32(i)
	}

	ks := newKeystream(seed)
	for i := totalBlocks - 1; i > 0; i-- {
		j := ks.uniform(uint32(i) + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// keystreamChunk is how many keystream bytes are generated per refill.
const keystreamChunk = 256

// keystream yields 32-bit words from a seeded ChaCha20 stream.
type keystream struct {
	cipher *chacha20.Cipher
	buf    [keystreamChunk]byte
	pos    int
}

func newKeystream(seed uint32) *keystream {
	key := streamKey(seed)
	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce lengths are fixed at compile time.
		panic(err)
	}
	return &keystream{cipher: cipher, pos: keystreamChunk}
}

// streamKey expands a 32-bit seed into a ChaCha20 key by hashing it together
// with the package context string.
func streamKey(seed uint32) [32]byte {
	var material [len(keyContext) + 4]byte
	copy(material[:], keyContext)
	binary.LittleEndian.PutUint32(material[len(keyContext):], seed)
	return blake2b.Sum256(material[:])
}

func (ks *keystream) next() uint32 {
	if ks.pos == len(ks.buf) {
		// The cipher XORs into the buffer, so it must be zeroed to read
		// raw keystream bytes.
		for i := range ks.buf {
			ks.buf[i] = 0
		}
		ks.cipher.XORKeyStream(ks.buf[:], ks.buf[:])
		ks.pos = 0
	}
	v := binary.LittleEndian.Uint32(ks.buf[ks.pos : ks.pos+4])
	ks.pos += 4
	return v
}

// uniform returns a uniformly distributed value in [0, n). Words from the
// biased tail of the 32-bit range are rejected and redrawn so every residue
// keeps equal probability.
func (ks *keystream) uniform(n uint32) uint32 {
	tail := uint32((1 << 32) % uint64(n))
	for {
		v := ks.next()
		if v <= ^uint32(0)-tail {
			return v % n
		}
	}
}
