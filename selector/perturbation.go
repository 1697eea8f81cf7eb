package selector

// Perturbation returns the additive parameter adjustment for one block on
// one frame: -1, 0, or +1. It is a pure function of (seed, blockIndex,
// frameIndex); equal inputs yield equal outputs on every platform, and no
// state is consulted or updated.
func Perturbation(seed, blockIndex, frameIndex uint32) int8 {
	x := uint64(seed)<<32 | uint64(blockIndex)
	x ^= uint64(frameIndex) * 0x9e3779b97f4a7c15
	switch mix64(x) % 3 {
	case 0:
		return -1
	case 1:
		return 0
	default:
		return 1
	}
}

// mix64 is the SplitMix64 finalizer, a full-avalanche 64-bit mixer: every
// input bit affects every output bit, so neighboring blocks and frames get
// uncorrelated draws.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
