package merkle

import "crypto/sha256"

// zeroHashes[i] caches hash(0^32 || 0^32) composed i times: zeroHashes[0] is
// the all-zero chunk, zeroHashes[i] is the root of an all-zero subtree of
// depth i. Padding any sparse subtree is then a cache hit instead of a
// recomputation.
var zeroHashes = buildZeroHashes(64)

func buildZeroHashes(depth int) [][32]byte {
	out := make([][32]byte, depth+1)
	for i := 1; i <= depth; i++ {
		out[i] = hashPair(out[i-1], out[i-1])
	}
	return out
}

// zeroHashAt returns the root of an all-zero subtree of the given depth.
func zeroHashAt(depth int) [32]byte {
	if depth < len(zeroHashes) {
		return zeroHashes[depth]
	}
	h := zeroHashes[len(zeroHashes)-1]
	for i := len(zeroHashes) - 1; i < depth; i++ {
		h = hashPair(h, h)
	}
	return h
}

func hashPair(left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
