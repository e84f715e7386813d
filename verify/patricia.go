package verify

// PatriciaVerifier is the opaque boundary to Merkle-Patricia-Trie inclusion
// checking, assumed available per spec §1/§9's Non-goals. It is a narrow
// interface rather than a vendored trie implementation — an embedder
// typically supplies one backed by go-ethereum's trie package, the same way
// blssig wraps an opaque BLS primitive rather than reimplementing the curve.
type PatriciaVerifier interface {
	// VerifyBranch checks that branch proves the inclusion of value at key
	// within a trie committing to root, returning ProtocolViolation-style
	// failure as a plain error (callers wrap it per their own taxonomy).
	VerifyBranch(root [32]byte, key []byte, branch [][]byte, value []byte) error
}
