// Package blssig wraps the BLS12-381 signature scheme used to authenticate
// sync committee attestations: public keys live in G1, signatures in G2,
// aggregation is subset-sum over participation bits. It is a thin opaque
// wrapper over supranational/blst (the real dependency prysm and
// go-ethereum both use for the same scheme) — never a hand-rolled curve
// implementation.
package blssig

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// dst is the domain separation tag the Ethereum consensus spec mandates for
// BLS12-381 G2 (minimal-pubkey-size) signatures.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// ErrInvalidKey is returned when a compressed public key fails to decode or
// is not a valid group element.
var ErrInvalidKey = errors.New("blssig: invalid public key")

// ErrInvalidSignature is returned when a compressed signature fails to
// decode or is not a valid group element.
var ErrInvalidSignature = errors.New("blssig: invalid signature")

// ErrNoParticipants is returned by AggregatePublicKeys when the
// participation bitvector selects no keys.
var ErrNoParticipants = errors.New("blssig: no participating keys")

// PublicKey is a validated BLS12-381 G1 point.
type PublicKey struct{ p *blst.P1Affine }

// Signature is a validated BLS12-381 G2 point.
type Signature struct{ s *blst.P2Affine }

// ParsePublicKey decodes a 48-byte compressed G1 public key.
func ParsePublicKey(raw []byte) (PublicKey, error) {
	p := new(blst.P1Affine).Uncompress(raw)
	if p == nil || !p.KeyValidate() {
		return PublicKey{}, ErrInvalidKey
	}
	return PublicKey{p: p}, nil
}

// ParseSignature decodes a 96-byte compressed G2 signature.
func ParseSignature(raw []byte) (Signature, error) {
	s := new(blst.P2Affine).Uncompress(raw)
	if s == nil || !s.SigValidate(true) {
		return Signature{}, ErrInvalidSignature
	}
	return Signature{s: s}, nil
}

// AggregatePublicKeys sums the public keys selected by bits (bits[i]==true
// includes keys[i]) into a single G1 point, as required to check a sync
// committee's aggregate signature against only its participating members.
func AggregatePublicKeys(keys []PublicKey, bits []bool) (PublicKey, error) {
	var agg blst.P1Aggregate
	used := 0
	for i, k := range keys {
		if i < len(bits) && !bits[i] {
			continue
		}
		agg.Add(k.p, false)
		used++
	}
	if used == 0 {
		return PublicKey{}, ErrNoParticipants
	}
	return PublicKey{p: agg.ToAffine()}, nil
}

// Verify reports whether sig is a valid BLS signature by pub over msg under
// the Ethereum consensus domain separation tag.
func Verify(pub PublicKey, msg []byte, sig Signature) bool {
	return sig.s.Verify(true, pub.p, false, msg, dst)
}
