// Package verify implements the request-envelope dispatch and header-proof
// evaluation that spec §4.6 calls "verification glue": it applies any
// sync_data updates to the trust state, then checks the selected proof
// against the data via the merkle/synccommittee packages, surfacing the §7
// error taxonomy as typed errors.
package verify

import (
	"errors"
	"fmt"

	"github.com/ethlightclient/verifier/merkle"
	"github.com/ethlightclient/verifier/primitives"
	"github.com/ethlightclient/verifier/ssz"
	"github.com/ethlightclient/verifier/synccommittee"
)

// InvalidEncoding wraps a malformed-bytes decode failure (§7). Never
// recoverable by retrying the same input.
type InvalidEncoding struct {
	Path   string
	Reason string
}

func (e *InvalidEncoding) Error() string {
	return fmt.Sprintf("invalid encoding at %s: %s", e.Path, e.Reason)
}

func (e *InvalidEncoding) Unwrap() error { return primitives.ErrInvalidEncoding }

// UnknownType wraps a schema-registry miss (§7): a programmer or version
// error, never a property of untrusted input alone.
type UnknownType struct {
	Detail string
}

func (e *UnknownType) Error() string { return "unknown type: " + e.Detail }
func (e *UnknownType) Unwrap() error  { return ssz.ErrUnknownType }

// ProofInvalid wraps a Merkle proof reconstruction failure (§7), naming the
// offending generalized index.
type ProofInvalid struct {
	GIndex merkle.GIndex
}

func (e *ProofInvalid) Error() string {
	return fmt.Sprintf("proof invalid: gindex %d", e.GIndex)
}
func (e *ProofInvalid) Unwrap() error { return merkle.ErrProofInvalid }

// SignatureInvalid wraps a failed BLS aggregate signature check (§7).
type SignatureInvalid struct{}

func (e *SignatureInvalid) Error() string { return "signature invalid" }
func (e *SignatureInvalid) Unwrap() error { return synccommittee.ErrSignatureInvalid }

// NoTrustedCommittee wraps the sync engine's "bridging update needed"
// failure (§7), naming the untrusted period.
type NoTrustedCommittee struct {
	Period uint64
}

func (e *NoTrustedCommittee) Error() string {
	return fmt.Sprintf("no trusted committee for period %d", e.Period)
}
func (e *NoTrustedCommittee) Unwrap() error { return synccommittee.ErrNoTrustedCommittee }

// InsufficientParticipation wraps a sub-2/3 sync-aggregate rejection (§7).
type InsufficientParticipation struct {
	BitsSet int
}

func (e *InsufficientParticipation) Error() string {
	return fmt.Sprintf("insufficient participation: %d bits set", e.BitsSet)
}
func (e *InsufficientParticipation) Unwrap() error {
	return synccommittee.ErrInsufficientParticipation
}

// ProtocolViolation reports a structural inconsistency between a proof and
// the data it claims to authenticate (e.g. a block-number mismatch) that is
// not itself a decode or Merkle failure.
type ProtocolViolation struct {
	Detail string
}

func (e *ProtocolViolation) Error() string { return "protocol violation: " + e.Detail }

// ErrProtocolViolation is the sentinel every ProtocolViolation wraps, for
// errors.Is checks that don't need the detail string.
var ErrProtocolViolation = errors.New("verify: protocol violation")

func (e *ProtocolViolation) Unwrap() error { return ErrProtocolViolation }

// Pending is not an error in the usual sense: it reports that the verifier
// needs externally fetched data (via FetchFunc) before it can decide,
// carrying the cache keys the caller should resolve and retry with.
type Pending struct {
	Requests []string
}

func (e *Pending) Error() string {
	return fmt.Sprintf("pending: %d outstanding request(s)", len(e.Requests))
}

// IoError wraps a failure surfaced from the storage plugin or fetch
// callback; treated as fatal for the current verification (§7).
type IoError struct {
	Detail string
	Cause  error
}

func (e *IoError) Error() string { return "io error: " + e.Detail + ": " + e.Cause.Error() }
func (e *IoError) Unwrap() error { return e.Cause }

// UnsupportedVersion is returned when the request envelope's 4-byte version
// names a domain or major version this verifier does not implement (§6).
type UnsupportedVersion struct {
	Version [4]byte
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported version %#v", e.Version)
}
