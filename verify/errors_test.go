package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethlightclient/verifier/merkle"
	"github.com/ethlightclient/verifier/primitives"
	"github.com/ethlightclient/verifier/ssz"
	"github.com/ethlightclient/verifier/synccommittee"
)

func TestInvalidEncodingUnwrapsToSentinel(t *testing.T) {
	err := &InvalidEncoding{Path: "x", Reason: "bad"}
	require.ErrorIs(t, err, primitives.ErrInvalidEncoding)
	require.Contains(t, err.Error(), "x")
	require.Contains(t, err.Error(), "bad")
}

func TestUnknownTypeUnwrapsToSentinel(t *testing.T) {
	err := &UnknownType{Detail: "no such category"}
	require.ErrorIs(t, err, ssz.ErrUnknownType)
}

func TestProofInvalidUnwrapsToSentinel(t *testing.T) {
	err := &ProofInvalid{GIndex: merkle.GIndex(9)}
	require.ErrorIs(t, err, merkle.ErrProofInvalid)
	require.Contains(t, err.Error(), "9")
}

func TestSignatureInvalidUnwrapsToSentinel(t *testing.T) {
	err := &SignatureInvalid{}
	require.ErrorIs(t, err, synccommittee.ErrSignatureInvalid)
}

func TestNoTrustedCommitteeUnwrapsToSentinel(t *testing.T) {
	err := &NoTrustedCommittee{Period: 42}
	require.ErrorIs(t, err, synccommittee.ErrNoTrustedCommittee)
	require.Contains(t, err.Error(), "42")
}

func TestInsufficientParticipationUnwrapsToSentinel(t *testing.T) {
	err := &InsufficientParticipation{BitsSet: 10}
	require.ErrorIs(t, err, synccommittee.ErrInsufficientParticipation)
}

func TestProtocolViolationUnwrapsToSentinel(t *testing.T) {
	err := &ProtocolViolation{Detail: "mismatch"}
	require.ErrorIs(t, err, ErrProtocolViolation)
}

func TestIoErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &IoError{Detail: "write failed", Cause: cause}
	require.ErrorIs(t, err, cause)
}

func TestUnsupportedVersionReportsVersionBytes(t *testing.T) {
	err := &UnsupportedVersion{Version: [4]byte{2, 0, 0, 0}}
	require.Contains(t, err.Error(), "unsupported version")
}
