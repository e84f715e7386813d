package blssig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePublicKeyRejectsWrongLength(t *testing.T) {
	_, err := ParsePublicKey([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseSignatureRejectsWrongLength(t *testing.T) {
	_, err := ParseSignature([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestAggregatePublicKeysRejectsEmptyParticipation(t *testing.T) {
	_, err := AggregatePublicKeys(nil, nil)
	require.ErrorIs(t, err, ErrNoParticipants)
}
