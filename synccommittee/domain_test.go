package synccommittee

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeDomainEndsWithSyncCommitteeTag(t *testing.T) {
	domain := ComputeDomain([4]byte{0x04, 0, 0, 0}, [32]byte{9})
	require.Equal(t, DomainSyncCommitteeTag[:], domain[28:])
}

func TestComputeDomainDependsOnForkVersion(t *testing.T) {
	root := [32]byte{1, 2, 3}
	d1 := ComputeDomain([4]byte{0x04, 0, 0, 0}, root)
	d2 := ComputeDomain([4]byte{0x05, 0, 0, 0}, root)
	require.NotEqual(t, d1, d2)
}

func TestComputeSigningRootDeterministic(t *testing.T) {
	header := [32]byte{7}
	domain := [32]byte{8}
	require.Equal(t, ComputeSigningRoot(header, domain), ComputeSigningRoot(header, domain))
}
