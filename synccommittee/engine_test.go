package synccommittee

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethlightclient/verifier/chainspec"
)

func TestHasSufficientParticipationThreshold(t *testing.T) {
	require.True(t, hasSufficientParticipation(342, 512))
	require.False(t, hasSufficientParticipation(341, 512))
}

func TestBootstrapRejectsWrongProof(t *testing.T) {
	spec := chainspec.Minimal()
	header := BeaconBlockHeader{Slot: 0, StateRoot: [32]byte{1}}
	committee := SyncCommitteeKeys{
		Pubkeys:         make([][]byte, 32),
		AggregatePubkey: make([]byte, 48),
	}
	for i := range committee.Pubkeys {
		committee.Pubkeys[i] = make([]byte, 48)
	}

	g, err := currentSyncCommitteeGIndex(spec.ForkAtSlot(header.Slot), spec.ChainID)
	require.NoError(t, err)

	badBranch := make([][32]byte, g.Depth())
	_, err = Bootstrap(spec, header, committee, badBranch)
	require.Error(t, err)
}

func TestIngestUpdateRequiresTrustedPredecessor(t *testing.T) {
	spec := chainspec.Minimal()
	ts := NewTrustState(64, 8)
	update := LightClientUpdate{SignatureSlot: 0}
	err := IngestUpdate(spec, ts, update)
	require.ErrorIs(t, err, ErrNoTrustedCommittee)
}

func TestIngestUpdateRejectsBadNextCommitteeBranch(t *testing.T) {
	spec := chainspec.Minimal()
	ts := NewTrustState(64, 8)

	committee := SyncCommitteeKeys{Pubkeys: make([][]byte, 32), AggregatePubkey: make([]byte, 48)}
	for i := range committee.Pubkeys {
		committee.Pubkeys[i] = make([]byte, 48)
	}
	ts.committees[0] = CommitteeRecord{Committee: committee, Participation: 32}

	update := LightClientUpdate{
		SignatureSlot: 0,
		AttestedHeader: LightClientHeader{
			Beacon: BeaconBlockHeader{Slot: 0},
		},
		NextSyncCommittee: committee,
	}

	err := IngestUpdate(spec, ts, update)
	require.Error(t, err)
}

func TestHasSufficientParticipationExact341Of512Fails(t *testing.T) {
	require.False(t, hasSufficientParticipation(341, 512))
}

func TestTrustStatePrunesOldestCommittee(t *testing.T) {
	ts := NewTrustState(64, 2)
	ts.committees[0] = CommitteeRecord{}
	ts.committees[1] = CommitteeRecord{}
	ts.pruneCommittees()
	require.Len(t, ts.committees, 2)

	ts.committees[2] = CommitteeRecord{}
	ts.pruneCommittees()
	require.Len(t, ts.committees, 2)
	_, hasOldest := ts.committees[0]
	require.False(t, hasOldest)
}

func TestTrustStatePrunesOldestBlock(t *testing.T) {
	ts := NewTrustState(2, 8)
	ts.blocks = []TrustedBlock{{Slot: 1}, {Slot: 2}, {Slot: 3}}
	ts.pruneBlocks()
	require.Len(t, ts.blocks, 2)
	require.Equal(t, uint64(2), ts.blocks[0].Slot)
}
