package synccommittee

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethlightclient/verifier/storage"
)

func TestSaveLoadTrustStateRoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	ts := NewTrustState(64, 8)
	ts.blocks = append(ts.blocks, TrustedBlock{Root: [32]byte{1}, Period: 3, Slot: 100})
	ts.committees[3] = CommitteeRecord{
		Committee:     SyncCommitteeKeys{Pubkeys: [][]byte{{1, 2, 3}}, AggregatePubkey: []byte{9}},
		Participation: 400,
	}

	require.NoError(t, SaveTrustState(mem, 0, ts))

	loaded, err := LoadTrustState(mem, 0)
	require.NoError(t, err)
	require.Equal(t, ts.blockRingCapacity, loaded.blockRingCapacity)
	require.Equal(t, ts.committeeWindow, loaded.committeeWindow)
	require.Equal(t, ts.blocks, loaded.blocks)
	require.Equal(t, ts.committees, loaded.committees)
}

func TestLoadTrustStateMissingReturnsNotFound(t *testing.T) {
	mem := storage.NewMemory()
	_, err := LoadTrustState(mem, 0)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
