package synccommittee

import (
	"encoding/json"
	"fmt"

	"github.com/ethlightclient/verifier/storage"
)

// persistedState is the on-disk shadow of TrustState's unexported fields,
// per §6's "the engine persists states_<chainID> ... through this
// interface exclusively". The teacher's own cache (state_src.go) never
// crosses a storage boundary — it lives for one process's lifetime and is
// rebuilt by re-syncing on restart — so this wire shape is new, built the
// plain stdlib-JSON way the rest of this module's ambient config/CLI glue
// already does, rather than inventing a bespoke binary format for a
// handful of small maps.
type persistedState struct {
	BlockRingCapacity int
	CommitteeWindow   int
	Blocks            []TrustedBlock
	Committees        map[uint64]CommitteeRecord
}

func stateKey(chainID int) string { return fmt.Sprintf("states_%d", chainID) }

// SaveTrustState serializes ts's current blocks and committees under
// states_<chainID>.
func SaveTrustState(p storage.Plugin, chainID int, ts *TrustState) error {
	buf, err := json.Marshal(persistedState{
		BlockRingCapacity: ts.blockRingCapacity,
		CommitteeWindow:   ts.committeeWindow,
		Blocks:            ts.blocks,
		Committees:        ts.committees,
	})
	if err != nil {
		return err
	}
	return p.Set(stateKey(chainID), buf)
}

// LoadTrustState reconstructs a TrustState from states_<chainID>, or
// storage.ErrNotFound if nothing has been saved for this chain yet.
func LoadTrustState(p storage.Plugin, chainID int) (*TrustState, error) {
	buf, err := p.Get(stateKey(chainID))
	if err != nil {
		return nil, err
	}
	var data persistedState
	if err := json.Unmarshal(buf, &data); err != nil {
		return nil, err
	}
	committees := data.Committees
	if committees == nil {
		committees = make(map[uint64]CommitteeRecord)
	}
	return &TrustState{
		blockRingCapacity: data.BlockRingCapacity,
		committeeWindow:   data.CommitteeWindow,
		blocks:            data.Blocks,
		committees:        committees,
	}, nil
}
