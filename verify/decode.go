package verify

import (
	"fmt"

	"github.com/ethlightclient/verifier/merkle"
	"github.com/ethlightclient/verifier/ssz"
	"github.com/ethlightclient/verifier/synccommittee"
)

// This file bridges borrowed ssz.Value trees (the codec's native shape) into
// the plain Go structs synccommittee.IngestUpdate/Bootstrap operate on. The
// teacher never needed this direction (fastssz generates struct<->bytes
// both ways at once); here the schema registry is dynamic, so decoding into
// a fixed Go struct is a deliberate, explicit step at the glue boundary.

func decodeBytes32(v *ssz.Value) ([32]byte, error) {
	var out [32]byte
	if len(v.Data) != 32 {
		return out, fmt.Errorf("%w: expected 32 bytes, got %d", ssz.ErrUnknownType, len(v.Data))
	}
	copy(out[:], v.Data)
	return out, nil
}

func decodeUint64(v *ssz.Value) (uint64, error) {
	if len(v.Data) != 8 {
		return 0, fmt.Errorf("%w: expected 8-byte uint64, got %d", ssz.ErrUnknownType, len(v.Data))
	}
	var n uint64
	for i := 7; i >= 0; i-- {
		n = n<<8 | uint64(v.Data[i])
	}
	return n, nil
}

func decodeBeaconBlockHeader(v *ssz.Value) (synccommittee.BeaconBlockHeader, error) {
	var h synccommittee.BeaconBlockHeader
	fields := []string{"slot", "proposer_index", "parent_root", "state_root", "body_root"}
	vals := make([]*ssz.Value, len(fields))
	for i, f := range fields {
		fv, err := ssz.Index(v, f)
		if err != nil {
			return h, err
		}
		vals[i] = fv
	}
	slot, err := decodeUint64(vals[0])
	if err != nil {
		return h, err
	}
	proposerIndex, err := decodeUint64(vals[1])
	if err != nil {
		return h, err
	}
	parentRoot, err := decodeBytes32(vals[2])
	if err != nil {
		return h, err
	}
	stateRoot, err := decodeBytes32(vals[3])
	if err != nil {
		return h, err
	}
	bodyRoot, err := decodeBytes32(vals[4])
	if err != nil {
		return h, err
	}
	h.Slot = slot
	h.ProposerIndex = proposerIndex
	h.ParentRoot = parentRoot
	h.StateRoot = stateRoot
	h.BodyRoot = bodyRoot
	return h, nil
}

func decodeBranch(v *ssz.Value) ([][32]byte, error) {
	it, err := ssz.Iterate(v)
	if err != nil {
		return nil, err
	}
	out := make([][32]byte, 0, it.Len())
	for {
		elem, ok := it.Next()
		if !ok {
			break
		}
		h, err := decodeBytes32(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func decodeSyncCommittee(v *ssz.Value) (synccommittee.SyncCommitteeKeys, error) {
	var out synccommittee.SyncCommitteeKeys
	pubkeysVal, err := ssz.Index(v, "pubkeys")
	if err != nil {
		return out, err
	}
	it, err := ssz.Iterate(pubkeysVal)
	if err != nil {
		return out, err
	}
	pubkeys := make([][]byte, 0, it.Len())
	for {
		elem, ok := it.Next()
		if !ok {
			break
		}
		pubkeys = append(pubkeys, append([]byte{}, elem.Data...))
	}
	aggVal, err := ssz.Index(v, "aggregate_pubkey")
	if err != nil {
		return out, err
	}
	out.Pubkeys = pubkeys
	out.AggregatePubkey = append([]byte{}, aggVal.Data...)
	return out, nil
}

func decodeSyncAggregate(v *ssz.Value) (synccommittee.SyncAggregate, error) {
	var out synccommittee.SyncAggregate
	bitsVal, err := ssz.Index(v, "sync_committee_bits")
	if err != nil {
		return out, err
	}
	sigVal, err := ssz.Index(v, "sync_committee_signature")
	if err != nil {
		return out, err
	}
	bits := make([]bool, len(bitsVal.Data)*8)
	for i, b := range bitsVal.Data {
		for bit := 0; bit < 8; bit++ {
			bits[i*8+bit] = b&(1<<uint(bit)) != 0
		}
	}
	out.Bits = bits
	out.Signature = append([]byte{}, sigVal.Data...)
	return out, nil
}

// decodeLightClientHeader decodes a LightClientHeader and additionally
// computes its execution-payload-header hash-tree-root, since
// synccommittee.LightClientHeader carries the execution root directly
// rather than the full header container.
func decodeLightClientHeader(v *ssz.Value) (synccommittee.LightClientHeader, error) {
	var out synccommittee.LightClientHeader
	beaconVal, err := ssz.Index(v, "beacon")
	if err != nil {
		return out, err
	}
	beacon, err := decodeBeaconBlockHeader(beaconVal)
	if err != nil {
		return out, err
	}
	execVal, err := ssz.Index(v, "execution")
	if err != nil {
		return out, err
	}
	execRoot, err := merkle.HashTreeRoot(execVal.D, execVal)
	if err != nil {
		return out, err
	}
	branchVal, err := ssz.Index(v, "execution_branch")
	if err != nil {
		return out, err
	}
	branch, err := decodeBranch(branchVal)
	if err != nil {
		return out, err
	}
	out.Beacon = beacon
	out.ExecutionRoot = execRoot
	out.ExecutionBranch = branch
	return out, nil
}

// decodeLightClientUpdate decodes one LightClientUpdate value (as produced
// by ssz.TypeFor(ssz.CategoryLightClientUpdate, ...) + ssz.Decode) into the
// plain synccommittee.LightClientUpdate synccommittee.IngestUpdate expects.
func decodeLightClientUpdate(v *ssz.Value) (synccommittee.LightClientUpdate, error) {
	var out synccommittee.LightClientUpdate

	attestedVal, err := ssz.Index(v, "attested_header")
	if err != nil {
		return out, err
	}
	attested, err := decodeLightClientHeader(attestedVal)
	if err != nil {
		return out, err
	}

	nextCommitteeVal, err := ssz.Index(v, "next_sync_committee")
	if err != nil {
		return out, err
	}
	nextCommittee, err := decodeSyncCommittee(nextCommitteeVal)
	if err != nil {
		return out, err
	}

	nextBranchVal, err := ssz.Index(v, "next_sync_committee_branch")
	if err != nil {
		return out, err
	}
	nextBranch, err := decodeBranch(nextBranchVal)
	if err != nil {
		return out, err
	}

	finalizedVal, err := ssz.Index(v, "finalized_header")
	if err != nil {
		return out, err
	}
	finalized, err := decodeLightClientHeader(finalizedVal)
	if err != nil {
		return out, err
	}

	finalityBranchVal, err := ssz.Index(v, "finality_branch")
	if err != nil {
		return out, err
	}
	finalityBranch, err := decodeBranch(finalityBranchVal)
	if err != nil {
		return out, err
	}

	aggVal, err := ssz.Index(v, "sync_aggregate")
	if err != nil {
		return out, err
	}
	agg, err := decodeSyncAggregate(aggVal)
	if err != nil {
		return out, err
	}

	slotVal, err := ssz.Index(v, "signature_slot")
	if err != nil {
		return out, err
	}
	slot, err := decodeUint64(slotVal)
	if err != nil {
		return out, err
	}

	out.AttestedHeader = attested
	out.NextSyncCommittee = nextCommittee
	out.NextSyncCommitteeBranch = nextBranch
	out.FinalizedHeader = finalized
	out.FinalityBranch = finalityBranch
	out.SyncAggregate = agg
	out.SignatureSlot = slot
	return out, nil
}

// decodeLightClientUpdateList decodes the envelope's sync_data field: a List
// of LightClientUpdate values, all sharing the fork the envelope itself was
// decoded under (fork dispatch happens once, at envelope descriptor
// construction, per spec §9's design note).
func decodeLightClientUpdateList(v *ssz.Value) ([]synccommittee.LightClientUpdate, error) {
	it, err := ssz.Iterate(v)
	if err != nil {
		return nil, err
	}
	out := make([]synccommittee.LightClientUpdate, 0, it.Len())
	for {
		elem, ok := it.Next()
		if !ok {
			break
		}
		u, err := decodeLightClientUpdate(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
