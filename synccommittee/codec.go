package synccommittee

import (
	"encoding/binary"

	"github.com/ethlightclient/verifier/chainspec"
	"github.com/ethlightclient/verifier/ssz"
)

// beaconBlockHeaderDescriptor is the fixed five-field BeaconBlockHeader
// shape, identical across every fork.
func beaconBlockHeaderDescriptor() *ssz.Descriptor {
	d, err := ssz.TypeFor(ssz.CategoryBeaconBlockHeader, ssz.Phase0, ssz.ChainMainnet)
	if err != nil {
		// CategoryBeaconBlockHeader always resolves regardless of fork/chain.
		panic(err)
	}
	return d
}

func uint64LE(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// beaconBlockHeaderValue builds the SSZ wire bytes for a header and decodes
// them back into a *ssz.Value, the shape merkle.HashTreeRoot expects. This
// round trip through Encode/Decode reuses the codec's own serialization
// rather than hand-rolling a second encoding for the same container.
func beaconBlockHeaderValue(h BeaconBlockHeader) (*ssz.Value, error) {
	d := beaconBlockHeaderDescriptor()
	node := &ssz.Node{
		D: d,
		Children: []*ssz.Node{
			{D: d.Fields[0].Type, Raw: uint64LE(h.Slot)},
			{D: d.Fields[1].Type, Raw: uint64LE(h.ProposerIndex)},
			{D: d.Fields[2].Type, Raw: h.ParentRoot[:]},
			{D: d.Fields[3].Type, Raw: h.StateRoot[:]},
			{D: d.Fields[4].Type, Raw: h.BodyRoot[:]},
		},
	}
	buf, err := ssz.Encode(d, node)
	if err != nil {
		return nil, err
	}
	return ssz.Decode(d, buf)
}

// syncCommitteeValue builds the SSZ wire bytes for a 512-key sync committee
// and decodes them back into a *ssz.Value.
func syncCommitteeValue(d *ssz.Descriptor, committee SyncCommitteeKeys) (*ssz.Value, error) {
	pubkeyElem := d.Fields[0].Type.Elem
	pubkeys := make([]*ssz.Node, len(committee.Pubkeys))
	for i, raw := range committee.Pubkeys {
		pubkeys[i] = &ssz.Node{D: pubkeyElem, Raw: raw}
	}
	node := &ssz.Node{
		D: d,
		Children: []*ssz.Node{
			{D: d.Fields[0].Type, Children: pubkeys},
			{D: d.Fields[1].Type, Raw: committee.AggregatePubkey},
		},
	}
	buf, err := ssz.Encode(d, node)
	if err != nil {
		return nil, err
	}
	return ssz.Decode(d, buf)
}

// syncCommitteeDescriptor resolves the SyncCommittee schema for a chain,
// independent of fork (the container's shape never changes across forks).
func syncCommitteeDescriptor(chainID chainspec.ChainID) (*ssz.Descriptor, error) {
	return ssz.TypeFor(ssz.CategorySyncCommittee, chainspec.Phase0, chainID)
}
