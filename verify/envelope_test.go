package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethlightclient/verifier/chainspec"
	"github.com/ethlightclient/verifier/ssz"
)

func TestDecodeEnvelopeRejectsUnsupportedVersion(t *testing.T) {
	spec := chainspec.Minimal()
	fork := chainspec.Phase0

	d, err := ssz.TypeFor(ssz.CategoryRequestEnvelope, fork, spec.ChainID)
	require.NoError(t, err)

	node := emptyRequestEnvelopeNode(t, d, [4]byte{9, 0, 0, 0})
	buf, err := ssz.Encode(d, node)
	require.NoError(t, err)

	_, err = decodeEnvelope(spec, fork, buf)
	var unsupported *UnsupportedVersion
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, [4]byte{9, 0, 0, 0}, unsupported.Version)
}

func TestDecodeEnvelopeRejectsTruncatedBytes(t *testing.T) {
	spec := chainspec.Minimal()
	fork := chainspec.Phase0
	_, err := decodeEnvelope(spec, fork, []byte{0x01})
	require.Error(t, err)
	var invalid *InvalidEncoding
	require.ErrorAs(t, err, &invalid)
}

func TestFieldIndexInAlternativesFindsAndMisses(t *testing.T) {
	alts := []ssz.Field{{Name: "a"}, {Name: "b"}}
	idx, ok := fieldIndexInAlternatives(alts, "b")
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = fieldIndexInAlternatives(alts, "c")
	require.False(t, ok)
}

// emptyRequestEnvelopeNode builds a minimally-populated RequestEnvelope Node
// with version set to the given bytes; the remaining fields are zero
// values, sufficient for the version-check path which runs before any
// other field is read.
func emptyRequestEnvelopeNode(t *testing.T, d *ssz.Descriptor, version [4]byte) *ssz.Node {
	t.Helper()
	children := make([]*ssz.Node, len(d.Fields))
	for i, f := range d.Fields {
		children[i] = zeroNode(f.Type)
	}
	children[0] = &ssz.Node{D: d.Fields[0].Type, Raw: version[:]}
	return &ssz.Node{D: d, Children: children}
}

// zeroNode builds the zero-value Node for a descriptor, recursively, deep
// enough to satisfy Encode for every Kind: fixed-width basic kinds need
// exact-length zero payloads, not nil ones.
func zeroNode(d *ssz.Descriptor) *ssz.Node {
	switch d.Kind {
	case ssz.KindUInt:
		return &ssz.Node{D: d, Raw: make([]byte, d.Width/8)}
	case ssz.KindBoolean:
		return &ssz.Node{D: d, Raw: []byte{0}}
	case ssz.KindByteVector:
		return &ssz.Node{D: d, Raw: make([]byte, d.N)}
	case ssz.KindBitVector:
		return &ssz.Node{D: d, Bits: make([]bool, d.N)}
	case ssz.KindBytes:
		return &ssz.Node{D: d, Raw: nil}
	case ssz.KindBitList:
		return &ssz.Node{D: d, Bits: nil}
	case ssz.KindContainer:
		children := make([]*ssz.Node, len(d.Fields))
		for i, f := range d.Fields {
			children[i] = zeroNode(f.Type)
		}
		return &ssz.Node{D: d, Children: children}
	case ssz.KindVector:
		children := make([]*ssz.Node, d.N)
		for i := range children {
			children[i] = zeroNode(d.Elem)
		}
		return &ssz.Node{D: d, Children: children}
	case ssz.KindList:
		return &ssz.Node{D: d, Children: nil}
	case ssz.KindUnion:
		if d.Alternatives[0].Type == nil {
			return &ssz.Node{D: d, Selector: 0}
		}
		return &ssz.Node{D: d, Selector: 0, Children: []*ssz.Node{zeroNode(d.Alternatives[0].Type)}}
	default:
		return &ssz.Node{D: d}
	}
}
