package merkle

import (
	"testing"

	"github.com/ethlightclient/verifier/ssz"
	"github.com/stretchr/testify/require"
)

func TestGIndexArithmetic(t *testing.T) {
	require.Equal(t, GIndex(2), Root.Left())
	require.Equal(t, GIndex(3), Root.Right())
	require.Equal(t, Root, GIndex(2).Parent())
	require.Equal(t, GIndex(3), GIndex(2).Sibling())
	require.Equal(t, 0, Root.Depth())
	require.Equal(t, 2, GIndex(6).Depth())
}

func TestConcatAppendsPath(t *testing.T) {
	// Concat(g1=3, g2=2) should address the left child of the subtree
	// rooted at leaf 3 of the outer tree, i.e. gindex 6.
	require.Equal(t, GIndex(6), Concat(GIndex(3), GIndex(2)))
}

func TestHashTreeRootSimpleContainer(t *testing.T) {
	d := ssz.Container("Pair", []ssz.Field{
		{Name: "a", Type: ssz.UInt("a", 64)},
		{Name: "b", Type: ssz.UInt("b", 64)},
	})
	n := &ssz.Node{D: d, Children: []*ssz.Node{
		{D: d.Fields[0].Type, Raw: []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{D: d.Fields[1].Type, Raw: []byte{2, 0, 0, 0, 0, 0, 0, 0}},
	}}
	buf, err := ssz.Encode(d, n)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	root, err := HashTreeRoot(d, v)
	require.NoError(t, err)
	require.NotEqual(t, [32]byte{}, root)
}

func TestSingleProofRoundTrip(t *testing.T) {
	d := ssz.Container("Quad", []ssz.Field{
		{Name: "a", Type: ssz.UInt("a", 64)},
		{Name: "b", Type: ssz.UInt("b", 64)},
		{Name: "c", Type: ssz.UInt("c", 64)},
		{Name: "d", Type: ssz.UInt("d", 64)},
	})
	n := &ssz.Node{D: d, Children: []*ssz.Node{
		{D: d.Fields[0].Type, Raw: []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{D: d.Fields[1].Type, Raw: []byte{2, 0, 0, 0, 0, 0, 0, 0}},
		{D: d.Fields[2].Type, Raw: []byte{3, 0, 0, 0, 0, 0, 0, 0}},
		{D: d.Fields[3].Type, Raw: []byte{4, 0, 0, 0, 0, 0, 0, 0}},
	}}
	buf, err := ssz.Encode(d, n)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	root, err := HashTreeRoot(d, v)
	require.NoError(t, err)

	g, err := GIndexOf(d, "c")
	require.NoError(t, err)

	leaf, proof, err := BuildSingleProof(d, v, g)
	require.NoError(t, err)
	require.True(t, VerifySingleProof(leaf, g, proof, root))

	// Tampering with any sibling must invalidate the proof.
	bad := append([][32]byte{}, proof...)
	bad[0][0] ^= 0xff
	require.False(t, VerifySingleProof(leaf, g, bad, root))
}

func TestMultiProofRoundTrip(t *testing.T) {
	d := ssz.Container("Octet", []ssz.Field{
		{Name: "f0", Type: ssz.UInt("f0", 64)},
		{Name: "f1", Type: ssz.UInt("f1", 64)},
		{Name: "f2", Type: ssz.UInt("f2", 64)},
		{Name: "f3", Type: ssz.UInt("f3", 64)},
		{Name: "f4", Type: ssz.UInt("f4", 64)},
		{Name: "f5", Type: ssz.UInt("f5", 64)},
		{Name: "f6", Type: ssz.UInt("f6", 64)},
		{Name: "f7", Type: ssz.UInt("f7", 64)},
	})
	children := make([]*ssz.Node, 8)
	for i := 0; i < 8; i++ {
		children[i] = &ssz.Node{D: d.Fields[i].Type, Raw: []byte{byte(i + 1), 0, 0, 0, 0, 0, 0, 0}}
	}
	n := &ssz.Node{D: d, Children: children}
	buf, err := ssz.Encode(d, n)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	root, err := HashTreeRoot(d, v)
	require.NoError(t, err)

	g1, err := GIndexOf(d, "f1")
	require.NoError(t, err)
	g6, err := GIndexOf(d, "f6")
	require.NoError(t, err)

	leaf1, _, err := BuildSingleProof(d, v, g1)
	require.NoError(t, err)
	leaf6, _, err := BuildSingleProof(d, v, g6)
	require.NoError(t, err)

	gindices, witnesses, err := BuildMultiProof(d, v, []GIndex{g1, g6})
	require.NoError(t, err)

	ok, err := VerifyMultiProof(map[GIndex][32]byte{g1: leaf1, g6: leaf6}, gindices, witnesses, root)
	require.NoError(t, err)
	require.True(t, ok)

	// A wrong leaf must fail verification.
	badLeaf := leaf1
	badLeaf[0] ^= 0xff
	ok, err = VerifyMultiProof(map[GIndex][32]byte{g1: badLeaf, g6: leaf6}, gindices, witnesses, root)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestZeroHashCacheConsistentWithDirectComputation(t *testing.T) {
	z1 := zeroHashAt(1)
	require.Equal(t, hashPair(zeroHashAt(0), zeroHashAt(0)), z1)
}
