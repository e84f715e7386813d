package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethlightclient/verifier/ssz"
)

func TestFixedLeafFromUint64ZeroPads(t *testing.T) {
	v := &ssz.Value{Data: []byte{5, 0, 0, 0, 0, 0, 0, 0}}
	leaf := fixedLeafFromUint64(v)
	var want [32]byte
	want[0] = 5
	require.Equal(t, want, *leaf)
}

func TestFixedLeafFromBytes32CopiesExactly(t *testing.T) {
	var data [32]byte
	for i := range data {
		data[i] = byte(i)
	}
	v := &ssz.Value{Data: data[:]}
	leaf := fixedLeafFromBytes32(v)
	require.Equal(t, data, *leaf)
}

func TestPatriciaKeyAccountUsesAddress(t *testing.T) {
	d := ssz.Container("Fixture", []ssz.Field{
		{Name: "address", Type: ssz.ByteVector("address", 20)},
	})
	address := make([]byte, 20)
	address[19] = 0xaa
	node := &ssz.Node{D: d, Children: []*ssz.Node{{D: d.Fields[0].Type, Raw: address}}}
	buf, err := ssz.Encode(d, node)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	key, err := patriciaKey("account", v)
	require.NoError(t, err)
	require.Equal(t, address, key)
}

func TestPatriciaKeyReceiptUsesReceiptIndex(t *testing.T) {
	d := ssz.Container("Fixture", []ssz.Field{
		{Name: "receipt_index", Type: ssz.UInt("receipt_index", 64)},
	})
	node := &ssz.Node{D: d, Children: []*ssz.Node{{D: d.Fields[0].Type, Raw: []byte{7, 0, 0, 0, 0, 0, 0, 0}}}}
	buf, err := ssz.Encode(d, node)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	key, err := patriciaKey("receipt", v)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0}, key)
}

func TestPatriciaKeyUnknownCategoryFails(t *testing.T) {
	d := ssz.Container("Fixture", nil)
	node := &ssz.Node{D: d}
	buf, err := ssz.Encode(d, node)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	_, err = patriciaKey("block", v)
	require.Error(t, err)
}

func TestDecodeNodeListDecodesEachElement(t *testing.T) {
	elem := ssz.BytesType("node", 532)
	d := ssz.List("patricia_branch", elem, 4)
	n1 := []byte{1, 2, 3}
	n2 := []byte{4, 5}
	node := &ssz.Node{D: d, Children: []*ssz.Node{
		{D: elem, Raw: n1},
		{D: elem, Raw: n2},
	}}
	buf, err := ssz.Encode(d, node)
	require.NoError(t, err)
	v, err := ssz.Decode(d, buf)
	require.NoError(t, err)

	branch, err := decodeNodeList(v)
	require.NoError(t, err)
	require.Equal(t, [][]byte{n1, n2}, branch)
}
