package ssz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUInt(t *testing.T) {
	d := UInt("slot", 64)
	n := &Node{D: d, Raw: []byte{1, 0, 0, 0, 0, 0, 0, 0}}
	buf, err := Encode(d, n)
	require.NoError(t, err)
	require.Len(t, buf, 8)

	v, err := Decode(d, buf)
	require.NoError(t, err)
	require.Equal(t, buf, v.Data)
}

func TestDecodeRejectsWrongBooleanByte(t *testing.T) {
	d := Boolean("flag")
	_, err := Decode(d, []byte{2})
	require.Error(t, err)
}

func TestBitListRoundTripPreservesSentinel(t *testing.T) {
	d := BitListType("bits", 16)
	bits := []bool{true, false, true, true}
	n := &Node{D: d, Bits: bits}
	buf, err := Encode(d, n)
	require.NoError(t, err)

	length, err := bitlistLength(buf, d.Limit, nil)
	require.NoError(t, err)
	require.Equal(t, len(bits), length)

	v, err := Decode(d, buf)
	require.NoError(t, err)
	require.Equal(t, buf, v.Data)
}

func TestEmptyBitListHasSingleSentinelBit(t *testing.T) {
	d := BitListType("bits", 16)
	n := &Node{D: d, Bits: nil}
	buf, err := Encode(d, n)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, buf)
}

func TestContainerRoundTrip(t *testing.T) {
	d := Container("Pair", []Field{
		{Name: "a", Type: UInt("a", 8)},
		{Name: "b", Type: BytesType("b", 10)},
	})
	n := &Node{D: d, Children: []*Node{
		{D: d.Fields[0].Type, Raw: []byte{7}},
		{D: d.Fields[1].Type, Raw: []byte{1, 2, 3}},
	}}
	buf, err := Encode(d, n)
	require.NoError(t, err)

	v, err := Decode(d, buf)
	require.NoError(t, err)

	a, err := Index(v, "a")
	require.NoError(t, err)
	require.Equal(t, []byte{7}, a.Data)

	b, err := Index(v, "b")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b.Data)
}

func TestContainerRejectsDecreasingOffsets(t *testing.T) {
	d := Container("Pair", []Field{
		{Name: "a", Type: BytesType("a", 10)},
		{Name: "b", Type: BytesType("b", 10)},
	})
	// two offsets (8 bytes), then bodies: first offset points past second.
	buf := append([]byte{}, []byte{8, 0, 0, 0, 6, 0, 0, 0}...)
	_, err := Decode(d, buf)
	require.Error(t, err)
}

func TestListLengthLimit(t *testing.T) {
	d := List("xs", UInt("x", 8), 2)
	n := &Node{D: d, Children: []*Node{
		{D: d.Elem, Raw: []byte{1}},
		{D: d.Elem, Raw: []byte{2}},
		{D: d.Elem, Raw: []byte{3}},
	}}
	_, err := Encode(d, n)
	require.Error(t, err)
}

func TestUnionSelectorAndPayload(t *testing.T) {
	d := Union("U", []Field{
		{Name: "none", Type: nil},
		{Name: "x", Type: UInt("x", 8)},
	})
	n := &Node{D: d, Selector: 1, Children: []*Node{{D: d.Alternatives[1].Type, Raw: []byte{9}}}}
	buf, err := Encode(d, n)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 9}, buf)

	v, err := Decode(d, buf)
	require.NoError(t, err)
	sel, err := Selector(v)
	require.NoError(t, err)
	require.Equal(t, 1, sel)
	payload, err := Payload(v)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, payload.Data)
}

func TestSchemaRegistryDispatchesByFork(t *testing.T) {
	deneb, err := TypeFor(CategoryBeaconBlockBody, Deneb, ChainMainnet)
	require.NoError(t, err)
	electra, err := TypeFor(CategoryBeaconBlockBody, Electra, ChainMainnet)
	require.NoError(t, err)
	require.NotEqual(t, len(deneb.Fields), 0)
	require.Greater(t, len(electra.Fields), len(deneb.Fields))
}

func TestSchemaRegistryGnosisWithdrawalsLimit(t *testing.T) {
	mainnet, err := TypeFor(CategoryBeaconBlockBody, Deneb, ChainMainnet)
	require.NoError(t, err)
	gnosis, err := TypeFor(CategoryBeaconBlockBody, Deneb, ChainGnosis)
	require.NoError(t, err)

	mainnetPayload := findField(t, mainnet, "execution_payload")
	gnosisPayload := findField(t, gnosis, "execution_payload")
	require.Equal(t, 16, findField(t, mainnetPayload, "withdrawals").Limit)
	require.Equal(t, 8, findField(t, gnosisPayload, "withdrawals").Limit)
}

func TestSchemaRegistryUnknownCategory(t *testing.T) {
	_, err := TypeFor(Category(9999), Deneb, ChainMainnet)
	require.ErrorIs(t, err, ErrUnknownType)
}

func findField(t *testing.T, d *Descriptor, name string) *Descriptor {
	t.Helper()
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	t.Fatalf("field %s not found on %s", name, d)
	return nil
}
