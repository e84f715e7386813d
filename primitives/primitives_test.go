package primitives

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUintLERoundTrip(t *testing.T) {
	widths := []int{1, 2, 4, 8, 16, 32}
	for _, w := range widths {
		v := big.NewInt(12345)
		enc, err := EncodeUintLE(w, v)
		require.NoError(t, err)
		require.Len(t, enc, w)

		dec, err := DecodeUintLE(w, enc)
		require.NoError(t, err)
		require.Equal(t, 0, v.Cmp(dec))
	}
}

func TestEncodeUintLERejectsUnsupportedWidth(t *testing.T) {
	_, err := EncodeUintLE(3, big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestEncodeUintLERejectsOverflow(t *testing.T) {
	_, err := EncodeUintLE(1, big.NewInt(1000))
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestUintBigEndianIsReverseOfLittleEndian(t *testing.T) {
	v := big.NewInt(0xabcd)
	le, err := EncodeUintLE(2, v)
	require.NoError(t, err)
	be, err := EncodeUintBE(2, v)
	require.NoError(t, err)
	require.Equal(t, []byte{le[1], le[0]}, be)

	dec, err := DecodeUintBE(2, be)
	require.NoError(t, err)
	require.Equal(t, 0, v.Cmp(dec))
}

func TestHexToBytesAcceptsOptionalPrefix(t *testing.T) {
	a, err := HexToBytes("0xdeadbeef")
	require.NoError(t, err)
	b, err := HexToBytes("deadbeef")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, "0xdeadbeef", BytesToHex(a))
}

func TestHexToBytesRejectsMalformed(t *testing.T) {
	_, err := HexToBytes("0xzz")
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestTrimLeadingZeros(t *testing.T) {
	require.Equal(t, []byte{1, 2}, TrimLeadingZeros([]byte{0, 0, 1, 2}))
	require.Equal(t, []byte{}, TrimLeadingZeros([]byte{0, 0, 0}))
}

func TestBufferAppendSpliceReset(t *testing.T) {
	buf := NewBuffer()
	off := buf.Append([]byte{1, 2, 3})
	require.Equal(t, 0, off)
	buf.Append([]byte{4, 5})
	require.Equal(t, []byte{1, 2, 3, 4, 5}, buf.Bytes())

	err := buf.Splice(1, 3, []byte{9})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 9, 4, 5}, buf.Bytes())

	buf.Reset()
	require.Equal(t, 0, buf.Len())
}

func TestBufferSpliceOutOfBounds(t *testing.T) {
	buf := NewBuffer()
	buf.Append([]byte{1})
	err := buf.Splice(0, 5, nil)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestChangeByteOrder(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	require.Equal(t, []byte{4, 3, 2, 1}, ChangeByteOrder(b))
}
