// Package primitives provides the fixed-width integer codecs, hex/byte
// conversions, and growable buffer used by the ssz and merkle packages.
package primitives

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidEncoding is returned whenever a primitive conversion is fed
// malformed hex, an oversized buffer, or a width it cannot honor.
var ErrInvalidEncoding = errors.New("invalid encoding")

// EncodeUintLE serializes v into a width-byte little-endian buffer. width
// must be one of 1, 2, 4, 8, 16, 32 (i.e. 8/16/32/64/128/256 bits).
func EncodeUintLE(width int, v *big.Int) ([]byte, error) {
	if !validWidth(width) {
		return nil, fmt.Errorf("%w: unsupported width %d", ErrInvalidEncoding, width)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value", ErrInvalidEncoding)
	}
	be := v.Bytes()
	if len(be) > width {
		return nil, fmt.Errorf("%w: value overflows width %d", ErrInvalidEncoding, width)
	}
	out := make([]byte, width)
	for i, b := range be {
		out[width-1-i] = b
	}
	return out, nil
}

// DecodeUintLE parses a width-byte little-endian buffer into a big.Int.
func DecodeUintLE(width int, buf []byte) (*big.Int, error) {
	if !validWidth(width) {
		return nil, fmt.Errorf("%w: unsupported width %d", ErrInvalidEncoding, width)
	}
	if len(buf) != width {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, width, len(buf))
	}
	be := make([]byte, width)
	for i, b := range buf {
		be[width-1-i] = b
	}
	return new(big.Int).SetBytes(be), nil
}

// EncodeUintBE serializes v into a width-byte big-endian buffer.
func EncodeUintBE(width int, v *big.Int) ([]byte, error) {
	le, err := EncodeUintLE(width, v)
	if err != nil {
		return nil, err
	}
	return reversed(le), nil
}

// DecodeUintBE parses a width-byte big-endian buffer into a big.Int.
func DecodeUintBE(width int, buf []byte) (*big.Int, error) {
	if len(buf) != width {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, width, len(buf))
	}
	return DecodeUintLE(width, reversed(buf))
}

func validWidth(width int) bool {
	switch width {
	case 1, 2, 4, 8, 16, 32:
		return true
	default:
		return false
	}
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// HexToBytes decodes a hex string, accepting an optional "0x" prefix.
func HexToBytes(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return b, nil
}

// BytesToHex renders b as a "0x"-prefixed lowercase hex string.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// TrimLeadingZeros strips leading zero bytes from b, returning a zero-length
// slice (not nil) when every byte is zero.
func TrimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// Buffer is a growable byte buffer supporting append/splice/reset, used by
// the SSZ codec to build up variable-size payloads without repeated
// reallocation.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append appends b to the buffer and returns the offset it was written at.
func (buf *Buffer) Append(b []byte) int {
	offset := len(buf.data)
	buf.data = append(buf.data, b...)
	return offset
}

// Splice replaces buf[start:end] with repl, growing or shrinking the buffer
// as needed.
func (buf *Buffer) Splice(start, end int, repl []byte) error {
	if start < 0 || end < start || end > len(buf.data) {
		return fmt.Errorf("%w: splice range [%d:%d] out of bounds (len %d)", ErrInvalidEncoding, start, end, len(buf.data))
	}
	tail := append([]byte{}, buf.data[end:]...)
	buf.data = append(buf.data[:start], repl...)
	buf.data = append(buf.data, tail...)
	return nil
}

// Reset empties the buffer while retaining its backing array.
func (buf *Buffer) Reset() {
	buf.data = buf.data[:0]
}

// Bytes returns the buffer's current contents. The slice is borrowed and
// invalidated by a subsequent Append/Splice/Reset.
func (buf *Buffer) Bytes() []byte {
	return buf.data
}

// Len returns the number of bytes currently held.
func (buf *Buffer) Len() int {
	return len(buf.data)
}

// ChangeByteOrder reverses b in place and returns it, converting between
// little-endian and big-endian representations of the same value.
func ChangeByteOrder(b []byte) []byte {
	for i := 0; i < len(b)/2; i++ {
		b[i], b[len(b)-i-1] = b[len(b)-i-1], b[i]
	}
	return b
}
