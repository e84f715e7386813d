package ssz

import (
	"fmt"
	"math/big"

	"github.com/ethlightclient/verifier/primitives"
)

// Encode serializes n, which must describe a value of type d, into its SSZ
// byte representation.
func Encode(d *Descriptor, n *Node) ([]byte, error) {
	return encode(d, n, nil)
}

func encode(d *Descriptor, n *Node, path []string) ([]byte, error) {
	if n == nil {
		return nil, invalidf(path, "nil value for %s", d)
	}
	switch d.Kind {
	case KindUInt:
		if len(n.Raw) != d.Width/8 {
			return nil, invalidf(path, "uint%d payload has %d bytes", d.Width, len(n.Raw))
		}
		return append([]byte{}, n.Raw...), nil

	case KindBoolean:
		if len(n.Raw) != 1 || (n.Raw[0] != 0 && n.Raw[0] != 1) {
			return nil, invalidf(path, "boolean must be a single 0x00/0x01 byte")
		}
		return append([]byte{}, n.Raw...), nil

	case KindByteVector:
		if len(n.Raw) != d.N {
			return nil, invalidf(path, "byte vector expects %d bytes, got %d", d.N, len(n.Raw))
		}
		return append([]byte{}, n.Raw...), nil

	case KindBitVector:
		if len(n.Bits) != d.N {
			return nil, invalidf(path, "bit vector expects %d bits, got %d", d.N, len(n.Bits))
		}
		return packBits(n.Bits), nil

	case KindBytes:
		if len(n.Raw) > d.Limit {
			return nil, invalidf(path, "bytes length %d exceeds limit %d", len(n.Raw), d.Limit)
		}
		return append([]byte{}, n.Raw...), nil

	case KindBitList:
		if len(n.Bits) > d.Limit {
			return nil, invalidf(path, "bitlist length %d exceeds limit %d", len(n.Bits), d.Limit)
		}
		return packBitlistWithSentinel(n.Bits), nil

	case KindVector:
		if len(n.Children) != d.N {
			return nil, invalidf(path, "vector expects %d elements, got %d", d.N, len(n.Children))
		}
		return encodeSequence(d.Elem, n.Children, d.N, d.N, path)

	case KindList:
		if len(n.Children) > d.Limit {
			return nil, invalidf(path, "list length %d exceeds limit %d", len(n.Children), d.Limit)
		}
		return encodeSequence(d.Elem, n.Children, len(n.Children), d.Limit, path)

	case KindContainer:
		return encodeContainer(d, n, path)

	case KindUnion:
		return encodeUnion(d, n, path)

	case KindOptionalMask:
		return packBits(presentToBits(n.Present, d.MaskBits)), nil

	default:
		return nil, invalidf(path, "unsupported kind %s", d.Kind)
	}
}

func encodeSequence(elem *Descriptor, children []*Node, count, _ int, path []string) ([]byte, error) {
	if _, fixed := FixedSize(elem); fixed {
		out := make([]byte, 0, count*elemMust(elem))
		for i, c := range children {
			b, err := encode(elem, c, withField(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return out, nil
	}

	// Variable-size elements: offset table followed by bodies.
	offsets := make([]int, len(children))
	bodies := make([][]byte, len(children))
	headerSize := len(children) * offsetSize
	cursor := headerSize
	for i, c := range children {
		b, err := encode(elem, c, withField(path, fmt.Sprintf("[%d]", i)))
		if err != nil {
			return nil, err
		}
		bodies[i] = b
		offsets[i] = cursor
		cursor += len(b)
	}
	out := make([]byte, 0, cursor)
	for _, off := range offsets {
		enc, err := primitives.EncodeUintLE(offsetSize, big.NewInt(int64(off)))
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	for _, b := range bodies {
		out = append(out, b...)
	}
	return out, nil
}

func elemMust(d *Descriptor) int {
	sz, _ := FixedSize(d)
	return sz
}

func encodeContainer(d *Descriptor, n *Node, path []string) ([]byte, error) {
	fields := d.Fields
	maskIdx := -1
	if len(fields) > 0 && fields[0].Type.Kind == KindOptionalMask {
		maskIdx = 0
	}

	type slot struct {
		fixed    []byte
		variable []byte
		isVar    bool
		present  bool
	}
	slots := make([]slot, 0, len(fields))

	for i, f := range fields {
		fieldPath := withField(path, f.Name)
		if i == maskIdx {
			maskNode := n.Children[i]
			b, err := encode(f.Type, maskNode, fieldPath)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot{fixed: b, present: true})
			continue
		}
		present := true
		if maskIdx == 0 {
			bitIdx := i - 1
			if bitIdx < len(n.Present) {
				present = n.Present[bitIdx]
			}
		}
		if !present {
			slots = append(slots, slot{present: false})
			continue
		}
		if i >= len(n.Children) || n.Children[i] == nil {
			return nil, invalidf(fieldPath, "missing value for present field")
		}
		if _, fixed := FixedSize(f.Type); fixed {
			b, err := encode(f.Type, n.Children[i], fieldPath)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot{fixed: b, present: true})
		} else {
			b, err := encode(f.Type, n.Children[i], fieldPath)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot{variable: b, isVar: true, present: true})
		}
	}

	fixedSize := 0
	for _, s := range slots {
		if !s.present {
			continue
		}
		if s.isVar {
			fixedSize += offsetSize
		} else {
			fixedSize += len(s.fixed)
		}
	}

	out := make([]byte, 0, fixedSize)
	cursor := fixedSize
	var tail []byte
	for _, s := range slots {
		if !s.present {
			continue
		}
		if s.isVar {
			enc, err := primitives.EncodeUintLE(offsetSize, big.NewInt(int64(cursor)))
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
			tail = append(tail, s.variable...)
			cursor += len(s.variable)
		} else {
			out = append(out, s.fixed...)
		}
	}
	return append(out, tail...), nil
}

func encodeUnion(d *Descriptor, n *Node, path []string) ([]byte, error) {
	if n.Selector < 0 || n.Selector >= len(d.Alternatives) {
		return nil, invalidf(path, "union selector %d out of range", n.Selector)
	}
	alt := d.Alternatives[n.Selector]
	out := []byte{byte(n.Selector)}
	if alt.Type == nil {
		return out, nil
	}
	if len(n.Children) == 0 {
		return nil, invalidf(path, "union alternative %q missing payload", alt.Name)
	}
	payload, err := encode(alt.Type, n.Children[0], withField(path, alt.Name))
	if err != nil {
		return nil, err
	}
	return append(out, payload...), nil
}

func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func packBitlistWithSentinel(bits []bool) []byte {
	out := make([]byte, (len(bits)/8)+1)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	sentinelPos := len(bits)
	out[sentinelPos/8] |= 1 << uint(sentinelPos%8)
	return out
}

func presentToBits(present []bool, width int) []bool {
	out := make([]bool, width)
	copy(out, present)
	return out
}
