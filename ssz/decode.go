package ssz

import (
	"math/bits"
	"strconv"

	"github.com/ethlightclient/verifier/primitives"
)

// Decode parses buf as a value of type d, validating every structural
// invariant eagerly. The returned Value borrows buf; no copy is made.
func Decode(d *Descriptor, buf []byte) (*Value, error) {
	if err := validate(d, buf, nil); err != nil {
		return nil, err
	}
	return &Value{D: d, Data: buf}, nil
}

// validate performs the eager structural checks described in the codec
// design: offset monotonicity, bitlist sentinel placement, list/vector
// length limits, union selector range, and boolean/integer width checks. It
// never allocates a copy of buf.
func validate(d *Descriptor, buf []byte, path []string) error {
	switch d.Kind {
	case KindUInt:
		if len(buf) != d.Width/8 {
			return invalidf(path, "uint%d expects %d bytes, got %d", d.Width, d.Width/8, len(buf))
		}
		return nil

	case KindBoolean:
		if len(buf) != 1 {
			return invalidf(path, "boolean expects 1 byte, got %d", len(buf))
		}
		if buf[0] != 0 && buf[0] != 1 {
			return invalidf(path, "boolean byte must be 0x00 or 0x01, got 0x%02x", buf[0])
		}
		return nil

	case KindByteVector:
		if len(buf) != d.N {
			return invalidf(path, "byte vector expects %d bytes, got %d", d.N, len(buf))
		}
		return nil

	case KindBitVector:
		want := (d.N + 7) / 8
		if len(buf) != want {
			return invalidf(path, "bit vector expects %d bytes, got %d", want, len(buf))
		}
		if d.N%8 != 0 {
			last := buf[len(buf)-1]
			mask := byte(0xFF << uint(d.N%8))
			if last&mask != 0 {
				return invalidf(path, "bit vector padding bits must be zero")
			}
		}
		return nil

	case KindBytes:
		if len(buf) > d.Limit {
			return invalidf(path, "bytes length %d exceeds limit %d", len(buf), d.Limit)
		}
		return nil

	case KindBitList:
		_, err := bitlistLength(buf, d.Limit, path)
		return err

	case KindVector:
		return validateSequence(d.Elem, buf, d.N, true, path)

	case KindList:
		return validateSequence(d.Elem, buf, d.Limit, false, path)

	case KindContainer:
		return validateContainer(d, buf, path)

	case KindUnion:
		return validateUnion(d, buf, path)

	case KindOptionalMask:
		want := (d.MaskBits + 7) / 8
		if len(buf) != want {
			return invalidf(path, "optional mask expects %d bytes, got %d", want, len(buf))
		}
		return nil

	default:
		return invalidf(path, "unsupported kind %s", d.Kind)
	}
}

// bitlistLength returns the decoded bit length, validating that exactly one
// sentinel bit exists within limit+1 bits and every bit above it is zero.
func bitlistLength(buf []byte, limit int, path []string) (int, error) {
	if len(buf) == 0 {
		return 0, invalidf(path, "bitlist payload must contain a sentinel bit")
	}
	lastByte := buf[len(buf)-1]
	if lastByte == 0 {
		return 0, invalidf(path, "bitlist sentinel bit missing from final byte")
	}
	highBit := bits.Len8(lastByte) - 1
	length := (len(buf)-1)*8 + highBit
	if length > limit {
		return 0, invalidf(path, "bitlist length %d exceeds limit %d", length, limit)
	}
	// Every bit above the sentinel in the final byte must be zero; Len8
	// already guarantees that within the byte since highBit is the top set bit.
	return length, nil
}

func validateSequence(elem *Descriptor, buf []byte, bound int, isVector bool, path []string) error {
	if sz, fixed := FixedSize(elem); fixed {
		if sz == 0 {
			if len(buf) != 0 {
				return invalidf(path, "zero-size element sequence must be empty")
			}
			if isVector && bound != 0 {
				return invalidf(path, "vector expects %d elements, got 0-length buffer", bound)
			}
			return nil
		}
		if len(buf)%sz != 0 {
			return invalidf(path, "sequence length %d not a multiple of element size %d", len(buf), sz)
		}
		count := len(buf) / sz
		if isVector {
			if count != bound {
				return invalidf(path, "vector expects %d elements, got %d", bound, count)
			}
		} else if count > bound {
			return invalidf(path, "list length %d exceeds limit %d", count, bound)
		}
		for i := 0; i < count; i++ {
			if err := validate(elem, buf[i*sz:(i+1)*sz], withField(path, idxName(i))); err != nil {
				return err
			}
		}
		return nil
	}

	offsets, count, err := readOffsetTable(buf, path)
	if err != nil {
		return err
	}
	if isVector {
		if count != bound {
			return invalidf(path, "vector expects %d elements, got %d", bound, count)
		}
	} else if count > bound {
		return invalidf(path, "list length %d exceeds limit %d", count, bound)
	}
	for i := 0; i < count; i++ {
		end := len(buf)
		if i+1 < count {
			end = offsets[i+1]
		}
		if err := validate(elem, buf[offsets[i]:end], withField(path, idxName(i))); err != nil {
			return err
		}
	}
	return nil
}

// readOffsetTable reads a leading table of 4-byte little-endian offsets
// whose count is inferred from the first offset (which equals the table's
// own byte size), validating monotonicity and bounds.
func readOffsetTable(buf []byte, path []string) (offsets []int, count int, err error) {
	if len(buf) == 0 {
		return nil, 0, nil
	}
	if len(buf) < offsetSize {
		return nil, 0, invalidf(path, "buffer too short for an offset table")
	}
	first, decErr := decodeOffset(buf[0:offsetSize], path)
	if decErr != nil {
		return nil, 0, decErr
	}
	if first%offsetSize != 0 || first < offsetSize {
		return nil, 0, invalidf(path, "first offset %d is not a valid table size", first)
	}
	count = first / offsetSize
	if count*offsetSize > len(buf) {
		return nil, 0, invalidf(path, "offset table size %d exceeds buffer length %d", count*offsetSize, len(buf))
	}
	offsets = make([]int, count)
	prev := 0
	for i := 0; i < count; i++ {
		off, decErr := decodeOffset(buf[i*offsetSize:(i+1)*offsetSize], path)
		if decErr != nil {
			return nil, 0, decErr
		}
		if i == 0 && off != first {
			return nil, 0, invalidf(path, "first offset mismatch")
		}
		if off < prev {
			return nil, 0, invalidf(path, "offsets must be non-decreasing")
		}
		if off > len(buf) {
			return nil, 0, invalidf(path, "offset %d exceeds buffer length %d", off, len(buf))
		}
		offsets[i] = off
		prev = off
	}
	if count > 0 && offsets[0] != first {
		return nil, 0, invalidf(path, "first offset must equal the table size")
	}
	if count > 0 && offsets[count-1] > len(buf) {
		return nil, 0, invalidf(path, "last offset exceeds payload length")
	}
	return offsets, count, nil
}

func decodeOffset(buf []byte, path []string) (int, error) {
	v, err := primitives.DecodeUintLE(offsetSize, buf)
	if err != nil {
		return 0, invalidf(path, "malformed offset: %v", err)
	}
	return int(v.Int64()), nil
}

func validateContainer(d *Descriptor, buf []byte, path []string) error {
	fields := d.Fields
	maskIdx := -1
	if len(fields) > 0 && fields[0].Type.Kind == KindOptionalMask {
		maskIdx = 0
	}

	var mask []bool
	cursor := 0
	type slice struct {
		fieldIdx int
		start    int
		isVar    bool
	}
	var fixedSlices []slice
	var varFieldIdx []int

	// First pass over fixed-size / masked-out fields to compute layout.
	for i, f := range fields {
		fieldPath := withField(path, f.Name)
		if i == maskIdx {
			sz, _ := FixedSize(f.Type)
			if cursor+sz > len(buf) {
				return invalidf(fieldPath, "buffer too short for optional mask")
			}
			if err := validate(f.Type, buf[cursor:cursor+sz], fieldPath); err != nil {
				return err
			}
			mask = unpackBits(buf[cursor:cursor+sz], f.Type.MaskBits)
			cursor += sz
			continue
		}
		present := true
		if maskIdx == 0 {
			bitIdx := i - 1
			if bitIdx < len(mask) {
				present = mask[bitIdx]
			}
		}
		if !present {
			continue
		}
		if sz, fixed := FixedSize(f.Type); fixed {
			if cursor+sz > len(buf) {
				return invalidf(fieldPath, "buffer too short for fixed field")
			}
			fixedSlices = append(fixedSlices, slice{fieldIdx: i, start: cursor, isVar: false})
			cursor += sz
		} else {
			if cursor+offsetSize > len(buf) {
				return invalidf(fieldPath, "buffer too short for field offset")
			}
			fixedSlices = append(fixedSlices, slice{fieldIdx: i, start: cursor, isVar: true})
			varFieldIdx = append(varFieldIdx, i)
			cursor += offsetSize
		}
	}

	fixedSectionEnd := cursor
	offsets := make(map[int]int)
	var offsetOrder []int
	prevOffset := -1
	for _, s := range fixedSlices {
		if !s.isVar {
			fieldPath := withField(path, fields[s.fieldIdx].Name)
			sz, _ := FixedSize(fields[s.fieldIdx].Type)
			if err := validate(fields[s.fieldIdx].Type, buf[s.start:s.start+sz], fieldPath); err != nil {
				return err
			}
			continue
		}
		fieldPath := withField(path, fields[s.fieldIdx].Name)
		off, err := decodeOffset(buf[s.start:s.start+offsetSize], fieldPath)
		if err != nil {
			return err
		}
		if off < fixedSectionEnd || off > len(buf) {
			return invalidf(fieldPath, "offset %d out of range [%d,%d]", off, fixedSectionEnd, len(buf))
		}
		if prevOffset >= 0 && off < prevOffset {
			return invalidf(fieldPath, "offsets must be non-decreasing")
		}
		prevOffset = off
		offsets[s.fieldIdx] = off
		offsetOrder = append(offsetOrder, s.fieldIdx)
	}

	if len(offsetOrder) > 0 && offsets[offsetOrder[0]] != fixedSectionEnd {
		return invalidf(path, "first variable offset must equal fixed-section size")
	}

	for i, fieldIdx := range offsetOrder {
		start := offsets[fieldIdx]
		end := len(buf)
		if i+1 < len(offsetOrder) {
			end = offsets[offsetOrder[i+1]]
		}
		fieldPath := withField(path, fields[fieldIdx].Name)
		if err := validate(fields[fieldIdx].Type, buf[start:end], fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func validateUnion(d *Descriptor, buf []byte, path []string) error {
	if len(buf) < 1 {
		return invalidf(path, "union payload must contain a selector byte")
	}
	selector := int(buf[0])
	if selector >= len(d.Alternatives) {
		return invalidf(path, "union selector %d names no alternative", selector)
	}
	alt := d.Alternatives[selector]
	if alt.Type == nil {
		if len(buf) != 1 {
			return invalidf(path, "none alternative must carry no payload")
		}
		return nil
	}
	return validate(alt.Type, buf[1:], withField(path, alt.Name))
}

func unpackBits(buf []byte, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = buf[i/8]&(1<<uint(i%8)) != 0
	}
	return out
}

func idxName(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
