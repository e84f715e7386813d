package ssz

import "fmt"

// None is the sentinel Value returned by Index when a present-but-optional
// field is absent. Compare with IsNone, not pointer equality against a copy.
var None = &Value{}

// IsNone reports whether v is the None sentinel.
func IsNone(v *Value) bool {
	return v == None
}

// Index returns the sub-value named by sel (a field name string, or an
// integer ordinal for containers/vectors/lists), borrowing into v's buffer
// without copying. Accessing an absent optional field yields None.
func Index(v *Value, sel interface{}) (*Value, error) {
	switch v.D.Kind {
	case KindContainer:
		idx, ok := containerFieldIndex(v.D, sel)
		if !ok {
			return nil, fmt.Errorf("%w: no such field %v on %s", ErrUnknownType, sel, v.D)
		}
		return indexContainerField(v.D, v.Data, idx)

	case KindVector, KindList:
		i, ok := sel.(int)
		if !ok {
			return nil, fmt.Errorf("%w: sequence index must be an int", ErrUnknownType)
		}
		return indexSequenceElement(v.D, v.Data, i)

	default:
		return nil, fmt.Errorf("%w: cannot index into %s", ErrUnknownType, v.D.Kind)
	}
}

func containerFieldIndex(d *Descriptor, sel interface{}) (int, bool) {
	switch s := sel.(type) {
	case string:
		for i, f := range d.Fields {
			if f.Name == s {
				return i, true
			}
		}
		return 0, false
	case int:
		if s >= 0 && s < len(d.Fields) {
			return s, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func indexContainerField(d *Descriptor, buf []byte, fieldIdx int) (*Value, error) {
	fields := d.Fields
	maskIdx := -1
	if len(fields) > 0 && fields[0].Type.Kind == KindOptionalMask {
		maskIdx = 0
	}

	var mask []bool
	cursor := 0
	for i, f := range fields {
		if i == maskIdx {
			sz, _ := FixedSize(f.Type)
			mask = unpackBits(buf[cursor:cursor+sz], f.Type.MaskBits)
			cursor += sz
			if fieldIdx == i {
				return &Value{D: f.Type, Data: buf[cursor-sz : cursor]}, nil
			}
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
			if fieldIdx == i {
				return None, nil
			}
			continue
		}
		if sz, fixed := FixedSize(f.Type); fixed {
			slice := buf[cursor : cursor+sz]
			if fieldIdx == i {
				return &Value{D: f.Type, Data: slice}, nil
			}
			cursor += sz
		} else {
			off, err := decodeOffset(buf[cursor:cursor+offsetSize], nil)
			if err != nil {
				return nil, err
			}
			if fieldIdx == i {
				end := len(buf)
				nextOff, hasNext := nextVarOffset(fields, buf, i)
				if hasNext {
					end = nextOff
				}
				return &Value{D: f.Type, Data: buf[off:end]}, nil
			}
			cursor += offsetSize
		}
	}
	return nil, fmt.Errorf("%w: field index %d not found", ErrUnknownType, fieldIdx)
}

// nextVarOffset scans forward from field index i+1 for the next present
// variable-size field's offset, used to bound field i's variable slice.
func nextVarOffset(fields []Field, buf []byte, i int) (int, bool) {
	maskIdx := -1
	if len(fields) > 0 && fields[0].Type.Kind == KindOptionalMask {
		maskIdx = 0
	}
	var mask []bool
	cursor := 0
	for j, f := range fields {
		if j == maskIdx {
			sz, _ := FixedSize(f.Type)
			mask = unpackBits(buf[cursor:cursor+sz], f.Type.MaskBits)
			cursor += sz
			continue
		}
		present := true
		if maskIdx == 0 {
			bitIdx := j - 1
			if bitIdx < len(mask) {
				present = mask[bitIdx]
			}
		}
		if !present {
			continue
		}
		if sz, fixed := FixedSize(f.Type); fixed {
			cursor += sz
		} else {
			if j > i {
				off, err := decodeOffset(buf[cursor:cursor+offsetSize], nil)
				if err == nil {
					return off, true
				}
			}
			cursor += offsetSize
		}
	}
	return 0, false
}

func indexSequenceElement(d *Descriptor, buf []byte, i int) (*Value, error) {
	elem := d.Elem
	if sz, fixed := FixedSize(elem); fixed {
		if sz == 0 {
			return &Value{D: elem, Data: nil}, nil
		}
		start := i * sz
		if start < 0 || start+sz > len(buf) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrUnknownType, i)
		}
		return &Value{D: elem, Data: buf[start : start+sz]}, nil
	}
	offsets, count, err := readOffsetTable(buf, nil)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= count {
		return nil, fmt.Errorf("%w: index %d out of range", ErrUnknownType, i)
	}
	end := len(buf)
	if i+1 < count {
		end = offsets[i+1]
	}
	return &Value{D: elem, Data: buf[offsets[i]:end]}, nil
}

// Selector returns the active alternative index of a Union value.
func Selector(v *Value) (int, error) {
	if v.D.Kind != KindUnion {
		return 0, fmt.Errorf("%w: not a union", ErrUnknownType)
	}
	if len(v.Data) < 1 {
		return 0, invalidf(nil, "union payload too short")
	}
	return int(v.Data[0]), nil
}

// Payload returns the active alternative's value, or None for the None
// alternative.
func Payload(v *Value) (*Value, error) {
	sel, err := Selector(v)
	if err != nil {
		return nil, err
	}
	if sel < 0 || sel >= len(v.D.Alternatives) {
		return nil, fmt.Errorf("%w: selector %d out of range", ErrUnknownType, sel)
	}
	alt := v.D.Alternatives[sel]
	if alt.Type == nil {
		return None, nil
	}
	return &Value{D: alt.Type, Data: v.Data[1:]}, nil
}
