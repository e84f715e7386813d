package merkle

import "github.com/ethlightclient/verifier/ssz"

// PathElem names one hop in a Merkleization path: a container field (string)
// or a vector/list/union element index (int).
type PathElem = interface{}

// GIndexOf walks a path of field names (string) and/or element indices (int)
// through a descriptor's Merkleization tree, returning the generalized index
// of the leaf the path names. It needs no value data: gindex placement is a
// pure function of the type's capacity (field count, N, or Limit).
func GIndexOf(d *ssz.Descriptor, path ...PathElem) (GIndex, error) {
	g := Root
	cur := d
	for _, p := range path {
		switch cur.Kind {
		case ssz.KindContainer:
			idx, ok := fieldIndex(cur, p)
			if !ok {
				return 0, ErrUnknownField
			}
			capacity := nextPowerOfTwo(len(cur.Fields))
			g = Concat(g, GIndex(capacity+idx))
			cur = cur.Fields[idx].Type

		case ssz.KindVector:
			idx, ok := p.(int)
			if !ok {
				return 0, ErrUnknownField
			}
			if isBasicKind(cur.Elem.Kind) {
				capacity, chunkIdx, err := packedChunkSlot(cur.Elem, cur.N, idx)
				if err != nil {
					return 0, err
				}
				g = Concat(g, GIndex(capacity+chunkIdx))
				return g, nil
			}
			capacity := nextPowerOfTwo(cur.N)
			g = Concat(g, GIndex(capacity+idx))
			cur = cur.Elem

		case ssz.KindList, ssz.KindBytes, ssz.KindBitList:
			g = Concat(g, GIndex(2)) // side 0: data subtree, side 1: length
			idx, ok := p.(int)
			if !ok {
				return 0, ErrUnknownField
			}
			if cur.Kind != ssz.KindList {
				return 0, ErrUnknownField
			}
			if isBasicKind(cur.Elem.Kind) {
				capacity, chunkIdx, err := packedChunkSlot(cur.Elem, cur.Limit, idx)
				if err != nil {
					return 0, err
				}
				g = Concat(g, GIndex(capacity+chunkIdx))
				return g, nil
			}
			capacity := nextPowerOfTwo(cur.Limit)
			g = Concat(g, GIndex(capacity+idx))
			cur = cur.Elem

		case ssz.KindUnion:
			idx, ok := fieldIndex(cur, p)
			if !ok {
				return 0, ErrUnknownField
			}
			g = Concat(g, GIndex(2)) // side 0: payload, side 1: selector
			if cur.Alternatives[idx].Type == nil {
				return g, nil
			}
			cur = cur.Alternatives[idx].Type

		default:
			return 0, ErrUnknownField
		}
	}
	return g, nil
}

func fieldIndex(d *ssz.Descriptor, sel interface{}) (int, bool) {
	fields := d.Fields
	if d.Kind == ssz.KindUnion {
		fields = d.Alternatives
	}
	switch s := sel.(type) {
	case string:
		for i, f := range fields {
			if f.Name == s {
				return i, true
			}
		}
	case int:
		if s >= 0 && s < len(fields) {
			return s, true
		}
	}
	return 0, false
}

// packedChunkSlot locates the 32-byte chunk containing element idx of a
// basic-typed Vector/List of the given bound, and the chunk array's gindex
// capacity. Proof granularity for packed basic elements is per-chunk, not
// per-element.
func packedChunkSlot(elem *ssz.Descriptor, bound, idx int) (capacity, chunkIdx int, err error) {
	elemSize, ok := ssz.FixedSize(elem)
	if !ok {
		return 0, 0, ErrUnknownField
	}
	capacity = nextPowerOfTwo(ceilDiv(bound*elemSize, 32))
	chunkIdx = (idx * elemSize) / 32
	return capacity, chunkIdx, nil
}
