package ssz

import "fmt"

// Iterator yields the elements of a Vector or List value in order. It is
// finite and non-restartable; call Iterate again on the parent Value for a
// fresh pass.
type Iterator struct {
	elem   *Descriptor
	buf    []byte
	fixed  int
	isFxd  bool
	count  int
	offs   []int
	pos    int
}

// Iterate produces a lazy, forward-only sequence of typed values over v,
// which must be a Vector or List.
func Iterate(v *Value) (*Iterator, error) {
	if v.D.Kind != KindVector && v.D.Kind != KindList {
		return nil, fmt.Errorf("%w: cannot iterate %s", ErrUnknownType, v.D.Kind)
	}
	it := &Iterator{elem: v.D.Elem, buf: v.Data}
	if sz, fixed := FixedSize(v.D.Elem); fixed {
		it.isFxd = true
		it.fixed = sz
		if sz == 0 {
			it.count = 0
		} else {
			it.count = len(v.Data) / sz
		}
		return it, nil
	}
	offsets, count, err := readOffsetTable(v.Data, nil)
	if err != nil {
		return nil, err
	}
	it.offs = offsets
	it.count = count
	return it, nil
}

// Len reports the total number of elements the iterator will yield.
func (it *Iterator) Len() int {
	return it.count
}

// Next returns the next element, or ok=false once the sequence is exhausted.
func (it *Iterator) Next() (v *Value, ok bool) {
	if it.pos >= it.count {
		return nil, false
	}
	i := it.pos
	it.pos++
	if it.isFxd {
		start := i * it.fixed
		return &Value{D: it.elem, Data: it.buf[start : start+it.fixed]}, true
	}
	end := len(it.buf)
	if i+1 < it.count {
		end = it.offs[i+1]
	}
	return &Value{D: it.elem, Data: it.buf[it.offs[i]:end]}, true
}
