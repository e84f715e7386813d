package merkle

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/ethlightclient/verifier/ssz"
)

// subtree is the internal representation of one SSZ value's Merkleization:
// it knows its own root and how to continue a proof walk deeper into its
// structure given the remaining bit-path to a target leaf. Every descriptor
// kind reduces to either a terminal chunkLeaf or an arraySubtree built from
// further subtrees, so the same generic array machinery (rootOfChildren /
// compositeProof) serves containers, vectors, lists, unions, and basic
// multi-chunk types alike.
type subtree interface {
	root() [32]byte
	proveBits(bits []int) (leaf [32]byte, siblings [][32]byte, err error)
}

// chunkLeaf is a terminal 32-byte chunk: a basic value, a packed-bytes
// chunk, or a selector/length chunk.
type chunkLeaf struct{ h [32]byte }

func (c chunkLeaf) root() [32]byte { return c.h }

func (c chunkLeaf) proveBits(bits []int) ([32]byte, [][32]byte, error) {
	if len(bits) != 0 {
		return [32]byte{}, nil, fmt.Errorf("%w: gindex descends past a leaf chunk", ErrProofInvalid)
	}
	return c.h, nil, nil
}

// arraySubtree is a perfect-binary-tree-shaped collection of up to
// `capacity` children (capacity is always a power of two); unfilled slots
// Merkleize as zero. It underlies container fields, vector/list elements,
// packed basic chunks, union (child, selector) pairs, and list/bitlist
// (data, length) wrappers.
type arraySubtree struct {
	children []subtree
	capacity int
}

func (a arraySubtree) root() [32]byte {
	return rootOfChildren(a.children, a.capacity)
}

func (a arraySubtree) proveBits(bits []int) ([32]byte, [][32]byte, error) {
	return compositeProof(a.children, a.capacity, bits)
}

func rootOfChildren(children []subtree, capacity int) [32]byte {
	if capacity <= 1 {
		if len(children) == 0 {
			return [32]byte{}
		}
		return children[0].root()
	}
	half := capacity / 2
	var left, right []subtree
	if len(children) > half {
		left, right = children[:half], children[half:]
	} else {
		left = children
	}
	return hashPair(rootOfChildren(left, half), rootOfChildren(right, half))
}

// compositeProof descends `capacity`'s binary tree one bit at a time,
// selecting the half named by each leading bit of bits, and returns the
// target leaf plus the sibling root collected at every level, in
// leaf-to-root order.
func compositeProof(children []subtree, capacity int, bits []int) ([32]byte, [][32]byte, error) {
	if capacity <= 1 {
		if len(children) == 0 {
			if len(bits) != 0 {
				return [32]byte{}, nil, fmt.Errorf("%w: gindex descends past a leaf chunk", ErrProofInvalid)
			}
			return [32]byte{}, nil, nil
		}
		return children[0].proveBits(bits)
	}
	if len(bits) == 0 {
		return [32]byte{}, nil, fmt.Errorf("%w: gindex does not reach a leaf", ErrProofInvalid)
	}
	half := capacity / 2
	var mine, other []subtree
	if bits[0] == 0 {
		if len(children) > half {
			mine, other = children[:half], children[half:]
		} else {
			mine, other = children, nil
		}
	} else {
		if len(children) > half {
			mine, other = children[half:], children[:half]
		} else {
			mine, other = nil, children
		}
	}
	leaf, siblings, err := compositeProof(mine, half, bits[1:])
	if err != nil {
		return [32]byte{}, nil, err
	}
	otherRoot := rootOfChildren(other, half)
	return leaf, append(siblings, otherRoot), nil
}

// HashTreeRoot computes the canonical SSZ Merkleization of v, whose type is
// described by d.
func HashTreeRoot(d *ssz.Descriptor, v *ssz.Value) ([32]byte, error) {
	st, err := buildSubtree(d, v)
	if err != nil {
		return [32]byte{}, err
	}
	return st.root(), nil
}

func buildSubtree(d *ssz.Descriptor, v *ssz.Value) (subtree, error) {
	switch d.Kind {
	case ssz.KindUInt, ssz.KindBoolean, ssz.KindByteVector, ssz.KindBitVector, ssz.KindOptionalMask:
		return packedChunks(v.Data), nil

	case ssz.KindBytes:
		return lengthMixed(packBytesChunks(v.Data, d.Limit), uint64(len(v.Data))), nil

	case ssz.KindBitList:
		length, err := bitlistDataLength(v)
		if err != nil {
			return nil, err
		}
		dataBits := unpackBitlistData(v.Data, length)
		return lengthMixed(packBits(dataBits, d.Limit), uint64(length)), nil

	case ssz.KindVector:
		return buildSequence(d.Elem, v, d.N, d.N)

	case ssz.KindList:
		count, err := listCount(v)
		if err != nil {
			return nil, err
		}
		seq, err := buildSequence(d.Elem, v, count, d.Limit)
		if err != nil {
			return nil, err
		}
		return lengthMixed(seq, uint64(count)), nil

	case ssz.KindContainer:
		return buildContainer(d, v)

	case ssz.KindUnion:
		return buildUnion(d, v)

	default:
		return nil, fmt.Errorf("%w: unsupported kind for hash-tree-root", ErrProofInvalid)
	}
}

func buildContainer(d *ssz.Descriptor, v *ssz.Value) (subtree, error) {
	children := make([]subtree, len(d.Fields))
	for i, f := range d.Fields {
		fv, err := ssz.Index(v, i)
		if err != nil {
			return nil, err
		}
		if ssz.IsNone(fv) {
			children[i] = chunkLeaf{}
			continue
		}
		st, err := buildSubtree(f.Type, fv)
		if err != nil {
			return nil, err
		}
		children[i] = st
	}
	return arraySubtree{children: children, capacity: nextPowerOfTwo(len(d.Fields))}, nil
}

func buildUnion(d *ssz.Descriptor, v *ssz.Value) (subtree, error) {
	sel, err := ssz.Selector(v)
	if err != nil {
		return nil, err
	}
	payload, err := ssz.Payload(v)
	if err != nil {
		return nil, err
	}
	var payloadTree subtree = chunkLeaf{}
	if !ssz.IsNone(payload) {
		payloadTree, err = buildSubtree(d.Alternatives[sel].Type, payload)
		if err != nil {
			return nil, err
		}
	}
	selChunk := chunkLeaf{h: leUint64Chunk(uint64(sel))}
	return arraySubtree{children: []subtree{payloadTree, selChunk}, capacity: 2}, nil
}

// buildSequence builds the children/capacity for a Vector or List. Basic
// elements are packed byte-wise into one chunk array; composite elements
// each contribute their own hash-tree-root as one chunk slot.
func buildSequence(elem *ssz.Descriptor, v *ssz.Value, count, bound int) (subtree, error) {
	it, err := ssz.Iterate(v)
	if err != nil {
		return nil, err
	}
	if isBasicKind(elem.Kind) {
		elemSize, ok := ssz.FixedSize(elem)
		if !ok {
			return nil, fmt.Errorf("%w: basic element without a fixed size", ErrProofInvalid)
		}
		var buf []byte
		for {
			el, ok := it.Next()
			if !ok {
				break
			}
			buf = append(buf, el.Data...)
		}
		capacityChunks := nextPowerOfTwo(ceilDiv(bound*elemSize, 32))
		return arraySubtreeFromChunks(buf, capacityChunks), nil
	}
	children := make([]subtree, 0, count)
	for {
		el, ok := it.Next()
		if !ok {
			break
		}
		st, err := buildSubtree(elem, el)
		if err != nil {
			return nil, err
		}
		children = append(children, st)
	}
	return arraySubtree{children: children, capacity: nextPowerOfTwo(bound)}, nil
}

func isBasicKind(k ssz.Kind) bool {
	switch k {
	case ssz.KindUInt, ssz.KindBoolean, ssz.KindByteVector, ssz.KindBitVector:
		return true
	default:
		return false
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func max1(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// packedChunks splits raw into 32-byte, zero-right-padded chunks and wraps
// them in an arraySubtree (or a bare chunkLeaf when there is exactly one).
func packedChunks(raw []byte) subtree {
	n := ceilDiv(max1(len(raw)), 32)
	if n <= 1 {
		var chunk [32]byte
		copy(chunk[:], raw)
		return chunkLeaf{h: chunk}
	}
	return arraySubtreeFromChunks(raw, nextPowerOfTwo(n))
}

func packBytesChunks(data []byte, limit int) subtree {
	capacityChunks := nextPowerOfTwo(ceilDiv(max1(limit), 32))
	return arraySubtreeFromChunks(data, capacityChunks)
}

func arraySubtreeFromChunks(data []byte, capacity int) subtree {
	n := ceilDiv(len(data), 32)
	children := make([]subtree, n)
	for i := 0; i < n; i++ {
		var chunk [32]byte
		start := i * 32
		end := start + 32
		if end > len(data) {
			end = len(data)
		}
		copy(chunk[:], data[start:end])
		children[i] = chunkLeaf{h: chunk}
	}
	return arraySubtree{children: children, capacity: capacity}
}

func packBits(bits []bool, limit int) subtree {
	out := make([]byte, ceilDiv(max1(len(bits)), 8))
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	capacityChunks := nextPowerOfTwo(ceilDiv(max1(limit), 256))
	return arraySubtreeFromChunks(out, capacityChunks)
}

func lengthMixed(data subtree, length uint64) subtree {
	return arraySubtree{children: []subtree{data, chunkLeaf{h: leUint64Chunk(length)}}, capacity: 2}
}

func leUint64Chunk(v uint64) [32]byte {
	var out [32]byte
	binary.LittleEndian.PutUint64(out[:8], v)
	return out
}

func listCount(v *ssz.Value) (int, error) {
	it, err := ssz.Iterate(v)
	if err != nil {
		return 0, err
	}
	return it.Len(), nil
}

// bitlistDataLength recovers a decoded BitList's logical bit length from its
// trailing sentinel bit, independently of the ssz package's own (unexported)
// validator, since bytes are already known-valid by the time they reach a
// *ssz.Value here.
func bitlistDataLength(v *ssz.Value) (int, error) {
	buf := v.Data
	if len(buf) == 0 {
		return 0, fmt.Errorf("%w: empty BitList has no sentinel bit", ErrProofInvalid)
	}
	last := buf[len(buf)-1]
	if last == 0 {
		return 0, fmt.Errorf("%w: BitList missing sentinel bit", ErrProofInvalid)
	}
	highBit := bits.Len8(last) - 1
	return (len(buf)-1)*8 + highBit, nil
}

func unpackBitlistData(buf []byte, length int) []bool {
	out := make([]bool, length)
	for i := 0; i < length; i++ {
		byteIdx, bitIdx := i/8, uint(i%8)
		if byteIdx < len(buf) {
			out[i] = buf[byteIdx]&(1<<bitIdx) != 0
		}
	}
	return out
}
