package ssz

// Value pairs a Descriptor with the serialized bytes representing one value
// of that type. Data is always a borrowed subslice of the buffer originally
// passed to Decode; the codec never copies.
type Value struct {
	D    *Descriptor
	Data []byte
}

// Node is the in-memory, not-yet-serialized representation of a value to be
// encoded, or the result of fully materializing a decoded Value. Unlike
// Value it owns its contents and is convenient to build up programmatically.
type Node struct {
	D *Descriptor

	// Basic kinds: the natural-width payload. UInt/Boolean/ByteVector store
	// raw bytes (little-endian for UInt). BitVector/BitList store one bool
	// per bit, MSB-unspecified order matching declaration order. Bytes
	// stores the raw byte string.
	Raw  []byte
	Bits []bool

	// Vector, List, Container: children in declared/positional order.
	Children []*Node

	// Union: which alternative is populated. Children[0] holds the payload
	// unless Selector names the None alternative (Children empty).
	Selector int

	// OptionalMask: presence flags for fields above the mask in container
	// order. Present must align 1:1 with Children for masked fields.
	Present []bool
}
