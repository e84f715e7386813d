package merkle

import (
	"fmt"
	"sort"

	"github.com/ethlightclient/verifier/ssz"
)

// pathBits decomposes a generalized index into its root-to-leaf sequence of
// left(0)/right(1) choices.
func pathBits(g GIndex) []int {
	d := g.Depth()
	out := make([]int, d)
	for i := d - 1; i >= 0; i-- {
		out[i] = int(g & 1)
		g >>= 1
	}
	return out
}

// BuildSingleProof returns the leaf value at gindex g within v (typed by d)
// and the sibling hashes from leaf to root.
func BuildSingleProof(d *ssz.Descriptor, v *ssz.Value, g GIndex) (leaf [32]byte, proof [][32]byte, err error) {
	st, err := buildSubtree(d, v)
	if err != nil {
		return [32]byte{}, nil, err
	}
	return st.proveBits(pathBits(g))
}

// VerifySingleProof folds a leaf-to-root sibling list up to a candidate root
// and reports whether it equals the expected root.
func VerifySingleProof(leaf [32]byte, g GIndex, proof [][32]byte, root [32]byte) bool {
	depth := g.Depth()
	if len(proof) != depth {
		return false
	}
	cur := leaf
	for i := 0; i < depth; i++ {
		bit := (g >> uint(i)) & 1
		if bit == 0 {
			cur = hashPair(cur, proof[i])
		} else {
			cur = hashPair(proof[i], cur)
		}
	}
	return cur == root
}

// nodeAt returns the hash of the node reached by following bits down from
// st, treating any region with no real children as an all-zero subtree.
func nodeAt(st subtree, bits []int) ([32]byte, error) {
	for len(bits) > 0 {
		a, ok := st.(arraySubtree)
		if !ok {
			return [32]byte{}, fmt.Errorf("%w: gindex descends past a leaf", ErrProofInvalid)
		}
		half := a.capacity / 2
		bit := bits[0]
		var mine []subtree
		if bit == 0 {
			if len(a.children) > half {
				mine = a.children[:half]
			} else {
				mine = a.children
			}
		} else {
			if len(a.children) > half {
				mine = a.children[half:]
			}
		}
		if len(mine) == 0 {
			return zeroHashAt(len(bits) - 1), nil
		}
		st = arraySubtree{children: mine, capacity: half}
		bits = bits[1:]
	}
	return st.root(), nil
}

// branchIndices returns the sibling generalized indices along the path from
// g to the root, nearest-leaf first.
func branchIndices(g GIndex) []GIndex {
	o := []GIndex{g ^ 1}
	for o[len(o)-1] > 1 {
		o = append(o, (o[len(o)-1]/2)^1)
	}
	return o[:len(o)-1]
}

// pathIndices returns g and its ancestors up to (excluding) the root.
func pathIndices(g GIndex) []GIndex {
	o := []GIndex{g}
	for o[len(o)-1] > 1 {
		o = append(o, o[len(o)-1]/2)
	}
	return o[:len(o)-1]
}

// helperIndices computes the minimal witness set for a batch of target
// gindices: every branch (sibling) index along any target's path that is
// not itself derivable as another target or one of its ancestors.
func helperIndices(gs []GIndex) []GIndex {
	allHelper := map[GIndex]bool{}
	allPath := map[GIndex]bool{}
	for _, g := range gs {
		for _, b := range branchIndices(g) {
			allHelper[b] = true
		}
		for _, p := range pathIndices(g) {
			allPath[p] = true
		}
	}
	out := make([]GIndex, 0, len(allHelper))
	for g := range allHelper {
		if !allPath[g] {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BuildMultiProof returns the minimal witness set covering every gindex in
// gs: the gindex-sorted helper indices and their corresponding node hashes.
func BuildMultiProof(d *ssz.Descriptor, v *ssz.Value, gs []GIndex) (gindices []GIndex, witnesses [][32]byte, err error) {
	st, err := buildSubtree(d, v)
	if err != nil {
		return nil, nil, err
	}
	gindices = helperIndices(gs)
	witnesses = make([][32]byte, len(gindices))
	for i, g := range gindices {
		h, err := nodeAt(st, pathBits(g))
		if err != nil {
			return nil, nil, err
		}
		witnesses[i] = h
	}
	return gindices, witnesses, nil
}

// VerifyMultiProof folds a set of known leaves and witnessed helper nodes up
// to the root, by repeatedly combining the deepest available sibling pair,
// and reports whether the result equals the expected root.
func VerifyMultiProof(leaves map[GIndex][32]byte, gindices []GIndex, witnesses [][32]byte, root [32]byte) (bool, error) {
	if len(gindices) != len(witnesses) {
		return false, fmt.Errorf("%w: gindices/witnesses length mismatch", ErrProofInvalid)
	}
	if len(leaves) == 0 {
		return false, fmt.Errorf("%w: no target leaves supplied", ErrProofInvalid)
	}
	nodes := make(map[GIndex][32]byte, len(leaves)+len(witnesses))
	for g, h := range leaves {
		nodes[g] = h
	}
	for i, g := range gindices {
		if existing, ok := nodes[g]; ok && existing != witnesses[i] {
			return false, fmt.Errorf("%w: conflicting value at gindex %d", ErrProofInvalid, g)
		}
		nodes[g] = witnesses[i]
	}
	for {
		if single, ok := soleKey(nodes); ok && single == Root {
			return nodes[Root] == root, nil
		}
		deepest := deepestKey(nodes)
		if deepest == Root {
			return nodes[Root] == root, nil
		}
		sib := deepest.Sibling()
		sibHash, ok := nodes[sib]
		if !ok {
			return false, fmt.Errorf("%w: missing sibling for gindex %d", ErrProofInvalid, sib)
		}
		var combined [32]byte
		if deepest.IsLeftChild() {
			combined = hashPair(nodes[deepest], sibHash)
		} else {
			combined = hashPair(sibHash, nodes[deepest])
		}
		parent := deepest.Parent()
		if existing, ok := nodes[parent]; ok && existing != combined {
			return false, fmt.Errorf("%w: inconsistent parent at gindex %d", ErrProofInvalid, parent)
		}
		delete(nodes, deepest)
		delete(nodes, sib)
		nodes[parent] = combined
	}
}

func deepestKey(nodes map[GIndex][32]byte) GIndex {
	var deepest GIndex
	for g := range nodes {
		if g > deepest {
			deepest = g
		}
	}
	return deepest
}

func soleKey(nodes map[GIndex][32]byte) (GIndex, bool) {
	if len(nodes) != 1 {
		return 0, false
	}
	for g := range nodes {
		return g, true
	}
	return 0, false
}
