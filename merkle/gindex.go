// Package merkle implements SSZ hash-tree-root Merkleization, generalized-
// index arithmetic, and single-/multi-leaf Merkle proof construction and
// verification, grounded on the teacher's Hasher/Node/Prove idiom
// (crypto/merkle) generalized from a flat leaf array to SSZ's typed,
// capacity-aware binary tree.
package merkle

import "math/bits"

// GIndex is a 1-based generalized index into a complete binary tree: the
// root is 1, and the children of g are 2g and 2g+1.
type GIndex uint64

// Root is the generalized index of the tree root.
const Root GIndex = 1

// Left returns the generalized index of g's left child.
func (g GIndex) Left() GIndex { return g * 2 }

// Right returns the generalized index of g's right child.
func (g GIndex) Right() GIndex { return g*2 + 1 }

// Parent returns the generalized index of g's parent. Parent(Root) is Root.
func (g GIndex) Parent() GIndex {
	if g <= Root {
		return Root
	}
	return g / 2
}

// Sibling returns the generalized index of the other child of g's parent.
func (g GIndex) Sibling() GIndex {
	return g ^ 1
}

// IsLeftChild reports whether g is the left (even) child of its parent.
func (g GIndex) IsLeftChild() bool {
	return g%2 == 0
}

// Depth returns the number of edges from the root to g.
func (g GIndex) Depth() int {
	return bits.Len64(uint64(g)) - 1
}

// Concat appends g2's path below g1, producing the generalized index of a
// leaf of a nested tree (g2) anchored at the leaf g1 of an outer tree.
func Concat(g1, g2 GIndex) GIndex {
	d2 := g2.Depth()
	mask := GIndex(1)<<uint(d2) - 1
	return g1<<uint(d2) | (g2 & mask)
}

// nextPowerOfTwo returns the smallest power of two >= n (1 for n<=1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << uint(bits.Len(uint(n-1)))
}

// log2 returns floor(log2(n)) for n >= 1.
func log2(n int) int {
	return bits.Len(uint(n)) - 1
}
