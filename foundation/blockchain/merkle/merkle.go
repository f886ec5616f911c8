// Copyright 2017 Cameron Bergoon
// https://github.com/cbergoon/merkletree
// Licensed under the MIT License, see LICENCE file for details.
// This code has been cleaned up, refactored, and turned into generics.

// Package merkle provides an implementation of a merkle tree for summarizing
// the ordered set of transactions inside a block.
package merkle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"slices"
)

// Hashable represents the behavior concrete data must exhibit to be used in
// the merkle tree.
type Hashable[T any] interface {
	Hash() ([]byte, error)
	Equals(other T) bool
}

// =============================================================================

// Tree represents a merkle tree that uses data of some type T that exhibits the
// behavior defined by the Hashable constraint.
//
// An empty tree has no root and a merkle root of zero bytes. A tree with one
// value uses the leaf hash as the root. Any other level with an odd number of
// nodes pairs the last node with itself.
type Tree[T Hashable[T]] struct {
	Root         *Node[T]
	Leafs        []*Node[T]
	MerkleRoot   []byte
	values       []T
	hashStrategy func() hash.Hash
}

// WithHashStrategy is used to change the default hash strategy of using sha256
// when constructing a new tree.
func WithHashStrategy[T Hashable[T]](hashStrategy func() hash.Hash) func(t *Tree[T]) {
	return func(t *Tree[T]) {
		t.hashStrategy = hashStrategy
	}
}

// NewTree constructs a new merkle tree that uses data of some type T that
// exhibits the behavior defined by the Hashable interface.
func NewTree[T Hashable[T]](values []T, options ...func(t *Tree[T])) (*Tree[T], error) {
	t := Tree[T]{
		hashStrategy: sha256.New,
	}

	for _, option := range options {
		option(&t)
	}

	if err := t.Generate(values); err != nil {
		return nil, err
	}

	return &t, nil
}

// Generate constructs the leafs and nodes of the tree from the specified
// data. If the tree has been generated previously, the tree is re-generated
// from scratch.
func (t *Tree[T]) Generate(values []T) error {
	leafs := make([]*Node[T], 0, len(values))
	for _, value := range values {
		hash, err := value.Hash()
		if err != nil {
			return err
		}

		leafs = append(leafs, &Node[T]{
			Hash:  hash,
			Value: value,
			leaf:  true,
			Tree:  t,
		})
	}

	t.values = slices.Clone(values)
	t.Leafs = leafs
	t.Root = nil
	t.MerkleRoot = nil

	if len(leafs) == 0 {
		return nil
	}

	root, err := buildIntermediate(leafs, t)
	if err != nil {
		return err
	}

	t.Root = root
	t.MerkleRoot = root.Hash

	return nil
}

// Rebuild is a helper function that will rebuild the tree reusing only the
// data that it currently holds.
func (t *Tree[T]) Rebuild() error {
	return t.Generate(t.values)
}

// Proof returns the set of hashes and the order of concatenating those
// hashes for proving a value is in the tree. An order of 0 means the proof
// hash comes first, 1 means it comes second. Use VerifyProof to check.
func (t *Tree[T]) Proof(data T) ([][]byte, []int64, error) {
	for _, node := range t.Leafs {
		if !node.Value.Equals(data) {
			continue
		}

		var merkleProof [][]byte
		var order []int64

		for parent := node.Parent; parent != nil; parent = parent.Parent {
			if parent.Left == node {
				merkleProof = append(merkleProof, parent.Right.Hash)
				order = append(order, 1) // right leaf, concat second.
			} else {
				merkleProof = append(merkleProof, parent.Left.Hash)
				order = append(order, 0) // left leaf, concat first.
			}
			node = parent
		}

		return merkleProof, order, nil
	}

	return nil, nil, errors.New("unable to find data in tree")
}

// Verify validates the hashes at each level of the tree and returns an error
// if the resulting hash at the root of the tree doesn't match the root hash.
func (t *Tree[T]) Verify() error {
	if t.Root == nil {
		if len(t.MerkleRoot) != 0 {
			return errors.New("root hash invalid")
		}
		return nil
	}

	calculatedMerkleRoot, err := t.Root.verify()
	if err != nil {
		return err
	}

	if !bytes.Equal(t.MerkleRoot, calculatedMerkleRoot) {
		return errors.New("root hash invalid")
	}

	return nil
}

// VerifyData indicates whether a given piece of data is in the tree and if the
// hashes are valid for that data. Returns an error if the merkle root
// calculated on the critical path for the data doesn't match.
func (t *Tree[T]) VerifyData(data T) error {
	for _, node := range t.Leafs {
		if !node.Value.Equals(data) {
			continue
		}

		leafHash, err := data.Hash()
		if err != nil {
			return err
		}

		proof, order, err := t.Proof(data)
		if err != nil {
			return err
		}

		if !VerifyProof(leafHash, proof, order, t.MerkleRoot, t.hashStrategy) {
			return errors.New("merkle root is not equivalent to the merkle root calculated on the critical path")
		}

		return nil
	}

	return errors.New("unable to find data in tree")
}

// Values returns the values stored in the tree in their original order.
func (t *Tree[T]) Values() []T {
	return slices.Clone(t.values)
}

// Count returns the number of values stored in the tree.
func (t *Tree[T]) Count() int {
	return len(t.values)
}

// RootHex converts the merkle root byte hash to a hex encoded string. An
// empty tree returns an empty string.
func (t *Tree[T]) RootHex() string {
	return hex.EncodeToString(t.MerkleRoot)
}

// String returns a string representation of the tree. Only leaf nodes are
// included in the output.
func (t *Tree[T]) String() string {
	s := ""

	for _, l := range t.Leafs {
		s += fmt.Sprint(l)
		s += "\n"
	}

	return s
}

// MarshalText implements the TextMarshaler interface and produces a panic
// if anyone tries to marshal the Merkle tree. I don't want this to happen.
// Use the Values function to return a slice that can be marshaled.
func (t *Tree[T]) MarshalText() (text []byte, err error) {
	panic("do not marshal the merkle tree, use Values")
}

// =============================================================================

// VerifyProof takes the hash of a value and a proof produced by the Proof
// method and checks the proof leads to the specified merkle root.
func VerifyProof(leafHash []byte, proof [][]byte, order []int64, merkleRoot []byte, hashStrategy func() hash.Hash) bool {
	if len(proof) != len(order) {
		return false
	}

	current := leafHash
	for i, p := range proof {
		h := hashStrategy()

		switch order[i] {
		case 0:
			h.Write(p)
			h.Write(current)
		default:
			h.Write(current)
			h.Write(p)
		}

		current = h.Sum(nil)
	}

	return bytes.Equal(current, merkleRoot)
}

// =============================================================================

// Node represents a node, root, or leaf in the tree. It stores pointers to its
// immediate relationships, a hash, the data if it is a leaf, and other metadata.
type Node[T Hashable[T]] struct {
	Tree   *Tree[T]
	Parent *Node[T]
	Left   *Node[T]
	Right  *Node[T]
	Hash   []byte
	Value  T
	leaf   bool
	dup    bool
}

// verify walks down the tree until hitting a leaf, calculating the hash at
// each level and returning the resulting hash of the node.
func (n *Node[T]) verify() ([]byte, error) {
	if n.leaf {
		return n.Value.Hash()
	}

	leftBytes, err := n.Left.verify()
	if err != nil {
		return nil, err
	}

	rightBytes := leftBytes
	if !n.dup {
		rightBytes, err = n.Right.verify()
		if err != nil {
			return nil, err
		}
	}

	return concatHash(n.Tree.hashStrategy, leftBytes, rightBytes)
}

// CalculateHash is a helper function that calculates the hash of the node.
func (n *Node[T]) CalculateHash() ([]byte, error) {
	if n.leaf {
		return n.Value.Hash()
	}

	return concatHash(n.Tree.hashStrategy, n.Left.Hash, n.Right.Hash)
}

// String returns a string representation of the node.
func (n *Node[T]) String() string {
	return fmt.Sprintf("%t %t %x %v", n.leaf, n.dup, n.Hash, n.Value)
}

// =============================================================================

// buildIntermediate constructs the intermediate and root levels of the tree
// for a given list of leaf nodes, one level at a time. Returns the resulting
// root node of the tree.
func buildIntermediate[T Hashable[T]](nl []*Node[T], t *Tree[T]) (*Node[T], error) {
	for len(nl) > 1 {
		nodes := make([]*Node[T], 0, (len(nl)+1)/2)

		for i := 0; i < len(nl); i += 2 {
			left, right := nl[i], nl[i]
			if i+1 < len(nl) {
				right = nl[i+1]
			}

			hash, err := concatHash(t.hashStrategy, left.Hash, right.Hash)
			if err != nil {
				return nil, err
			}

			n := Node[T]{
				Left:  left,
				Right: right,
				Hash:  hash,
				Tree:  t,
				dup:   left == right,
			}

			left.Parent = &n
			right.Parent = &n

			nodes = append(nodes, &n)
		}

		nl = nodes
	}

	return nl[0], nil
}

// concatHash hashes the concatenation of two hashes.
func concatHash(hashStrategy func() hash.Hash, left []byte, right []byte) ([]byte, error) {
	h := hashStrategy()

	if _, err := h.Write(left); err != nil {
		return nil, err
	}
	if _, err := h.Write(right); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
