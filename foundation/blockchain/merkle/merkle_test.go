// Copyright 2017 Cameron Bergoon
// https://github.com/cbergoon/merkletree
// Licensed under the MIT License, see LICENCE file for details.

package merkle_test

import (
	"bytes"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/merkle"
)

// Data uses the sha256 hashing algorithm for the merkle tree.
type Data struct {
	x string
}

// Hash hashes the values using sha256.
func (d Data) Hash() ([]byte, error) {
	h := sha256.New()
	if _, err := h.Write([]byte(d.x)); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

// Equals tests for equality of two piece of data.
func (d Data) Equals(other Data) bool {
	return d.x == other.x
}

func toData(values ...string) []Data {
	data := make([]Data, len(values))
	for i, v := range values {
		data[i] = Data{x: v}
	}
	return data
}

// =============================================================================

var table = []struct {
	testCaseId   int
	hashStrategy func() hash.Hash
	data         []Data
	expectedHash string
}{
	{
		testCaseId:   0,
		hashStrategy: sha256.New,
		data:         toData("a"),
		expectedHash: "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb",
	},
	{
		testCaseId:   1,
		hashStrategy: sha256.New,
		data:         toData("a", "b"),
		expectedHash: "e5a01fee14e0ed5c48714f22180f25ad8365b53f9779f79dc4a3d7e93963f94a",
	},
	{
		testCaseId:   2,
		hashStrategy: sha256.New,
		data:         toData("a", "b", "c"),
		expectedHash: "d31a37ef6ac14a2db1470c4316beb5592e6afd4465022339adafda76a18ffabe",
	},
	{
		testCaseId:   3,
		hashStrategy: sha256.New,
		data:         toData("a", "b", "c", "d"),
		expectedHash: "14ede5e8e97ad9372327728f5099b95604a39593cac3bd38a343ad76205213e7",
	},
	{
		testCaseId:   4,
		hashStrategy: sha256.New,
		data:         toData("a", "b", "c", "d", "e"),
		expectedHash: "dd14d0ba516bb654a3052b76f051db026f4e322d0be081468fab99440f9e7305",
	},
	{
		testCaseId:   5,
		hashStrategy: md5.New,
		data:         toData("a", "b", "c"),
		expectedHash: "52b6509321dfb8a9d52d5308087fd502",
	},
}

func Test_NewTree(t *testing.T) {
	for _, tst := range table {
		tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		if tree.RootHex() != tst.expectedHash {
			t.Errorf("[case:%d] error: expected hash equal to %v got %v", tst.testCaseId, tst.expectedHash, tree.RootHex())
		}
	}
}

func Test_NewTreeWithDefault(t *testing.T) {
	for _, tst := range table[:5] {
		tree, err := merkle.NewTree(tst.data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		exp, _ := hex.DecodeString(tst.expectedHash)
		if !bytes.Equal(tree.MerkleRoot, exp) {
			t.Errorf("[case:%d] error: expected hash equal to %x got %x", tst.testCaseId, exp, tree.MerkleRoot)
		}
	}
}

func Test_EmptyTree(t *testing.T) {
	tree, err := merkle.NewTree([]Data{})
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}
	if tree.RootHex() != "" {
		t.Errorf("error: expected empty root got %q", tree.RootHex())
	}
	if tree.Root != nil || len(tree.Values()) != 0 {
		t.Errorf("error: expected no nodes or values")
	}
	if err := tree.Verify(); err != nil {
		t.Errorf("error: expected empty tree to verify: %v", err)
	}
}

func Test_Deterministic(t *testing.T) {
	for _, tst := range table {
		tree1, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		tree2, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		if tree1.RootHex() != tree2.RootHex() {
			t.Errorf("[case:%d] error: expected the same root for the same input", tst.testCaseId)
		}
	}
}

func Test_OrderMatters(t *testing.T) {
	ab, err := merkle.NewTree(toData("a", "b"))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}
	ba, err := merkle.NewTree(toData("b", "a"))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}
	if ab.RootHex() == ba.RootHex() {
		t.Errorf("error: expected reordering to change the root")
	}
	if ba.RootHex() != "18d79cb747ea174c59f3a3b41768672526d56fecc58360a99d283d0f9b0a3cc0" {
		t.Errorf("error: unexpected root for reordered input %s", ba.RootHex())
	}

	abc, _ := merkle.NewTree(toData("a", "b", "c"))
	acb, _ := merkle.NewTree(toData("a", "c", "b"))
	if abc.RootHex() == acb.RootHex() {
		t.Errorf("error: expected reordering an odd sized input to change the root")
	}
}

func Test_RebuildTree(t *testing.T) {
	for _, tst := range table {
		tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		if err := tree.Rebuild(); err != nil {
			t.Fatalf("[case:%d] error: unexpected error:  %v", tst.testCaseId, err)
		}
		if tree.RootHex() != tst.expectedHash {
			t.Errorf("[case:%d] error: expected hash equal to %v got %v", tst.testCaseId, tst.expectedHash, tree.RootHex())
		}
	}
}

func Test_RebuildTreeWith(t *testing.T) {
	for i := 0; i < len(table)-2; i++ {
		tree, err := merkle.NewTree(table[i].data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		if err := tree.Generate(table[i+1].data); err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		if tree.RootHex() != table[i+1].expectedHash {
			t.Errorf("[case:%d] error: expected hash equal to %v got %v", table[i].testCaseId, table[i+1].expectedHash, tree.RootHex())
		}
	}
}

func Test_VerifyTree(t *testing.T) {
	for _, tst := range table {
		tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		if err := tree.Verify(); err != nil {
			t.Errorf("[case:%d] error: expected tree to be valid: %v", tst.testCaseId, err)
		}
		tree.MerkleRoot = []byte{1}
		if err := tree.Verify(); err == nil {
			t.Errorf("[case:%d] error: expected tree to be invalid", tst.testCaseId)
		}
	}
}

func Test_VerifyData(t *testing.T) {
	for _, tst := range table {
		tree, err := merkle.NewTree(tst.data, merkle.WithHashStrategy[Data](tst.hashStrategy))
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		for _, d := range tst.data {
			if err := tree.VerifyData(d); err != nil {
				t.Errorf("[case:%d] error: expected valid content %q: %v", tst.testCaseId, d.x, err)
			}
		}
		if err := tree.VerifyData(Data{x: "NotInTestTable"}); err == nil {
			t.Errorf("[case:%d] error: expected invalid content", tst.testCaseId)
		}
	}
}

func Test_Proof(t *testing.T) {
	data := toData("a", "b", "c", "d", "e")

	tree, err := merkle.NewTree(data)
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	for _, d := range data {
		proof, order, err := tree.Proof(d)
		if err != nil {
			t.Fatalf("error: unexpected error: %v", err)
		}
		if len(proof) != 3 {
			t.Errorf("error: expected a proof of 3 levels for %q, got %d", d.x, len(proof))
		}

		leaf, _ := d.Hash()
		if !merkle.VerifyProof(leaf, proof, order, tree.MerkleRoot, sha256.New) {
			t.Errorf("error: expected the proof for %q to verify", d.x)
		}

		other, _ := Data{x: "z"}.Hash()
		if merkle.VerifyProof(other, proof, order, tree.MerkleRoot, sha256.New) {
			t.Errorf("error: expected the proof to fail for different data")
		}
	}
}

func Test_Values(t *testing.T) {
	for _, tst := range table {
		tree, err := merkle.NewTree(tst.data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", tst.testCaseId, err)
		}
		values := tree.Values()
		if len(values) != len(tst.data) {
			t.Fatalf("[case:%d] error: expected %d values got %d", tst.testCaseId, len(tst.data), len(values))
		}
		for i := range values {
			if !values[i].Equals(tst.data[i]) {
				t.Errorf("[case:%d] error: expected value %d to be %q got %q", tst.testCaseId, i, tst.data[i].x, values[i].x)
			}
		}
	}
}
