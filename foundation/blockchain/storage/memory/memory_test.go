package memory_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestMemory(t *testing.T) {
	t.Log("Given the need to store blocks in memory.")
	{
		m := memory.New()

		genesis := database.NewBlockData(database.Genesis(1000))
		if err := m.Write(genesis); err != nil {
			t.Fatalf("\t%s\tShould be able to write the genesis block: %s", failed, err)
		}

		out := database.BlockData{Header: database.BlockHeader{Number: 5}}
		if err := m.Write(out); err == nil {
			t.Fatalf("\t%s\tShould not write a block out of order.", failed)
		}
		t.Logf("\t%s\tShould only write blocks in order.", success)

		if _, err := m.GetBlockByHash(genesis.Hash); err != nil {
			t.Fatalf("\t%s\tShould find the block by hash: %s", failed, err)
		}

		if _, err := m.GetBlock(1); !errors.Is(err, database.ErrBlockNotFound) {
			t.Fatalf("\t%s\tShould not find a missing block: %v", failed, err)
		}

		unlinked := database.BlockData{Hash: "ab", Header: database.BlockHeader{Number: 1, PrevBlockHash: "ff"}}
		if err := m.Write(unlinked); err == nil {
			t.Fatalf("\t%s\tShould not write a block that doesn't link.", failed)
		}
		t.Logf("\t%s\tShould only write blocks that link to the chain.", success)

		var count int
		iter := m.ForEach()
		for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
			if err != nil {
				t.Fatalf("\t%s\tShould be able to iterate: %s", failed, err)
			}
			if blockData.Hash != genesis.Hash {
				t.Fatalf("\t%s\tShould get back the genesis block.", failed)
			}
			count++
		}
		if count != 1 {
			t.Fatalf("\t%s\tShould iterate over 1 block, got %d.", failed, count)
		}
		t.Logf("\t%s\tShould iterate over the stored blocks.", success)

		m.Reset()
		if _, err := m.GetBlock(0); err == nil {
			t.Fatalf("\t%s\tShould have no blocks after a reset.", failed)
		}
		t.Logf("\t%s\tShould have no blocks after a reset.", success)
	}
}
