package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
)

// RetrieveChain returns a copy of every block in the chain starting with the
// genesis block. An uninitialized chain returns no blocks.
func (s *State) RetrieveChain() ([]database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Blocks()
}

// RetrieveMempool returns a copy of the pending pool in submission order.
func (s *State) RetrieveMempool() []database.SignedTx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// RetrieveLatestBlock returns a copy the current latest block. The bool is
// false when the chain is not initialized.
func (s *State) RetrieveLatestBlock() (database.Block, bool) {
	return s.db.LatestBlock()
}

// RetrievePublicKey returns the public key of the ledger identity.
func (s *State) RetrievePublicKey() identity.PublicKey {
	return s.identity.PublicKey()
}

// RetrieveAccount returns the account address of the ledger identity.
func (s *State) RetrieveAccount() string {
	return s.identity.Account()
}

// RetrieveDifficulty returns the difficulty new blocks are sealed with.
func (s *State) RetrieveDifficulty() uint {
	return s.difficulty
}

// IsAutoSeal reports whether submissions signal the worker to seal.
func (s *State) IsAutoSeal() bool {
	return s.autoSeal
}
