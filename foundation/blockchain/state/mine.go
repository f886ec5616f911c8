package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// SealNewBlock takes a snapshot of the pending pool and attempts to create a
// new block with a proper hash that can become the next block in the chain.
// Transactions submitted while the proof of work runs stay in the pool for
// the next block. A cancelled or failed seal leaves the pool and the chain
// untouched.
func (s *State) SealNewBlock(ctx context.Context) (database.Block, error) {
	s.sealMu.Lock()
	defer s.sealMu.Unlock()

	s.evHandler("state: SealNewBlock: MINING: check mempool count")

	trans, prevBlock, err := s.freezeMempool()
	if err != nil {
		return database.Block{}, err
	}
	defer s.releaseMempool()

	s.evHandler("state: SealNewBlock: MINING: verify signatures: trans[%d]", len(trans))

	pub := s.identity.PublicKey()
	for _, tx := range trans {
		if err := tx.Validate(pub); err != nil {
			return database.Block{}, err
		}
	}

	s.evHandler("state: SealNewBlock: MINING: perform POW")

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	block, err := database.POW(ctx, database.POWArgs{
		PrevBlock:   prevBlock,
		Difficulty:  s.difficulty,
		MaxAttempts: s.maxAttempts,
		Trans:       trans,
		EvHandler:   s.evHandler,
	})
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: SealNewBlock: MINING: update local state")

	if err := s.updateLocalState(block); err != nil {
		return database.Block{}, err
	}

	s.blockEvent(block)

	return block, nil
}

// =============================================================================

// freezeMempool takes the snapshot of transactions for the next block and
// marks them as owned by the seal in progress.
func (s *State) freezeMempool() ([]database.SignedTx, database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mempool.Count() == 0 {
		return nil, database.Block{}, ErrNoTransactions
	}

	prevBlock, ok := s.db.LatestBlock()
	if !ok {
		return nil, database.Block{}, ErrUninitialized
	}

	trans := s.mempool.Copy()
	s.sealing = len(trans)

	return trans, prevBlock, nil
}

// releaseMempool hands the frozen transactions back to the pool.
func (s *State) releaseMempool() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sealing = 0
}

// updateLocalState appends the block to the chain and removes its
// transactions from the pool in one step.
func (s *State) updateLocalState(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: updateLocalState: write block[%d]", block.Header.Number)

	if err := s.db.Write(block); err != nil {
		return fmt.Errorf("write block: %w", err)
	}

	s.evHandler("state: updateLocalState: remove from mempool")

	for _, tx := range block.Values() {
		s.evHandler("state: updateLocalState: tx[%s] remove", tx)
		s.mempool.Delete(tx)
	}
	s.sealing = 0

	return nil
}

// blockEvent sends a block event to any viewers.
func (s *State) blockEvent(block database.Block) {
	data, err := json.Marshal(database.NewBlockData(block))
	if err != nil {
		s.evHandler("state: blockEvent: ERROR: %s", err)
		return
	}

	s.evHandler("viewer: block: %s", string(data))
}
