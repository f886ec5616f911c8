package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Count()
}

// QueryBlocksByNumber returns the set of blocks based on block numbers. A
// range outside the chain is clipped to the latest block.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	latest, ok := s.db.LatestBlock()
	if !ok {
		return nil
	}

	if from == QueryLatest {
		from = latest.Header.Number
		to = from
	}
	if to == QueryLatest || to > latest.Header.Number {
		to = latest.Header.Number
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.db.GetBlock(i)
		if err != nil {
			s.evHandler("state: getblock: ERROR: %s", err)
			return nil
		}
		out = append(out, block)
	}

	return out
}

// QueryBlocksByName returns the set of blocks holding a transaction where the
// name is the sender or the receiver. If the name is empty, all blocks are
// returned.
func (s *State) QueryBlocksByName(name string) ([]database.Block, error) {
	var out []database.Block

	iter := s.db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if name == "" {
			out = append(out, block)
			continue
		}

		for _, tx := range block.Values() {
			if tx.Sender == name || tx.Receiver == name {
				out = append(out, block)
				break
			}
		}
	}

	return out, nil
}
