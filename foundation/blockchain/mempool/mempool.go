// Package mempool maintains the pending pool of signed transactions waiting
// to be sealed into the next block.
package mempool

import (
	"slices"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Mempool represents an ordered cache of signed transactions. The order is
// the order of submission and is the order they are sealed in.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.SignedTx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool and returns the new size.
func (mp *Mempool) Append(tx database.SignedTx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Delete removes the first occurrence of the transaction from the pool. It
// reports whether the transaction was found.
func (mp *Mempool) Delete(tx database.SignedTx) bool {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i := range mp.pool {
		if mp.pool[i].Equals(tx) {
			mp.pool = slices.Delete(mp.pool, i, i+1)
			return true
		}
	}

	return false
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns a snapshot of the pool in submission order. Changes to the
// pool after the call are not reflected in the snapshot.
func (mp *Mempool) Copy() []database.SignedTx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return slices.Clone(mp.pool)
}
