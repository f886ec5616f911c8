// Package memory keeps the chain in process memory. Nothing survives a
// restart of the process.
package memory

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Memory stores blocks in a slice indexed by block number and implements
// the database.Storage interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.BlockData
	byHash map[string]uint64
}

// New constructs an empty store.
func New() *Memory {
	return &Memory{
		byHash: make(map[string]uint64),
	}
}

// Close has nothing to release.
func (m *Memory) Close() error {
	return nil
}

// Write appends the block. It must be the next number and link to the hash
// of the last stored block.
func (m *Memory) Write(blockData database.BlockData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := uint64(len(m.blocks))
	if blockData.Header.Number != next {
		return fmt.Errorf("block[%d] is out of order, expecting block[%d]", blockData.Header.Number, next)
	}

	if next > 0 && blockData.Header.PrevBlockHash != m.blocks[next-1].Hash {
		return fmt.Errorf("block[%d] doesn't link to block[%d]", next, next-1)
	}

	if _, exists := m.byHash[blockData.Hash]; exists {
		return errors.New("block hash already stored")
	}

	blockData.Trans = slices.Clone(blockData.Trans)
	m.blocks = append(m.blocks, blockData)
	m.byHash[blockData.Hash] = next

	return nil
}

// GetBlock returns a copy of the block with the specified number.
func (m *Memory) GetBlock(num uint64) (database.BlockData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint64(len(m.blocks)) {
		return database.BlockData{}, database.ErrBlockNotFound
	}

	return clone(m.blocks[num]), nil
}

// GetBlockByHash returns a copy of the block with the specified hash.
func (m *Memory) GetBlockByHash(hash string) (database.BlockData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	num, exists := m.byHash[hash]
	if !exists {
		return database.BlockData{}, database.ErrBlockNotFound
	}

	return clone(m.blocks[num]), nil
}

// ForEach returns an iterator over the blocks stored at the time of the call.
// Blocks written afterwards are not visited.
func (m *Memory) ForEach() database.Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &iterator{blocks: slices.Clone(m.blocks)}
}

// Reset drops every block.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil
	clear(m.byHash)

	return nil
}

func clone(blockData database.BlockData) database.BlockData {
	blockData.Trans = slices.Clone(blockData.Trans)
	return blockData
}

// =============================================================================

// iterator walks a snapshot of the chain.
type iterator struct {
	blocks []database.BlockData
	next   int
	done   bool
}

// Next returns the next block in the snapshot.
func (it *iterator) Next() (database.BlockData, error) {
	if it.next >= len(it.blocks) {
		it.done = true
		return database.BlockData{}, database.ErrBlockNotFound
	}

	blockData := clone(it.blocks[it.next])
	it.next++

	return blockData, nil
}

// Done reports the end of the snapshot was reached.
func (it *iterator) Done() bool {
	return it.done
}
