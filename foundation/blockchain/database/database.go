// Package database handles all the lower level support for maintaining the
// blockchain: blocks, transactions, hashing, proof of work and the ordered
// set of blocks that make up the chain.
package database

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBlockNotFound is returned when a block number is outside the chain.
var ErrBlockNotFound = errors.New("block does not exist")

// =============================================================================

// Storage interface represents the behavior required to be implemented by any
// package providing support for storing and reading the blockchain.
type Storage interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// DatabaseIterator walks the chain converting stored data into blocks.
type DatabaseIterator struct {
	iterator Iterator
}

// Next retrieves the next block from storage.
func (di *DatabaseIterator) Next() (Block, error) {
	blockData, err := di.iterator.Next()
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData)
}

// Done returns the end of chain value.
func (di *DatabaseIterator) Done() bool {
	return di.iterator.Done()
}

// =============================================================================

// Database manages the ordered set of blocks. It only accepts a genesis block
// into an empty chain and otherwise only the next valid block.
type Database struct {
	mu            sync.RWMutex
	latestBlock   Block
	count         uint64
	minDifficulty uint
	evHandler     func(v string, args ...any)

	storage Storage
}

// WithMinDifficulty sets the lowest difficulty a non-genesis block may claim.
// The difficulty isn't part of the block hash.
func WithMinDifficulty(difficulty uint) func(db *Database) {
	return func(db *Database) {
		db.minDifficulty = difficulty
	}
}

// New constructs a new database and loads and validates any blocks the
// storage already holds.
func New(storage Storage, evHandler func(v string, args ...any), options ...func(db *Database)) (*Database, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	db := Database{
		storage:   storage,
		evHandler: ev,
	}

	for _, option := range options {
		option(&db)
	}

	iter := db.storage.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		block, err := ToBlock(blockData)
		if err != nil {
			return nil, err
		}

		if err := db.validate(block); err != nil {
			return nil, err
		}

		db.latestBlock = block
		db.count++
	}

	return &db, nil
}

// Close closes the storage.
func (db *Database) Close() {
	db.storage.Close()
}

// Reset clears out the chain.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return err
	}

	db.latestBlock = Block{}
	db.count = 0

	return nil
}

// Write validates the block against the current end of the chain and
// appends it.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.validate(block); err != nil {
		return err
	}

	if err := db.storage.Write(NewBlockData(block)); err != nil {
		return fmt.Errorf("write block[%d]: %w", block.Header.Number, err)
	}

	db.latestBlock = block
	db.count++

	return nil
}

// Count returns the number of blocks in the chain.
func (db *Database) Count() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.count
}

// LatestBlock returns the latest block. The bool is false when the chain
// is empty.
func (db *Database) LatestBlock() (Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock, db.count > 0
}

// GetBlock searches the blockchain to locate and return the contents of
// the specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= db.count {
		return Block{}, fmt.Errorf("block[%d]: %w", num, ErrBlockNotFound)
	}

	blockData, err := db.storage.GetBlock(num)
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData)
}

// ForEach returns an iterator to walk through all the blocks
// starting with the genesis block.
func (db *Database) ForEach() DatabaseIterator {
	return DatabaseIterator{iterator: db.storage.ForEach()}
}

// Blocks returns a copy of every block in the chain in order.
func (db *Database) Blocks() ([]Block, error) {
	var blocks []Block

	iter := db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// =============================================================================

// validate checks the block can be the next block in the chain.
func (db *Database) validate(block Block) error {
	if db.count == 0 {
		return block.ValidateGenesis()
	}

	if err := block.ValidateDifficulty(db.minDifficulty); err != nil {
		return err
	}

	return block.ValidateBlock(db.latestBlock, db.evHandler)
}
