// Package state is the core API for the ledger and implements all the
// business rules and processing for extending the chain.
package state

import (
	"errors"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// Set of error variables for the ledger operations.
var (
	ErrAlreadyInitialized = errors.New("chain already initialized")
	ErrUninitialized      = errors.New("chain not initialized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoTransactions     = errors.New("no transactions in mempool")
)

// DefaultDifficulty is the number of leading zeros a block hash needs when
// no difficulty is configured.
const DefaultDifficulty = 4

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for sealing blocks in the background.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Identity    *identity.Identity
	Storage     database.Storage
	Difficulty  uint
	MaxAttempts uint64
	AutoSeal    bool
	EvHandler   EventHandler
}

// State manages the chain of blocks and the pending pool. All changes to
// either go through mu. Seals are serialized by sealMu which is held for the
// full proof of work so submissions are never blocked by the search.
type State struct {
	mu      sync.Mutex
	sealMu  sync.Mutex
	sealing int

	identity    *identity.Identity
	difficulty  uint
	maxAttempts uint64
	autoSeal    bool
	evHandler   EventHandler

	mempool *mempool.Mempool
	db      *database.Database

	Worker Worker
}

// New constructs a new ledger for data management.
func New(cfg Config) (*State, error) {
	if cfg.Identity == nil {
		return nil, errors.New("identity is required")
	}
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}
	if cfg.Difficulty > database.MaxDifficulty {
		return nil, errors.New("difficulty can't be larger than the hash")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	difficulty := cfg.Difficulty
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}

	// Access the storage for the blockchain. Blocks already stored must have
	// been sealed with at least the configured difficulty.
	db, err := database.New(cfg.Storage, ev, database.WithMinDifficulty(difficulty))
	if err != nil {
		return nil, err
	}

	// Create the State to provide support for managing the ledger.
	state := State{
		identity:    cfg.Identity,
		difficulty:  difficulty,
		maxAttempts: cfg.MaxAttempts,
		autoSeal:    cfg.AutoSeal,
		evHandler:   ev,

		mempool: mempool.New(),
		db:      db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Make sure the storage is properly closed.
	defer func() {
		s.db.Close()
	}()

	// Stop all background sealing.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
