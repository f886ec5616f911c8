package state

import (
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// InitGenesis creates the genesis block for an empty chain.
func (s *State) InitGenesis() (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db.Count() > 0 {
		return database.Block{}, ErrAlreadyInitialized
	}

	genesis := database.Genesis(uint64(time.Now().UTC().UnixMilli()))

	if err := s.db.Write(genesis); err != nil {
		return database.Block{}, fmt.Errorf("write genesis: %w", err)
	}

	s.evHandler("state: InitGenesis: genesis created: blk[%s]", genesis.Hash())
	s.blockEvent(genesis)

	return genesis, nil
}
