package state

import (
	"fmt"
)

// VerifyChain walks the full chain validating every block against its parent
// and every transaction signature against the ledger identity.
func (s *State) VerifyChain() error {
	blocks, err := s.RetrieveChain()
	if err != nil {
		return err
	}

	if len(blocks) == 0 {
		return ErrUninitialized
	}

	if err := blocks[0].ValidateGenesis(); err != nil {
		return err
	}

	pub := s.identity.PublicKey()
	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateDifficulty(s.difficulty); err != nil {
			return err
		}

		if err := blocks[i].ValidateBlock(blocks[i-1], s.evHandler); err != nil {
			return err
		}

		for _, tx := range blocks[i].Values() {
			if err := tx.Validate(pub); err != nil {
				return fmt.Errorf("block[%d]: %w", blocks[i].Header.Number, err)
			}
		}
	}

	s.evHandler("state: VerifyChain: blocks[%d] verified", len(blocks))

	return nil
}
