package state

import (
	"fmt"
	"math"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// SubmitTransaction signs a new transaction with the ledger identity and
// adds it to the pending pool. The index is the position the transaction
// will have in the next block.
func (s *State) SubmitTransaction(sender string, receiver string, amount float64) (database.SignedTx, error) {
	if sender == "" || receiver == "" {
		return database.SignedTx{}, fmt.Errorf("%w: sender and receiver are required", ErrInvalidInput)
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return database.SignedTx{}, fmt.Errorf("%w: amount %v is not a finite number", ErrInvalidInput, amount)
	}

	signedTx, err := s.appendTransaction(sender, receiver, amount)
	if err != nil {
		return database.SignedTx{}, err
	}

	s.evHandler("state: SubmitTransaction: tx[%s] added to mempool", signedTx)

	if s.autoSeal && s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return signedTx, nil
}

// appendTransaction assigns the index, signs and appends the transaction
// as one step so indexes are never handed out twice.
func (s *State) appendTransaction(sender string, receiver string, amount float64) (database.SignedTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Transactions frozen by an in-flight seal belong to that block.
	index := uint64(s.mempool.Count()-s.sealing) + 1

	tx := database.NewTx(index, sender, receiver, amount)

	signedTx, err := tx.Sign(s.identity)
	if err != nil {
		return database.SignedTx{}, err
	}

	s.mempool.Append(signedTx)

	return signedTx, nil
}
