package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/merkle"
)

// ErrMaxAttempts is returned when the proof of work gives up after the
// configured number of attempts.
var ErrMaxAttempts = errors.New("proof of work exceeded max attempts")

// MaxDifficulty is the length of a hex encoded sha256 hash.
const MaxDifficulty = 64

// =============================================================================

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	PrevBlock   Block
	TimeStamp   uint64 // Milliseconds, the current time is used when zero.
	Difficulty  uint
	MaxAttempts uint64 // Zero means the search is unbounded.
	Trans       []SignedTx
	EvHandler   func(v string, args ...any)
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	ev := args.EvHandler
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	if args.Difficulty > MaxDifficulty {
		return Block{}, fmt.Errorf("difficulty %d is larger than %d", args.Difficulty, MaxDifficulty)
	}

	// Construct a merkle tree from the transactions for this block. The root
	// of this tree will be part of the block to be mined.
	tree, err := merkle.NewTree(args.Trans)
	if err != nil {
		return Block{}, err
	}

	// The timestamp can't go backwards even if the clock does.
	timeStamp := args.TimeStamp
	if timeStamp == 0 {
		timeStamp = uint64(time.Now().UTC().UnixMilli())
	}
	if timeStamp < args.PrevBlock.Header.TimeStamp {
		timeStamp = args.PrevBlock.Header.TimeStamp
	}

	// Construct the block to be mined.
	nb := Block{
		Header: BlockHeader{
			Number:        args.PrevBlock.Header.Number + 1,
			PrevBlockHash: args.PrevBlock.Hash(),
			TimeStamp:     timeStamp,
			MerkleRoot:    tree.RootHex(),
			Nonce:         0, // Will be identified by the POW algorithm.
			Difficulty:    args.Difficulty,
		},
		Trans: tree,
	}

	// Perform the proof of work mining operation.
	if err := nb.performPOW(ctx, args.MaxAttempts, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, maxAttempts uint64, ev func(v string, args ...any)) error {
	ev("database: PerformPOW: MINING: started: blk[%d]", b.Header.Number)
	defer ev("database: PerformPOW: MINING: completed: blk[%d]", b.Header.Number)

	// Log the transactions that are a part of this potential block.
	for _, tx := range b.Trans.Values() {
		ev("database: PerformPOW: MINING: tx[%s]", tx)
	}

	h := newHasher(b.Header.Number, b.Header.PrevBlockHash, b.Header.TimeStamp, b.Header.MerkleRoot, b.Trans.Values())

	// The search starts at 1 and walks the nonce forward by 1.
	var attempts uint64
	for nonce := uint64(1); ; nonce++ {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: PerformPOW: MINING: attempts[%d]", attempts)
		}

		// Did we get cancelled trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: PerformPOW: MINING: CANCELLED: attempts[%d]", attempts)
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := h.hash(nonce)
		if isHashSolved(b.Header.Difficulty, hash) {
			b.Header.Nonce = nonce
			b.hash = hash

			ev("database: PerformPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: nonce[%d]", b.Header.PrevBlockHash, hash, nonce)
			ev("database: PerformPOW: MINING: attempts[%d]", attempts)

			return nil
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			ev("database: PerformPOW: MINING: GAVE UP: attempts[%d]", attempts)
			return fmt.Errorf("%w: %d", ErrMaxAttempts, attempts)
		}
	}
}
