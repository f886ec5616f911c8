package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/merkle"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// GenesisPrevHash is the previous hash recorded in the genesis block.
const GenesisPrevHash = "0"

// ErrBlockInvalid is returned when a block fails validation.
var ErrBlockInvalid = errors.New("block invalid")

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Position of the block in the chain, 0 for genesis.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was sealed in milliseconds.
	MerkleRoot    string `json:"merkle_root"`     // Merkle root of the transactions, empty when there are none.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	Difficulty    uint   `json:"difficulty"`      // Number of leading 0's the hash was sealed with.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header BlockHeader
	Trans  *merkle.Tree[SignedTx]
	hash   string
}

// NewBlock constructs a block from a header and its transactions and
// computes the block hash.
func NewBlock(header BlockHeader, trans []SignedTx) (Block, error) {
	tree, err := merkle.NewTree(trans)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Header: header,
		Trans:  tree,
	}
	b.hash = b.CalculateHash()

	return b, nil
}

// Genesis constructs the first block of a chain. The genesis block has no
// transactions, a nonce of 0 and isn't sealed by proof of work.
func Genesis(timeStamp uint64) Block {
	header := BlockHeader{
		Number:        0,
		PrevBlockHash: GenesisPrevHash,
		TimeStamp:     timeStamp,
		MerkleRoot:    "",
		Nonce:         0,
	}

	// An empty set of transactions can't fail to build a tree.
	b, _ := NewBlock(header, nil)

	return b
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	return b.hash
}

// CalculateHash recomputes the hash of the block from its fields.
func (b Block) CalculateHash() string {
	return ComputeHash(b.Header.Number, b.Header.PrevBlockHash, b.Header.TimeStamp, b.Header.MerkleRoot, b.Header.Nonce, b.Values())
}

// Values returns the transactions in the block.
func (b Block) Values() []SignedTx {
	if b.Trans == nil {
		return nil
	}
	return b.Trans.Values()
}

// ValidateBlock takes a block and validates it to be the next block after
// the previous block.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block number is the next number", b.Header.Number)

	nextNumber := previousBlock.Header.Number + 1
	if b.Header.Number != nextNumber {
		return fmt.Errorf("%w: this block is not the next number, got %d, exp %d", ErrBlockInvalid, b.Header.Number, nextNumber)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: parent hash does match parent block", b.Header.Number)

	if b.Header.PrevBlockHash != previousBlock.Hash() {
		return fmt.Errorf("%w: parent block hash doesn't match our known parent, got %s, exp %s", ErrBlockInvalid, b.Header.PrevBlockHash, previousBlock.Hash())
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block's timestamp is not before parent block's timestamp", b.Header.Number)

	if b.Header.TimeStamp < previousBlock.Header.TimeStamp {
		return fmt.Errorf("%w: block timestamp is before parent block, parent %d, block %d", ErrBlockInvalid, previousBlock.Header.TimeStamp, b.Header.TimeStamp)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block has transactions", b.Header.Number)

	if b.Trans == nil || b.Trans.Count() == 0 {
		return fmt.Errorf("%w: block has no transactions", ErrBlockInvalid)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: merkle root does match transactions", b.Header.Number)

	if b.Header.MerkleRoot != b.Trans.RootHex() {
		return fmt.Errorf("%w: merkle root does not match transactions, got %s, exp %s", ErrBlockInvalid, b.Trans.RootHex(), b.Header.MerkleRoot)
	}

	return b.validateHash()
}

// ValidateDifficulty checks the block was sealed with at least the specified
// difficulty.
func (b Block) ValidateDifficulty(difficulty uint) error {
	if b.Header.Difficulty < difficulty {
		return fmt.Errorf("%w: block[%d] difficulty %d is below %d", ErrBlockInvalid, b.Header.Number, b.Header.Difficulty, difficulty)
	}

	return nil
}

// ValidateGenesis validates the block is a proper genesis block.
func (b Block) ValidateGenesis() error {
	switch {
	case b.Header.Number != 0:
		return fmt.Errorf("%w: genesis number is %d", ErrBlockInvalid, b.Header.Number)
	case b.Header.PrevBlockHash != GenesisPrevHash:
		return fmt.Errorf("%w: genesis previous hash is %q", ErrBlockInvalid, b.Header.PrevBlockHash)
	case b.Header.MerkleRoot != "" || len(b.Values()) != 0:
		return fmt.Errorf("%w: genesis has transactions", ErrBlockInvalid)
	case b.Header.Nonce != 0:
		return fmt.Errorf("%w: genesis nonce is %d", ErrBlockInvalid, b.Header.Nonce)
	}

	if hash := b.CalculateHash(); hash != b.hash {
		return fmt.Errorf("%w: genesis hash doesn't match, got %s, exp %s", ErrBlockInvalid, b.hash, hash)
	}

	return nil
}

// validateHash checks the recorded hash matches the fields and satisfies
// the difficulty the block claims to be sealed with.
func (b Block) validateHash() error {
	hash := b.CalculateHash()
	if hash != b.hash {
		return fmt.Errorf("%w: block hash doesn't match, got %s, exp %s", ErrBlockInvalid, b.hash, hash)
	}

	if !isHashSolved(b.Header.Difficulty, hash) {
		return fmt.Errorf("%w: %s doesn't solve difficulty %d", ErrBlockInvalid, hash, b.Header.Difficulty)
	}

	return nil
}

// =============================================================================

// ComputeHash returns the hash of the block fields. Transactions are included
// using their own canonical encoding, not re-aggregated.
func ComputeHash(number uint64, prevBlockHash string, timeStamp uint64, merkleRoot string, nonce uint64, trans []SignedTx) string {
	return newHasher(number, prevBlockHash, timeStamp, merkleRoot, trans).hash(nonce)
}

// hasher pre-encodes every field of a block except the nonce so the proof of
// work only has to encode the nonce for each attempt.
type hasher struct {
	prefix []byte
	suffix []byte
}

func newHasher(number uint64, prevBlockHash string, timeStamp uint64, merkleRoot string, trans []SignedTx) hasher {
	prefix := signature.NewEncoder()
	prefix.Uint(number).String(prevBlockHash).Uint(timeStamp).String(merkleRoot)

	var suffix signature.Encoder
	suffix.Uint(uint64(len(trans)))
	for _, tx := range trans {
		suffix.Value(tx)
	}

	return hasher{
		prefix: prefix.Bytes(),
		suffix: suffix.Bytes(),
	}
}

func (h hasher) hash(nonce uint64) string {
	var n signature.Encoder
	n.Uint(nonce)
	nb := n.Bytes()

	data := make([]byte, 0, len(h.prefix)+len(nb)+len(h.suffix))
	data = append(data, h.prefix...)
	data = append(data, nb...)
	data = append(data, h.suffix...)

	return signature.Hash(data)
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	if len(hash) != 64 || difficulty > 64 {
		return false
	}

	return strings.HasPrefix(hash, strings.Repeat("0", int(difficulty)))
}

// =============================================================================

// BlockData represents what can be serialized to storage or sent over the
// wire. The merkle tree is rebuilt from the transactions when converted
// back into a Block.
type BlockData struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"block"`
	Trans  []SignedTx  `json:"trans"`
}

// NewBlockData constructs block data from a block.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Hash:   block.Hash(),
		Header: block.Header,
		Trans:  block.Values(),
	}
}

// ToBlock converts a storage block into a database block. The recorded hash
// is kept so validation can detect tampering.
func ToBlock(blockData BlockData) (Block, error) {
	tree, err := merkle.NewTree(blockData.Trans)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Header: blockData.Header,
		Trans:  tree,
		hash:   blockData.Hash,
	}

	return b, nil
}
