package public

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// NewTx is what clients send to submit a transaction. The ledger identity
// signs it, so no signature is accepted from the client.
type NewTx struct {
	Sender   string   `json:"sender" validate:"required"`
	Receiver string   `json:"receiver" validate:"required"`
	Amount   *float64 `json:"amount" validate:"required"`
}

// Tx is a signed transaction as shown to clients.
type Tx struct {
	Index     uint64  `json:"index"`
	Sender    string  `json:"sender"`
	Receiver  string  `json:"receiver"`
	Amount    float64 `json:"amount"`
	Signature string  `json:"signature"`
}

func toTx(tx database.SignedTx) Tx {
	return Tx{
		Index:     tx.Index,
		Sender:    tx.Sender,
		Receiver:  tx.Receiver,
		Amount:    tx.Amount,
		Signature: tx.SignatureString(),
	}
}

func toTxs(trans []database.SignedTx) []Tx {
	out := make([]Tx, len(trans))
	for i, tx := range trans {
		out[i] = toTx(tx)
	}
	return out
}

// Block is a sealed block as shown to clients.
type Block struct {
	Number        uint64 `json:"number"`
	Hash          string `json:"hash"`
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     uint64 `json:"timestamp"`
	MerkleRoot    string `json:"merkle_root"`
	Nonce         uint64 `json:"nonce"`
	Difficulty    uint   `json:"difficulty"`
	Transactions  []Tx   `json:"transactions"`
}

func toBlock(b database.Block) Block {
	return Block{
		Number:        b.Header.Number,
		Hash:          b.Hash(),
		PrevBlockHash: b.Header.PrevBlockHash,
		TimeStamp:     b.Header.TimeStamp,
		MerkleRoot:    b.Header.MerkleRoot,
		Nonce:         b.Header.Nonce,
		Difficulty:    b.Header.Difficulty,
		Transactions:  toTxs(b.Values()),
	}
}

func toBlocks(blocks []database.Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = toBlock(b)
	}
	return out
}

// Identity describes the signing identity of the node.
type Identity struct {
	Scheme     string `json:"scheme"`
	Account    string `json:"account"`
	PublicKey  string `json:"public_key"`
	Difficulty uint   `json:"difficulty"`
	AutoSeal   bool   `json:"auto_seal"`
}

// Verification is the result of walking the chain.
type Verification struct {
	Status string `json:"status"`
	Blocks int    `json:"blocks"`
}
