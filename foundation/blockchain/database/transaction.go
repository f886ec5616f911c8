package database

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// ErrSignatureVerificationFailed is returned when a signed transaction does
// not verify against the public key of the ledger identity.
var ErrSignatureVerificationFailed = errors.New("signature verification failed")

// =============================================================================

// Tx is the transactional information between two parties. Business rules
// such as positive amounts are not enforced at this level.
type Tx struct {
	Index    uint64  `json:"index"`    // Position of the transaction in the pending pool when it was signed.
	Sender   string  `json:"sender"`   // Name of the party paying.
	Receiver string  `json:"receiver"` // Name of the party being paid.
	Amount   float64 `json:"amount"`   // Amount transferred.
}

// NewTx constructs a new transaction.
func NewTx(index uint64, sender string, receiver string, amount float64) Tx {
	return Tx{
		Index:    index,
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}
}

// Encode writes the canonical encoding of the transaction. The field order
// is fixed and is what gets signed.
func (tx Tx) Encode(enc *signature.Encoder) {
	enc.Uint(tx.Index).String(tx.Sender).String(tx.Receiver).Float(tx.Amount)
}

// Sign uses the specified signer to sign the transaction.
func (tx Tx) Sign(signer signature.Signer) (SignedTx, error) {
	sig, err := signature.Sign(tx, signer)
	if err != nil {
		return SignedTx{}, fmt.Errorf("signing tx: %w", err)
	}

	signedTx := SignedTx{
		Tx:        tx,
		Signature: sig,
	}

	return signedTx, nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%d:%s->%s:%v", tx.Index, tx.Sender, tx.Receiver, tx.Amount)
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is what sits in the
// pending pool and what is recorded inside a block.
type SignedTx struct {
	Tx
	Signature []byte `json:"signature"`
}

// Encode writes the canonical encoding of the signed transaction. This is the
// form used for merkle leaves and block hashing.
func (tx SignedTx) Encode(enc *signature.Encoder) {
	enc.Value(tx.Tx).Raw(tx.Signature)
}

// Verify reports whether the signature belongs to the transaction data under
// the specified public key.
func (tx SignedTx) Verify(verifier signature.Verifier) bool {
	return signature.Verify(tx.Tx, tx.Signature, verifier)
}

// Validate verifies the transaction has a proper signature.
func (tx SignedTx) Validate(verifier signature.Verifier) error {
	if !tx.Verify(verifier) {
		return fmt.Errorf("tx[%s]: %w", tx.Tx, ErrSignatureVerificationFailed)
	}

	return nil
}

// SignatureString returns the signature as a string.
func (tx SignedTx) SignatureString() string {
	return signature.SignatureString(tx.Signature)
}

// Hash implements the merkle Hashable interface for providing a hash
// of a signed transaction.
func (tx SignedTx) Hash() ([]byte, error) {
	return signature.Digest(signature.Encode(tx)), nil
}

// Equals implements the merkle Hashable interface for providing an equality
// check between two signed transactions. Transactions are equal when their
// canonical encodings are, so a transaction always equals itself.
func (tx SignedTx) Equals(otherTx SignedTx) bool {
	return bytes.Equal(signature.Encode(tx), signature.Encode(otherTx))
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	return tx.Tx.String()
}
