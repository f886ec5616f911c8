// Package signature provides helper functions for handling the blockchain
// signature and hashing needs.
package signature

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Signer represents the behavior required to produce signatures. It is
// implemented by the node identity.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
}

// Verifier represents the behavior required to verify signatures. It is
// implemented by the public key of the node identity.
type Verifier interface {
	Verify(msg []byte, sig []byte) error
}

// Encodable represents a value that can write its canonical encoding.
type Encodable interface {
	Encode(enc *Encoder)
}

// =============================================================================

// Hash returns the lower case hex encoded sha256 digest of the data. There
// is no 0x prefix so the proof of work can match on leading zeros.
func Hash(data []byte) string {
	return hex.EncodeToString(Digest(data))
}

// Digest returns the raw sha256 digest of the data.
func Digest(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// HashValue returns the hash of the canonical encoding of the value.
func HashValue(value Encodable) string {
	return Hash(Encode(value))
}

// Encode returns the canonical encoding of the value.
func Encode(value Encodable) []byte {
	enc := NewEncoder()
	value.Encode(enc)
	return enc.Bytes()
}

// Sign uses the specified signer to sign the canonical encoding of the value.
func Sign(value Encodable, signer Signer) ([]byte, error) {
	return signer.Sign(Encode(value))
}

// Verify checks the signature against the canonical encoding of the value.
// A malformed or missing signature is reported as false.
func Verify(value Encodable, sig []byte, verifier Verifier) bool {
	if len(sig) == 0 || verifier == nil {
		return false
	}

	return verifier.Verify(Encode(value), sig) == nil
}

// SignatureString returns the signature as a 0x prefixed hex string.
func SignatureString(sig []byte) string {
	if len(sig) == 0 {
		return ""
	}
	return hexutil.Encode(sig)
}

// ToSignatureBytes converts a hex representation of the signature back into
// its bytes.
func ToSignatureBytes(sigStr string) ([]byte, error) {
	if sigStr == "" {
		return nil, nil
	}
	return hexutil.Decode(sigStr)
}
