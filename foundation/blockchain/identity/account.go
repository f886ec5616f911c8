package identity

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account derives a 20 byte address from the public key the same way
// Ethereum does, the last 20 bytes of the Keccak256 of the key.
func Account(pub PublicKey) string {
	hash := crypto.Keccak256(pub.Bytes())
	return hexutil.Encode(hash[12:])
}
