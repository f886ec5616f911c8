// Package identity provides the signing identity for a ledger node. One
// identity is generated when the node starts and is never rotated or stored.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Set of signature schemes an identity can be generated with.
const (
	SchemeRSA     = "rsa"
	SchemeSchnorr = "schnorr"
)

// DefaultBits is the RSA key size used when none is configured.
const DefaultBits = 2048

// ErrKeyGeneration is returned when a keypair can't be produced. A node can't
// run without a signing identity so callers should treat this as fatal.
var ErrKeyGeneration = errors.New("key generation failed")

// =============================================================================

// PublicKey represents the behavior required to verify signatures produced
// by an identity.
type PublicKey interface {
	Scheme() string
	Verify(msg []byte, sig []byte) error
	Bytes() []byte
	String() string
}

// signer is the private half of a keypair.
type signer interface {
	sign(msg []byte) ([]byte, error)
	public() PublicKey
}

// =============================================================================

// Config represents the settings used to generate an identity.
type Config struct {
	Scheme string
	Bits   int
}

// Identity owns a private key and hands out its public key to verifiers.
type Identity struct {
	signer signer
	pub    PublicKey
}

// New generates a new keypair based on the configured scheme.
func New(cfg Config) (*Identity, error) {
	var s signer
	var err error

	switch strings.ToLower(cfg.Scheme) {
	case "", SchemeRSA:
		bits := cfg.Bits
		if bits == 0 {
			bits = DefaultBits
		}
		s, err = newRSASigner(bits)

	case SchemeSchnorr:
		s, err = newSchnorrSigner()

	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrKeyGeneration, cfg.Scheme)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}

	id := Identity{
		signer: s,
		pub:    s.public(),
	}

	return &id, nil
}

// Sign produces a signature over the specified message.
func (id *Identity) Sign(msg []byte) ([]byte, error) {
	return id.signer.sign(msg)
}

// PublicKey returns the public key for verification.
func (id *Identity) PublicKey() PublicKey {
	return id.pub
}

// Account returns the short account address for this identity.
func (id *Identity) Account() string {
	return Account(id.pub)
}
