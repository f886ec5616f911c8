package identity

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/sign/schnorr"
	"go.dedis.ch/kyber/v4/suites"
)

// suite is the group schnorr identities are generated on.
var suite = suites.MustFind("Ed25519")

// schnorrSigner signs using a Schnorr signature on the Ed25519 curve.
type schnorrSigner struct {
	privateKey kyber.Scalar
	publicKey  kyber.Point
}

func newSchnorrSigner() (*schnorrSigner, error) {
	privateKey := suite.Scalar().Pick(suite.RandomStream())

	s := schnorrSigner{
		privateKey: privateKey,
		publicKey:  suite.Point().Mul(privateKey, nil),
	}

	return &s, nil
}

func (s *schnorrSigner) sign(msg []byte) ([]byte, error) {
	return schnorr.Sign(suite, s.privateKey, msg)
}

func (s *schnorrSigner) public() PublicKey {
	return schnorrPublicKey{point: s.publicKey}
}

// =============================================================================

// schnorrPublicKey implements the PublicKey interface for Schnorr.
type schnorrPublicKey struct {
	point kyber.Point
}

// Scheme returns the name of the signature scheme.
func (pk schnorrPublicKey) Scheme() string {
	return SchemeSchnorr
}

// Verify checks the signature for the specified message.
func (pk schnorrPublicKey) Verify(msg []byte, sig []byte) error {
	return schnorr.Verify(suite, pk.point, msg, sig)
}

// Bytes returns the marshaled curve point.
func (pk schnorrPublicKey) Bytes() []byte {
	data, err := pk.point.MarshalBinary()
	if err != nil {
		return nil
	}
	return data
}

// String returns the curve point hex encoded.
func (pk schnorrPublicKey) String() string {
	return hexutil.Encode(pk.Bytes())
}
