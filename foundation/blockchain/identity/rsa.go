package identity

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
)

// rsaSigner signs with RSASSA-PKCS1-v1_5 over a SHA-256 digest.
type rsaSigner struct {
	privateKey *rsa.PrivateKey
}

func newRSASigner(bits int) (*rsaSigner, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, err
	}

	return &rsaSigner{privateKey: privateKey}, nil
}

func (s *rsaSigner) sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	return rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
}

func (s *rsaSigner) public() PublicKey {
	return rsaPublicKey{key: &s.privateKey.PublicKey}
}

// =============================================================================

// rsaPublicKey implements the PublicKey interface for RSA.
type rsaPublicKey struct {
	key *rsa.PublicKey
}

// Scheme returns the name of the signature scheme.
func (pk rsaPublicKey) Scheme() string {
	return SchemeRSA
}

// Verify checks the signature against the SHA-256 digest of msg.
func (pk rsaPublicKey) Verify(msg []byte, sig []byte) error {
	digest := sha256.Sum256(msg)
	return rsa.VerifyPKCS1v15(pk.key, crypto.SHA256, digest[:], sig)
}

// Bytes returns the PKIX, ASN.1 DER form of the key.
func (pk rsaPublicKey) Bytes() []byte {
	der, err := x509.MarshalPKIXPublicKey(pk.key)
	if err != nil {
		return nil
	}
	return der
}

// String returns the key PEM encoded.
func (pk rsaPublicKey) String() string {
	block := pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pk.Bytes(),
	}
	return string(pem.EncodeToMemory(&block))
}
