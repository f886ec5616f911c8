package signature_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

type value struct {
	name   string
	number uint64
	amount float64
}

func (v value) Encode(enc *signature.Encoder) {
	enc.String(v.name).Uint(v.number).Float(v.amount)
}

// =============================================================================

func Test_Encoding(t *testing.T) {
	v := value{name: "alice", number: 7, amount: -2.5}

	const exp = "12:powledger/v1;5:alice;1:7;4:-2.5;"
	const hash = "f80522e2636d844c2f5d9ae68d1533788e2214fadea1c937daeb662c5415a239"

	got := string(signature.Encode(v))
	if got != exp {
		t.Logf("got: %s", got)
		t.Logf("exp: %s", exp)
		t.Fatalf("Should get back the canonical encoding.")
	}

	if got := string(signature.Encode(v)); got != exp {
		t.Fatalf("Should get back the same encoding twice.")
	}

	h := signature.HashValue(v)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}
}

func Test_EncodingSeparators(t *testing.T) {
	a := value{name: "ab;1:c"}
	b := value{name: "ab"}

	if signature.HashValue(a) == signature.HashValue(b) {
		t.Fatalf("Should not allow field content to be confused with separators.")
	}
}

func Test_Hash(t *testing.T) {
	const hash = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	h := signature.Hash([]byte("hello"))
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash.")
	}
}

func Test_Signing(t *testing.T) {
	id, err := identity.New(identity.Config{Scheme: identity.SchemeRSA, Bits: 2048})
	if err != nil {
		t.Fatalf("Should be able to generate an identity: %s", err)
	}

	v := value{name: "bill", number: 1, amount: 10}

	sig, err := signature.Sign(v, id)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if !signature.Verify(v, sig, id.PublicKey()) {
		t.Fatalf("Should be able to verify the signature.")
	}

	str := signature.SignatureString(sig)
	back, err := signature.ToSignatureBytes(str)
	if err != nil {
		t.Fatalf("Should be able to decode the signature string: %s", err)
	}
	if !signature.Verify(v, back, id.PublicKey()) {
		t.Fatalf("Should be able to verify the decoded signature.")
	}

	v.amount = 11
	if signature.Verify(v, sig, id.PublicKey()) {
		t.Fatalf("Should not verify a signature for modified data.")
	}

	if signature.Verify(v, nil, id.PublicKey()) {
		t.Fatalf("Should not verify a missing signature.")
	}

	if signature.Verify(v, []byte("garbage"), id.PublicKey()) {
		t.Fatalf("Should not verify a malformed signature.")
	}
}
