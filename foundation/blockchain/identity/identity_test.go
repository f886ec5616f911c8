package identity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_SignVerify(t *testing.T) {
	tt := []struct {
		name   string
		cfg    identity.Config
		prefix string
	}{
		{name: "rsa", cfg: identity.Config{Scheme: identity.SchemeRSA, Bits: 2048}, prefix: "-----BEGIN PUBLIC KEY-----"},
		{name: "schnorr", cfg: identity.Config{Scheme: identity.SchemeSchnorr}, prefix: "0x"},
	}

	t.Log("Given the need to sign and verify messages with an identity.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen using the %s scheme.", testID, tst.name)
				{
					id, err := identity.New(tst.cfg)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to generate an identity: %s", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to generate an identity.", success, testID)

					msg := []byte("alice->bob:10")
					sig, err := id.Sign(msg)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to sign a message: %s", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to sign a message.", success, testID)

					pub := id.PublicKey()
					if err := pub.Verify(msg, sig); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to verify the signature: %s", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to verify the signature.", success, testID)

					if err := pub.Verify([]byte("alice->bob:11"), sig); err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould reject a signature for a different message.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject a signature for a different message.", success, testID)

					if err := pub.Verify(msg, []byte{1, 2, 3}); err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould reject a malformed signature.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject a malformed signature.", success, testID)

					if pub.Scheme() != tst.name {
						t.Fatalf("\t%s\tTest %d:\tShould report the scheme, got %s.", failed, testID, pub.Scheme())
					}
					if !strings.HasPrefix(pub.String(), tst.prefix) {
						t.Fatalf("\t%s\tTest %d:\tShould encode the public key for display: %s", failed, testID, pub.String())
					}
					t.Logf("\t%s\tTest %d:\tShould describe the public key.", success, testID)

					account := id.Account()
					if len(account) != 42 || !strings.HasPrefix(account, "0x") {
						t.Fatalf("\t%s\tTest %d:\tShould derive a 20 byte account, got %s.", failed, testID, account)
					}
					if account != identity.Account(pub) {
						t.Fatalf("\t%s\tTest %d:\tShould derive the same account from the public key.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould derive an account from the public key.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_KeyGenerationFailure(t *testing.T) {
	t.Log("Given the need to report key generation failures.")
	{
		t.Logf("\tTest 0:\tWhen asking for an unknown scheme or a weak key.")
		{
			if _, err := identity.New(identity.Config{Scheme: "dsa"}); !errors.Is(err, identity.ErrKeyGeneration) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrKeyGeneration for an unknown scheme: %v", failed, err)
			}
			if _, err := identity.New(identity.Config{Scheme: identity.SchemeRSA, Bits: 256}); !errors.Is(err, identity.ErrKeyGeneration) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrKeyGeneration for a weak key: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrKeyGeneration.", success)
		}
	}
}
