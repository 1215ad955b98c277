package signing

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"copt/engine/library"
)

func testKey(seed byte) []byte {
	k := make([]byte, PrivateKeySize)
	for i := range k {
		k[i] = seed + byte(i)
	}
	return k
}

func TestCanonicalMessage(t *testing.T) {
	got := CanonicalMessage(1, 500, 1700000000)
	if got != "1:500:1700000000" {
		t.Fatalf("unexpected canonical message %q", got)
	}
	if got := CanonicalMessage(0, 0, 0); got != "0:0:0" {
		t.Fatalf("unexpected canonical message %q", got)
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, seed := range []byte{1, 7, 42, 200} {
		key := testKey(seed)
		pub, err := PublicKeyOf(key)
		if err != nil {
			t.Fatalf("public key: %v", err)
		}
		if len(pub) != PublicKeySize {
			t.Fatalf("public key is %d bytes", len(pub))
		}
		msg := CanonicalMessage(library.ResidentID(seed), 500, 1700000000)
		sig, err := Sign(key, msg)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if len(sig) != SignatureSize {
			t.Fatalf("signature is %d bytes", len(sig))
		}
		if !Verify(pub, msg, sig) {
			t.Errorf("seed %d: signature did not verify", seed)
		}
		if Verify(pub, msg+"0", sig) {
			t.Errorf("seed %d: signature verified for a different message", seed)
		}
	}
}

func TestSignIsDeterministic(t *testing.T) {
	key := testKey(3)
	a, err := Sign(key, "1:1:1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sign(key, "1:1:1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("expected identical signatures for the same key and message")
	}
}

func TestVerifyRejectsOtherKey(t *testing.T) {
	msg := "2:300:1700000001"
	sig, err := Sign(testKey(1), msg)
	if err != nil {
		t.Fatal(err)
	}
	other, err := PublicKeyOf(testKey(2))
	if err != nil {
		t.Fatal(err)
	}
	if Verify(other, msg, sig) {
		t.Fatal("signature verified under the wrong public key")
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	key := testKey(9)
	pub, _ := PublicKeyOf(key)
	sig, _ := Sign(key, "m")
	cases := []struct {
		name string
		pub  []byte
		sig  []byte
	}{
		{"nil public key", nil, sig},
		{"short public key", pub[:10], sig},
		{"nil signature", pub, nil},
		{"short signature", pub, sig[:63]},
		{"garbage signature", pub, bytes.Repeat([]byte{0xff}, SignatureSize)},
	}
	for _, c := range cases {
		if Verify(c.pub, "m", c.sig) {
			t.Errorf("%s: expected verification to fail", c.name)
		}
	}
}

func TestSignInvalidKey(t *testing.T) {
	// secp256k1 group order
	order, _ := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	cases := []struct {
		name string
		key  []byte
	}{
		{"nil", nil},
		{"short", make([]byte, 31)},
		{"zero", make([]byte, PrivateKeySize)},
		{"all ones", bytes.Repeat([]byte{0xff}, PrivateKeySize)},
		{"group order", order},
	}
	for _, c := range cases {
		if _, err := Sign(c.key, "1:1:1"); !errors.Is(err, library.ErrInvalidKey) {
			t.Errorf("%s: Sign expected ErrInvalidKey, got %v", c.name, err)
		}
		if _, err := PublicKeyOf(c.key); !errors.Is(err, library.ErrInvalidKey) {
			t.Errorf("%s: PublicKeyOf expected ErrInvalidKey, got %v", c.name, err)
		}
	}
}

func TestKeyEncoding(t *testing.T) {
	key := testKey(5)
	decoded, err := DecodeKey(EncodeKey(key))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, key) {
		t.Fatal("key did not survive base64 round trip")
	}
	if _, err := DecodeKey("not base64!"); !errors.Is(err, library.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := DecodeSignature("%%%"); !errors.Is(err, library.ErrSignatureFailure) {
		t.Fatalf("expected ErrSignatureFailure, got %v", err)
	}
}
