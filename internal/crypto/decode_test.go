package crypto

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"math/big"
	"testing"

	"libauth/internal/domain"
)

// Little-endian encodings of degenerate points.
var (
	identityPoint = append([]byte{0x01}, make([]byte, 31)...)
	// (0, -1), the point of order two. Canonical, but small order.
	orderTwoPoint = append(append([]byte{0xec}, bytes.Repeat([]byte{0xff}, 30)...), 0x7f)
	// y = p + 1 reduces to y = 1, a non-canonical identity.
	nonCanonicalIdentity = append(append([]byte{0xee}, bytes.Repeat([]byte{0xff}, 30)...), 0x7f)
	// x = 0 with the sign bit set ("negative zero").
	negativeZeroIdentity = append(append([]byte{0x01}, make([]byte, 30)...), 0x80)
)

func TestParseVerifyingKey(t *testing.T) {
	_, vk := mustKeyPair(t)

	got, err := ParseVerifyingKey(vk.Slice())
	if err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	if got != vk {
		t.Fatal("parsed key differs from input")
	}

	bad := map[string][]byte{
		"nil":                    nil,
		"short":                  vk.Slice()[:31],
		"long":                   append(vk.Slice(), 0),
		"identity":               identityPoint,
		"order two":              orderTwoPoint,
		"non-canonical identity": nonCanonicalIdentity,
		"negative zero":          negativeZeroIdentity,
	}
	for name, b := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseVerifyingKey(b); !errors.Is(err, ErrMalformedKey) {
				t.Fatalf("want ErrMalformedKey, got %v", err)
			}
		})
	}
}

func TestParseSigningKey(t *testing.T) {
	raw := bytes.Repeat([]byte{7}, 32)
	sk, err := ParseSigningKey(raw)
	if err != nil {
		t.Fatalf("ParseSigningKey: %v", err)
	}
	if !bytes.Equal(sk.Slice(), raw) {
		t.Fatal("round trip mismatch")
	}
	// The parsed key must not alias the input.
	raw[0] = 0
	if sk.Slice()[0] != 7 {
		t.Fatal("parsed key aliases caller buffer")
	}

	for _, n := range []int{0, 31, 33, 64} {
		if _, err := ParseSigningKey(make([]byte, n)); !errors.Is(err, ErrMalformedKey) {
			t.Errorf("len %d: want ErrMalformedKey, got %v", n, err)
		}
	}
}

func TestParseSignature(t *testing.T) {
	sk, _ := mustKeyPair(t)
	sig := Sign(sk, []byte("msg"))

	got, err := ParseSignature(sig.Slice())
	if err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if got != sig {
		t.Fatal("parsed signature differs from input")
	}

	for _, n := range []int{0, 63, 65} {
		if _, err := ParseSignature(make([]byte, n)); !errors.Is(err, ErrMalformedSignature) {
			t.Errorf("len %d: want ErrMalformedSignature, got %v", n, err)
		}
	}

	// S = 2^256 - 1 is far above the group order.
	high := append(append([]byte(nil), sig[:32]...), bytes.Repeat([]byte{0xff}, 32)...)
	if _, err := ParseSignature(high); !errors.Is(err, ErrMalformedSignature) {
		t.Errorf("want ErrMalformedSignature for S >= L, got %v", err)
	}
}

// groupOrder is L = 2^252 + 27742317777372353535851937790883648493.
func groupOrder() *big.Int {
	l, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	return l.Add(l, new(big.Int).Lsh(big.NewInt(1), 252))
}

func leToInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}

func intToLE(n *big.Int, size int) []byte {
	be := n.FillBytes(make([]byte, size))
	le := make([]byte, size)
	for i := range be {
		le[size-1-i] = be[i]
	}
	return le
}

func TestVerify_RejectsMalleatedScalar(t *testing.T) {
	sk, vk := mustKeyPair(t)
	msg := []byte("malleability")
	sig := Sign(sk, msg)

	// S + L is congruent to S but not canonical.
	s := leToInt(sig[32:])
	s.Add(s, groupOrder())
	var mauled domain.Signature
	copy(mauled[:32], sig[:32])
	copy(mauled[32:], intToLE(s, 32))

	if Verify(vk, msg, mauled) {
		t.Fatal("Verify accepted S + L")
	}
	ok, err := VerifyBytes(vk.Slice(), msg, mauled.Slice())
	if ok || !errors.Is(err, ErrMalformedSignature) {
		t.Fatalf("VerifyBytes = %v, %v; want false, ErrMalformedSignature", ok, err)
	}
}

func TestVerifyBytes_DistinguishesFailures(t *testing.T) {
	sk, vk := mustKeyPair(t)
	msg := []byte("distinguish")
	sig := Sign(sk, msg)

	ok, err := VerifyBytes(vk.Slice(), msg, sig.Slice())
	if err != nil || !ok {
		t.Fatalf("valid: got %v, %v", ok, err)
	}

	// A mismatch is a plain false, not an error.
	ok, err = VerifyBytes(vk.Slice(), []byte("other"), sig.Slice())
	if err != nil || ok {
		t.Fatalf("mismatch: got %v, %v; want false, nil", ok, err)
	}

	if _, err := VerifyBytes(vk.Slice()[:10], msg, sig.Slice()); !errors.Is(err, ErrMalformedKey) {
		t.Errorf("short key: want ErrMalformedKey, got %v", err)
	}
	if _, err := VerifyBytes(identityPoint, msg, sig.Slice()); !errors.Is(err, ErrMalformedKey) {
		t.Errorf("identity key: want ErrMalformedKey, got %v", err)
	}
	if _, err := VerifyBytes(vk.Slice(), msg, sig.Slice()[:63]); !errors.Is(err, ErrMalformedSignature) {
		t.Errorf("short sig: want ErrMalformedSignature, got %v", err)
	}
}

// With A = identity and the signature (R = identity, S = 0), the cofactorless
// equation [S]B = R + [k]A holds for every message. crypto/ed25519 accepts it;
// the strict policy must not.
func TestVerify_IdentityKeyForgery(t *testing.T) {
	var vk domain.VerifyingKey
	copy(vk[:], identityPoint)
	var forged domain.Signature
	copy(forged[:32], identityPoint)

	msg := []byte("any message at all")
	if !ed25519.Verify(ed25519.PublicKey(vk[:]), msg, forged[:]) {
		t.Log("crypto/ed25519 now rejects the identity forgery")
	}
	if Verify(vk, msg, forged) {
		t.Fatal("strict Verify accepted a forgery under the identity key")
	}
	if _, err := VerifyBytes(vk[:], msg, forged[:]); !errors.Is(err, ErrMalformedKey) {
		t.Fatalf("want ErrMalformedKey, got %v", err)
	}
}

func TestDecodeHex(t *testing.T) {
	got, err := DecodeHex("  0xDEADbeef\n")
	if err != nil {
		t.Fatalf("DecodeHex: %v", err)
	}
	if !bytes.Equal(got, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("got %x", got)
	}
	if _, err := DecodeHex("zz"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

func TestFingerprint(t *testing.T) {
	_, vk1 := mustKeyPair(t)
	_, vk2 := mustKeyPair(t)

	fp := Fingerprint(vk1)
	if len(fp) != 2*fingerprintBytes {
		t.Fatalf("fingerprint length %d, want %d", len(fp), 2*fingerprintBytes)
	}
	if fp != Fingerprint(vk1) {
		t.Fatal("fingerprint not stable")
	}
	if fp == Fingerprint(vk2) {
		t.Fatal("distinct keys share a fingerprint")
	}
}
