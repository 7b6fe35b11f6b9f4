package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"libauth/internal/domain"
	"libauth/internal/util/memzero"
)

// GenerateSigningKey returns a fresh signing key drawn from the system CSPRNG.
func GenerateSigningKey() (domain.SigningKey, error) {
	return GenerateSigningKeyFrom(rand.Reader)
}

// GenerateSigningKeyFrom reads a signing key from r. A short read or a read
// error yields ErrEntropyUnavailable; no other source is tried.
func GenerateSigningKeyFrom(r io.Reader) (sk domain.SigningKey, err error) {
	if r == nil {
		return sk, fmt.Errorf("%w: nil reader", ErrEntropyUnavailable)
	}
	if _, err = io.ReadFull(r, sk[:]); err != nil {
		sk.Wipe()
		return sk, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return sk, nil
}

// DeriveVerifyingKey returns the public point for sk. It is deterministic.
func DeriveVerifyingKey(sk domain.SigningKey) (vk domain.VerifyingKey) {
	priv := ed25519.NewKeyFromSeed(sk[:])
	defer memzero.Zero(priv)
	copy(vk[:], priv[ed25519.SeedSize:])
	return vk
}

// Sign produces the RFC 8032 signature of msg under sk.
func Sign(sk domain.SigningKey, msg []byte) (sig domain.Signature) {
	priv := ed25519.NewKeyFromSeed(sk[:])
	defer memzero.Zero(priv)
	copy(sig[:], ed25519.Sign(priv, msg))
	return sig
}

// Verify reports whether sig is a valid signature of msg by vk.
//
// Keys rejected by ParseVerifyingKey (small-order or non-canonical points)
// and signatures rejected by ParseSignature never verify.
func Verify(vk domain.VerifyingKey, msg []byte, sig domain.Signature) bool {
	if err := checkVerifyingKey(vk[:]); err != nil {
		return false
	}
	if err := checkSignature(sig[:]); err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(vk[:]), msg, sig[:])
}

// VerifyBytes decodes pub and sig and verifies msg. Malformed input is
// reported as ErrMalformedKey or ErrMalformedSignature, separately from a
// signature that simply does not match.
func VerifyBytes(pub, msg, sig []byte) (bool, error) {
	vk, err := ParseVerifyingKey(pub)
	if err != nil {
		return false, err
	}
	s, err := ParseSignature(sig)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(vk[:]), msg, s[:]), nil
}

// KeyPair generates a signing key and derives its verifying key.
func KeyPair() (domain.SigningKey, domain.VerifyingKey, error) {
	sk, err := GenerateSigningKey()
	if err != nil {
		return sk, domain.VerifyingKey{}, err
	}
	return sk, DeriveVerifyingKey(sk), nil
}
