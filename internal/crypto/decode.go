package crypto

import (
	"bytes"
	"fmt"

	"filippo.io/edwards25519"

	"libauth/internal/domain"
)

// ParseSigningKey copies a raw 32-byte seed into a SigningKey. Every 32-byte
// string is a valid seed; only the length is checked.
func ParseSigningKey(b []byte) (sk domain.SigningKey, err error) {
	if len(b) != domain.SigningKeySize {
		return sk, fmt.Errorf("%w: signing key: want %d bytes, got %d",
			ErrMalformedKey, domain.SigningKeySize, len(b))
	}
	copy(sk[:], b)
	return sk, nil
}

// ParseVerifyingKey decodes a raw 32-byte public key under the strict policy:
// the bytes must be the canonical encoding of a curve point that is not of
// small order. The identity point is therefore rejected.
func ParseVerifyingKey(b []byte) (vk domain.VerifyingKey, err error) {
	if err := checkVerifyingKey(b); err != nil {
		return vk, err
	}
	copy(vk[:], b)
	return vk, nil
}

// ParseSignature decodes a raw 64-byte signature, rejecting a scalar S that
// is not reduced modulo the group order.
func ParseSignature(b []byte) (sig domain.Signature, err error) {
	if err := checkSignature(b); err != nil {
		return sig, err
	}
	copy(sig[:], b)
	return sig, nil
}

func checkVerifyingKey(b []byte) error {
	if len(b) != domain.VerifyingKeySize {
		return fmt.Errorf("%w: verifying key: want %d bytes, got %d",
			ErrMalformedKey, domain.VerifyingKeySize, len(b))
	}
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return fmt.Errorf("%w: verifying key is not a curve point", ErrMalformedKey)
	}
	// SetBytes accepts non-canonical y coordinates and a set sign bit on x = 0.
	if !bytes.Equal(p.Bytes(), b) {
		return fmt.Errorf("%w: verifying key encoding is not canonical", ErrMalformedKey)
	}
	if new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return fmt.Errorf("%w: verifying key has small order", ErrMalformedKey)
	}
	return nil
}

func checkSignature(b []byte) error {
	if len(b) != domain.SignatureSize {
		return fmt.Errorf("%w: want %d bytes, got %d",
			ErrMalformedSignature, domain.SignatureSize, len(b))
	}
	if _, err := edwards25519.NewScalar().SetCanonicalBytes(b[32:]); err != nil {
		return fmt.Errorf("%w: S is not canonical", ErrMalformedSignature)
	}
	return nil
}
