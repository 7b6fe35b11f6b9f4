package types

import (
	"encoding/hex"

	"libauth/internal/util/memzero"
)

const (
	// SigningKeySize is the length of an Ed25519 private seed.
	SigningKeySize = 32
	// VerifyingKeySize is the length of a compressed Ed25519 public point.
	VerifyingKeySize = 32
	// SignatureSize is the length of an Ed25519 signature (R || S).
	SignatureSize = 64
)

// SigningKey is the 32-byte RFC 8032 private seed.
type SigningKey [SigningKeySize]byte

// Slice returns the key as a []byte aliasing the array.
func (k *SigningKey) Slice() []byte { return k[:] }

// Wipe zeroes the key in place.
func (k *SigningKey) Wipe() { memzero.Zero(k[:]) }

// String never prints key material.
func (k SigningKey) String() string { return "SigningKey(redacted)" }

// GoString keeps %#v from dumping the seed.
func (k SigningKey) GoString() string { return k.String() }

// VerifyingKey is an Ed25519 public key (compressed Edwards point).
type VerifyingKey [VerifyingKeySize]byte

// Slice returns the key as a []byte.
func (k VerifyingKey) Slice() []byte { return k[:] }

// String returns the lowercase hex encoding.
func (k VerifyingKey) String() string { return hex.EncodeToString(k[:]) }

// Signature is an Ed25519 signature.
type Signature [SignatureSize]byte

// Slice returns the signature as a []byte.
func (s Signature) Slice() []byte { return s[:] }

// String returns the lowercase hex encoding.
func (s Signature) String() string { return hex.EncodeToString(s[:]) }
