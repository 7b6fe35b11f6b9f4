// Package crypto exposes the Ed25519 signature primitive used by libauth.
//
// Contents
//
//   - Key generation from the system CSPRNG (GenerateSigningKey,
//     GenerateSigningKeyFrom, KeyPair)
//   - Public key derivation, signing and verification (DeriveVerifyingKey,
//     Sign, Verify, VerifyBytes)
//   - Strict decoding of raw bytes (ParseSigningKey, ParseVerifyingKey,
//     ParseSignature)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// The curve arithmetic is crypto/ed25519; filippo.io/edwards25519 is only used
// to decide which encodings are acceptable. Verifying keys must be canonical
// and of large order, so the identity point and the other small-order points
// are rejected. Signatures must carry a reduced scalar S.
//
// All functions are stateless and safe for concurrent use. Signing keys are
// plain arrays; callers should Wipe them when done.
package crypto
