package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"libauth/internal/domain"
)

// fingerprintBytes is how much of the digest is kept for display.
const fingerprintBytes = 10

// Fingerprint returns a short hex fingerprint of a verifying key.
//
// It hashes with BLAKE2b-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(vk domain.VerifyingKey) domain.Fingerprint {
	sum := blake2b.Sum256(vk[:])
	return domain.Fingerprint(hex.EncodeToString(sum[:fingerprintBytes]))
}
