package interfaces

import domaintypes "libauth/internal/domain/types"

// KeyStore persists your own key pairs as raw bytes.
type KeyStore interface {
	SaveKeyPair(
		name domaintypes.KeyName,
		signingKey domaintypes.SigningKey,
		verifyingKey domaintypes.VerifyingKey,
	) error
	// LoadSigningKey returns a copy the caller must Wipe when done.
	LoadSigningKey(name domaintypes.KeyName) (domaintypes.SigningKey, error)
	LoadVerifyingKey(name domaintypes.KeyName) (domaintypes.VerifyingKey, error)
	ListKeys() ([]domaintypes.KeyInfo, error)
	DeleteKeyPair(name domaintypes.KeyName) error
}

// TrustStore keeps the verifying keys of other parties you accept
// signatures from.
type TrustStore interface {
	Trust(name domaintypes.KeyName, key domaintypes.VerifyingKey) error
	Trusted(name domaintypes.KeyName) (domaintypes.VerifyingKey, bool, error)
	ListTrusted() ([]domaintypes.KeyInfo, error)
	Untrust(name domaintypes.KeyName) error
}
