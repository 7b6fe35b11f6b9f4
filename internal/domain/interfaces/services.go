package interfaces

import domaintypes "libauth/internal/domain/types"

// SigningService creates key pairs and signs messages with them.
type SigningService interface {
	GenerateKey(name domaintypes.KeyName) (
		domaintypes.VerifyingKey,
		domaintypes.Fingerprint,
		error,
	)
	VerifyingKey(name domaintypes.KeyName) (domaintypes.VerifyingKey, error)
	Fingerprint(name domaintypes.KeyName) (domaintypes.Fingerprint, error)
	Sign(name domaintypes.KeyName, message []byte) (domaintypes.Signature, error)
	SignEnvelope(name domaintypes.KeyName, message []byte) (domaintypes.SignedMessage, error)
}

// VerificationService checks signatures against trusted or supplied keys.
//
// A false result with a nil error is the normal "signature did not match"
// outcome; errors are reserved for malformed input or unknown keys.
type VerificationService interface {
	Verify(
		name domaintypes.KeyName,
		message []byte,
		signature []byte,
	) (bool, domaintypes.Fingerprint, error)
	VerifyRaw(
		publicKey []byte,
		message []byte,
		signature []byte,
	) (bool, domaintypes.Fingerprint, error)
	VerifyEnvelope(envelope domaintypes.SignedMessage) (bool, domaintypes.Fingerprint, error)
	Trust(name domaintypes.KeyName, publicKey []byte) (domaintypes.Fingerprint, error)
}
