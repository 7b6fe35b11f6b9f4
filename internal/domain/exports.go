package domain

import (
	interfaces "libauth/internal/domain/interfaces"
	types "libauth/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeyName        = types.KeyName
	Fingerprint    = types.Fingerprint
	KeyInfo        = types.KeyInfo
	SigningKey     = types.SigningKey
	VerifyingKey   = types.VerifyingKey
	Signature      = types.Signature
	SignedMessage  = types.SignedMessage
	VerifyRequest  = types.VerifyRequest
	VerifyResponse = types.VerifyResponse
	ErrorResponse  = types.ErrorResponse
)

// Size constants re-exported from the types subpackage.
const (
	SigningKeySize   = types.SigningKeySize
	VerifyingKeySize = types.VerifyingKeySize
	SignatureSize    = types.SignatureSize
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyStore            = interfaces.KeyStore
	TrustStore          = interfaces.TrustStore
	SigningService      = interfaces.SigningService
	VerificationService = interfaces.VerificationService
	VerifierClient      = interfaces.VerifierClient
)
