package verification

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/envelope"
)

var (
	// ErrUnknownKey is returned when no trusted key matches the request.
	ErrUnknownKey = errors.New("unknown key")
	// ErrKeyMismatch is returned when an envelope names a trusted key but
	// carries a different verifying key.
	ErrKeyMismatch = errors.New("envelope key does not match trusted key")
)

// Service verifies signatures using a trust store.
type Service struct {
	trust domain.TrustStore
	log   logrus.FieldLogger
}

// New returns a verification service backed by the given trust store.
func New(trust domain.TrustStore, log logrus.FieldLogger) *Service {
	return &Service{trust: trust, log: log}
}

// Verify checks signature over message with the trusted key called name.
func (s *Service) Verify(
	name domain.KeyName,
	message []byte,
	signature []byte,
) (bool, domain.Fingerprint, error) {
	vk, ok, err := s.trust.Trusted(name)
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, "", fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}
	fp := crypto.Fingerprint(vk)
	sig, err := crypto.ParseSignature(signature)
	if err != nil {
		return false, fp, err
	}
	valid := crypto.Verify(vk, message, sig)
	s.logResult(name, fp, valid)
	return valid, fp, nil
}

// VerifyRaw checks signature over message with a caller-supplied public key.
func (s *Service) VerifyRaw(
	publicKey []byte,
	message []byte,
	signature []byte,
) (bool, domain.Fingerprint, error) {
	vk, err := crypto.ParseVerifyingKey(publicKey)
	if err != nil {
		return false, "", err
	}
	fp := crypto.Fingerprint(vk)
	sig, err := crypto.ParseSignature(signature)
	if err != nil {
		return false, fp, err
	}
	valid := crypto.Verify(vk, message, sig)
	s.logResult("", fp, valid)
	return valid, fp, nil
}

// VerifyEnvelope checks an envelope whose key must be trusted: by its key
// name when it carries one, otherwise by matching the key itself.
func (s *Service) VerifyEnvelope(env domain.SignedMessage) (bool, domain.Fingerprint, error) {
	fp := crypto.Fingerprint(env.VerifyingKey)
	name, err := s.trustedName(env)
	if err != nil {
		return false, fp, err
	}
	valid, err := envelope.Open(env)
	if err != nil {
		return false, fp, err
	}
	s.logResult(name, fp, valid)
	return valid, fp, nil
}

// Trust validates publicKey and records it under name.
func (s *Service) Trust(name domain.KeyName, publicKey []byte) (domain.Fingerprint, error) {
	vk, err := crypto.ParseVerifyingKey(publicKey)
	if err != nil {
		return "", err
	}
	if err := s.trust.Trust(name, vk); err != nil {
		return "", err
	}
	fp := crypto.Fingerprint(vk)
	s.log.WithFields(logrus.Fields{"key": name, "fingerprint": fp}).Info("trusted verifying key")
	return fp, nil
}

func (s *Service) trustedName(env domain.SignedMessage) (domain.KeyName, error) {
	if env.KeyName != "" {
		vk, ok, err := s.trust.Trusted(env.KeyName)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, env.KeyName)
		}
		if vk != env.VerifyingKey {
			return "", fmt.Errorf("%w: %s", ErrKeyMismatch, env.KeyName)
		}
		return env.KeyName, nil
	}

	all, err := s.trust.ListTrusted()
	if err != nil {
		return "", err
	}
	for _, k := range all {
		if k.VerifyingKey == env.VerifyingKey {
			return k.Name, nil
		}
	}
	return "", fmt.Errorf("%w: fingerprint %s", ErrUnknownKey, crypto.Fingerprint(env.VerifyingKey))
}

func (s *Service) logResult(name domain.KeyName, fp domain.Fingerprint, valid bool) {
	entry := s.log.WithFields(logrus.Fields{"fingerprint": fp, "valid": valid})
	if name != "" {
		entry = entry.WithField("key", name)
	}
	entry.Debug("verified signature")
}

// Compile-time assertion that Service implements domain.VerificationService.
var _ domain.VerificationService = (*Service)(nil)
