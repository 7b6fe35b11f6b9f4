package signing

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/envelope"
)

// Service signs messages with key pairs held in a backing store.
type Service struct {
	keys    domain.KeyStore
	log     logrus.FieldLogger
	entropy io.Reader
	now     func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithEntropy replaces the key generation source (crypto/rand by default).
func WithEntropy(r io.Reader) Option { return func(s *Service) { s.entropy = r } }

// WithClock replaces the clock used to timestamp envelopes.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New returns a signing service backed by the given store.
func New(keys domain.KeyStore, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		keys:    keys,
		log:     log,
		entropy: rand.Reader,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GenerateKey creates a new key pair, stores it under name, and returns the
// verifying key and its fingerprint.
func (s *Service) GenerateKey(
	name domain.KeyName,
) (domain.VerifyingKey, domain.Fingerprint, error) {
	sk, err := crypto.GenerateSigningKeyFrom(s.entropy)
	if err != nil {
		s.log.WithError(err).Error("key generation failed")
		return domain.VerifyingKey{}, "", err
	}
	defer sk.Wipe()

	vk := crypto.DeriveVerifyingKey(sk)
	if err := s.keys.SaveKeyPair(name, sk, vk); err != nil {
		return domain.VerifyingKey{}, "", err
	}
	fp := crypto.Fingerprint(vk)
	s.log.WithFields(logrus.Fields{"key": name, "fingerprint": fp}).Info("generated signing key")
	return vk, fp, nil
}

// VerifyingKey returns the public half of the named key pair.
func (s *Service) VerifyingKey(name domain.KeyName) (domain.VerifyingKey, error) {
	return s.keys.LoadVerifyingKey(name)
}

// Fingerprint returns a short fingerprint of the named verifying key.
func (s *Service) Fingerprint(name domain.KeyName) (domain.Fingerprint, error) {
	vk, err := s.keys.LoadVerifyingKey(name)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(vk), nil
}

// Sign signs message with the named key.
func (s *Service) Sign(name domain.KeyName, message []byte) (domain.Signature, error) {
	sk, err := s.keys.LoadSigningKey(name)
	if err != nil {
		return domain.Signature{}, err
	}
	defer sk.Wipe()

	sig := crypto.Sign(sk, message)
	s.log.WithFields(logrus.Fields{"key": name, "bytes": len(message)}).Debug("signed message")
	return sig, nil
}

// SignEnvelope signs message with the named key and wraps the result in an
// envelope stamped with the current time.
func (s *Service) SignEnvelope(name domain.KeyName, message []byte) (domain.SignedMessage, error) {
	sk, err := s.keys.LoadSigningKey(name)
	if err != nil {
		return domain.SignedMessage{}, err
	}
	defer sk.Wipe()

	env, err := envelope.Seal(sk, name, message, s.now())
	if err != nil {
		return domain.SignedMessage{}, err
	}
	s.log.WithFields(logrus.Fields{
		"key":         name,
		"fingerprint": crypto.Fingerprint(env.VerifyingKey),
		"bytes":       len(message),
	}).Debug("sealed envelope")
	return env, nil
}

// Compile-time assertion that Service implements domain.SigningService.
var _ domain.SigningService = (*Service)(nil)
