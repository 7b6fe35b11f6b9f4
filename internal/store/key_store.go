package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/util/memzero"
)

const (
	keysDir            = "keys"
	signingKeySuffix   = ".key"
	verifyingKeySuffix = ".pub"
)

// KeyFileStore persists key pairs as raw bytes: <name>.key holds the 32-byte
// seed (0600) and <name>.pub the 32-byte public key (0644).
type KeyFileStore struct {
	dir string
	log logrus.FieldLogger
	mu  sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at <home>/keys.
func NewKeyFileStore(home string, opts ...Option) *KeyFileStore {
	c := newConfig(opts)
	return &KeyFileStore{dir: filepath.Join(home, keysDir), log: c.log}
}

// SaveKeyPair writes a new key pair. It refuses to overwrite an existing one.
func (s *KeyFileStore) SaveKeyPair(
	name domain.KeyName,
	signingKey domain.SigningKey,
	verifyingKey domain.VerifyingKey,
) error {
	if err := ValidateKeyName(name); err != nil {
		return err
	}
	if crypto.DeriveVerifyingKey(signingKey) != verifyingKey {
		return ErrKeyMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureDir(s.dir); err != nil {
		return err
	}
	skPath, vkPath := s.paths(name)
	for _, p := range []string{skPath, vkPath} {
		ok, err := exists(p)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: %s", ErrKeyExists, name)
		}
	}

	if err := writeFile(skPath, signingKey[:], 0o600); err != nil {
		return err
	}
	if err := writeFile(vkPath, verifyingKey[:], 0o644); err != nil {
		_ = os.Remove(skPath)
		return err
	}
	return nil
}

// LoadSigningKey reads and parses <name>.key. The returned key should be
// wiped by the caller once used.
func (s *KeyFileStore) LoadSigningKey(name domain.KeyName) (domain.SigningKey, error) {
	if err := ValidateKeyName(name); err != nil {
		return domain.SigningKey{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	skPath, _ := s.paths(name)
	raw, err := readFile(skPath)
	if err != nil {
		return domain.SigningKey{}, err
	}
	if raw == nil {
		return domain.SigningKey{}, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	defer memzero.Zero(raw)

	sk, err := crypto.ParseSigningKey(raw)
	if err != nil {
		return domain.SigningKey{}, fmt.Errorf("%w %s: %w", ErrCorruptKeyFile, skPath, err)
	}
	return sk, nil
}

// LoadVerifyingKey reads and strictly parses <name>.pub.
func (s *KeyFileStore) LoadVerifyingKey(name domain.KeyName) (domain.VerifyingKey, error) {
	if err := ValidateKeyName(name); err != nil {
		return domain.VerifyingKey{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, vkPath := s.paths(name)
	return loadVerifyingKey(vkPath, name)
}

// ListKeys returns every stored public key, sorted by name. Files that do
// not parse are logged and skipped.
func (s *KeyFileStore) ListKeys() ([]domain.KeyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := namesWithSuffix(s.dir, verifyingKeySuffix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.KeyInfo, 0, len(names))
	for _, n := range names {
		name := domain.KeyName(n)
		if ValidateKeyName(name) != nil {
			continue
		}
		skPath, vkPath := s.paths(name)
		vk, err := loadVerifyingKey(vkPath, name)
		if errors.Is(err, ErrCorruptKeyFile) {
			s.log.WithError(err).WithField("key", name).Warn("skipping unreadable key file")
			continue
		}
		if err != nil {
			return nil, err
		}
		hasPrivate, err := exists(skPath)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.KeyInfo{
			Name:         name,
			VerifyingKey: vk,
			Fingerprint:  crypto.Fingerprint(vk),
			HasPrivate:   hasPrivate,
		})
	}
	return out, nil
}

// DeleteKeyPair removes both files of a key pair.
func (s *KeyFileStore) DeleteKeyPair(name domain.KeyName) error {
	if err := ValidateKeyName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	skPath, vkPath := s.paths(name)
	for _, p := range []string{skPath, vkPath} {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = true
		case errors.Is(err, os.ErrNotExist):
		default:
			return err
		}
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return nil
}

func (s *KeyFileStore) paths(name domain.KeyName) (signingPath, verifyingPath string) {
	base := filepath.Join(s.dir, name.String())
	return base + signingKeySuffix, base + verifyingKeySuffix
}

func loadVerifyingKey(path string, name domain.KeyName) (domain.VerifyingKey, error) {
	raw, err := readFile(path)
	if err != nil {
		return domain.VerifyingKey{}, err
	}
	if raw == nil {
		return domain.VerifyingKey{}, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	vk, err := crypto.ParseVerifyingKey(raw)
	if err != nil {
		return domain.VerifyingKey{}, fmt.Errorf("%w %s: %w", ErrCorruptKeyFile, path, err)
	}
	return vk, nil
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
