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
)

const trustedDir = "trusted"

// TrustFileStore keeps other parties' verifying keys as raw <name>.pub files.
type TrustFileStore struct {
	dir string
	log logrus.FieldLogger
	mu  sync.RWMutex
}

// NewTrustFileStore returns a TrustFileStore rooted at <home>/trusted.
func NewTrustFileStore(home string, opts ...Option) *TrustFileStore {
	c := newConfig(opts)
	return &TrustFileStore{dir: filepath.Join(home, trustedDir), log: c.log}
}

// Trust stores key under name, replacing any previous key with that name.
func (s *TrustFileStore) Trust(name domain.KeyName, key domain.VerifyingKey) error {
	if err := ValidateKeyName(name); err != nil {
		return err
	}
	if _, err := crypto.ParseVerifyingKey(key[:]); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureDir(s.dir); err != nil {
		return err
	}
	return writeFile(s.path(name), key[:], 0o644)
}

// Trusted returns the key stored under name and whether it was present.
func (s *TrustFileStore) Trusted(name domain.KeyName) (domain.VerifyingKey, bool, error) {
	if err := ValidateKeyName(name); err != nil {
		return domain.VerifyingKey{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	vk, err := loadVerifyingKey(s.path(name), name)
	if errors.Is(err, ErrKeyNotFound) {
		return domain.VerifyingKey{}, false, nil
	}
	if err != nil {
		return domain.VerifyingKey{}, false, err
	}
	return vk, true, nil
}

// ListTrusted returns every trusted key, sorted by name. Files that do not
// parse are logged and skipped, so one bad file cannot hide the others.
func (s *TrustFileStore) ListTrusted() ([]domain.KeyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

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
		vk, err := loadVerifyingKey(s.path(name), name)
		if errors.Is(err, ErrCorruptKeyFile) {
			s.log.WithError(err).WithField("key", name).Warn("skipping unreadable trusted key")
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, domain.KeyInfo{
			Name:         name,
			VerifyingKey: vk,
			Fingerprint:  crypto.Fingerprint(vk),
		})
	}
	return out, nil
}

// Untrust deletes the local file for name.
func (s *TrustFileStore) Untrust(name domain.KeyName) error {
	if err := ValidateKeyName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return err
}

func (s *TrustFileStore) path(name domain.KeyName) string {
	return filepath.Join(s.dir, name.String()+verifyingKeySuffix)
}

// Compile-time assertion that TrustFileStore implements domain.TrustStore.
var _ domain.TrustStore = (*TrustFileStore)(nil)
