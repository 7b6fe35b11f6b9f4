package store

import (
	"errors"
	"fmt"
	"regexp"

	"libauth/internal/domain"
)

var (
	// ErrKeyNotFound is returned when no key is stored under the name.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyExists is returned when saving would overwrite a key pair.
	ErrKeyExists = errors.New("key already exists")
	// ErrKeyMismatch is returned when a verifying key does not belong to the
	// signing key saved alongside it.
	ErrKeyMismatch = errors.New("verifying key does not match signing key")
	// ErrInvalidKeyName is returned for names that are not safe file names.
	ErrInvalidKeyName = errors.New("invalid key name")
	// ErrCorruptKeyFile is returned when a stored file does not hold a valid
	// key. It also wraps the crypto decode error.
	ErrCorruptKeyFile = errors.New("corrupt key file")
)

var keyNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,63}$`)

// ValidateKeyName checks that name can be used as a file name on its own.
func ValidateKeyName(name domain.KeyName) error {
	if !keyNamePattern.MatchString(name.String()) {
		return fmt.Errorf("%w: %q (use 1-64 of A-Z a-z 0-9 . _ -, not starting with a dot)",
			ErrInvalidKeyName, name)
	}
	return nil
}
