package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/store"
)

func newPair(t *testing.T) (domain.SigningKey, domain.VerifyingKey) {
	t.Helper()
	sk, vk, err := crypto.KeyPair()
	require.NoError(t, err)
	return sk, vk
}

func TestKeyPair_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var keys domain.KeyStore = store.NewKeyFileStore(home)

	sk, vk := newPair(t)
	require.NoError(t, keys.SaveKeyPair("signer", sk, vk))

	gotSK, err := keys.LoadSigningKey("signer")
	require.NoError(t, err)
	require.Equal(t, sk, gotSK)

	gotVK, err := keys.LoadVerifyingKey("signer")
	require.NoError(t, err)
	require.Equal(t, vk, gotVK)

	// Files hold exactly the raw bytes.
	raw, err := os.ReadFile(filepath.Join(home, "keys", "signer.key"))
	require.NoError(t, err)
	require.Equal(t, sk.Slice(), raw)

	info, err := os.Stat(filepath.Join(home, "keys", "signer.key"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err = os.ReadFile(filepath.Join(home, "keys", "signer.pub"))
	require.NoError(t, err)
	require.Equal(t, vk.Slice(), raw)
}

func TestKeyPair_NoOverwrite(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())

	sk, vk := newPair(t)
	require.NoError(t, keys.SaveKeyPair("signer", sk, vk))

	sk2, vk2 := newPair(t)
	require.ErrorIs(t, keys.SaveKeyPair("signer", sk2, vk2), store.ErrKeyExists)

	got, err := keys.LoadVerifyingKey("signer")
	require.NoError(t, err)
	require.Equal(t, vk, got)
}

func TestKeyPair_Mismatch(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())

	sk, _ := newPair(t)
	_, other := newPair(t)
	require.ErrorIs(t, keys.SaveKeyPair("signer", sk, other), store.ErrKeyMismatch)
}

func TestKeyPair_NotFound(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())

	_, err := keys.LoadSigningKey("missing")
	require.ErrorIs(t, err, store.ErrKeyNotFound)
	_, err = keys.LoadVerifyingKey("missing")
	require.ErrorIs(t, err, store.ErrKeyNotFound)
	require.ErrorIs(t, keys.DeleteKeyPair("missing"), store.ErrKeyNotFound)

	list, err := keys.ListKeys()
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestKeyPair_CorruptFiles(t *testing.T) {
	home := t.TempDir()
	keys := store.NewKeyFileStore(home)
	dir := filepath.Join(home, "keys")
	require.NoError(t, os.MkdirAll(dir, 0o700))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "short.key"), []byte("too short"), 0o600))
	_, err := keys.LoadSigningKey("short")
	require.ErrorIs(t, err, crypto.ErrMalformedKey)
	require.ErrorIs(t, err, store.ErrCorruptKeyFile)

	identity := append([]byte{1}, make([]byte, 31)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "degenerate.pub"), identity, 0o644))
	_, err = keys.LoadVerifyingKey("degenerate")
	require.ErrorIs(t, err, crypto.ErrMalformedKey)
	require.ErrorIs(t, err, store.ErrCorruptKeyFile)

	// A bad file is skipped in listings instead of failing them.
	sk, vk := newPair(t)
	require.NoError(t, keys.SaveKeyPair("good", sk, vk))
	list, err := keys.ListKeys()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.KeyName("good"), list[0].Name)
}

func TestKeyPair_InvalidNames(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())
	sk, vk := newPair(t)

	for _, name := range []domain.KeyName{"", "../escape", "a/b", ".hidden", "with space"} {
		require.ErrorIs(t, keys.SaveKeyPair(name, sk, vk), store.ErrInvalidKeyName, "name %q", name)
	}
	require.NoError(t, store.ValidateKeyName("release-2025.v1_a"))
}

func TestKeyPair_ListDelete(t *testing.T) {
	keys := store.NewKeyFileStore(t.TempDir())

	skB, vkB := newPair(t)
	skA, vkA := newPair(t)
	require.NoError(t, keys.SaveKeyPair("bravo", skB, vkB))
	require.NoError(t, keys.SaveKeyPair("alpha", skA, vkA))

	list, err := keys.ListKeys()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, domain.KeyName("alpha"), list[0].Name)
	require.Equal(t, vkA, list[0].VerifyingKey)
	require.Equal(t, crypto.Fingerprint(vkA), list[0].Fingerprint)
	require.True(t, list[0].HasPrivate)
	require.Equal(t, domain.KeyName("bravo"), list[1].Name)

	require.NoError(t, keys.DeleteKeyPair("alpha"))
	_, err = keys.LoadSigningKey("alpha")
	require.ErrorIs(t, err, store.ErrKeyNotFound)

	list, err = keys.ListKeys()
	require.NoError(t, err)
	require.Len(t, list, 1)
}
