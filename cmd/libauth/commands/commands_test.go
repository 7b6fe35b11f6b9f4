package commands

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"libauth/internal/crypto"
	"libauth/internal/logging"
	"libauth/internal/remote"
	"libauth/internal/services/verification"
	"libauth/internal/store"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	require.NoError(t, err)
	return out
}

func TestSignAndVerify(t *testing.T) {
	home := t.TempDir()
	h := "--home=" + home

	out := mustRun(t, h, "keygen", "alice")
	require.Contains(t, out, "Fingerprint:")

	_, err := run(t, "", h, "keygen", "alice")
	require.ErrorIs(t, err, store.ErrKeyExists)

	sigHex := strings.TrimSpace(mustRun(t, h, "sign", "alice", "hello"))
	require.Len(t, sigHex, 128)
	require.Len(t, strings.TrimSpace(mustRun(t, h, "sign", "alice", "hello", "--base64")), 88)
	require.Len(t, strings.TrimSpace(mustRun(t, h, "pubkey", "alice", "--base64")), 44)

	// Own keys verify without being trusted.
	out = mustRun(t, h, "verify", "--key", "alice", "--sig-hex", sigHex, "hello")
	require.Contains(t, out, "VALID")

	out, err = run(t, "", h, "verify", "--key", "alice", "--sig-hex", sigHex, "hellO")
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.Equal(t, 1, ExitCode(err))
	require.Contains(t, out, "INVALID")

	// Message from stdin.
	_, err = run(t, "hello", h, "verify", "--key", "alice", "--sig-hex", sigHex, "--in", "-")
	require.NoError(t, err)
}

func TestVerifyMalformedInput(t *testing.T) {
	home := t.TempDir()
	h := "--home=" + home
	mustRun(t, h, "keygen", "alice")

	_, err := run(t, "", h, "verify", "--key", "alice", "--sig-hex", "abcd", "hello")
	require.ErrorIs(t, err, crypto.ErrMalformedSignature)
	require.Equal(t, 2, ExitCode(err))

	identity := filepath.Join(home, "identity.pub")
	require.NoError(t, os.WriteFile(identity, append([]byte{1}, make([]byte, 31)...), 0o644))
	_, err = run(t, "", h, "verify", "--pubkey", identity, "--sig-hex", strings.Repeat("00", 64), "hello")
	require.ErrorIs(t, err, crypto.ErrMalformedKey)
	require.Equal(t, 2, ExitCode(err))

	_, err = run(t, "", h, "trust", "nobody", identity)
	require.ErrorIs(t, err, crypto.ErrMalformedKey)

	_, err = run(t, "", h, "verify", "--key", "stranger", "--sig-hex", strings.Repeat("00", 64), "hello")
	require.ErrorIs(t, err, verification.ErrUnknownKey)
	require.Equal(t, 2, ExitCode(err))
}

func TestRawFilesAndTrust(t *testing.T) {
	home := t.TempDir()
	h := "--home=" + home
	dir := t.TempDir()
	pub := filepath.Join(dir, "alice.pub")
	sig := filepath.Join(dir, "msg.sig")
	msg := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(msg, []byte("tsunami warning"), 0o644))

	mustRun(t, h, "keygen", "alice")
	mustRun(t, h, "pubkey", "alice", "--out", pub)
	mustRun(t, h, "sign", "alice", "--in", msg, "--out", sig)

	raw, err := os.ReadFile(sig)
	require.NoError(t, err)
	require.Len(t, raw, 64)

	out := mustRun(t, h, "verify", "--pubkey", pub, "--sig", sig, "--in", msg)
	require.Contains(t, out, "VALID")

	out = mustRun(t, h, "trust", "alice-remote", pub)
	fp := mustRun(t, h, "fingerprint", "alice")
	require.Contains(t, out, strings.TrimPrefix(strings.TrimSpace(fp), "Fingerprint: "))

	out = mustRun(t, h, "list")
	require.Contains(t, out, "FINGERPRINT")
	require.Regexp(t, `alice-remote\s+\|\s+trusted\s+\|`, out)
	require.Regexp(t, `alice\s+\|\s+own\s+\|`, out)

	// A stray file in the trust directory does not break listing.
	require.NoError(t, os.WriteFile(filepath.Join(home, "trusted", "zzz.pub"), []byte("junk"), 0o644))
	out = mustRun(t, h, "list")
	require.Contains(t, out, "alice-remote")
	require.NotContains(t, out, "zzz")

	mustRun(t, h, "untrust", "alice-remote")
	_, err = run(t, "", h, "untrust", "alice-remote")
	require.ErrorIs(t, err, store.ErrKeyNotFound)

	_, err = run(t, "", h, "delete", "alice")
	require.Error(t, err)
	mustRun(t, h, "delete", "alice", "--yes")
	_, err = run(t, "", h, "pubkey", "alice")
	require.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestEnvelope(t *testing.T) {
	home := t.TempDir()
	h := "--home=" + home
	dir := t.TempDir()
	pub := filepath.Join(dir, "alice.pub")
	env := filepath.Join(dir, "msg.env")

	mustRun(t, h, "keygen", "alice")
	mustRun(t, h, "pubkey", "alice", "--out", pub)
	mustRun(t, h, "sign", "alice", "seats=10", "--envelope", "--out", env)

	// The envelope key must be trusted.
	_, err := run(t, "", h, "verify", "--envelope", env)
	require.ErrorIs(t, err, verification.ErrUnknownKey)

	mustRun(t, h, "trust", "alice", pub)
	out := mustRun(t, h, "verify", "--envelope", env)
	require.Contains(t, out, "Key: alice")
	require.Contains(t, out, "VALID")

	_, err = run(t, "", h, "verify", "--envelope", env, "--key", "alice")
	require.Error(t, err)
}

func TestRemoteVerify(t *testing.T) {
	serverHome := t.TempDir()
	svc := verification.New(store.NewTrustFileStore(serverHome), logging.Discard())
	srv := httptest.NewServer(remote.NewHandler(svc, logging.Discard(), remote.Options{}))
	defer srv.Close()

	home := t.TempDir()
	h := "--home=" + home
	pub := filepath.Join(t.TempDir(), "alice.pub")
	mustRun(t, h, "keygen", "alice")
	mustRun(t, h, "pubkey", "alice", "--out", pub)
	raw, err := os.ReadFile(pub)
	require.NoError(t, err)
	_, err = svc.Trust("alice", raw)
	require.NoError(t, err)

	sigHex := strings.TrimSpace(mustRun(t, h, "sign", "alice", "hello"))

	out := mustRun(t, h, "verify", "--remote", srv.URL, "--key", "alice", "--sig-hex", sigHex, "hello")
	require.Contains(t, out, "VALID")

	_, err = run(t, "", h, "verify", "--remote", srv.URL, "--key", "alice", "--sig-hex", sigHex, "bye")
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = run(t, "", h, "verify", "--remote", srv.URL, "--key", "bob", "--sig-hex", sigHex, "hello")
	require.ErrorIs(t, err, verification.ErrUnknownKey)
}

func TestEnvironmentOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LIBAUTH_HOME", home)

	mustRun(t, "keygen", "carol")
	_, err := os.Stat(filepath.Join(home, "keys", "carol.key"))
	require.NoError(t, err)

	t.Setenv("LIBAUTH_LOG_LEVEL", "loud")
	_, err = run(t, "", "list")
	require.ErrorContains(t, err, "invalid log level")
}
