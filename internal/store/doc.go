// Package store provides file-based persistence for libauth keys.
//
// Keys are kept exactly as their raw bytes, one file per key, under the
// user's configured home directory:
//
//	<home>/keys/<name>.key     32-byte signing seed, mode 0600
//	<home>/keys/<name>.pub     32-byte verifying key, mode 0644
//	<home>/trusted/<name>.pub  32-byte verifying key of another party
//
// Writes go through a temp file and rename. All methods are concurrency-safe
// via internal locking. Loaded keys are parsed with the strict decoders from
// internal/crypto, so a corrupt or degenerate key file is reported as
// crypto.ErrMalformedKey rather than silently accepted.
package store
