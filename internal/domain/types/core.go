package types

// KeyName labels a stored key pair or a trusted verifying key.
type KeyName string

// String returns the string form of the name.
func (n KeyName) String() string { return string(n) }

// Fingerprint is a short identifier for verifying keys presented to users
// and written to logs in place of key material.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyInfo describes a stored or trusted key without exposing secrets.
type KeyInfo struct {
	Name         KeyName      `json:"name"`
	VerifyingKey VerifyingKey `json:"verifying_key"`
	Fingerprint  Fingerprint  `json:"fingerprint"`
	HasPrivate   bool         `json:"has_private"`
}
