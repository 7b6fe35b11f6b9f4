// Package signing manages creation of local key pairs and signing with them.
//
// Signing keys are loaded from the domain.KeyStore for each operation and
// wiped as soon as the signature is produced. Keys are identified in logs by
// their fingerprint only.
package signing
