// Package verification checks signatures against trusted verifying keys,
// raw caller-supplied keys, or signed envelopes.
//
// A signature that does not match is a normal outcome and is reported as
// false with a nil error. Errors are reserved for malformed keys and
// signatures (crypto.ErrMalformedKey, crypto.ErrMalformedSignature) and for
// keys that are not trusted (ErrUnknownKey, ErrKeyMismatch).
package verification
