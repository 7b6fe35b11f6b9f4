package crypto

import "errors"

var (
	// ErrEntropyUnavailable is returned when the random source cannot supply
	// key material.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrMalformedKey is returned for key bytes of the wrong length or that
	// do not decode to an acceptable curve point.
	ErrMalformedKey = errors.New("malformed key")

	// ErrMalformedSignature is returned for signature bytes of the wrong
	// length or with a non-canonical scalar.
	ErrMalformedSignature = errors.New("malformed signature")
)
