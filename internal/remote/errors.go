package remote

import (
	"errors"
	"fmt"
	"net/http"

	"libauth/internal/crypto"
	"libauth/internal/envelope"
	"libauth/internal/services/verification"
	"libauth/internal/store"
)

// Error codes carried in domain.ErrorResponse.Code.
const (
	CodeBadRequest         = "bad_request"
	CodeBodyTooLarge       = "body_too_large"
	CodeMalformedKey       = "malformed_key"
	CodeMalformedSignature = "malformed_signature"
	CodeMalformedEnvelope  = "malformed_envelope"
	CodeUnsupportedVersion = "unsupported_version"
	CodeInvalidKeyName     = "invalid_key_name"
	CodeUnknownKey         = "unknown_key"
	CodeKeyMismatch        = "key_mismatch"
	CodeInternal           = "internal"
)

// codeSentinels maps wire codes back to the errors they stand for.
var codeSentinels = map[string]error{
	CodeMalformedKey:       crypto.ErrMalformedKey,
	CodeMalformedSignature: crypto.ErrMalformedSignature,
	CodeMalformedEnvelope:  envelope.ErrMalformedEnvelope,
	CodeUnsupportedVersion: envelope.ErrUnsupportedVersion,
	CodeInvalidKeyName:     store.ErrInvalidKeyName,
	CodeUnknownKey:         verification.ErrUnknownKey,
	CodeKeyMismatch:        verification.ErrKeyMismatch,
}

// errBadRequest marks request-shape problems found by the handler itself.
var errBadRequest = errors.New("bad request")

// classify maps a service error to an HTTP status and wire code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, CodeBodyTooLarge
	case errors.Is(err, store.ErrCorruptKeyFile):
		// The server's own key files are broken; not the caller's input.
		return http.StatusInternalServerError, CodeInternal
	case errors.Is(err, crypto.ErrMalformedKey):
		return http.StatusBadRequest, CodeMalformedKey
	case errors.Is(err, crypto.ErrMalformedSignature):
		return http.StatusBadRequest, CodeMalformedSignature
	case errors.Is(err, envelope.ErrMalformedEnvelope):
		return http.StatusBadRequest, CodeMalformedEnvelope
	case errors.Is(err, envelope.ErrUnsupportedVersion):
		return http.StatusBadRequest, CodeUnsupportedVersion
	case errors.Is(err, store.ErrInvalidKeyName):
		return http.StatusBadRequest, CodeInvalidKeyName
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, verification.ErrUnknownKey):
		return http.StatusNotFound, CodeUnknownKey
	case errors.Is(err, verification.ErrKeyMismatch):
		return http.StatusForbidden, CodeKeyMismatch
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// APIError is returned by Client for non-2xx responses.
type APIError struct {
	Method  string
	URL     string
	Status  string
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("verifyd %s %s: %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("verifyd %s %s: %s: %s", e.Method, e.URL, e.Status, e.Message)
}

// Unwrap lets errors.Is match the sentinel behind the server's code.
func (e *APIError) Unwrap() error { return codeSentinels[e.Code] }
