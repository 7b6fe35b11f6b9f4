// Package remote exposes verification over HTTP and provides the matching
// client, so services that only hold public keys can delegate checks to a
// single daemon.
//
// Endpoints
//
//	POST /v1/verify
//	    JSON {"key_name" | "public_key", "message", "signature"}; byte fields
//	    are base64. Responds {"valid": bool, "fingerprint": "..."}.
//
//	POST /v1/verify/envelope
//	    A msgpack envelope (application/msgpack). Same response shape.
//
//	GET /healthz
//	GET /metrics
//
// A signature that does not match is 200 with "valid": false. Malformed keys
// or signatures are 400 with a machine-readable code, unknown keys 404, and
// an envelope whose key contradicts the trusted key of the same name 403.
// Client maps these codes back to the sentinel errors of the crypto,
// envelope and verification packages.
package remote
