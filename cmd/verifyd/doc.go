// Package main runs verifyd, the HTTP verification daemon for libauth.
// It answers signature checks against the trusted keys in <home>/trusted so
// services that should not hold key files can delegate verification.
//
// HTTP API
//
//	POST /v1/verify
//	    JSON {"key_name" | "public_key", "message", "signature"}, bytes as
//	    base64. Returns {"valid": bool, "fingerprint": "..."}.
//
//	POST /v1/verify/envelope
//	    msgpack envelope produced by "libauth sign --envelope".
//
//	GET /healthz
//	GET /metrics
//	    Prometheus exposition, including Go and process collectors.
//
// Behaviour
//
//   - A signature that does not match is 200 with "valid": false. Malformed
//     input is 400 with a code, unknown keys 404.
//   - Trusted keys are read from disk on every request, so "libauth trust"
//     takes effect without a restart.
//   - A structured access log records method, path, remote, status, bytes and
//     duration for each request.
//   - Flags may be set as VERIFYD_<FLAG>, e.g. VERIFYD_ADDR=:9090.
//   - SIGINT or SIGTERM drains in-flight requests before exiting.
//
// The daemon never sees signing keys; it only reads public keys.
package main
