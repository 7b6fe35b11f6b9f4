// Package envelope attaches a signature and verifying key to a message so the
// three can travel together, for example as a license file or an API token.
//
// Envelopes are encoded with msgpack. The signature covers a domain-separated
// transcript of the key name, the signing time and the message, so none of
// them can be changed independently.
package envelope
