// Package app wires application dependencies for the CLI and the daemon.
//
// It builds the concrete key and trust stores, the signing and verification
// services and, when a server URL is configured, the remote verifier client
// from Config, exposing them via the Wire struct for commands to use.
package app
