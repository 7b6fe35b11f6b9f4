// Package commands defines the libauth CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen       Generate and store a key pair
//   - pubkey       Print or export a stored public key
//   - fingerprint  Print the fingerprint of an own or trusted key
//   - sign         Sign a message, optionally as an envelope
//   - verify       Verify a signature or envelope, locally or via verifyd
//   - trust        Trust another party's public key
//   - untrust      Remove a trusted key
//   - list         List own and trusted keys
//   - delete       Delete an own key pair
//
// Every flag may also be set from the environment: LIBAUTH_<FLAG> for the
// global flags, LIBAUTH_<COMMAND>_<FLAG> for command flags (dashes become
// underscores). Command-line values win.
//
// # Implementation
//
// The root command constructs an HTTP client and builds a dependency graph
// (stores, services, optional verifyd client) before any subcommand runs.
package commands
