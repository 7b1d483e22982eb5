// Package commands defines the nostrium CLI and wires the signing key for
// subcommands.
//
// Commands
//
//   - event verify           Check a signed event read from stdin
//   - event generate         Sign an event with an arbitrary kind
//   - event text-note        Sign a plain text note
//   - event set-metadata     Sign a profile metadata event
//   - event recommend-relay  Sign a relay recommendation
//   - event dm               Encrypt and sign a direct message
//   - message event|request|close  Wrap payloads in relay envelopes
//   - request                Build a subscription filter from flags
//   - key generate|public|derive   Key management
//
// # Implementation
//
// The root command resolves the signing pair before any subcommand runs:
// NOSTRIUM_SECRET_KEY (hex or nsec) wins, then NOSTRIUM_MNEMONIC, then an
// ephemeral pair for the invocation.
package commands
