// Package app wires the signing key pair for the CLI.
//
// Key material comes from the environment: a hex or nsec secret key, or a
// mnemonic phrase to derive from. When neither is set an ephemeral pair is
// generated for the current invocation. The core packages never touch the
// environment themselves.
package app
