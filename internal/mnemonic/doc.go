// Package mnemonic turns seed phrases into signing key pairs.
//
// A phrase encodes entropy plus a checksum over a fixed English wordlist.
// The phrase is stretched into a 512-bit seed with PBKDF2-HMAC-SHA512
// (2048 iterations, salt "mnemonic"+passphrase), and the seed is walked
// down the hierarchical path m/44'/1237'/account'/0/index to a secp256k1
// pair. Neither the phrase nor the seed is retained after derivation.
//
// A derivation step can, in principle, produce a scalar that is zero or
// beyond the curve order. When that happens the next index is tried, up to
// a hard cap, as a deterministic policy rather than error-driven control
// flow.
package mnemonic
