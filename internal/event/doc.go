// Package event implements the content-addressed event at the heart of the
// protocol: canonical serialization, identity hashing, Schnorr signing and
// verification, and builders for the common event kinds.
//
// The identity hash is the SHA-256 of the canonical byte form
// [0,"<pubkey>",<created_at>,<kind>,<tags>,<content>]. The canonical form
// uses minimal escaping: quote, backslash and control characters below 0x20
// are escaped, everything else is emitted literally. A generic JSON encoder
// over-escapes and would produce a different hash, so the bytes are built by
// hand.
package event
