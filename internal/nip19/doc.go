// Package nip19 implements the bech32 entity encodings used to share keys
// and events as human-pasteable strings: nsec and npub for bare keys, note
// for bare event ids, and the TLV forms nprofile and nevent that can carry
// relay hints.
package nip19
