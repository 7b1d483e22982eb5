// Package message encodes and decodes the tagged-array envelopes exchanged
// between client and relay: ["EVENT",…], ["REQ",…], ["CLOSE",…],
// ["EOSE",…], ["OK",…] and ["NOTICE",…].
//
// Decoding is strict. An unknown label, or a known label with the wrong
// arity or payload types, fails rather than being coerced. Filters inside a
// REQ pass through verbatim; nothing here evaluates them against events.
package message
