// Package keys holds secp256k1 key material and the curve operations built
// on it.
//
// Contents
//
//   - SecretKey, PublicKey and Pair types over fixed-size arrays
//   - Key generation and hex parsing (Generate, ParseSecretKey,
//     ParsePublicKey)
//   - BIP-340 Schnorr signing and verification (Pair.Sign, Verify)
//   - ECDH shared-secret derivation for direct messages (SharedSecret)
//   - Short public-key fingerprints for display (Fingerprint)
//
// # Notes
//
// Public keys use the 32-byte x-only form with the even-y convention.
// All functions take key material as explicit arguments; there is no
// process-wide key state.
package keys
