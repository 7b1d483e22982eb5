package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

var (
	// ErrInvalidKey reports secret key material outside [1, n-1] or of the
	// wrong length.
	ErrInvalidKey = errors.New("invalid secret key")

	// ErrMalformedPublicKey reports a public key that is not a valid x
	// coordinate on the curve.
	ErrMalformedPublicKey = errors.New("malformed public key")

	// ErrMalformedSignature reports a signature whose components are not
	// valid field/scalar values.
	ErrMalformedSignature = errors.New("malformed signature")
)

// SecretKey is a secp256k1 private scalar.
type SecretKey [32]byte

// Slice returns the key as a []byte.
func (k SecretKey) Slice() []byte { return k[:] }

// Hex returns the lowercase hex form of the key.
func (k SecretKey) Hex() string { return hex.EncodeToString(k[:]) }

// PublicKey is a secp256k1 public key in 32-byte x-only form.
type PublicKey [32]byte

// Slice returns the key as a []byte.
func (p PublicKey) Slice() []byte { return p[:] }

// Hex returns the lowercase hex form of the key.
func (p PublicKey) Hex() string { return hex.EncodeToString(p[:]) }

// Signature is a 64-byte BIP-340 Schnorr signature.
type Signature [64]byte

// Slice returns the signature as a []byte.
func (s Signature) Slice() []byte { return s[:] }

// Hex returns the lowercase hex form of the signature.
func (s Signature) Hex() string { return hex.EncodeToString(s[:]) }

// Pair is a secret key together with its x-only public key.
type Pair struct {
	Secret SecretKey
	Public PublicKey
}

// Generate returns a fresh key pair from the process CSPRNG.
func Generate() (Pair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return Pair{}, err
	}
	var sk SecretKey
	copy(sk[:], priv.Serialize())
	return PairFromSecretKey(sk), nil
}

// PairFromSecretKey derives the public key for sk and returns the pair.
// sk must already be a valid scalar; use SecretKeyFromBytes to validate.
func PairFromSecretKey(sk SecretKey) Pair {
	_, pub := btcec.PrivKeyFromBytes(sk[:])
	var pk PublicKey
	copy(pk[:], schnorr.SerializePubKey(pub))
	return Pair{Secret: sk, Public: pk}
}

// SecretKeyFromBytes validates b as a private scalar in [1, n-1].
func SecretKeyFromBytes(b []byte) (SecretKey, error) {
	var sk SecretKey
	if len(b) != len(sk) {
		return sk, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(b), len(sk))
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return sk, fmt.Errorf("%w: scalar out of range", ErrInvalidKey)
	}
	scalar.Zero()
	copy(sk[:], b)
	return sk, nil
}

// ParseSecretKey parses a 64-character hex secret key.
func ParseSecretKey(s string) (SecretKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return SecretKey{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return SecretKeyFromBytes(b)
}

// PublicKeyFromBytes validates b as an x-only public key on the curve.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != len(pk) {
		return pk, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedPublicKey, len(b), len(pk))
	}
	if _, err := schnorr.ParsePubKey(b); err != nil {
		return pk, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	copy(pk[:], b)
	return pk, nil
}

// ParsePublicKey parses a 64-character hex x-only public key.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	return PublicKeyFromBytes(b)
}

// Sign produces a Schnorr signature over the 32-byte digest. The nonce is
// deterministic, so signing the same digest with the same key always yields
// the same signature.
func (p Pair) Sign(digest [32]byte) (Signature, error) {
	var sig Signature
	if _, err := SecretKeyFromBytes(p.Secret[:]); err != nil {
		return sig, err
	}
	priv, _ := btcec.PrivKeyFromBytes(p.Secret[:])
	s, err := schnorr.Sign(priv, digest[:])
	if err != nil {
		return sig, err
	}
	copy(sig[:], s.Serialize())
	return sig, nil
}

// Verify checks sig over digest against pub. A well-formed but invalid
// signature returns (false, nil); only structurally malformed inputs return
// an error.
func Verify(digest [32]byte, pub PublicKey, sig Signature) (bool, error) {
	pk, err := schnorr.ParsePubKey(pub[:])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	s, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return s.Verify(digest[:], pk), nil
}

// SharedSecret computes the ECDH shared secret between sk and pk: the x
// coordinate of the peer's point multiplied by the private scalar, with no
// further hashing.
func SharedSecret(sk SecretKey, pk PublicKey) ([32]byte, error) {
	var out [32]byte
	if _, err := SecretKeyFromBytes(sk[:]); err != nil {
		return out, err
	}
	pub, err := schnorr.ParsePubKey(pk[:])
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	priv, _ := btcec.PrivKeyFromBytes(sk[:])
	copy(out[:], btcec.GenerateSharedSecret(priv, pub))
	return out, nil
}

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub PublicKey) string {
	sum := sha256.Sum256(pub[:])
	return hex.EncodeToString(sum[:10])
}
