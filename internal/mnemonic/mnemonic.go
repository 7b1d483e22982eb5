package mnemonic

import (
	"crypto/sha512"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"

	"nostrium/internal/keys"
	"nostrium/internal/util/memzero"
)

const (
	purpose  = 44
	coinType = 1237

	seedIterations = 2048
	seedBytes      = 64

	// maxDeriveAttempts caps the retry-at-next-index loop for invalid
	// child scalars.
	maxDeriveAttempts = 16
)

var (
	// ErrChecksum reports a phrase whose checksum does not match its
	// entropy.
	ErrChecksum = errors.New("mnemonic checksum mismatch")

	// ErrDerivation reports a derivation that failed even after the
	// bounded index retry.
	ErrDerivation = errors.New("key derivation failed")
)

// Generate draws bits of entropy (128 to 256 in 32-bit steps) from the
// process CSPRNG and returns the corresponding phrase.
func Generate(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(entropy)
	return bip39.NewMnemonic(entropy)
}

// ToEntropy reverses Generate, validating the checksum on the way.
func ToEntropy(phrase string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			return nil, fmt.Errorf("%w", ErrChecksum)
		}
		return nil, err
	}
	return entropy, nil
}

// ToSeed stretches a validated phrase into a 64-byte seed with
// PBKDF2-HMAC-SHA512.
func ToSeed(phrase, passphrase string) ([]byte, error) {
	entropy, err := ToEntropy(phrase)
	if err != nil {
		return nil, err
	}
	memzero.Zero(entropy)
	return pbkdf2.Key([]byte(phrase), []byte("mnemonic"+passphrase), seedIterations, seedBytes, sha512.New), nil
}

// DeriveKeyPair walks m/44'/1237'/account'/0/index over the seed. An
// invalid child scalar at the final level moves on to the next index, up to
// maxDeriveAttempts, before giving up with ErrDerivation.
func DeriveKeyPair(seed []byte, account, index uint32) (keys.Pair, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return keys.Pair{}, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	defer master.Zero()

	steps := []uint32{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + account,
		0,
	}
	node := master
	for _, step := range steps {
		next, err := node.Derive(step)
		if node != master {
			node.Zero()
		}
		if err != nil {
			return keys.Pair{}, fmt.Errorf("%w: %v", ErrDerivation, err)
		}
		node = next
	}
	defer node.Zero()

	for attempt := uint32(0); attempt < maxDeriveAttempts; attempt++ {
		child, err := node.Derive(index + attempt)
		if errors.Is(err, hdkeychain.ErrInvalidChild) {
			continue
		}
		if err != nil {
			return keys.Pair{}, fmt.Errorf("%w: %v", ErrDerivation, err)
		}
		priv, err := child.ECPrivKey()
		if err != nil {
			child.Zero()
			return keys.Pair{}, fmt.Errorf("%w: %v", ErrDerivation, err)
		}
		raw := priv.Serialize()
		child.Zero()
		sk, err := keys.SecretKeyFromBytes(raw)
		memzero.Zero(raw)
		if err != nil {
			return keys.Pair{}, fmt.Errorf("%w: %v", ErrDerivation, err)
		}
		return keys.PairFromSecretKey(sk), nil
	}
	return keys.Pair{}, fmt.Errorf("%w: no valid child in %d attempts", ErrDerivation, maxDeriveAttempts)
}

// DeriveFromPhrase is the phrase-to-pair convenience used by the CLI. The
// intermediate seed is wiped before returning.
func DeriveFromPhrase(phrase, passphrase string, account, index uint32) (keys.Pair, error) {
	seed, err := ToSeed(phrase, passphrase)
	if err != nil {
		return keys.Pair{}, err
	}
	defer memzero.Zero(seed)
	return DeriveKeyPair(seed, account, index)
}
