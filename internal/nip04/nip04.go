package nip04

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat reports a payload that does not parse as
	// base64(ct) + "?iv=" + base64(iv) with valid lengths.
	ErrFormat = errors.New("malformed message payload")

	// ErrPadding reports ciphertext whose PKCS#7 padding is invalid after
	// decryption.
	ErrPadding = errors.New("bad message padding")
)

const ivSize = aes.BlockSize

// Encrypt encrypts plaintext under the 32-byte shared secret with a fresh
// random IV and returns the textual payload form.
func Encrypt(plaintext string, secret [32]byte) (string, error) {
	block, err := aes.NewCipher(secret[:])
	if err != nil {
		return "", err
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pad([]byte(plaintext))
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	var b strings.Builder
	b.WriteString(base64.StdEncoding.EncodeToString(ct))
	b.WriteString("?iv=")
	b.WriteString(base64.StdEncoding.EncodeToString(iv))
	return b.String(), nil
}

// Decrypt reverses Encrypt. Malformed payloads fail with ErrFormat and bad
// padding with ErrPadding; failures are surfaced, never swallowed.
func Decrypt(payload string, secret [32]byte) (string, error) {
	ctPart, ivPart, found := strings.Cut(payload, "?iv=")
	if !found {
		return "", fmt.Errorf("%w: missing iv marker", ErrFormat)
	}
	ct, err := base64.StdEncoding.DecodeString(ctPart)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", ErrFormat, err)
	}
	iv, err := base64.StdEncoding.DecodeString(ivPart)
	if err != nil {
		return "", fmt.Errorf("%w: iv: %v", ErrFormat, err)
	}
	if len(iv) != ivSize {
		return "", fmt.Errorf("%w: iv is %d bytes, want %d", ErrFormat, len(iv), ivSize)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d", ErrFormat, len(ct))
	}

	block, err := aes.NewCipher(secret[:])
	if err != nil {
		return "", err
	}
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)

	unpadded, err := unpad(pt)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrPadding)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, fmt.Errorf("%w: padding length %d", ErrPadding, n)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("%w: inconsistent padding bytes", ErrPadding)
		}
	}
	return b[:len(b)-n], nil
}
