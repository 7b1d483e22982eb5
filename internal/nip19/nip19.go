package nip19

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"nostrium/internal/keys"
)

// Human-readable prefixes.
const (
	PrefixSecretKey = "nsec"
	PrefixPublicKey = "npub"
	PrefixNote      = "note"
	PrefixProfile   = "nprofile"
	PrefixEvent     = "nevent"
)

// TLV record types for nprofile and nevent.
const (
	tlvSpecial = 0x00
	tlvRelay   = 0x01
)

var (
	// ErrPrefix reports an entity with the wrong human-readable prefix.
	ErrPrefix = errors.New("unexpected bech32 prefix")

	// ErrMalformed reports an entity that fails bech32 or TLV parsing.
	ErrMalformed = errors.New("malformed bech32 entity")
)

// EncodeSecretKey returns the nsec form of a secret key.
func EncodeSecretKey(sk keys.SecretKey) (string, error) {
	return encode(PrefixSecretKey, sk[:])
}

// DecodeSecretKey parses an nsec string.
func DecodeSecretKey(s string) (keys.SecretKey, error) {
	raw, err := decode(PrefixSecretKey, s)
	if err != nil {
		return keys.SecretKey{}, err
	}
	return keys.SecretKeyFromBytes(raw)
}

// EncodePublicKey returns the npub form of a public key.
func EncodePublicKey(pk keys.PublicKey) (string, error) {
	return encode(PrefixPublicKey, pk[:])
}

// DecodePublicKey parses an npub string.
func DecodePublicKey(s string) (keys.PublicKey, error) {
	raw, err := decode(PrefixPublicKey, s)
	if err != nil {
		return keys.PublicKey{}, err
	}
	return keys.PublicKeyFromBytes(raw)
}

// EncodeNote returns the note form of a 64-character hex event id.
func EncodeNote(id string) (string, error) {
	raw, err := hex.DecodeString(id)
	if err != nil || len(raw) != 32 {
		return "", fmt.Errorf("%w: event id %q", ErrMalformed, id)
	}
	return encode(PrefixNote, raw)
}

// DecodeNote parses a note string into a hex event id.
func DecodeNote(s string) (string, error) {
	raw, err := decode(PrefixNote, s)
	if err != nil {
		return "", err
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("%w: event id is %d bytes", ErrMalformed, len(raw))
	}
	return hex.EncodeToString(raw), nil
}

// Profile points at an author, optionally with relays where they publish.
type Profile struct {
	PubKey keys.PublicKey
	Relays []string
}

// Encode returns the nprofile form.
func (p Profile) Encode() (string, error) {
	data, err := appendTLV(nil, tlvSpecial, p.PubKey[:])
	if err != nil {
		return "", err
	}
	for _, relay := range p.Relays {
		if data, err = appendTLV(data, tlvRelay, []byte(relay)); err != nil {
			return "", err
		}
	}
	return encode(PrefixProfile, data)
}

// DecodeProfile parses an nprofile string.
func DecodeProfile(s string) (Profile, error) {
	raw, err := decode(PrefixProfile, s)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	seen := false
	err = walkTLV(raw, func(typ byte, val []byte) error {
		switch typ {
		case tlvSpecial:
			pk, err := keys.PublicKeyFromBytes(val)
			if err != nil {
				return err
			}
			p.PubKey = pk
			seen = true
		case tlvRelay:
			p.Relays = append(p.Relays, string(val))
		}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	if !seen {
		return Profile{}, fmt.Errorf("%w: nprofile without public key", ErrMalformed)
	}
	return p, nil
}

// EventPointer points at an event by id, optionally with relays that hold
// it.
type EventPointer struct {
	ID     string // 64-character hex event id
	Relays []string
}

// Encode returns the nevent form.
func (e EventPointer) Encode() (string, error) {
	id, err := hex.DecodeString(e.ID)
	if err != nil || len(id) != 32 {
		return "", fmt.Errorf("%w: event id %q", ErrMalformed, e.ID)
	}
	data, err := appendTLV(nil, tlvSpecial, id)
	if err != nil {
		return "", err
	}
	for _, relay := range e.Relays {
		if data, err = appendTLV(data, tlvRelay, []byte(relay)); err != nil {
			return "", err
		}
	}
	return encode(PrefixEvent, data)
}

// DecodeEventPointer parses an nevent string.
func DecodeEventPointer(s string) (EventPointer, error) {
	raw, err := decode(PrefixEvent, s)
	if err != nil {
		return EventPointer{}, err
	}
	var e EventPointer
	err = walkTLV(raw, func(typ byte, val []byte) error {
		switch typ {
		case tlvSpecial:
			if len(val) != 32 {
				return fmt.Errorf("%w: event id is %d bytes", ErrMalformed, len(val))
			}
			e.ID = hex.EncodeToString(val)
		case tlvRelay:
			e.Relays = append(e.Relays, string(val))
		}
		return nil
	})
	if err != nil {
		return EventPointer{}, err
	}
	if e.ID == "" {
		return EventPointer{}, fmt.Errorf("%w: nevent without id", ErrMalformed)
	}
	return e, nil
}

func encode(hrp string, data []byte) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, conv)
}

func decode(hrp, s string) ([]byte, error) {
	// Entities with relay records exceed the 90-character checksum limit,
	// so decode without it.
	prefix, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if prefix != hrp {
		return nil, fmt.Errorf("%w: want %q, got %q", ErrPrefix, hrp, prefix)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return raw, nil
}

func appendTLV(dst []byte, typ byte, val []byte) ([]byte, error) {
	if len(val) > 0xff {
		return nil, fmt.Errorf("%w: record of %d bytes", ErrMalformed, len(val))
	}
	dst = append(dst, typ, byte(len(val)))
	return append(dst, val...), nil
}

func walkTLV(data []byte, visit func(typ byte, val []byte) error) error {
	for len(data) > 0 {
		if len(data) < 2 {
			return fmt.Errorf("%w: truncated record header", ErrMalformed)
		}
		typ, size := data[0], int(data[1])
		if len(data) < 2+size {
			return fmt.Errorf("%w: truncated record value", ErrMalformed)
		}
		if err := visit(typ, data[2:2+size]); err != nil {
			return err
		}
		data = data[2+size:]
	}
	return nil
}
