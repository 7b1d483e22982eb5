package event

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"nostrium/internal/keys"
)

var (
	// ErrInvalidUTF8 reports malformed UTF-8 in the content or tags during
	// canonicalization.
	ErrInvalidUTF8 = errors.New("malformed utf-8")

	// ErrMalformedID reports an id field that is not 32 bytes of hex.
	ErrMalformedID = errors.New("malformed event id")

	// ErrUnsigned reports an operation that needs a signed event.
	ErrUnsigned = errors.New("event is not signed")
)

// Tag is an ordered sequence of strings; the first element is the tag name.
type Tag []string

// Tags is the ordered tag list of an event.
type Tags []Tag

// Event is the signed, content-addressed unit exchanged over the protocol.
// ID, PubKey and Sig hold lowercase hex; both are empty until Sign runs.
type Event struct {
	ID        string `json:"id"`
	PubKey    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
	Kind      int    `json:"kind"`
	Tags      Tags   `json:"tags"`
	Content   string `json:"content"`
	Sig       string `json:"sig"`
}

// New builds an event with the current timestamp and signs it with pair.
func New(kind int, tags Tags, content string, pair keys.Pair) (*Event, error) {
	e := &Event{
		CreatedAt: time.Now().Unix(),
		Kind:      kind,
		Tags:      tags,
		Content:   content,
	}
	if err := e.Sign(pair); err != nil {
		return nil, err
	}
	return e, nil
}

// Signed reports whether both id and sig are populated.
func (e *Event) Signed() bool { return e.ID != "" && e.Sig != "" }

// Serialize returns the canonical byte form hashed to produce the id.
// The same logical field values always serialize to identical bytes.
func (e *Event) Serialize() ([]byte, error) {
	if !utf8.ValidString(e.Content) {
		return nil, fmt.Errorf("%w: content", ErrInvalidUTF8)
	}
	for _, tag := range e.Tags {
		for _, s := range tag {
			if !utf8.ValidString(s) {
				return nil, fmt.Errorf("%w: tag element", ErrInvalidUTF8)
			}
		}
	}

	dst := make([]byte, 0, 100+len(e.Content)+len(e.Tags)*80)
	dst = append(dst, `[0,"`...)
	dst = append(dst, e.PubKey...)
	dst = append(dst, `",`...)
	dst = strconv.AppendInt(dst, e.CreatedAt, 10)
	dst = append(dst, ',')
	dst = strconv.AppendInt(dst, int64(e.Kind), 10)
	dst = append(dst, ",["...)
	for i, tag := range e.Tags {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '[')
		for j, s := range tag {
			if j > 0 {
				dst = append(dst, ',')
			}
			dst = escapeString(dst, s)
		}
		dst = append(dst, ']')
	}
	dst = append(dst, "],"...)
	dst = escapeString(dst, e.Content)
	dst = append(dst, ']')
	return dst, nil
}

// ComputeID returns the hex identity hash derived from the canonical bytes.
func (e *Event) ComputeID() (string, error) {
	b, err := e.Serialize()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Sign populates pubkey, id and sig from pair. Signing is one-way: a signed
// event is never unsigned again.
func (e *Event) Sign(pair keys.Pair) error {
	if e.Tags == nil {
		e.Tags = make(Tags, 0)
	}
	e.PubKey = pair.Public.Hex()

	b, err := e.Serialize()
	if err != nil {
		return err
	}
	digest := sha256.Sum256(b)
	sig, err := pair.Sign(digest)
	if err != nil {
		return err
	}
	e.ID = hex.EncodeToString(digest[:])
	e.Sig = sig.Hex()
	return nil
}

// Verify recomputes the identity hash and checks the signature against the
// author's public key. A well-formed event that merely fails the check
// returns (false, nil); structurally malformed fields return an error.
func (e *Event) Verify() (bool, error) {
	idBytes, err := hex.DecodeString(e.ID)
	if err != nil || len(idBytes) != sha256.Size {
		return false, fmt.Errorf("%w: %q", ErrMalformedID, e.ID)
	}
	want, err := e.ComputeID()
	if err != nil {
		return false, err
	}
	if want != e.ID {
		return false, nil
	}

	pub, err := keys.ParsePublicKey(e.PubKey)
	if err != nil {
		return false, err
	}
	sigBytes, err := hex.DecodeString(e.Sig)
	if err != nil || len(sigBytes) != 64 {
		return false, fmt.Errorf("%w: bad hex", keys.ErrMalformedSignature)
	}
	var digest [32]byte
	copy(digest[:], idBytes)
	var sig keys.Signature
	copy(sig[:], sigBytes)
	return keys.Verify(digest, pub, sig)
}

// escapeString appends s as a canonical JSON string: only quote, backslash
// and C0 controls are escaped, all other code points pass through.
func escapeString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c < 0x20:
			dst = append(dst, fmt.Sprintf(`\u%04x`, c)...)
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
