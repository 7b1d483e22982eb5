package event

import (
	"encoding/json"

	"nostrium/internal/keys"
	"nostrium/internal/nip04"
)

// Event kinds from NIP-01 and NIP-04.
const (
	KindSetMetadata            = 0
	KindTextNote               = 1
	KindRecommendRelay         = 2
	KindContacts               = 3
	KindEncryptedDirectMessage = 4
)

// Metadata is the content payload of a set-metadata event.
type Metadata struct {
	Name    string `json:"name"`
	About   string `json:"about"`
	Picture string `json:"picture"`
}

// NewSetMetadata builds and signs a kind-0 event describing the author.
func NewSetMetadata(md Metadata, pair keys.Pair) (*Event, error) {
	content, err := json.Marshal(md)
	if err != nil {
		return nil, err
	}
	return New(KindSetMetadata, nil, string(content), pair)
}

// NewTextNote builds and signs a kind-1 plain text note.
func NewTextNote(content string, pair keys.Pair) (*Event, error) {
	return New(KindTextNote, nil, content, pair)
}

// NewRecommendRelay builds and signs a kind-2 relay recommendation.
func NewRecommendRelay(relayURL string, pair keys.Pair) (*Event, error) {
	return New(KindRecommendRelay, nil, relayURL, pair)
}

// NewEncryptedDirectMessage builds and signs a kind-4 event whose content is
// encrypted for the recipient with the ECDH shared secret. The recipient is
// referenced with a "p" tag.
func NewEncryptedDirectMessage(plaintext string, to keys.PublicKey, pair keys.Pair) (*Event, error) {
	secret, err := keys.SharedSecret(pair.Secret, to)
	if err != nil {
		return nil, err
	}
	content, err := nip04.Encrypt(plaintext, secret)
	if err != nil {
		return nil, err
	}
	tags := Tags{{"p", to.Hex()}}
	return New(KindEncryptedDirectMessage, tags, content, pair)
}

// WithSubject returns tags extended with a "subject" tag when subject is
// non-empty. Call before signing; tags are part of the identity hash.
func WithSubject(tags Tags, subject string) Tags {
	if subject == "" {
		return tags
	}
	return append(tags, Tag{"subject", subject})
}
