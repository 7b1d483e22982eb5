package nip19_test

import (
	"errors"
	"testing"

	"nostrium/internal/keys"
	"nostrium/internal/nip19"
)

const (
	secretHex  = "0f1429676edf1ff8e5ca8202c8741cb695fc3ce24ec3adc0fcf234116f08f849"
	secretNsec = "nsec1pu2zjemwmu0l3ew2sgpvsaquk62lc08zfmp6ms8u7g6pzmcglpysymcg0m"

	publicHex  = "3bf0c63fcb93463407af97a5e5ee64fa883d107ef9e558472c4eb9aaaefa459d"
	publicNpub = "npub180cvv07tjdrrgpa0j7j7tmnyl2yr6yr7l8j4s3evf6u64th6gkwsyjh6w6"
)

func TestSecretKeyVectors(t *testing.T) {
	sk, err := keys.ParseSecretKey(secretHex)
	if err != nil {
		t.Fatalf("ParseSecretKey: %v", err)
	}
	got, err := nip19.EncodeSecretKey(sk)
	if err != nil {
		t.Fatalf("EncodeSecretKey: %v", err)
	}
	if got != secretNsec {
		t.Fatalf("want %s, got %s", secretNsec, got)
	}

	back, err := nip19.DecodeSecretKey(secretNsec)
	if err != nil {
		t.Fatalf("DecodeSecretKey: %v", err)
	}
	if back.Hex() != secretHex {
		t.Fatalf("want %s, got %s", secretHex, back.Hex())
	}
}

func TestPublicKeyVectors(t *testing.T) {
	pk, err := keys.ParsePublicKey(publicHex)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	got, err := nip19.EncodePublicKey(pk)
	if err != nil {
		t.Fatalf("EncodePublicKey: %v", err)
	}
	if got != publicNpub {
		t.Fatalf("want %s, got %s", publicNpub, got)
	}

	back, err := nip19.DecodePublicKey(publicNpub)
	if err != nil {
		t.Fatalf("DecodePublicKey: %v", err)
	}
	if back.Hex() != publicHex {
		t.Fatalf("want %s, got %s", publicHex, back.Hex())
	}
}

func TestDecodeRejectsWrongPrefix(t *testing.T) {
	if _, err := nip19.DecodeSecretKey(publicNpub); !errors.Is(err, nip19.ErrPrefix) {
		t.Fatalf("want ErrPrefix, got %v", err)
	}
	if _, err := nip19.DecodePublicKey(secretNsec); !errors.Is(err, nip19.ErrPrefix) {
		t.Fatalf("want ErrPrefix, got %v", err)
	}
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	mangled := secretNsec[:len(secretNsec)-1] + "q"
	if _, err := nip19.DecodeSecretKey(mangled); !errors.Is(err, nip19.ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	pk, err := keys.ParsePublicKey(publicHex)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	p := nip19.Profile{
		PubKey: pk,
		Relays: []string{"wss://relay.example.com", "wss://backup.example.net"},
	}
	s, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := nip19.DecodeProfile(s)
	if err != nil {
		t.Fatalf("DecodeProfile: %v", err)
	}
	if got.PubKey != p.PubKey {
		t.Fatalf("pubkey changed: %s", got.PubKey.Hex())
	}
	if len(got.Relays) != 2 || got.Relays[0] != p.Relays[0] || got.Relays[1] != p.Relays[1] {
		t.Fatalf("relays changed: %v", got.Relays)
	}
}

func TestNoteVector(t *testing.T) {
	const (
		id   = "6623d3fb9270903631ee00c9683be7065726244518ea3fe334b3b490a8bece20"
		note = "note1vc3a87ujwzgrvv0wqrykswl8qetjvfz9rr4rlce5kw6fp297ecsq6w4nqk"
	)
	s, err := nip19.EncodeNote(id)
	if err != nil {
		t.Fatalf("EncodeNote: %v", err)
	}
	if s != note {
		t.Fatalf("want %s, got %s", note, s)
	}
	got, err := nip19.DecodeNote(note)
	if err != nil {
		t.Fatalf("DecodeNote: %v", err)
	}
	if got != id {
		t.Fatalf("want %s, got %s", id, got)
	}
}

func TestNoteRejectsBadID(t *testing.T) {
	if _, err := nip19.EncodeNote("short"); !errors.Is(err, nip19.ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
	if _, err := nip19.DecodeNote("npub180cvv07tjdrrgpa0j7j7tmnyl2yr6yr7l8j4s3evf6u64th6gkwsyjh6w6"); !errors.Is(err, nip19.ErrPrefix) {
		t.Fatalf("want ErrPrefix, got %v", err)
	}
}

func TestEventPointerRoundTrip(t *testing.T) {
	e := nip19.EventPointer{
		ID:     "6623d3fb9270903631ee00c9683be7065726244518ea3fe334b3b490a8bece20",
		Relays: []string{"wss://relay.example.com"},
	}
	s, err := e.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := nip19.DecodeEventPointer(s)
	if err != nil {
		t.Fatalf("DecodeEventPointer: %v", err)
	}
	if got.ID != e.ID {
		t.Fatalf("id changed: %s", got.ID)
	}
	if len(got.Relays) != 1 || got.Relays[0] != e.Relays[0] {
		t.Fatalf("relays changed: %v", got.Relays)
	}
}

func TestEventPointerRejectsBadID(t *testing.T) {
	if _, err := (nip19.EventPointer{ID: "short"}).Encode(); !errors.Is(err, nip19.ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
}
