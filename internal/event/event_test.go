package event_test

import (
	"encoding/json"
	"errors"
	"testing"

	"nostrium/internal/event"
	"nostrium/internal/keys"
	"nostrium/internal/nip04"
)

// fixedEvent is a known-good signed event produced by a compatible client.
func fixedEvent() *event.Event {
	return &event.Event{
		ID:        "6623d3fb9270903631ee00c9683be7065726244518ea3fe334b3b490a8bece20",
		PubKey:    "c2e54fc64221e3b58dd960507db72909956cc0aa41019626ca64112984b85c2d",
		CreatedAt: 1675631647,
		Kind:      70202,
		Tags:      event.Tags{},
		Content:   "test",
		Sig:       "aaeba9765a6a6a82833fc5593fc3fe70997371a4fbd50afc064e2a50d7c21b2a7910f796ead8a4fcd2f7c592b8603c9cbe4f4756c6650127ba8334782ca53247",
	}
}

func TestComputeIDMatchesFixedVector(t *testing.T) {
	e := fixedEvent()
	got, err := e.ComputeID()
	if err != nil {
		t.Fatalf("ComputeID: %v", err)
	}
	if got != e.ID {
		t.Fatalf("want %s, got %s", e.ID, got)
	}
}

func TestVerifyFixedVector(t *testing.T) {
	ok, err := fixedEvent().Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("known-good event did not verify")
	}
}

func TestSignThenVerify(t *testing.T) {
	pair, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	e, err := event.New(event.KindTextNote, nil, "content", pair)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.Signed() {
		t.Fatal("event not marked signed")
	}
	ok, err := e.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("freshly signed event did not verify")
	}
}

func TestTamperingBreaksVerification(t *testing.T) {
	pair, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	other, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	cases := map[string]func(*event.Event){
		"content":    func(e *event.Event) { e.Content += "!" },
		"created_at": func(e *event.Event) { e.CreatedAt++ },
		"kind":       func(e *event.Event) { e.Kind = event.KindContacts },
		"tags":       func(e *event.Event) { e.Tags = event.Tags{{"e", "forged"}} },
		"pubkey":     func(e *event.Event) { e.PubKey = other.Public.Hex() },
	}
	for name, mutate := range cases {
		e, err := event.New(event.KindTextNote, event.Tags{{"t", "greeting"}}, "hello", pair)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		mutate(e)
		ok, err := e.Verify()
		if err != nil {
			t.Fatalf("%s: Verify: %v", name, err)
		}
		if ok {
			t.Fatalf("%s: tampered event verified", name)
		}
	}
}

func TestSerializeShape(t *testing.T) {
	e := &event.Event{
		PubKey:    "pk",
		CreatedAt: 0,
		Kind:      1,
		Tags:      event.Tags{{"p", "profile", "relays"}},
		Content:   "content",
	}
	got, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := `[0,"pk",0,1,[["p","profile","relays"]],"content"]`
	if string(got) != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestSerializeMinimalEscaping(t *testing.T) {
	e := &event.Event{
		PubKey:  "pk",
		Kind:    1,
		Content: "line\nquote\"back\\slash\ttab\x01 é 世界 <&>",
	}
	got, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := `[0,"pk",0,1,[],"line\nquote\"back\\slash\ttab é 世界 <&>"]`
	if string(got) != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestSerializeDeterminism(t *testing.T) {
	// The same logical fields built through different paths must produce
	// byte-identical output.
	a := &event.Event{PubKey: "pk", Kind: 1, Content: "same"}
	b := &event.Event{PubKey: "p", Kind: 1, Tags: event.Tags{}, Content: "same"}
	b.PubKey += "k"

	sa, err := a.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	sb, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(sa) != string(sb) {
		t.Fatalf("serializations differ:\n%s\n%s", sa, sb)
	}
}

func TestSerializeRejectsInvalidUTF8(t *testing.T) {
	e := &event.Event{PubKey: "pk", Kind: 1, Content: string([]byte{0xff, 0xfe})}
	if _, err := e.Serialize(); !errors.Is(err, event.ErrInvalidUTF8) {
		t.Fatalf("want ErrInvalidUTF8, got %v", err)
	}

	e = &event.Event{PubKey: "pk", Kind: 1, Tags: event.Tags{{string([]byte{0xc0})}}}
	if _, err := e.Serialize(); !errors.Is(err, event.ErrInvalidUTF8) {
		t.Fatalf("want ErrInvalidUTF8 for tag, got %v", err)
	}
}

func TestVerifyRejectsMalformedID(t *testing.T) {
	e := fixedEvent()
	e.ID = "not hex"
	if _, err := e.Verify(); !errors.Is(err, event.ErrMalformedID) {
		t.Fatalf("want ErrMalformedID, got %v", err)
	}
}

func TestJSONFieldOrder(t *testing.T) {
	e := fixedEvent()
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"` + e.ID + `","pubkey":"` + e.PubKey +
		`","created_at":1675631647,"kind":70202,"tags":[],"content":"test","sig":"` + e.Sig + `"}`
	if string(b) != want {
		t.Fatalf("want %s, got %s", want, b)
	}

	var back event.Event
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	ok, err := back.Verify()
	if err != nil {
		t.Fatalf("Verify after round trip: %v", err)
	}
	if !ok {
		t.Fatal("round-tripped event did not verify")
	}
}

func TestNewTextNote(t *testing.T) {
	pair, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	e, err := event.NewTextNote("gm", pair)
	if err != nil {
		t.Fatalf("NewTextNote: %v", err)
	}
	if e.Kind != event.KindTextNote {
		t.Fatalf("want kind %d, got %d", event.KindTextNote, e.Kind)
	}
	if ok, _ := e.Verify(); !ok {
		t.Fatal("text note did not verify")
	}
}

func TestNewSetMetadata(t *testing.T) {
	pair, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	e, err := event.NewSetMetadata(event.Metadata{Name: "alice", About: "tester", Picture: "https://example.com/a.png"}, pair)
	if err != nil {
		t.Fatalf("NewSetMetadata: %v", err)
	}
	if e.Kind != event.KindSetMetadata {
		t.Fatalf("want kind %d, got %d", event.KindSetMetadata, e.Kind)
	}
	var md event.Metadata
	if err := json.Unmarshal([]byte(e.Content), &md); err != nil {
		t.Fatalf("content is not metadata JSON: %v", err)
	}
	if md.Name != "alice" {
		t.Fatalf("want name alice, got %q", md.Name)
	}
}

func TestNewEncryptedDirectMessage(t *testing.T) {
	alice, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	bob, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	e, err := event.NewEncryptedDirectMessage("meet at noon", bob.Public, alice)
	if err != nil {
		t.Fatalf("NewEncryptedDirectMessage: %v", err)
	}
	if e.Kind != event.KindEncryptedDirectMessage {
		t.Fatalf("want kind %d, got %d", event.KindEncryptedDirectMessage, e.Kind)
	}
	if len(e.Tags) != 1 || len(e.Tags[0]) != 2 || e.Tags[0][0] != "p" || e.Tags[0][1] != bob.Public.Hex() {
		t.Fatalf("missing recipient tag, got %v", e.Tags)
	}
	if ok, _ := e.Verify(); !ok {
		t.Fatal("dm event did not verify")
	}

	secret, err := keys.SharedSecret(bob.Secret, alice.Public)
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	got, err := nip04.Decrypt(e.Content, secret)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != "meet at noon" {
		t.Fatalf("want %q, got %q", "meet at noon", got)
	}
}

func TestWithSubject(t *testing.T) {
	tags := event.WithSubject(nil, "lunch")
	if len(tags) != 1 || tags[0][0] != "subject" || tags[0][1] != "lunch" {
		t.Fatalf("got %v", tags)
	}
	if got := event.WithSubject(tags, ""); len(got) != 1 {
		t.Fatalf("empty subject must not add a tag, got %v", got)
	}
}
