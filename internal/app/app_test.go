package app_test

import (
	"testing"

	"nostrium/internal/app"
)

const (
	secretHex  = "0f1429676edf1ff8e5ca8202c8741cb695fc3ce24ec3adc0fcf234116f08f849"
	secretNsec = "nsec1pu2zjemwmu0l3ew2sgpvsaquk62lc08zfmp6ms8u7g6pzmcglpysymcg0m"
	testPhrase = "mule south voice warrior garage broken body dolphin rent pool liar father cost fire prosper scale aspect rack bomb essay ancient vault zero cherry"
)

func TestHexSecretKey(t *testing.T) {
	t.Setenv("NOSTRIUM_SECRET_KEY", secretHex)
	cfg, err := app.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := a.Pair().Secret.Hex(); got != secretHex {
		t.Fatalf("want %s, got %s", secretHex, got)
	}
	if a.Ephemeral() {
		t.Fatal("configured key reported as ephemeral")
	}
}

func TestNsecSecretKey(t *testing.T) {
	a, err := app.New(app.Config{SecretKey: secretNsec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := a.Pair().Secret.Hex(); got != secretHex {
		t.Fatalf("want %s, got %s", secretHex, got)
	}
}

func TestSecretKeyWinsOverMnemonic(t *testing.T) {
	a, err := app.New(app.Config{SecretKey: secretHex, Mnemonic: testPhrase})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := a.Pair().Secret.Hex(); got != secretHex {
		t.Fatalf("want %s, got %s", secretHex, got)
	}
}

func TestMnemonicDerivation(t *testing.T) {
	a, err := app.New(app.Config{Mnemonic: testPhrase})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := "05ce64598abaddb659dd4d9ca5098261fd3e9c97d33d2c4b014354dbe029ff07"
	if got := a.Pair().Secret.Hex(); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestEphemeralFallback(t *testing.T) {
	a, err := app.New(app.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !a.Ephemeral() {
		t.Fatal("pair without config must be ephemeral")
	}
}

func TestBadSecretKey(t *testing.T) {
	if _, err := app.New(app.Config{SecretKey: "not a key"}); err == nil {
		t.Fatal("want error for malformed secret key")
	}
}
