package app

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"nostrium/internal/keys"
	"nostrium/internal/mnemonic"
	"nostrium/internal/nip19"
)

// Config holds the key-material sources read from the environment. The
// secret key wins when both it and a mnemonic are set.
type Config struct {
	SecretKey string `env:"NOSTRIUM_SECRET_KEY"`
	Mnemonic  string `env:"NOSTRIUM_MNEMONIC"`
	Account   uint32 `env:"NOSTRIUM_ACCOUNT" envDefault:"0"`
	Index     uint32 `env:"NOSTRIUM_KEY_INDEX" envDefault:"0"`
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// App carries the resolved signing pair for commands.
type App struct {
	pair      keys.Pair
	ephemeral bool
}

// New resolves the signing pair from cfg.
func New(cfg Config) (*App, error) {
	switch {
	case cfg.SecretKey != "":
		sk, err := parseSecretKey(cfg.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		return &App{pair: keys.PairFromSecretKey(sk)}, nil
	case cfg.Mnemonic != "":
		pair, err := mnemonic.DeriveFromPhrase(cfg.Mnemonic, "", cfg.Account, cfg.Index)
		if err != nil {
			return nil, fmt.Errorf("mnemonic: %w", err)
		}
		return &App{pair: pair}, nil
	default:
		pair, err := keys.Generate()
		if err != nil {
			return nil, err
		}
		return &App{pair: pair, ephemeral: true}, nil
	}
}

// Pair returns the signing pair.
func (a *App) Pair() keys.Pair { return a.pair }

// Ephemeral reports whether the pair was generated for this invocation
// rather than loaded from the environment.
func (a *App) Ephemeral() bool { return a.ephemeral }

func parseSecretKey(s string) (keys.SecretKey, error) {
	if strings.HasPrefix(s, nip19.PrefixSecretKey+"1") {
		return nip19.DecodeSecretKey(s)
	}
	return keys.ParseSecretKey(s)
}
