package config

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/uno/deck"
	"github.com/minaorangina/uno/game"
)

var (
	ErrInvalidPort       = errors.New("port must be between 1 and 65535")
	ErrInvalidHandSize   = errors.New("hand size cannot be dealt")
	ErrInvalidMaxPlayers = errors.New("max players out of range")
	ErrInvalidTimeout    = errors.New("decision timeout must be positive")
)

// Config is read from the environment
type Config struct {
	Port            int           `env:"UNO_PORT,default=8000"`
	HandSize        int           `env:"UNO_HAND_SIZE,default=7"`
	MaxPlayers      int           `env:"UNO_MAX_PLAYERS,default=10"`
	Seed            int64         `env:"UNO_SEED,default=0"`
	AllowedOrigin   string        `env:"UNO_ALLOWED_ORIGIN,default=*"`
	DecisionTimeout time.Duration `env:"UNO_DECISION_TIMEOUT,default=2m"`
}

// Load decodes and validates the configuration
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no game could be played with.
// Every player must be dealt a full hand with a card left over to reveal.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.MaxPlayers < game.MinPlayers || c.MaxPlayers > game.MaxPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPlayers, c.MaxPlayers)
	}
	if c.HandSize <= 0 || c.HandSize*c.MaxPlayers >= deck.Size {
		return fmt.Errorf("%w: %d cards each for %d players", ErrInvalidHandSize, c.HandSize, c.MaxPlayers)
	}
	if c.DecisionTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// Addr is the address to listen on
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Uno constructs the rules engine for one game.
// A zero seed gives every game its own shuffle.
func (c Config) Uno() *game.Uno {
	opts := game.UnoOpts{HandSize: c.HandSize}
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return game.New(opts)
}
